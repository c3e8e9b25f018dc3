// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"time"
)

type Config struct {
	// Embedding Configuration
	APIKey         string
	BaseURL        string
	EmbeddingModel string
	ChatModel      string

	// EmbeddingDimension must match any pre-built index this provider
	// feeds. The bundled local index uses 384.
	EmbeddingDimension int

	// Performance Configuration
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// Model Parameters
	Temperature float32
	TopP        float32
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.EmbeddingModel == "" {
		return fmt.Errorf("EMBEDDING_MODEL_NAME is required")
	}
	if c.ChatModel == "" {
		return fmt.Errorf("CHAT_MODEL_NAME is required")
	}
	if c.EmbeddingDimension <= 0 {
		return fmt.Errorf("embedding dimension must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		EmbeddingDimension: 384,
		Timeout:            2 * time.Minute,
		MaxRetries:         3,
		RetryDelay:         2 * time.Second,
		Temperature:        0.3,
		TopP:               0.9,
	}
}
