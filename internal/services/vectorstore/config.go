// File: internal/services/vectorstore/config.go
package vectorstore

import (
	"fmt"
	"time"
)

type Config struct {
	// Chunking Configuration
	ChunkSize    int // Maximum characters per chunk
	ChunkOverlap int // Characters carried over between adjacent chunks

	// Retrieval Configuration
	TopK               int     // Default number of results per search
	RelevanceThreshold float64 // Minimum relevance for scored retrieval
	VectorWeight       float64 // Hybrid fusion weight for the vector ranker
	LexicalWeight      float64 // Hybrid fusion weight for the lexical ranker

	// Persistence Configuration
	PersistDirectory string // Empty disables persistence

	// Performance Configuration
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive")
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("chunk_overlap cannot be negative")
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap must be smaller than chunk_size")
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive")
	}
	if c.TopK > 50 {
		return fmt.Errorf("top_k cannot exceed 50")
	}
	if c.VectorWeight < 0 || c.LexicalWeight < 0 {
		return fmt.Errorf("fusion weights cannot be negative")
	}
	if c.VectorWeight+c.LexicalWeight == 0 {
		return fmt.Errorf("at least one fusion weight must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		ChunkSize:          1000,
		ChunkOverlap:       200,
		TopK:               5,
		RelevanceThreshold: 0.1,
		VectorWeight:       0.7,
		LexicalWeight:      0.3,
		Timeout:            30 * time.Second,
		MaxRetries:         3,
		RetryDelay:         1 * time.Second,
	}
}
