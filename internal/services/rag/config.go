// File: internal/services/rag/config.go
package rag

import (
	"fmt"
	"time"
)

type Config struct {
	// Retrieval Configuration
	RetrievalTopK      int     // Plain similarity retrieval depth
	ScoredTopK         int     // Scored retrieval depth for context assembly
	RelevanceThreshold float64 // Minimum relevance for scored retrieval
	ContextMaxTokens   int     // Token budget for the assembled context

	// Generation Configuration
	ChatModel         string
	GenerationTimeout time.Duration // Completion deadline; timeout means fallback

	// Conversation Configuration
	HistoryWindow int // Max prior exchanges fed into the prompt

	// Citation Configuration
	MaxSources int // Maximum citations attached to an answer
}

func (c *Config) Validate() error {
	if c.RetrievalTopK <= 0 {
		return fmt.Errorf("retrieval_top_k must be positive")
	}
	if c.ScoredTopK <= 0 {
		return fmt.Errorf("scored_top_k must be positive")
	}
	if c.ContextMaxTokens <= 0 {
		return fmt.Errorf("context_max_tokens must be positive")
	}
	if c.GenerationTimeout <= 0 {
		return fmt.Errorf("generation_timeout must be positive")
	}
	if c.HistoryWindow < 0 {
		return fmt.Errorf("history_window cannot be negative")
	}
	if c.MaxSources < 0 {
		return fmt.Errorf("max_sources cannot be negative")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		RetrievalTopK:      5,
		ScoredTopK:         8,
		RelevanceThreshold: 0.1,
		ContextMaxTokens:   2000,
		ChatModel:          "gpt-4o-mini",
		GenerationTimeout:  30 * time.Second,
		HistoryWindow:      10,
		MaxSources:         3,
	}
}
