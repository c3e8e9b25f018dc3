// File: internal/services/ai/interface.go
package ai

import "context"

// ProviderStatus represents AI provider health
type ProviderStatus struct {
	IsHealthy        bool
	EmbeddingHealthy bool
	LLMHealthy       bool
	Message          string
}

// EmbeddingProvider turns text into a fixed-dimension vector. Implementations
// must be deterministic for identical input within one process lifetime.
type EmbeddingProvider interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
	Dimension() int
	HealthCheck(ctx context.Context) error
}

// CompletionProvider handles chat completions
type CompletionProvider interface {
	GetCompletion(ctx context.Context, model, prompt string) (string, error)
	HealthCheck(ctx context.Context) error
}

// Provider combines embedding and completion capabilities
type Provider interface {
	EmbeddingProvider
	CompletionProvider
	GetStatus(ctx context.Context) ProviderStatus
}
