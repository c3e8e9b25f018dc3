// File: internal/services/ai/fallback.go
package ai

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
)

// FallbackProvider is the degraded-mode provider used when no API key is
// configured. Embeddings are derived deterministically from a hash of the
// input text, so identical text always maps to the identical vector and the
// vector store stays self-consistent across restarts. Completions always
// fail, which pushes the answer pipeline onto its curated fallback path.
type FallbackProvider struct {
	dimension int
}

func NewFallbackProvider(dimension int) *FallbackProvider {
	if dimension <= 0 {
		dimension = 384
	}
	return &FallbackProvider{dimension: dimension}
}

func (p *FallbackProvider) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, NewValidationError("embedding", "empty input text")
	}

	h := fnv.New64a()
	h.Write([]byte(text))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	vec := make([]float32, p.dimension)
	var norm float64
	for i := range vec {
		v := rng.Float64()*2 - 1
		vec[i] = float32(v)
		norm += v * v
	}

	// Unit-normalize so dot products behave like cosine similarity.
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec, nil
}

func (p *FallbackProvider) Dimension() int {
	return p.dimension
}

func (p *FallbackProvider) GetCompletion(ctx context.Context, model, prompt string) (string, error) {
	return "", &AIError{
		Type:      ErrTypeProvider,
		Operation: "completion",
		Message:   "no completion backend configured",
	}
}

func (p *FallbackProvider) HealthCheck(ctx context.Context) error {
	return nil
}

func (p *FallbackProvider) GetStatus(ctx context.Context) ProviderStatus {
	return ProviderStatus{
		IsHealthy:        true,
		EmbeddingHealthy: true,
		LLMHealthy:       false,
		Message:          "fallback provider: hash embeddings, no completions",
	}
}
