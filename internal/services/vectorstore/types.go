// File: internal/services/vectorstore/types.go
package vectorstore

import (
	"context"

	"github.com/bulamuhealth/go-medassist/internal/domain"
)

// Logger defines the logging interface used across vector store services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Embedder turns text into a fixed-dimension vector.
type Embedder interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// Backend is a nearest-neighbor index over embedded chunks. The local
// in-memory backend and the remote Pinecone backend both implement it.
// Query scores are cosine similarity, higher is better.
type Backend interface {
	Upsert(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error
	Query(ctx context.Context, vector []float32, topK int) ([]domain.RetrievalResult, error)
	Has(id string) bool
	Count() int
}
