// File: internal/services/vectorstore/pinecone.go
package vectorstore

import (
	"context"
	"sync"

	"github.com/pinecone-io/go-pinecone/v4/pinecone"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/bulamuhealth/go-medassist/internal/domain"
)

// PineconeConfig holds connection settings for the remote vector backend.
type PineconeConfig struct {
	APIKey    string
	IndexHost string
	Namespace string
}

func (c *PineconeConfig) Validate() error {
	if c.APIKey == "" {
		return NewConfigError("PINECONE_API_KEY is required")
	}
	if c.IndexHost == "" {
		return NewConfigError("PINECONE_INDEX_HOST is required")
	}
	return nil
}

// PineconeBackend is the remote alternative to LocalBackend. Chunk content
// and tags travel in vector metadata so query matches can be rehydrated
// without a second fetch.
type PineconeBackend struct {
	index  *pinecone.IndexConnection
	logger Logger

	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewPineconeBackend(config *PineconeConfig, logger Logger) (*PineconeBackend, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: config.APIKey})
	if err != nil {
		return nil, NewBackendError("connect", "failed to create pinecone client", err)
	}

	index, err := client.Index(pinecone.NewIndexConnParams{
		Host:      config.IndexHost,
		Namespace: config.Namespace,
	})
	if err != nil {
		return nil, NewBackendError("connect", "failed to open index connection", err)
	}

	logger.Info("connected to pinecone index", "host", config.IndexHost, "namespace", config.Namespace)
	return &PineconeBackend{
		index:  index,
		logger: logger,
		ids:    make(map[string]struct{}),
	}, nil
}

func (b *PineconeBackend) Upsert(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return NewIndexError("upsert", "chunk and vector counts differ", nil)
	}

	records := make([]*pinecone.Vector, 0, len(chunks))
	for i, chunk := range chunks {
		meta, err := chunkMetadata(chunk)
		if err != nil {
			return NewBackendError("upsert", "failed to encode chunk metadata", err)
		}
		values := vectors[i]
		records = append(records, &pinecone.Vector{
			Id:       chunk.ID,
			Values:   &values,
			Metadata: meta,
		})
	}

	if _, err := b.index.UpsertVectors(ctx, records); err != nil {
		return NewBackendError("upsert", "failed to upsert vectors", err)
	}

	b.mu.Lock()
	for _, chunk := range chunks {
		b.ids[chunk.ID] = struct{}{}
	}
	b.mu.Unlock()
	return nil
}

func (b *PineconeBackend) Query(ctx context.Context, vector []float32, topK int) ([]domain.RetrievalResult, error) {
	if topK <= 0 {
		return nil, nil
	}

	resp, err := b.index.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          vector,
		TopK:            uint32(topK),
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, NewBackendError("query", "failed to query vectors", err)
	}

	results := make([]domain.RetrievalResult, 0, len(resp.Matches))
	for _, match := range resp.Matches {
		if match.Vector == nil {
			continue
		}
		results = append(results, domain.RetrievalResult{
			Chunk: chunkFromMetadata(match.Vector.Id, match.Vector.Metadata),
			Score: float64(match.Score),
		})
	}
	return results, nil
}

// Has only knows about IDs upserted through this process. Pre-existing remote
// vectors are still deduplicated server-side because upserts overwrite by ID.
func (b *PineconeBackend) Has(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.ids[id]
	return ok
}

func (b *PineconeBackend) Count() int {
	stats, err := b.index.DescribeIndexStats(context.Background())
	if err != nil {
		b.logger.Warn("failed to fetch index stats", "error", err)
		b.mu.RLock()
		defer b.mu.RUnlock()
		return len(b.ids)
	}
	return int(stats.TotalVectorCount)
}

func chunkMetadata(chunk domain.Chunk) (*structpb.Struct, error) {
	fields := map[string]interface{}{"content": chunk.Content}
	for k, v := range chunk.Metadata {
		fields["tag_"+k] = v
	}
	return structpb.NewStruct(fields)
}

func chunkFromMetadata(id string, meta *structpb.Struct) domain.Chunk {
	chunk := domain.Chunk{ID: id, Metadata: make(map[string]string)}
	if meta == nil {
		return chunk
	}
	for k, v := range meta.GetFields() {
		s := v.GetStringValue()
		if k == "content" {
			chunk.Content = s
			continue
		}
		if len(k) > 4 && k[:4] == "tag_" {
			chunk.Metadata[k[4:]] = s
		}
	}
	return chunk
}
