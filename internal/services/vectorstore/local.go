// File: internal/services/vectorstore/local.go
package vectorstore

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bulamuhealth/go-medassist/internal/domain"
)

const snapshotFile = "index.json"

// indexRecord is the on-disk form of one embedded chunk.
type indexRecord struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
	Vector   []float32         `json:"vector"`
}

// LocalBackend is an in-memory nearest-neighbor index with an optional JSON
// snapshot on disk. Vectors are unit-normalized at insert so queries reduce
// to dot products.
type LocalBackend struct {
	mu         sync.RWMutex
	chunks     []domain.Chunk
	vectors    [][]float32
	ids        map[string]int
	persistDir string
	logger     Logger
}

// NewLocalBackend creates a backend, loading a previous snapshot from
// persistDir when one exists. An empty persistDir disables persistence.
func NewLocalBackend(persistDir string, logger Logger) (*LocalBackend, error) {
	b := &LocalBackend{
		ids:        make(map[string]int),
		persistDir: persistDir,
		logger:     logger,
	}
	if persistDir != "" {
		if err := os.MkdirAll(persistDir, 0o755); err != nil {
			return nil, NewPersistError("init", "failed to create persist directory", err)
		}
		if err := b.load(); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *LocalBackend) Upsert(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return NewIndexError("upsert", "chunk and vector counts differ", nil)
	}

	b.mu.Lock()
	added := 0
	for i, chunk := range chunks {
		if _, exists := b.ids[chunk.ID]; exists {
			continue
		}
		b.ids[chunk.ID] = len(b.chunks)
		b.chunks = append(b.chunks, chunk)
		b.vectors = append(b.vectors, normalize(vectors[i]))
		added++
	}
	b.mu.Unlock()

	if added > 0 && b.persistDir != "" {
		if err := b.save(); err != nil {
			return err
		}
	}
	b.logger.Debug("upserted chunks", "added", added, "skipped", len(chunks)-added)
	return nil
}

func (b *LocalBackend) Query(ctx context.Context, vector []float32, topK int) ([]domain.RetrievalResult, error) {
	if topK <= 0 {
		return nil, nil
	}
	query := normalize(vector)

	b.mu.RLock()
	defer b.mu.RUnlock()

	results := make([]domain.RetrievalResult, 0, len(b.chunks))
	for i, chunk := range b.chunks {
		if len(b.vectors[i]) != len(query) {
			continue
		}
		results = append(results, domain.RetrievalResult{
			Chunk: chunk,
			Score: dot(query, b.vectors[i]),
		})
	}

	sort.SliceStable(results, func(a, c int) bool {
		return results[a].Score > results[c].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func (b *LocalBackend) Has(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.ids[id]
	return ok
}

func (b *LocalBackend) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.chunks)
}

// Chunks returns a snapshot copy of all indexed chunks, used to rebuild the
// lexical index after ingestion.
func (b *LocalBackend) Chunks() []domain.Chunk {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.Chunk, len(b.chunks))
	copy(out, b.chunks)
	return out
}

func (b *LocalBackend) load() error {
	path := filepath.Join(b.persistDir, snapshotFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return NewPersistError("load", "failed to read index snapshot", err)
	}

	var records []indexRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return NewPersistError("load", "failed to parse index snapshot", err)
	}

	for _, rec := range records {
		if _, exists := b.ids[rec.ID]; exists {
			continue
		}
		b.ids[rec.ID] = len(b.chunks)
		b.chunks = append(b.chunks, domain.Chunk{ID: rec.ID, Content: rec.Content, Metadata: rec.Metadata})
		b.vectors = append(b.vectors, rec.Vector)
	}
	b.logger.Info("loaded index snapshot", "chunks", len(b.chunks), "path", path)
	return nil
}

func (b *LocalBackend) save() error {
	b.mu.RLock()
	records := make([]indexRecord, len(b.chunks))
	for i, chunk := range b.chunks {
		records[i] = indexRecord{
			ID:       chunk.ID,
			Content:  chunk.Content,
			Metadata: chunk.Metadata,
			Vector:   b.vectors[i],
		}
	}
	b.mu.RUnlock()

	data, err := json.Marshal(records)
	if err != nil {
		return NewPersistError("save", "failed to encode index snapshot", err)
	}

	path := filepath.Join(b.persistDir, snapshotFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return NewPersistError("save", "failed to write index snapshot", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return NewPersistError("save", "failed to replace index snapshot", err)
	}
	return nil
}

func normalize(v []float32) []float32 {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return v
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
