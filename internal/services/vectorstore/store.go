// File: internal/services/vectorstore/store.go
package vectorstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bulamuhealth/go-medassist/internal/domain"
)

// rrfK dampens the reciprocal-rank contribution so rank 1 and rank 2 stay
// close. Standard reciprocal rank fusion constant.
const rrfK = 60.0

// Store is the retrieval core: it chunks and embeds documents into a vector
// backend, keeps a BM25 index over the same chunks, and serves vector,
// lexical and fused hybrid searches. All scores it returns are normalized to
// higher-is-better relevance.
//
// Writes are serialized; reads run concurrently against an immutable lexical
// snapshot, so a reader never observes a partially rebuilt index.
type Store struct {
	config   *Config
	embedder Embedder
	backend  Backend
	retry    *RetryService
	logger   Logger

	writeMu sync.Mutex

	lexMu   sync.RWMutex
	lexical *LexicalIndex
	chunks  []domain.Chunk
	ids     map[string]struct{}

	chunker *Chunker
}

func NewStore(config *Config, embedder Embedder, backend Backend, logger Logger) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if embedder == nil {
		return nil, NewConfigError("embedder is required")
	}
	if backend == nil {
		return nil, NewConfigError("backend is required")
	}

	s := &Store{
		config:   config,
		embedder: embedder,
		backend:  backend,
		retry:    NewRetryService(config, logger),
		logger:   logger,
		ids:      make(map[string]struct{}),
		chunker:  NewChunker(config),
	}

	// A persistent local backend can rehydrate the lexical index at startup.
	if loader, ok := backend.(interface{ Chunks() []domain.Chunk }); ok {
		chunks := loader.Chunks()
		if len(chunks) > 0 {
			for _, c := range chunks {
				s.ids[c.ID] = struct{}{}
			}
			s.chunks = chunks
			s.lexical = NewLexicalIndex(chunks)
			logger.Info("rehydrated lexical index", "chunks", len(chunks))
		}
	}
	return s, nil
}

// Index chunks, embeds and indexes the documents. Chunks whose content hash
// is already indexed are skipped, so re-ingesting the same documents is a
// no-op. Safe to call incrementally; the lexical index is rebuilt over the
// full accumulated chunk set and swapped in atomically.
func (s *Store) Index(ctx context.Context, docs []domain.Document) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	// Fresh IDs are committed to the dedupe set only after the upsert
	// succeeds, so a failed batch can be retried with the same documents.
	var fresh []domain.Chunk
	pending := make(map[string]struct{})
	for _, doc := range docs {
		for _, chunk := range s.chunker.ChunkDocument(doc) {
			if _, seen := s.ids[chunk.ID]; seen {
				continue
			}
			if _, seen := pending[chunk.ID]; seen {
				continue
			}
			if s.backend.Has(chunk.ID) {
				s.ids[chunk.ID] = struct{}{}
				continue
			}
			pending[chunk.ID] = struct{}{}
			fresh = append(fresh, chunk)
		}
	}

	if len(fresh) == 0 {
		s.logger.Debug("no new chunks to index", "documents", len(docs))
		return nil
	}

	vectors := make([][]float32, len(fresh))
	for i, chunk := range fresh {
		var vec []float32
		err := s.retry.RetryWithTimeout(ctx, func(ctx context.Context) error {
			var embErr error
			vec, embErr = s.embedder.CreateEmbedding(ctx, chunk.Content)
			return embErr
		})
		if err != nil {
			return NewEmbeddingError("index", fmt.Sprintf("failed to embed chunk %s", chunk.ID), err)
		}
		vectors[i] = vec
	}

	if err := s.backend.Upsert(ctx, fresh, vectors); err != nil {
		return err
	}
	for id := range pending {
		s.ids[id] = struct{}{}
	}

	all := append(append([]domain.Chunk(nil), s.chunks...), fresh...)
	rebuilt := NewLexicalIndex(all)

	s.lexMu.Lock()
	s.chunks = all
	s.lexical = rebuilt
	s.lexMu.Unlock()

	s.logger.Info("indexed documents", "documents", len(docs), "new_chunks", len(fresh), "total_chunks", len(all))
	return nil
}

// VectorSearch returns the k nearest chunks by embedding similarity. Fails
// soft: any embedding or backend error yields an empty result, never an
// error to the caller.
func (s *Store) VectorSearch(ctx context.Context, query string, k int) []domain.Chunk {
	results, err := s.vectorResults(ctx, query, k)
	if err != nil {
		s.logger.Warn("vector search degraded to empty result", "error", err)
		return nil
	}
	return chunksOf(results)
}

// VectorSearchWithScore returns scored nearest neighbors, dropping any result
// whose relevance falls below threshold. Scores are cosine similarity, higher
// is better.
func (s *Store) VectorSearchWithScore(ctx context.Context, query string, k int, threshold float64) ([]domain.RetrievalResult, error) {
	results, err := s.vectorResults(ctx, query, k)
	if err != nil {
		return nil, err
	}

	filtered := results[:0]
	for _, r := range results {
		if r.Score >= threshold {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// LexicalSearch is term-overlap ranked retrieval, independent of embeddings.
// Useful for rare proper nouns and exact drug or condition names.
func (s *Store) LexicalSearch(query string, k int) []domain.Chunk {
	s.lexMu.RLock()
	ix := s.lexical
	s.lexMu.RUnlock()
	return chunksOf(ix.Search(query, k))
}

// HybridSearch runs the vector and lexical rankers concurrently and fuses
// their rankings by weighted reciprocal rank, deduplicating by chunk ID.
func (s *Store) HybridSearch(ctx context.Context, query string, k int) []domain.Chunk {
	if k <= 0 {
		k = s.config.TopK
	}

	var (
		wg         sync.WaitGroup
		vectorHits []domain.RetrievalResult
		lexicalIx  *LexicalIndex
		lexHits    []domain.RetrievalResult
	)

	s.lexMu.RLock()
	lexicalIx = s.lexical
	s.lexMu.RUnlock()

	wg.Add(2)
	go func() {
		defer wg.Done()
		hits, err := s.vectorResults(ctx, query, k)
		if err != nil {
			s.logger.Warn("hybrid search: vector leg failed", "error", err)
			return
		}
		vectorHits = hits
	}()
	go func() {
		defer wg.Done()
		lexHits = lexicalIx.Search(query, k)
	}()
	wg.Wait()

	fused := fuseRankings(vectorHits, lexHits, s.config.VectorWeight, s.config.LexicalWeight)
	if len(fused) > k {
		fused = fused[:k]
	}
	return chunksOf(fused)
}

// RelevantContext assembles a token-bounded context string from scored
// vector retrieval. Chunks are taken in descending relevance order, each
// prefixed with its category tag; a chunk that would overflow the budget
// ends assembly. Tokens are estimated as length over four.
func (s *Store) RelevantContext(ctx context.Context, query string, maxTokens int, threshold float64) (string, []domain.Chunk) {
	results, err := s.VectorSearchWithScore(ctx, query, s.config.TopK, threshold)
	if err != nil {
		s.logger.Warn("context retrieval degraded to empty result", "error", err)
		return "", nil
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	var (
		parts    []string
		used     []domain.Chunk
		consumed int
	)
	for _, r := range results {
		piece := fmt.Sprintf("[%s] %s", r.Chunk.Category(), r.Chunk.Content)
		cost := EstimateTokens(piece)
		if len(parts) > 0 {
			cost += EstimateTokens("\n\n")
		}
		if consumed+cost > maxTokens {
			break
		}
		parts = append(parts, piece)
		used = append(used, r.Chunk)
		consumed += cost
	}
	return strings.Join(parts, "\n\n"), used
}

// Count returns the number of indexed chunks.
func (s *Store) Count() int {
	return s.backend.Count()
}

func (s *Store) vectorResults(ctx context.Context, query string, k int) ([]domain.RetrievalResult, error) {
	if strings.TrimSpace(query) == "" || k <= 0 {
		return nil, nil
	}

	vec, err := s.embedder.CreateEmbedding(ctx, query)
	if err != nil {
		return nil, NewEmbeddingError("search", "failed to embed query", err)
	}
	return s.backend.Query(ctx, vec, k)
}

// fuseRankings merges two ranked lists with weighted reciprocal rank fusion.
// Chunks present in both lists accumulate both contributions, which is what
// pushes agreed-upon results to the top.
func fuseRankings(vector, lexical []domain.RetrievalResult, vectorWeight, lexicalWeight float64) []domain.RetrievalResult {
	scores := make(map[string]float64)
	byID := make(map[string]domain.Chunk)

	for rank, r := range vector {
		scores[r.Chunk.ID] += vectorWeight / (rrfK + float64(rank+1))
		byID[r.Chunk.ID] = r.Chunk
	}
	for rank, r := range lexical {
		scores[r.Chunk.ID] += lexicalWeight / (rrfK + float64(rank+1))
		byID[r.Chunk.ID] = r.Chunk
	}

	fused := make([]domain.RetrievalResult, 0, len(scores))
	for id, score := range scores {
		fused = append(fused, domain.RetrievalResult{Chunk: byID[id], Score: score})
	}
	sort.SliceStable(fused, func(a, b int) bool {
		if fused[a].Score != fused[b].Score {
			return fused[a].Score > fused[b].Score
		}
		return fused[a].Chunk.ID < fused[b].Chunk.ID
	})
	return fused
}

// EstimateTokens approximates token count as one token per four characters.
func EstimateTokens(text string) int {
	return len(text) / 4
}

func chunksOf(results []domain.RetrievalResult) []domain.Chunk {
	if len(results) == 0 {
		return nil
	}
	chunks := make([]domain.Chunk, len(results))
	for i, r := range results {
		chunks[i] = r.Chunk
	}
	return chunks
}
