// File: internal/services/vectorstore/store_test.go
package vectorstore

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulamuhealth/go-medassist/internal/domain"
	"github.com/bulamuhealth/go-medassist/internal/services/ai"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}

var storeDocs = []domain.Document{
	{
		Content:  "Malaria is caused by plasmodium parasites and presents with fever, chills and headache.",
		Metadata: map[string]string{"type": "medical_condition", "category": "infectious_diseases"},
	},
	{
		Content:  "Typhoid fever spreads through contaminated water and causes sustained fever.",
		Metadata: map[string]string{"type": "medical_condition", "category": "infectious_diseases"},
	},
	{
		Content:  "Hypertension is persistently high blood pressure, often without symptoms.",
		Metadata: map[string]string{"type": "medical_condition", "category": "non_communicable_diseases"},
	},
	{
		Content:  "Paracetamol relieves pain and fever; do not exceed the stated dose.",
		Metadata: map[string]string{"type": "medication"},
	},
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	backend, err := NewLocalBackend("", nopLogger{})
	require.NoError(t, err)

	store, err := NewStore(DefaultConfig(), ai.NewFallbackProvider(64), backend, nopLogger{})
	require.NoError(t, err)
	return store
}

func TestIndexAndCount(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Index(context.Background(), storeDocs))
	assert.Equal(t, len(storeDocs), store.Count())
}

// toggleEmbedder fails every embedding until switched back on.
type toggleEmbedder struct {
	inner *ai.FallbackProvider
	fail  bool
}

func (e *toggleEmbedder) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if e.fail {
		return nil, ai.NewProviderError("embedding", "temporarily unavailable", nil)
	}
	return e.inner.CreateEmbedding(ctx, text)
}

func (e *toggleEmbedder) Dimension() int { return e.inner.Dimension() }

func TestIndexRetryAfterEmbeddingFailure(t *testing.T) {
	backend, err := NewLocalBackend("", nopLogger{})
	require.NoError(t, err)

	config := DefaultConfig()
	config.RetryDelay = time.Millisecond

	embedder := &toggleEmbedder{inner: ai.NewFallbackProvider(64), fail: true}
	store, err := NewStore(config, embedder, backend, nopLogger{})
	require.NoError(t, err)

	ctx := context.Background()
	require.Error(t, store.Index(ctx, storeDocs))
	assert.Zero(t, store.Count())

	// A failed batch must not be remembered as indexed; retrying the same
	// documents once the embedder recovers indexes them all.
	embedder.fail = false
	require.NoError(t, store.Index(ctx, storeDocs))
	assert.Equal(t, len(storeDocs), store.Count())
	assert.NotEmpty(t, store.LexicalSearch("paracetamol", 3))
}

func TestIndexIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Index(ctx, storeDocs))
	before := store.Count()

	require.NoError(t, store.Index(ctx, storeDocs))
	assert.Equal(t, before, store.Count())
}

func TestVectorSearchWithScoreThreshold(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Index(ctx, storeDocs))

	// The deterministic embedder maps identical text to the identical unit
	// vector, so querying with indexed content scores it at cosine 1.
	results, err := store.VectorSearchWithScore(ctx, storeDocs[0].Content, 5, 0.99)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, storeDocs[0].Content, results[0].Chunk.Content)
	assert.InDelta(t, 1.0, results[0].Score, 1e-4)
}

func TestLexicalSearchFindsExactTerms(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Index(context.Background(), storeDocs))

	chunks := store.LexicalSearch("paracetamol dose", 3)
	require.NotEmpty(t, chunks)
	assert.Contains(t, chunks[0].Content, "Paracetamol")
}

func TestHybridSearchFusesRankers(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Index(context.Background(), storeDocs))

	chunks := store.HybridSearch(context.Background(), "malaria fever parasites", 4)
	require.NotEmpty(t, chunks)
	assert.LessOrEqual(t, len(chunks), 4)

	var found bool
	for _, c := range chunks {
		if strings.Contains(c.Content, "Malaria") {
			found = true
		}
	}
	assert.True(t, found, "lexical leg should surface the malaria chunk")
}

func TestHybridSearchEmptyQuery(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Index(context.Background(), storeDocs))

	assert.Empty(t, store.HybridSearch(context.Background(), "   ", 4))
}

func TestRelevantContextBudget(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Index(ctx, storeDocs))

	text, used := store.RelevantContext(ctx, storeDocs[1].Content, 2000, 0.99)
	require.Len(t, used, 1)
	assert.Equal(t, "[infectious_diseases] "+storeDocs[1].Content, text)
	assert.LessOrEqual(t, EstimateTokens(text), 2000)

	// A budget smaller than any single chunk yields nothing rather than a
	// truncated chunk.
	text, used = store.RelevantContext(ctx, storeDocs[1].Content, 3, 0.99)
	assert.Empty(t, text)
	assert.Empty(t, used)
}

func TestFuseRankingsAgreementWins(t *testing.T) {
	shared := domain.Chunk{ID: "shared", Content: "both rankers agree"}
	vecOnly := domain.Chunk{ID: "vec", Content: "vector only"}
	lexOnly := domain.Chunk{ID: "lex", Content: "lexical only"}

	vector := []domain.RetrievalResult{
		{Chunk: vecOnly, Score: 0.9},
		{Chunk: shared, Score: 0.8},
	}
	lexical := []domain.RetrievalResult{
		{Chunk: shared, Score: 5.0},
		{Chunk: lexOnly, Score: 2.0},
	}

	fused := fuseRankings(vector, lexical, 0.7, 0.3)
	require.Len(t, fused, 3)
	assert.Equal(t, "shared", fused[0].Chunk.ID, "chunk present in both rankings should fuse to the top")

	for i := 1; i < len(fused); i++ {
		assert.GreaterOrEqual(t, fused[i-1].Score, fused[i].Score)
	}
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 25, EstimateTokens(strings.Repeat("a", 100)))
}
