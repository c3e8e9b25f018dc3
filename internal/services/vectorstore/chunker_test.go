// File: internal/services/vectorstore/chunker_test.go
package vectorstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulamuhealth/go-medassist/internal/domain"
)

func testChunker(size, overlap int) *Chunker {
	cfg := DefaultConfig()
	cfg.ChunkSize = size
	cfg.ChunkOverlap = overlap
	return NewChunker(cfg)
}

func TestSplitShortTextSingleSpan(t *testing.T) {
	c := testChunker(100, 20)

	spans := c.Split("a short medical note")
	require.Len(t, spans, 1)
	assert.Equal(t, "a short medical note", spans[0])
}

func TestSplitEmptyText(t *testing.T) {
	c := testChunker(100, 20)

	assert.Nil(t, c.Split(""))
	assert.Nil(t, c.Split("   \n  "))
}

func TestSplitRespectsSizeLimit(t *testing.T) {
	c := testChunker(50, 10)

	text := strings.Repeat("malaria is endemic in uganda. ", 20)
	spans := c.Split(text)
	require.Greater(t, len(spans), 1)
	for i, span := range spans {
		assert.LessOrEqual(t, len(span), 50, "span %d exceeds chunk size", i)
	}
}

func TestSplitOverlapReconstructsInput(t *testing.T) {
	c := testChunker(50, 10)

	text := strings.Repeat("typhoid fever presents with sustained fever. ", 15)
	spans := c.Split(text)
	require.Greater(t, len(spans), 1)

	rebuilt := spans[0]
	for _, span := range spans[1:] {
		rebuilt += span[10:]
	}
	assert.Equal(t, text, rebuilt)
}

func TestSplitPrefersParagraphBoundary(t *testing.T) {
	c := testChunker(60, 10)

	text := strings.Repeat("x", 30) + "\n\n" + strings.Repeat("y", 80)
	spans := c.Split(text)
	require.Greater(t, len(spans), 1)
	assert.True(t, strings.HasSuffix(spans[0], "\n\n"))
}

func TestChunkIDStable(t *testing.T) {
	id1 := ChunkID("malaria treatment guidelines")
	id2 := ChunkID("malaria treatment guidelines")
	id3 := ChunkID("typhoid treatment guidelines")

	assert.Equal(t, id1, id2)
	assert.NotEqual(t, id1, id3)
	assert.Len(t, id1, 32)
}

func TestChunkDocumentCopiesMetadata(t *testing.T) {
	c := testChunker(1000, 200)

	doc := domain.Document{
		Content:  "oral rehydration salts for diarrhea",
		Metadata: map[string]string{"type": "medication"},
	}
	chunks := c.ChunkDocument(doc)
	require.Len(t, chunks, 1)
	assert.Equal(t, "medication", chunks[0].Metadata["type"])
	assert.NotEmpty(t, chunks[0].ID)

	chunks[0].Metadata["type"] = "mutated"
	assert.Equal(t, "medication", doc.Metadata["type"])
}
