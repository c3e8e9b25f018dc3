// File: internal/services/vectorstore/lexical_test.go
package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulamuhealth/go-medassist/internal/domain"
)

func lexicalFixture() []domain.Chunk {
	contents := []string{
		"Malaria is caused by plasmodium parasites transmitted by mosquitoes. Malaria causes fever and chills.",
		"Typhoid fever is a bacterial infection spread through contaminated water.",
		"Hypertension means persistently high blood pressure and often has no symptoms.",
		"Oral rehydration salts treat dehydration from diarrhea.",
	}
	chunks := make([]domain.Chunk, len(contents))
	for i, c := range contents {
		chunks[i] = domain.Chunk{ID: ChunkID(c), Content: c}
	}
	return chunks
}

func TestLexicalSearchRanksTermMatches(t *testing.T) {
	ix := NewLexicalIndex(lexicalFixture())

	results := ix.Search("malaria fever", 4)
	require.NotEmpty(t, results)
	assert.Contains(t, results[0].Chunk.Content, "Malaria")

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestLexicalSearchExcludesZeroOverlap(t *testing.T) {
	ix := NewLexicalIndex(lexicalFixture())

	results := ix.Search("blood pressure", 4)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.NotContains(t, r.Chunk.Content, "rehydration")
	}

	assert.Empty(t, ix.Search("completely unrelated zebra", 4))
}

func TestLexicalSearchRespectsK(t *testing.T) {
	ix := NewLexicalIndex(lexicalFixture())

	results := ix.Search("fever infection water", 1)
	assert.Len(t, results, 1)
}

func TestLexicalSearchNilIndex(t *testing.T) {
	var ix *LexicalIndex
	assert.Nil(t, ix.Search("malaria", 3))
	assert.Equal(t, 0, ix.Size())
}

func TestTokenize(t *testing.T) {
	terms := Tokenize("Can't breathe; chest-pain at 39.5C!")
	assert.Equal(t, []string{"can", "t", "breathe", "chest", "pain", "at", "39", "5c"}, terms)
	assert.Empty(t, Tokenize("... !!!"))
}
