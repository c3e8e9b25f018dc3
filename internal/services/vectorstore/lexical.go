// File: internal/services/vectorstore/lexical.go
package vectorstore

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/bulamuhealth/go-medassist/internal/domain"
)

// BM25 parameters, standard Okapi values.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// LexicalIndex is a BM25 term-ranking index over the chunk set. It is
// immutable after construction; ingestion builds a fresh index and swaps it
// in, so readers never see a partially built one.
type LexicalIndex struct {
	chunks    []domain.Chunk
	termFreqs []map[string]int
	docLens   []int
	docFreq   map[string]int
	avgLen    float64
}

// NewLexicalIndex builds an index over the given chunks.
func NewLexicalIndex(chunks []domain.Chunk) *LexicalIndex {
	ix := &LexicalIndex{
		chunks:    chunks,
		termFreqs: make([]map[string]int, len(chunks)),
		docLens:   make([]int, len(chunks)),
		docFreq:   make(map[string]int),
	}

	totalLen := 0
	for i, chunk := range chunks {
		terms := Tokenize(chunk.Content)
		tf := make(map[string]int, len(terms))
		for _, t := range terms {
			tf[t]++
		}
		for t := range tf {
			ix.docFreq[t]++
		}
		ix.termFreqs[i] = tf
		ix.docLens[i] = len(terms)
		totalLen += len(terms)
	}
	if len(chunks) > 0 {
		ix.avgLen = float64(totalLen) / float64(len(chunks))
	}
	return ix
}

// Search returns up to k chunks ranked by BM25 relevance, higher is better.
// Chunks with zero term overlap are never returned.
func (ix *LexicalIndex) Search(query string, k int) []domain.RetrievalResult {
	if ix == nil || len(ix.chunks) == 0 || k <= 0 {
		return nil
	}

	terms := Tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	n := float64(len(ix.chunks))
	var results []domain.RetrievalResult
	for i, chunk := range ix.chunks {
		score := 0.0
		for _, t := range terms {
			tf := ix.termFreqs[i][t]
			if tf == 0 {
				continue
			}
			df := float64(ix.docFreq[t])
			idf := math.Log(1 + (n-df+0.5)/(df+0.5))
			norm := 1 - bm25B + bm25B*float64(ix.docLens[i])/ix.avgLen
			score += idf * float64(tf) * (bm25K1 + 1) / (float64(tf) + bm25K1*norm)
		}
		if score > 0 {
			results = append(results, domain.RetrievalResult{Chunk: chunk, Score: score})
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results
}

// Size returns the number of indexed chunks.
func (ix *LexicalIndex) Size() int {
	if ix == nil {
		return 0
	}
	return len(ix.chunks)
}

// Tokenize lowercases text and splits it on any non-alphanumeric rune.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
