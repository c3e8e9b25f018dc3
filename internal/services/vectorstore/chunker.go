// File: internal/services/vectorstore/chunker.go
package vectorstore

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/bulamuhealth/go-medassist/internal/domain"
)

// separators is the boundary priority for chunk cuts: paragraph breaks first,
// then line breaks, then sentence enders, then clause and word boundaries.
// The empty string means a hard character cut when nothing else fits.
var separators = []string{"\n\n", "\n", ". ", "! ", "? ", ", ", " ", ""}

// Chunker splits documents into bounded-size overlapping spans. Adjacent
// chunks share ChunkOverlap characters so that sentences cut near a boundary
// stay retrievable from both sides.
type Chunker struct {
	size    int
	overlap int
}

func NewChunker(config *Config) *Chunker {
	return &Chunker{
		size:    config.ChunkSize,
		overlap: config.ChunkOverlap,
	}
}

// ChunkDocument splits a document and stamps each span with a content-hash ID
// and a copy of the parent metadata. Identical content always yields the
// identical ID, which is what makes re-ingestion a no-op upstream.
func (c *Chunker) ChunkDocument(doc domain.Document) []domain.Chunk {
	spans := c.Split(doc.Content)
	chunks := make([]domain.Chunk, 0, len(spans))
	for _, span := range spans {
		meta := make(map[string]string, len(doc.Metadata))
		for k, v := range doc.Metadata {
			meta[k] = v
		}
		chunks = append(chunks, domain.Chunk{
			ID:       ChunkID(span),
			Content:  span,
			Metadata: meta,
		})
	}
	return chunks
}

// Split breaks text into spans of at most c.size characters. Every span after
// the first starts c.overlap characters before the previous cut, so
// concatenating spans minus their overlaps reconstructs the input exactly.
func (c *Chunker) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) <= c.size {
		return []string{text}
	}

	var spans []string
	start := 0
	for start < len(text) {
		end := start + c.size
		if end >= len(text) {
			spans = append(spans, text[start:])
			break
		}

		cut := c.findCut(text, start, end)
		spans = append(spans, text[start:cut])
		start = cut - c.overlap
	}
	return spans
}

// findCut picks the cut position in (start, end] at the highest-priority
// boundary available. The cut must land past start+overlap so the next span
// always advances.
func (c *Chunker) findCut(text string, start, end int) int {
	window := text[start:end]
	minCut := c.overlap + 1

	for _, sep := range separators {
		if sep == "" {
			break
		}
		if idx := strings.LastIndex(window, sep); idx >= 0 {
			if cut := idx + len(sep); cut >= minCut {
				return start + cut
			}
		}
	}
	return end
}

// ChunkID is a stable identifier derived from chunk content.
func ChunkID(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:16])
}
