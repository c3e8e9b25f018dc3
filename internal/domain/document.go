// File: internal/domain/document.go
package domain

// Document is a unit of retrievable knowledge. It is created by flattening a
// structured knowledge item (or ingested externally) and is immutable once
// indexed.
type Document struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
}

// Chunk is a bounded-size span of a Document, the unit actually embedded and
// indexed. It carries the parent document's metadata unchanged.
type Chunk struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
}

// Type returns the metadata "type" tag, or "unknown" when absent.
func (c Chunk) Type() string {
	if t, ok := c.Metadata["type"]; ok && t != "" {
		return t
	}
	return "unknown"
}

// Category returns the metadata "category" tag, or "general" when absent.
func (c Chunk) Category() string {
	if cat, ok := c.Metadata["category"]; ok && cat != "" {
		return cat
	}
	return "general"
}

// RetrievalResult pairs a chunk with its relevance score. Scores everywhere in
// this codebase are normalized to "higher is better": cosine similarity for
// the scored vector path and weighted reciprocal-rank relevance for fused
// results.
type RetrievalResult struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}
