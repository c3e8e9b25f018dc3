// File: internal/domain/answer.go
package domain

import "time"

// Source is a citation attached to an answer, drawn from retrieved chunk
// metadata.
type Source struct {
	Type      string `json:"type"`
	Category  string `json:"category"`
	Condition string `json:"condition,omitempty"`
}

// AnswerMetadata carries flags describing how an answer was produced.
type AnswerMetadata struct {
	Categories       []string `json:"categories"`
	SourcesAvailable bool     `json:"sources_available"`
	RAGEnhanced      bool     `json:"rag_enhanced"`
	NoContextFound   bool     `json:"no_context_found,omitempty"`
	Fallback         bool     `json:"fallback,omitempty"`
	Recommendation   string   `json:"recommendation,omitempty"`
}

// AnswerResult is the full response to one question. Success is false only
// for unexpected orchestration failures; degraded-backend and empty-retrieval
// outcomes are still successes.
type AnswerResult struct {
	Success      bool           `json:"success"`
	Answer       string         `json:"answer"`
	QuestionType QuestionType   `json:"question_type"`
	Urgency      Urgency        `json:"urgency"`
	Metadata     AnswerMetadata `json:"metadata"`
	Sources      []Source       `json:"sources,omitempty"`
	Error        string         `json:"error,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}

// Exchange is one prior (question, answer) pair from a conversation. The RAG
// core only ever reads a bounded window of these for prompt construction.
type Exchange struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
