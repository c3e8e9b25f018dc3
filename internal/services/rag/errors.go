// File: internal/services/rag/errors.go
package rag

import "fmt"

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeRetrieval  ErrorType = "RETRIEVAL"
	ErrTypeGeneration ErrorType = "GENERATION"
	ErrTypeIngestion  ErrorType = "INGESTION"
)

type RAGError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

func (e *RAGError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("RAG %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("RAG %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *RAGError) Unwrap() error {
	return e.Cause
}

func NewConfigError(msg string) *RAGError {
	return &RAGError{Type: ErrTypeConfig, Operation: "config", Message: msg}
}

func NewValidationError(operation, msg string) *RAGError {
	return &RAGError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewIngestionError(operation, msg string, cause error) *RAGError {
	return &RAGError{Type: ErrTypeIngestion, Operation: operation, Message: msg, Cause: cause}
}

func NewRetrievalError(operation, msg string, cause error) *RAGError {
	return &RAGError{Type: ErrTypeRetrieval, Operation: operation, Message: msg, Cause: cause}
}

func NewGenerationError(operation, msg string, cause error) *RAGError {
	return &RAGError{Type: ErrTypeGeneration, Operation: operation, Message: msg, Cause: cause}
}
