// File: internal/services/vectorstore/errors.go
package vectorstore

import "fmt"

type ErrorType string

const (
	ErrTypeConfig    ErrorType = "CONFIG"
	ErrTypeEmbedding ErrorType = "EMBEDDING"
	ErrTypeIndex     ErrorType = "INDEX"
	ErrTypePersist   ErrorType = "PERSIST"
	ErrTypeBackend   ErrorType = "BACKEND"
	ErrTypeTimeout   ErrorType = "TIMEOUT"
	ErrTypeRetry     ErrorType = "RETRY"
)

type StoreError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vectorstore %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("vectorstore %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

func NewConfigError(msg string) *StoreError {
	return &StoreError{Type: ErrTypeConfig, Operation: "config", Message: msg}
}

func NewEmbeddingError(operation, msg string, cause error) *StoreError {
	return &StoreError{Type: ErrTypeEmbedding, Operation: operation, Message: msg, Cause: cause}
}

func NewIndexError(operation, msg string, cause error) *StoreError {
	return &StoreError{Type: ErrTypeIndex, Operation: operation, Message: msg, Cause: cause}
}

func NewPersistError(operation, msg string, cause error) *StoreError {
	return &StoreError{Type: ErrTypePersist, Operation: operation, Message: msg, Cause: cause}
}

func NewBackendError(operation, msg string, cause error) *StoreError {
	return &StoreError{Type: ErrTypeBackend, Operation: operation, Message: msg, Cause: cause}
}

func NewTimeoutError(msg string, cause error) *StoreError {
	return &StoreError{Type: ErrTypeTimeout, Operation: "retry", Message: msg, Cause: cause}
}

func NewRetryError(msg string, cause error) *StoreError {
	return &StoreError{Type: ErrTypeRetry, Operation: "retry", Message: msg, Cause: cause}
}
