// File: internal/services/rag/errors_test.go
package rag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRAGErrorFormatting(t *testing.T) {
	cause := errors.New("connection refused")

	genErr := NewGenerationError("generate", "completion call failed", cause)
	assert.Equal(t, ErrTypeGeneration, genErr.Type)
	assert.Equal(t, "RAG GENERATION error in generate: completion call failed (caused by: connection refused)", genErr.Error())
	assert.ErrorIs(t, genErr, cause)

	retErr := NewRetrievalError("retrieve_context", "scored vector retrieval failed", nil)
	assert.Equal(t, ErrTypeRetrieval, retErr.Type)
	assert.Equal(t, "RAG RETRIEVAL error in retrieve_context: scored vector retrieval failed", retErr.Error())
	assert.Nil(t, retErr.Unwrap())
}
