// File: internal/services/rag/symptoms_test.go
package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSymptomQuestion(t *testing.T) {
	assert.True(t, IsSymptomQuestion("I am feeling dizzy and weak"))
	assert.True(t, IsSymptomQuestion("My stomach hurts after eating"))
	assert.True(t, IsSymptomQuestion("What are the symptoms of malaria?"))
	assert.False(t, IsSymptomQuestion("Where is the nearest clinic?"))
}

func TestExtractSymptomsVocabularyOrder(t *testing.T) {
	// Output follows vocabulary order, not order of appearance.
	symptoms := ExtractSymptoms("I have a headache, then fever started, and now fatigue")
	assert.Equal(t, []string{"fever", "headache", "fatigue"}, symptoms)
}

func TestExtractSymptomsComponentMatches(t *testing.T) {
	symptoms := ExtractSymptoms("severe chest pain and shortness of breath")
	assert.Contains(t, symptoms, "pain")
	assert.Contains(t, symptoms, "chest pain")
	assert.Contains(t, symptoms, "shortness of breath")
}

func TestExtractSymptomsNone(t *testing.T) {
	assert.Empty(t, ExtractSymptoms("how do vaccines work"))
}
