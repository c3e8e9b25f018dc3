// File: internal/services/rag/classifier_test.go
package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bulamuhealth/go-medassist/internal/domain"
)

func TestClassifyEmergencyShortCircuits(t *testing.T) {
	// "chest pain" also matches the symptom keywords, but emergency is
	// checked first and wins.
	analysis := Classify("I have chest pain right now")
	assert.Equal(t, domain.QuestionEmergency, analysis.Type)
	assert.Equal(t, domain.UrgencyHigh, analysis.Urgency)
	assert.True(t, analysis.RequiresDisclaimer)
}

func TestClassifyQuestionTypes(t *testing.T) {
	tests := []struct {
		question string
		want     domain.QuestionType
	}{
		{"What are the symptoms of typhoid?", domain.QuestionSymptoms},
		{"What is the treatment for malaria?", domain.QuestionTreatment},
		{"How do I prevent cholera?", domain.QuestionPrevention},
		{"Is this medicine safe during pregnancy?", domain.QuestionTreatment},
		{"My baby won't sleep", domain.QuestionMaternalChild},
		{"Tell me about hospitals in Kampala", domain.QuestionGeneral},
	}
	for _, tt := range tests {
		analysis := Classify(tt.question)
		assert.Equal(t, tt.want, analysis.Type, "question: %s", tt.question)
		assert.Equal(t, domain.UrgencyNormal, analysis.Urgency, "question: %s", tt.question)
	}
}

func TestClassifyCategoriesAccumulate(t *testing.T) {
	analysis := Classify("Does malaria fever raise blood pressure and cause anxiety?")
	assert.ElementsMatch(t,
		[]string{"infectious_diseases", "non_communicable_diseases", "mental_health"},
		analysis.Categories,
	)
}

func TestClassifyMaternalChildAddsCategory(t *testing.T) {
	analysis := Classify("What checkups are needed during pregnancy?")
	assert.Equal(t, domain.QuestionMaternalChild, analysis.Type)
	assert.Contains(t, analysis.Categories, "maternal_child_health")
}

func TestClassifyIsDeterministic(t *testing.T) {
	question := "I feel feverish, could it be malaria?"
	first := Classify(question)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(question))
	}
}
