// File: internal/services/rag/fallback_test.go
package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bulamuhealth/go-medassist/internal/domain"
	"github.com/bulamuhealth/go-medassist/internal/services/knowledge"
)

func TestFallbackAnswerEmergency(t *testing.T) {
	answer := FallbackAnswer(domain.QuestionEmergency, knowledge.SearchResults{})
	assert.Contains(t, answer, "seek immediate medical attention")
	assert.NotContains(t, answer, "educational purposes")
}

func TestFallbackAnswerFromConditions(t *testing.T) {
	kb := knowledge.NewBase()
	results := kb.SearchKnowledge("malaria")

	answer := FallbackAnswer(domain.QuestionSymptoms, results)
	assert.Contains(t, answer, "**Malaria:**")
	assert.Contains(t, answer, "Symptoms:")
	assert.Contains(t, answer, "Treatment:")
	assert.Contains(t, answer, "educational purposes")
}

func TestFallbackAnswerLimitsConditions(t *testing.T) {
	kb := knowledge.NewBase()
	// "fever" hits several conditions; at most two are rendered.
	results := kb.SearchKnowledge("fever")

	answer := FallbackAnswer(domain.QuestionGeneral, results)
	assert.GreaterOrEqual(t, strings.Count(answer, "Symptoms:"), 1)
	assert.LessOrEqual(t, strings.Count(answer, "Symptoms:"), 2)
}

func TestFallbackAnswerEmergencyInfoDeterministic(t *testing.T) {
	results := knowledge.SearchResults{
		EmergencyInfo: map[string]knowledge.Protocol{
			"severe_bleeding": {Action: []string{"Apply firm pressure to the wound"}},
			"choking":         {Action: []string{"Give five back blows"}},
		},
	}

	first := FallbackAnswer(domain.QuestionGeneral, results)
	assert.Contains(t, first, "choking: Give five back blows")
	assert.NotContains(t, first, "severe bleeding")

	for i := 0; i < 10; i++ {
		assert.Equal(t, first, FallbackAnswer(domain.QuestionGeneral, results))
	}
}

func TestFallbackAnswerGenericWhenEmpty(t *testing.T) {
	answer := FallbackAnswer(domain.QuestionGeneral, knowledge.SearchResults{})
	assert.Contains(t, answer, "general health information")
	assert.Contains(t, answer, "educational purposes")
}
