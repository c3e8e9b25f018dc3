// File: internal/services/rag/classifier.go
package rag

import (
	"strings"

	"github.com/bulamuhealth/go-medassist/internal/domain"
)

// Keyword sets for question typing, checked in order. The first matching set
// decides the type; emergency additionally raises urgency.
var (
	emergencyTypeKeywords     = []string{"emergency", "urgent", "chest pain", "can't breathe", "unconscious"}
	symptomTypeKeywords       = []string{"symptoms", "feel", "hurts", "pain"}
	treatmentTypeKeywords     = []string{"treatment", "cure", "medicine", "medication"}
	preventionTypeKeywords    = []string{"prevent", "avoid", "stop"}
	maternalChildTypeKeywords = []string{"pregnancy", "pregnant", "baby"}
)

// Disease-family keyword sets for category tagging. Categories accumulate
// independently of each other and of the question type.
var (
	infectiousKeywords   = []string{"malaria", "fever", "typhoid"}
	ncdKeywords          = []string{"blood pressure", "diabetes", "heart"}
	mentalHealthKeywords = []string{"depression", "anxiety", "mental"}
)

// Classify derives type, urgency and topical categories from the raw
// question text. It is a pure function: same input, same analysis.
func Classify(question string) domain.QuestionAnalysis {
	lower := strings.ToLower(question)

	analysis := domain.QuestionAnalysis{
		Type:               domain.QuestionGeneral,
		Urgency:            domain.UrgencyNormal,
		Categories:         []string{},
		RequiresDisclaimer: true,
	}

	switch {
	case containsAny(lower, emergencyTypeKeywords):
		analysis.Type = domain.QuestionEmergency
		analysis.Urgency = domain.UrgencyHigh
	case containsAny(lower, symptomTypeKeywords):
		analysis.Type = domain.QuestionSymptoms
	case containsAny(lower, treatmentTypeKeywords):
		analysis.Type = domain.QuestionTreatment
	case containsAny(lower, preventionTypeKeywords):
		analysis.Type = domain.QuestionPrevention
	case containsAny(lower, maternalChildTypeKeywords):
		analysis.Type = domain.QuestionMaternalChild
		analysis.Categories = append(analysis.Categories, "maternal_child_health")
	}

	if containsAny(lower, infectiousKeywords) {
		analysis.Categories = append(analysis.Categories, "infectious_diseases")
	}
	if containsAny(lower, ncdKeywords) {
		analysis.Categories = append(analysis.Categories, "non_communicable_diseases")
	}
	if containsAny(lower, mentalHealthKeywords) {
		analysis.Categories = append(analysis.Categories, "mental_health")
	}

	return analysis
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
