// File: internal/services/rag/symptoms.go
package rag

import "strings"

// symptomIndicators mark a question as describing symptoms.
var symptomIndicators = []string{
	"symptoms", "feel", "feeling", "hurts", "pain", "ache",
	"experiencing", "having", "suffering", "problem with",
}

// commonSymptoms is the fixed extraction vocabulary. Extraction preserves
// this order, not the order of appearance in the question.
var commonSymptoms = []string{
	"fever", "headache", "cough", "pain", "nausea", "vomiting",
	"diarrhea", "constipation", "fatigue", "dizziness", "rash",
	"shortness of breath", "chest pain", "abdominal pain",
}

// IsSymptomQuestion reports whether the question describes symptoms.
func IsSymptomQuestion(question string) bool {
	return containsAny(strings.ToLower(question), symptomIndicators)
}

// ExtractSymptoms returns every vocabulary symptom mentioned in the question,
// in vocabulary order. "pain" matching also fires for "chest pain" and
// "abdominal pain" inputs, which mirrors how the downstream symptom table
// treats component words.
func ExtractSymptoms(question string) []string {
	lower := strings.ToLower(question)
	var found []string
	for _, symptom := range commonSymptoms {
		if strings.Contains(lower, symptom) {
			found = append(found, symptom)
		}
	}
	return found
}
