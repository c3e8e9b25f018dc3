// File: internal/services/rag/fallback.go
package rag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bulamuhealth/go-medassist/internal/domain"
	"github.com/bulamuhealth/go-medassist/internal/services/knowledge"
)

const emergencyFallbackAnswer = "This appears to be an emergency situation. Please seek immediate medical attention " +
	"by calling emergency services or going to the nearest hospital immediately. " +
	"Do not delay treatment for serious symptoms."

const genericFallbackAnswer = "I understand you have a medical question. While I can provide general health information, " +
	"I recommend consulting with a qualified healthcare provider for personalized medical advice."

const educationalDisclaimer = "\n\n*Please note: This information is for educational purposes only and should not replace " +
	"professional medical advice. Always consult with a healthcare provider for proper diagnosis " +
	"and treatment.*"

// FallbackAnswer synthesizes an answer from corpus search results when no
// generation model is available or the model call failed. Emergency questions
// always get the fixed escalation message.
func FallbackAnswer(questionType domain.QuestionType, kbResults knowledge.SearchResults) string {
	if questionType == domain.QuestionEmergency {
		return emergencyFallbackAnswer
	}

	var parts []string

	if len(kbResults.Conditions) > 0 {
		parts = append(parts, "Based on your question, here's some relevant medical information:")
		limit := len(kbResults.Conditions)
		if limit > 2 {
			limit = 2
		}
		for _, cond := range kbResults.Conditions[:limit] {
			parts = append(parts, fmt.Sprintf("\n**%s:**", cond.Condition))
			if len(cond.Symptoms) > 0 {
				symptoms := cond.Symptoms
				if len(symptoms) > 3 {
					symptoms = symptoms[:3]
				}
				parts = append(parts, "Symptoms: "+strings.Join(symptoms, ", "))
			}
			if cond.Treatment != "" {
				parts = append(parts, "Treatment: "+cond.Treatment)
			}
		}
	}

	if len(kbResults.EmergencyInfo) > 0 {
		// Take the first protocol by sorted name so the same search results
		// always synthesize the same answer.
		names := make([]string, 0, len(kbResults.EmergencyInfo))
		for name := range kbResults.EmergencyInfo {
			names = append(names, name)
		}
		sort.Strings(names)

		protocol := kbResults.EmergencyInfo[names[0]]
		parts = append(parts, "\n**Emergency Information:**")
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ReplaceAll(names[0], "_", " "), strings.Join(protocol.Action, ". ")))
	}

	if len(parts) == 0 {
		parts = append(parts, genericFallbackAnswer)
	}

	parts = append(parts, educationalDisclaimer)
	return strings.Join(parts, " ")
}
