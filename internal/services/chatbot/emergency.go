// File: internal/services/chatbot/emergency.go
package chatbot

import (
	"strings"

	"github.com/bulamuhealth/go-medassist/internal/domain"
)

// conversationEmergencyKeywords is the multilingual keyword list scanned on
// every incoming message, before any retrieval happens.
var conversationEmergencyKeywords = []string{
	// English
	"emergency", "urgent", "chest pain", "can't breathe", "unconscious",
	"severe bleeding", "heart attack", "stroke", "choking", "seizure",
	"overdose", "severe allergic reaction", "suicide",

	// Luganda
	"mangu", "amaanyi", "omutima gukuba", "ssisobola kussa mukka",
	"tafaayo", "omusaayi oguyitiridde", "okuzimba",

	// Swahili
	"dharura", "haraka", "maumivu ya kifua", "siwezi kupumua",
	"amezimia", "damu nyingi", "shambulizi la moyo",
}

// CheckEmergencyIntent scans a message for emergency keywords in all
// supported languages. Confidence is the ratio of matched keywords to the
// full keyword list size.
func CheckEmergencyIntent(message string) domain.EmergencyCheck {
	lower := strings.ToLower(message)

	var matched []string
	for _, keyword := range conversationEmergencyKeywords {
		if strings.Contains(lower, keyword) {
			matched = append(matched, keyword)
		}
	}

	check := domain.EmergencyCheck{
		IsEmergency: len(matched) > 0,
		Keywords:    matched,
		Confidence:  float64(len(matched)) / float64(len(conversationEmergencyKeywords)),
		Action:      "continue",
	}
	if check.IsEmergency {
		check.Action = "seek_immediate_help"
	}
	return check
}
