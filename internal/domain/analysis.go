// File: internal/domain/analysis.go
package domain

// QuestionType classifies what a question is asking for.
type QuestionType string

const (
	QuestionGeneral       QuestionType = "general"
	QuestionEmergency     QuestionType = "emergency"
	QuestionSymptoms      QuestionType = "symptoms"
	QuestionTreatment     QuestionType = "treatment"
	QuestionPrevention    QuestionType = "prevention"
	QuestionMaternalChild QuestionType = "maternal_child"
)

// Urgency drives whether an emergency banner is prepended to an answer.
type Urgency string

const (
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
)

// QuestionAnalysis is the per-query classification record. It is derived from
// the raw question text alone and discarded after the request.
type QuestionAnalysis struct {
	Type               QuestionType `json:"type"`
	Urgency            Urgency      `json:"urgency"`
	Categories         []string     `json:"categories"`
	RequiresDisclaimer bool         `json:"requires_disclaimer"`
}

// ConditionMatch is a candidate condition with the number of input symptoms
// that mapped to it.
type ConditionMatch struct {
	Condition string `json:"condition"`
	Matches   int    `json:"matches"`
}

// EmergencyCheck reports whether any input symptom matched the fixed
// emergency keyword list. Confidence is the clean ratio of matched keywords
// over the total keyword list size.
type EmergencyCheck struct {
	IsEmergency bool     `json:"is_emergency"`
	Keywords    []string `json:"keywords"`
	Confidence  float64  `json:"confidence"`
	Action      string   `json:"action"`
}

// SymptomAnalysis is the per-query symptom scoring record: candidate
// conditions ordered by match count descending, a recommendation string and
// an emergency sub-check.
type SymptomAnalysis struct {
	PossibleConditions []ConditionMatch `json:"possible_conditions"`
	Recommendation     string           `json:"recommendation"`
	Emergency          EmergencyCheck   `json:"emergency_check"`
}
