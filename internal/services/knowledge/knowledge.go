// File: internal/services/knowledge/knowledge.go
package knowledge

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode"

	"github.com/bulamuhealth/go-medassist/internal/domain"
)

// conditionCategories fixes iteration order so document export and search
// results are deterministic.
var conditionCategories = []string{
	"infectious_diseases",
	"maternal_child_health",
	"non_communicable_diseases",
	"mental_health",
}

// symptomRecommendationKeywords trigger the EMERGENCY recommendation wording.
var symptomRecommendationKeywords = []string{
	"chest pain", "difficulty breathing", "unconscious",
	"severe bleeding", "seizure", "stroke",
}

// emergencyKeywords is the fixed list matched during the emergency sub-check.
var emergencyKeywords = []string{
	"chest pain", "difficulty breathing", "severe bleeding",
	"unconscious", "seizure", "stroke symptoms", "severe headache",
	"high fever", "severe abdominal pain",
}

// Base is the structured medical knowledge corpus for the Ugandan healthcare
// context, with Luganda and Swahili local names. All lookups are read-only
// against immutable data, so it is safe for concurrent use.
type Base struct {
	conditions   map[string][]Condition
	symptoms     map[string][]string
	emergencies  map[string]Protocol
	preventive   map[string]PreventiveCare
	medications  map[string]Medication
	translations map[string]map[string]string
}

func NewBase() *Base {
	return &Base{
		conditions:   medicalConditions(),
		symptoms:     symptomsMapping(),
		emergencies:  emergencyProtocols(),
		preventive:   preventiveCare(),
		medications:  medicationGuide(),
		translations: translations(),
	}
}

// ConditionInfo finds a condition by name or local name, case-insensitive
// substring match. Returns nil when nothing matches.
func (b *Base) ConditionInfo(name string) *Condition {
	needle := strings.ToLower(name)
	if needle == "" {
		return nil
	}

	for _, category := range conditionCategories {
		for i := range b.conditions[category] {
			cond := &b.conditions[category][i]
			if strings.Contains(strings.ToLower(cond.Condition), needle) {
				return cond
			}
			for _, local := range cond.LocalNames {
				if strings.Contains(strings.ToLower(local), needle) {
					return cond
				}
			}
		}
	}
	return nil
}

// SymptomsAnalysis tallies candidate conditions by symptom overlap against
// the symptom mapping table. A symptom matches a table key when the key
// appears in the symptom text or any underscore-separated component of the
// key does. Each matching symptom adds one point per mapped condition; the
// top five conditions by tally are returned.
func (b *Base) SymptomsAnalysis(symptoms []string) domain.SymptomAnalysis {
	tally := make(map[string]int)
	for _, symptom := range symptoms {
		lower := strings.ToLower(symptom)
		for key, conditions := range b.symptoms {
			if !keyMatches(key, lower) {
				continue
			}
			for _, condition := range conditions {
				tally[condition]++
			}
		}
	}

	matches := make([]domain.ConditionMatch, 0, len(tally))
	for condition, count := range tally {
		matches = append(matches, domain.ConditionMatch{Condition: condition, Matches: count})
	}
	sort.SliceStable(matches, func(a, c int) bool {
		if matches[a].Matches != matches[c].Matches {
			return matches[a].Matches > matches[c].Matches
		}
		return matches[a].Condition < matches[c].Condition
	})
	if len(matches) > 5 {
		matches = matches[:5]
	}

	return domain.SymptomAnalysis{
		PossibleConditions: matches,
		Recommendation:     symptomRecommendation(symptoms),
		Emergency:          b.CheckEmergency(symptoms),
	}
}

// CheckEmergency matches the inputs against the fixed emergency keyword
// list. Confidence is the ratio of distinct matched keywords to the full
// keyword list size.
func (b *Base) CheckEmergency(symptoms []string) domain.EmergencyCheck {
	seen := make(map[string]bool)
	var matched []string
	for _, symptom := range symptoms {
		lower := strings.ToLower(symptom)
		for _, keyword := range emergencyKeywords {
			if strings.Contains(lower, keyword) && !seen[keyword] {
				seen[keyword] = true
				matched = append(matched, keyword)
			}
		}
	}

	check := domain.EmergencyCheck{
		IsEmergency: len(matched) > 0,
		Keywords:    matched,
		Confidence:  float64(len(matched)) / float64(len(emergencyKeywords)),
		Action:      "Continue monitoring",
	}
	if check.IsEmergency {
		check.Action = "Call emergency services immediately"
	}
	return check
}

func symptomRecommendation(symptoms []string) string {
	for _, symptom := range symptoms {
		lower := strings.ToLower(symptom)
		for _, keyword := range symptomRecommendationKeywords {
			if strings.Contains(lower, keyword) {
				return "EMERGENCY: Seek immediate medical attention"
			}
		}
	}
	if len(symptoms) >= 3 {
		return "Multiple symptoms detected. Consult healthcare provider soon."
	}
	return "Monitor symptoms. Consult healthcare provider if they worsen or persist."
}

func keyMatches(key, symptom string) bool {
	if strings.Contains(symptom, key) {
		return true
	}
	for _, word := range strings.Split(key, "_") {
		if strings.Contains(symptom, word) {
			return true
		}
	}
	return false
}

// MedicationInfo looks up the medication guide by name, matching either
// containment direction.
func (b *Base) MedicationInfo(name string) *Medication {
	needle := strings.ToLower(name)
	if needle == "" {
		return nil
	}
	for medName, info := range b.medications {
		if strings.Contains(medName, needle) || strings.Contains(needle, medName) {
			med := info
			return &med
		}
	}
	return nil
}

// EmergencyProtocol looks up an emergency protocol by type.
func (b *Base) EmergencyProtocol(emergencyType string) *Protocol {
	needle := strings.ToLower(emergencyType)
	if needle == "" {
		return nil
	}
	for name, protocol := range b.emergencies {
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			p := protocol
			return &p
		}
	}
	return nil
}

// PreventiveCareInfo returns guidance for a category, defaulting to general
// health advice.
func (b *Base) PreventiveCareInfo(category string) PreventiveCare {
	if info, ok := b.preventive[category]; ok {
		return info
	}
	return b.preventive["general_health"]
}

// MedicationSafety returns the general medication safety rules.
func (b *Base) MedicationSafety() []string {
	return medicationSafety
}

// Translate returns the translation of a common medical term, falling back to
// the input when the term or language is unknown.
func (b *Base) Translate(term, language string) string {
	if terms, ok := b.translations[strings.ToLower(language)]; ok {
		if t, ok := terms[strings.ToLower(term)]; ok {
			return t
		}
	}
	return term
}

// SearchResults groups direct keyword search hits by corpus section.
type SearchResults struct {
	Conditions    []Condition           `json:"conditions"`
	EmergencyInfo map[string]Protocol   `json:"emergency_info"`
	Medications   map[string]Medication `json:"medications"`
}

// Total returns the number of hits across all sections.
func (r SearchResults) Total() int {
	return len(r.Conditions) + len(r.EmergencyInfo) + len(r.Medications)
}

// searchStopwords are query words too generic to identify a corpus entry.
// The list includes the field labels rendered into every entry, so a broad
// question like "what are the symptoms" does not match the whole corpus.
var searchStopwords = map[string]struct{}{
	"the": {}, "and": {}, "are": {}, "was": {}, "for": {}, "with": {},
	"can": {}, "could": {}, "should": {}, "would": {}, "will": {},
	"you": {}, "your": {}, "have": {}, "has": {}, "had": {},
	"what": {}, "which": {}, "how": {}, "when": {}, "where": {}, "who": {},
	"why": {}, "does": {}, "this": {}, "that": {}, "about": {}, "tell": {},
	"from": {}, "please": {}, "help": {}, "get": {}, "take": {},
	"symptom": {}, "symptoms": {}, "sign": {}, "signs": {},
	"condition": {}, "conditions": {}, "disease": {}, "diseases": {},
	"treatment": {}, "treatments": {}, "treat": {},
	"prevention": {}, "prevent": {}, "prevents": {},
	"medicine": {}, "medicines": {}, "medication": {}, "medications": {},
	"emergency": {}, "information": {}, "cause": {}, "causes": {},
}

// searchTerms extracts the significant words of a query: lowercased,
// split on non-alphanumerics, stopwords and very short words dropped.
func searchTerms(query string) []string {
	words := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var terms []string
	for _, word := range words {
		if len(word) < 3 {
			continue
		}
		if _, skip := searchStopwords[word]; skip {
			continue
		}
		terms = append(terms, word)
	}
	return terms
}

func matchesQuery(text, needle string, terms []string) bool {
	if strings.Contains(text, needle) {
		return true
	}
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// SearchKnowledge does a case-insensitive search over the rendered form of
// every corpus entry. An entry matches when it contains the whole query or
// any of its significant terms, so natural-language questions still reach
// the entries they name. This is the direct keyword leg of retrieval fusion,
// independent of both embeddings and the lexical index.
func (b *Base) SearchKnowledge(query string) SearchResults {
	needle := strings.ToLower(strings.TrimSpace(query))
	results := SearchResults{
		EmergencyInfo: make(map[string]Protocol),
		Medications:   make(map[string]Medication),
	}
	if needle == "" {
		return results
	}
	terms := searchTerms(needle)

	for _, category := range conditionCategories {
		for _, cond := range b.conditions[category] {
			if matchesQuery(strings.ToLower(renderJSON(cond)), needle, terms) {
				results.Conditions = append(results.Conditions, cond)
			}
		}
	}
	for name, protocol := range b.emergencies {
		if matchesQuery(name, needle, terms) || matchesQuery(strings.ToLower(renderJSON(protocol)), needle, terms) {
			results.EmergencyInfo[name] = protocol
		}
	}
	for name, med := range b.medications {
		if matchesQuery(name, needle, terms) || matchesQuery(strings.ToLower(renderJSON(med)), needle, terms) {
			results.Medications[name] = med
		}
	}
	return results
}

// AllDocuments flattens the full corpus into retrievable documents with type
// and category metadata. Output order is deterministic.
func (b *Base) AllDocuments() []domain.Document {
	var docs []domain.Document

	for _, category := range conditionCategories {
		for _, cond := range b.conditions[category] {
			docs = append(docs, domain.Document{
				Content: renderJSON(cond),
				Metadata: map[string]string{
					"type":           "medical_condition",
					"category":       category,
					"condition_name": cond.Condition,
				},
			})
		}
	}

	for _, name := range sortedKeys(b.emergencies) {
		docs = append(docs, domain.Document{
			Content: renderJSON(b.emergencies[name]),
			Metadata: map[string]string{
				"type":          "emergency_protocol",
				"protocol_name": name,
			},
		})
	}

	for _, name := range sortedKeys(b.medications) {
		docs = append(docs, domain.Document{
			Content: renderJSON(b.medications[name]),
			Metadata: map[string]string{
				"type":            "medication",
				"medication_name": name,
			},
		})
	}

	for _, name := range sortedKeys(b.preventive) {
		docs = append(docs, domain.Document{
			Content: renderJSON(b.preventive[name]),
			Metadata: map[string]string{
				"type":      "preventive_care",
				"care_type": name,
			},
		})
	}

	return docs
}

func renderJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
