// File: internal/services/chatbot/messages.go
package chatbot

import (
	"fmt"

	"github.com/bulamuhealth/go-medassist/internal/domain"
)

// Canned conversational text per language. English is the fallback for any
// unsupported language.

var welcomeMessages = map[string]string{
	"english": "Hello! I'm your AI medical assistant, here to help with your health questions. " +
		"I can provide information about symptoms, conditions, preventive care, and emergency guidance. " +
		"I'm knowledgeable about healthcare in Uganda and can communicate in multiple languages.\n\n" +
		"How can I help you today? Feel free to ask about any health concerns you may have.",
	"luganda": "Oli otya! Nze omuyambi wo mu by'obulamu, ndi wano okukuyamba ku bibuuzo byo eby'obulamu. " +
		"Nsobola okuwa obubaka ku bubonero bw'endwadde, embeera z'obulamu, n'okwekuuma. " +
		"Mmanyi bingi ku by'obujjanjabi mu Uganda era nsobola okwogera mu nnimi nnyingi.\n\n" +
		"Nkuyinza ntya okukuyamba leero? Buuza ku kye kyonna ekikwata ku bulamu bwo.",
	"swahili": "Hujambo! Mimi ni msaidizi wako wa kiafya, nipo hapa kukusaidia na maswali yako ya afya. " +
		"Ninaweza kutoa habari kuhusu dalili, hali za afya, na miongozo ya dharura. " +
		"Nina ujuzi wa huduma za afya nchini Uganda na ninaweza kuongea lugha nyingi.\n\n" +
		"Ninawezaje kukusaidia leo? Huru kuuliza kuhusu wasiwasi wowote wa afya ulio nao.",
}

var greetingPrefixes = map[string]string{
	"english": "Hello %s! ",
	"luganda": "Oli otya %s! ",
	"swahili": "Hujambo %s! ",
}

var concernSuffixes = map[string]string{
	"english": "\n\nI see you have concerns about %s. I can help you learn more about this.",
	"luganda": "\n\nNlaba nti olina okuweraliikirivu ku %s. Nkuyinza okukuyamba okumanya ebisingawo.",
	"swahili": "\n\nNaona una wasiwasi kuhusu %s. Ninaweza kukusaidia kupata maelezo zaidi.",
}

var farewellMessages = map[string]string{
	"english": "Thank you for using the medical assistant. Take care of your health, and don't hesitate to reach out if you have more questions. Stay healthy!",
	"luganda": "Webale okukozesa omuyambi w'obujjanjabi. Kuuma obulamu bwo, era tolwaana kutuukirivu bwe waba n'ebibuuzo ebirala. Beera bulungi!",
	"swahili": "Asante kwa kutumia msaidizi wa kiafya. Jali afya yako, na usisite kuwasiliana ikiwa una maswali mengine. Uwe na afya njema!",
}

var emergencyActions = map[string]string{
	"english": "🚨 MEDICAL EMERGENCY DETECTED 🚨\n\n" +
		"If this is a life-threatening emergency:\n" +
		"• Call emergency services IMMEDIATELY\n" +
		"• In Uganda: Call 999 or 112\n" +
		"• Go to the nearest hospital emergency room\n" +
		"• Don't delay seeking professional medical help\n\n" +
		"For urgent but non-life-threatening situations, contact your healthcare provider or visit the nearest clinic.",
	"luganda": "🚨 EMBEERA Y'AMAANYI EY'OBUJJANJABI 🚨\n\n" +
		"Singa kino kya bulamu obw'amaanyi:\n" +
		"• Kuba amangu okubba simu 999 oba 112\n" +
		"• Genda mu ddwaliro ery'amangu\n" +
		"• Tolwa kufuna obuyambi obw'ekikugu\n\n" +
		"Okugeza nga si kya bulamu obw'amaanyi, kuba ku musawo wo oba genda mu ddukiro ery'okumpi.",
	"swahili": "🚨 DHARURA YA KIAFYA IMEGUNDULIKA 🚨\n\n" +
		"Ikiwa hii ni dharura ya maisha:\n" +
		"• Piga simu ya dharura MARA MOJA\n" +
		"• Nchini Uganda: Piga 999 au 112\n" +
		"• Nenda hospitali ya dharura ya karibu\n" +
		"• Usichelewe kutafuta msaada wa kitaalamu\n\n" +
		"Kwa hali za haraka zisizo za maisha, wasiliana na mtaalamu wako wa afya au tembelea kliniki ya karibu.",
}

var emergencyFollowUps = map[string]string{
	"english": "While waiting for emergency help, can you tell me more about the specific symptoms you're experiencing?",
	"luganda": "Nga oluinda obuyambi bw'amangu, osobola okumbuulira ku bubonero bwe weetabye?",
	"swahili": "Unaposubiri msaada wa dharura, unaweza kuniambia zaidi kuhusu dalili maalum unazohisi?",
}

// ugandaEmergencyNumbers are the national emergency contacts attached to
// every emergency response.
var ugandaEmergencyNumbers = map[string][]string{
	"uganda_emergency": {"999", "112"},
	"police":           {"999"},
	"medical":          {"999"},
}

var empathyOpenings = map[domain.QuestionType]map[string]string{
	domain.QuestionSymptoms: {
		"english": "I understand you're concerned about these symptoms. ",
		"luganda": "Ntegeera nti weraliikirira ku bubonero buno. ",
		"swahili": "Naelewa una wasiwasi kuhusu dalili hizi. ",
	},
	domain.QuestionTreatment: {
		"english": "I can help you understand treatment options. ",
		"luganda": "Nsobola okukuyamba okumanya engeri ez'okujjanjaba. ",
		"swahili": "Ninaweza kukusaidia kuelewa chaguo za matibabu. ",
	},
	domain.QuestionPrevention: {
		"english": "Prevention is always important for good health. ",
		"luganda": "Okwekuuma kya mugaso nnyo mu bulamu obulungi. ",
		"swahili": "Kujikinga ni muhimu kwa afya njema. ",
	},
}

var encouragingClosings = map[string]string{
	"english": "\n\nRemember, I'm here to help with any other questions you might have.",
	"luganda": "\n\nJjukira nti ndi wano okukuyamba mu bibuuzo ebirala byonna by'oyinza okubeera nabyo.",
	"swahili": "\n\nKumbuka, nipo hapa kukusaidia na maswali mengine yoyote unayoweza kuwa nayo.",
}

var followUpSuggestions = map[domain.QuestionType]map[string][]string{
	domain.QuestionSymptoms: {
		"english": {
			"Would you like to know about treatment options?",
			"Should I explain when to seek medical attention?",
			"Are you interested in prevention strategies?",
		},
		"luganda": {
			"Oyagala okumanya ku ngeri ez'okujjanjaba?",
			"Nkutegeeze ddi lw'oneetaaga okufuna obujjanjabi?",
			"Oyagala okumanya ku ngeri ez'okwekuuma?",
		},
		"swahili": {
			"Ungependa kujua kuhusu chaguo za matibabu?",
			"Je, nieleeze ni lini utakapohitaji kutafuta huduma za kiafya?",
			"Una hamu ya kujua mikakati ya kujikinga?",
		},
	},
	domain.QuestionTreatment: {
		"english": {
			"Do you have questions about side effects?",
			"Would you like information about follow-up care?",
			"Should I explain how to monitor progress?",
		},
	},
}

// availableFeatures is advertised when a conversation starts.
var availableFeatures = []string{
	"medical_questions",
	"symptom_analysis",
	"emergency_guidance",
	"preventive_care",
	"medication_info",
	"multilingual_support",
}

func messageFor(table map[string]string, language string) string {
	if msg, ok := table[language]; ok {
		return msg
	}
	return table["english"]
}

// welcomeMessage personalizes the canned welcome with the user's name and
// stated health concern when provided.
func welcomeMessage(language string, sessionData map[string]string) string {
	welcome := messageFor(welcomeMessages, language)

	if name := sessionData["user_name"]; name != "" {
		welcome = fmt.Sprintf(messageFor(greetingPrefixes, language), name) + welcome
	}
	if concern := sessionData["health_concern"]; concern != "" {
		welcome += fmt.Sprintf(messageFor(concernSuffixes, language), concern)
	}
	return welcome
}

// followUpsFor returns up to three follow-up suggestions for a question type
// and language. Unlike the canned messages, there is no English fallback
// here; an unknown pairing just yields none.
func followUpsFor(questionType domain.QuestionType, language string) []string {
	byLang, ok := followUpSuggestions[questionType]
	if !ok {
		return nil
	}
	suggestions := byLang[language]
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions
}

// relatedTopicsFor maps answer categories to adjacent topics.
func relatedTopicsFor(categories []string) []string {
	var topics []string
	for _, category := range categories {
		switch category {
		case "infectious_diseases":
			topics = append(topics, "Prevention", "Vaccination", "Hygiene")
		case "maternal_child_health":
			topics = append(topics, "Prenatal care", "Child nutrition", "Immunization")
		case "non_communicable_diseases":
			topics = append(topics, "Lifestyle changes", "Diet", "Exercise")
		}
	}
	if len(topics) > 3 {
		topics = topics[:3]
	}
	return topics
}

func nextStepsFor(urgency domain.Urgency) []string {
	if urgency == domain.UrgencyHigh {
		return []string{"Seek immediate medical attention", "Monitor symptoms closely"}
	}
	return []string{"Schedule regular checkup", "Maintain healthy lifestyle", "Monitor any changes"}
}
