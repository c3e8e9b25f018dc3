// File: internal/services/rag/prompts.go
package rag

import (
	"fmt"
	"strings"

	"github.com/bulamuhealth/go-medassist/internal/domain"
)

const qaPromptTemplate = `You are a knowledgeable medical assistant helping patients in Uganda.
Use the following medical context to answer the question accurately and compassionately.

Medical Context:
%s

Question: %s

Instructions:
1. Provide accurate medical information based on the context
2. Be empathetic and culturally sensitive
3. Always recommend consulting healthcare providers for serious symptoms
4. If emergency symptoms are mentioned, emphasize immediate medical attention
5. Include relevant local context for Uganda when appropriate
6. Mention both English and local language terms when helpful
7. If unsure, say so and recommend professional consultation

Answer:`

const conversationPromptTemplate = `You are a caring medical assistant helping patients in Uganda.
Continue this conversation naturally while providing helpful medical information.

Previous conversation:
%s

Current medical context:
%s

Current question: %s

Guidelines:
1. Maintain conversation continuity and remember previous context
2. Provide medically accurate information
3. Be empathetic and supportive
4. Adapt to the patient's language level and cultural background
5. Always prioritize patient safety
6. Encourage professional medical consultation when appropriate
7. Respect cultural practices while promoting evidence-based care

Response:`

// BuildQAPrompt renders the single-turn prompt.
func BuildQAPrompt(context, question string) string {
	return fmt.Sprintf(qaPromptTemplate, context, question)
}

// BuildConversationPrompt renders the multi-turn prompt with prior exchanges.
func BuildConversationPrompt(history []domain.Exchange, context, question string) string {
	return fmt.Sprintf(conversationPromptTemplate, formatHistory(history), context, question)
}

func formatHistory(history []domain.Exchange) string {
	if len(history) == 0 {
		return "(no previous conversation)"
	}
	var b strings.Builder
	for _, ex := range history {
		b.WriteString("Patient: ")
		b.WriteString(ex.Question)
		b.WriteString("\nAssistant: ")
		b.WriteString(ex.Answer)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
