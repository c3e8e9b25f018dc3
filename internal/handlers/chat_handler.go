// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bulamuhealth/go-medassist/internal/services/chatbot"
)

type ChatHandler struct {
	Chatbot *chatbot.Service
}

func NewChatHandler(cs *chatbot.Service) *ChatHandler {
	return &ChatHandler{Chatbot: cs}
}

type chatRequest struct {
	Message        string            `json:"message"`
	ConversationID string            `json:"conversation_id"`
	Language       string            `json:"language"`
	UserID         string            `json:"user_id"`
	SessionData    map[string]string `json:"session_data"`
}

// HandleChat is the main conversational endpoint. Without a conversation ID
// it starts a session and returns the welcome message; with one it routes the
// message through the chatbot.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		req.UserID = "anonymous"
	}

	if req.ConversationID == "" {
		started, err := h.Chatbot.StartConversation(r.Context(), req.UserID, req.Language, req.SessionData)
		if err != nil {
			writeError(w, "Failed to start conversation", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":         true,
			"conversation_id": started.ConversationID,
			"response": map[string]interface{}{
				"answer":        started.WelcomeMessage,
				"answer_html":   renderMarkdown(started.WelcomeMessage),
				"question_type": "welcome",
				"urgency":       "normal",
			},
			"session_info": started.SessionInfo,
		})
		return
	}

	if req.Message == "" {
		writeError(w, "Message is required", http.StatusBadRequest)
		return
	}

	result, err := h.Chatbot.SendMessage(r.Context(), req.ConversationID, req.Message)
	if err != nil {
		writeError(w, "Error processing message", http.StatusInternalServerError)
		return
	}
	if !result.Success {
		writeJSON(w, http.StatusNotFound, result)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":           true,
		"conversation_id":   req.ConversationID,
		"response":          result.Response,
		"answer_html":       renderMarkdown(result.Response.Answer),
		"follow_up":         result.FollowUpQuestion,
		"emergency_numbers": result.EmergencyNumbers,
		"conversation_flow": result.ConversationFlow,
		"conversation_info": result.ConversationInfo,
	})
}

type startConversationRequest struct {
	UserID      string            `json:"user_id"`
	Language    string            `json:"language"`
	SessionData map[string]string `json:"session_data"`
}

// StartConversation explicitly opens a session.
func (h *ChatHandler) StartConversation(w http.ResponseWriter, r *http.Request) {
	var req startConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		req.UserID = "anonymous"
	}

	result, err := h.Chatbot.StartConversation(r.Context(), req.UserID, req.Language, req.SessionData)
	if err != nil {
		writeError(w, "Failed to start conversation", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type endConversationRequest struct {
	ConversationID string `json:"conversation_id"`
}

// EndConversation closes a session and returns its summary.
func (h *ChatHandler) EndConversation(w http.ResponseWriter, r *http.Request) {
	var req endConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ConversationID == "" {
		writeError(w, "conversation_id is required", http.StatusBadRequest)
		return
	}

	result, err := h.Chatbot.EndConversation(r.Context(), req.ConversationID)
	if err != nil {
		writeError(w, "Failed to end conversation", http.StatusInternalServerError)
		return
	}
	if !result.Success {
		writeJSON(w, http.StatusNotFound, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
