// File: internal/handlers/status_handler.go
package handlers

import (
	"net/http"

	"github.com/bulamuhealth/go-medassist/internal/services/chatbot"
	"github.com/bulamuhealth/go-medassist/internal/services/rag"
)

type StatusHandler struct {
	Chatbot *chatbot.Service
	Engine  *rag.Engine
}

func NewStatusHandler(cs *chatbot.Service, engine *rag.Engine) *StatusHandler {
	return &StatusHandler{Chatbot: cs, Engine: engine}
}

// Status reports aggregate chatbot statistics.
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"statistics": h.Chatbot.Statistics(r.Context()),
	})
}

// Metrics reports engine performance counters.
func (h *StatusHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"metrics": h.Engine.PerformanceMetrics(),
	})
}

// Health is a liveness probe.
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
