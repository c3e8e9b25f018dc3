// File: internal/handlers/knowledge_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bulamuhealth/go-medassist/internal/services/rag"
)

const symptomDisclaimer = "This analysis is for informational purposes only. " +
	"Please consult a healthcare provider for proper diagnosis and treatment."

type KnowledgeHandler struct {
	Engine *rag.Engine
}

func NewKnowledgeHandler(engine *rag.Engine) *KnowledgeHandler {
	return &KnowledgeHandler{Engine: engine}
}

// RAGSearch runs fused retrieval over the indexed corpus and returns the
// matching chunks with their metadata.
func (h *KnowledgeHandler) RAGSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, "Query parameter is required", http.StatusBadRequest)
		return
	}

	chunks := h.Engine.HybridSearch(r.Context(), query, 5)

	results := make([]map[string]interface{}, 0, len(chunks))
	for _, chunk := range chunks {
		results = append(results, map[string]interface{}{
			"content":  chunk.Content,
			"metadata": chunk.Metadata,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}

// KnowledgeSearch searches the structured medical corpus directly, without
// going through the vector index.
func (h *KnowledgeHandler) KnowledgeSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, "Query parameter is required", http.StatusBadRequest)
		return
	}

	results := h.Engine.SearchKnowledge(query)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"query":   query,
		"results": results,
		"total":   results.Total(),
	})
}

type symptomAnalysisRequest struct {
	Symptoms []string `json:"symptoms"`
}

// SymptomAnalysis scores a list of symptoms against the condition corpus.
func (h *KnowledgeHandler) SymptomAnalysis(w http.ResponseWriter, r *http.Request) {
	var req symptomAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Symptoms) == 0 {
		writeError(w, "Symptoms must be provided as a list", http.StatusBadRequest)
		return
	}

	analysis := h.Engine.SymptomsAnalysis(req.Symptoms)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"analysis":   analysis,
		"disclaimer": symptomDisclaimer,
	})
}

// AddKnowledge ingests structured medical knowledge into the index.
func (h *KnowledgeHandler) AddKnowledge(w http.ResponseWriter, r *http.Request) {
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Engine.AddKnowledge(r.Context(), payload); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Medical knowledge added successfully",
	})
}
