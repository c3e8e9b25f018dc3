// File: internal/handlers/handlers_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bulamuhealth/go-medassist/internal/domain"
	sessionrepo "github.com/bulamuhealth/go-medassist/internal/repository/session"
	"github.com/bulamuhealth/go-medassist/internal/services/ai"
	"github.com/bulamuhealth/go-medassist/internal/services/chatbot"
	"github.com/bulamuhealth/go-medassist/internal/services/knowledge"
	"github.com/bulamuhealth/go-medassist/internal/services/rag"
	"github.com/bulamuhealth/go-medassist/internal/services/vectorstore"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Session{}, &domain.SessionMessage{}))

	backend, err := vectorstore.NewLocalBackend("", nopLogger{})
	require.NoError(t, err)
	store, err := vectorstore.NewStore(vectorstore.DefaultConfig(), ai.NewFallbackProvider(64), backend, nopLogger{})
	require.NoError(t, err)
	engine, err := rag.NewEngine(rag.DefaultConfig(), store, knowledge.NewBase(), nil, nopLogger{})
	require.NoError(t, err)
	service, err := chatbot.NewService(chatbot.DefaultConfig(), engine, sessionrepo.NewSessionRepository(db), false, nopLogger{})
	require.NoError(t, err)

	chatHandler := NewChatHandler(service)
	knowledgeHandler := NewKnowledgeHandler(engine)
	statusHandler := NewStatusHandler(service, engine)

	r := mux.NewRouter()
	r.HandleFunc("/health", statusHandler.Health).Methods("GET")
	api := r.PathPrefix("/api/ai").Subrouter()
	api.HandleFunc("/chat", chatHandler.HandleChat).Methods("POST")
	api.HandleFunc("/conversations", chatHandler.StartConversation).Methods("POST")
	api.HandleFunc("/conversations/end", chatHandler.EndConversation).Methods("POST")
	api.HandleFunc("/search", knowledgeHandler.RAGSearch).Methods("GET")
	api.HandleFunc("/knowledge/search", knowledgeHandler.KnowledgeSearch).Methods("GET")
	api.HandleFunc("/knowledge", knowledgeHandler.AddKnowledge).Methods("POST")
	api.HandleFunc("/symptoms", knowledgeHandler.SymptomAnalysis).Methods("POST")
	api.HandleFunc("/status", statusHandler.Status).Methods("GET")
	api.HandleFunc("/metrics", statusHandler.Metrics).Methods("GET")
	return r
}

func doJSON(t *testing.T, router *mux.Router, method, path string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	} else {
		body.WriteString("{}")
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestChatStartsConversationWithoutID(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/ai/chat", map[string]interface{}{
		"language": "english",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["conversation_id"])

	response := body["response"].(map[string]interface{})
	assert.Equal(t, "welcome", response["question_type"])
	assert.Contains(t, response["answer"], "AI medical assistant")
	assert.Contains(t, response["answer_html"], "<p>")
}

func TestChatFullExchange(t *testing.T) {
	router := newTestRouter(t)

	_, started := doJSON(t, router, http.MethodPost, "/api/ai/chat", nil)
	conversationID := started["conversation_id"].(string)

	rec, body := doJSON(t, router, http.MethodPost, "/api/ai/chat", map[string]interface{}{
		"conversation_id": conversationID,
		"message":         "What are the symptoms of malaria?",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	response := body["response"].(map[string]interface{})
	assert.Equal(t, "symptoms", response["question_type"])
	assert.NotEmpty(t, body["answer_html"])
}

func TestChatRequiresMessageForExistingConversation(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/ai/chat", map[string]interface{}{
		"conversation_id": "some-id",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Message is required", body["error"])
}

func TestChatUnknownConversation(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/ai/chat", map[string]interface{}{
		"conversation_id": "missing",
		"message":         "hello",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "restart_conversation", body["action"])
}

func TestEndConversationEndpoint(t *testing.T) {
	router := newTestRouter(t)

	_, started := doJSON(t, router, http.MethodPost, "/api/ai/conversations", map[string]interface{}{
		"user_id": "user-1",
	})
	conversationID := started["conversation_id"].(string)

	rec, body := doJSON(t, router, http.MethodPost, "/api/ai/conversations/end", map[string]interface{}{
		"conversation_id": conversationID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["farewell_message"])

	rec, _ = doJSON(t, router, http.MethodPost, "/api/ai/conversations/end", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRAGSearchEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ai/search?query=malaria+fever", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "malaria fever", body["query"])
	assert.NotZero(t, body["count"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ai/search", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestKnowledgeSearchEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ai/knowledge/search?query=malaria", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	results := body["results"].(map[string]interface{})
	assert.NotEmpty(t, results["conditions"])
	assert.NotZero(t, body["total"])
}

func TestSymptomAnalysisEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/ai/symptoms", map[string]interface{}{
		"symptoms": []string{"fever", "headache", "fatigue"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["disclaimer"], "informational purposes")

	analysis := body["analysis"].(map[string]interface{})
	assert.NotEmpty(t, analysis["possible_conditions"])

	rec, _ = doJSON(t, router, http.MethodPost, "/api/ai/symptoms", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddKnowledgeEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/ai/knowledge", map[string]interface{}{
		"infectious_diseases": []map[string]interface{}{
			{"condition": "Cholera", "symptoms": []string{"watery diarrhea"}},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	rec, _ = doJSON(t, router, http.MethodPost, "/api/ai/knowledge", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusAndMetricsEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ai/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	stats := body["statistics"].(map[string]interface{})
	assert.Contains(t, stats, "supported_languages")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ai/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRenderMarkdown(t *testing.T) {
	html := renderMarkdown("**bold** and a [link](https://example.org)")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.Contains(t, html, `<a href="https://example.org">link</a>`)
}
