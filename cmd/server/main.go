// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/bulamuhealth/go-medassist/internal/config"
	"github.com/bulamuhealth/go-medassist/internal/domain"
	"github.com/bulamuhealth/go-medassist/internal/handlers"
	"github.com/bulamuhealth/go-medassist/internal/middleware"
	sessionrepo "github.com/bulamuhealth/go-medassist/internal/repository/session"
	"github.com/bulamuhealth/go-medassist/internal/services"
	"github.com/bulamuhealth/go-medassist/internal/services/ai"
	"github.com/bulamuhealth/go-medassist/internal/services/chatbot"
	"github.com/bulamuhealth/go-medassist/internal/services/knowledge"
	"github.com/bulamuhealth/go-medassist/internal/services/rag"
	"github.com/bulamuhealth/go-medassist/internal/services/vectorstore"
)

func main() {
	cfg := config.Load()
	logger := services.NewLogger("medassist")

	// --- Session store ---
	db, err := gorm.Open(sqlite.Open(cfg.SessionDBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}
	if err := db.AutoMigrate(&domain.Session{}, &domain.SessionMessage{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}
	sessions := sessionrepo.NewSessionRepository(db)

	// --- AI provider ---
	// Without an API key the service runs degraded: deterministic hash
	// embeddings keep retrieval working and answers come from the templated
	// fallback path.
	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.OpenAIAPIKey
	aiConfig.BaseURL = cfg.OpenAIBaseURL
	aiConfig.EmbeddingModel = cfg.EmbeddingModelName
	aiConfig.ChatModel = cfg.ChatModelName

	var (
		embedder     vectorstore.Embedder
		completion   ai.CompletionProvider
		llmAvailable bool
	)
	if cfg.OpenAIAPIKey != "" {
		if err := aiConfig.Validate(); err != nil {
			log.Fatalf("FATAL: invalid AI configuration: %v", err)
		}
		provider := ai.NewOpenAIProvider(aiConfig)
		embedder = provider
		completion = provider
		llmAvailable = true
	} else {
		logger.Warn("OPENAI_API_KEY not set, running in degraded fallback mode")
		embedder = ai.NewFallbackProvider(aiConfig.EmbeddingDimension)
	}

	// --- Vector store ---
	var backend vectorstore.Backend
	if cfg.UsePinecone() {
		backend, err = vectorstore.NewPineconeBackend(&vectorstore.PineconeConfig{
			APIKey:    cfg.PineconeAPIKey,
			IndexHost: cfg.PineconeIndexHost,
			Namespace: cfg.PineconeNamespace,
		}, logger)
		if err != nil {
			log.Fatalf("FATAL: Failed to connect to Pinecone: %v", err)
		}
	} else {
		backend, err = vectorstore.NewLocalBackend(cfg.PersistDirectory, logger)
		if err != nil {
			log.Fatalf("FATAL: Failed to open local vector store: %v", err)
		}
	}

	storeConfig := vectorstore.DefaultConfig()
	storeConfig.TopK = cfg.RetrievalTopK
	storeConfig.PersistDirectory = cfg.PersistDirectory
	store, err := vectorstore.NewStore(storeConfig, embedder, backend, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize vector store: %v", err)
	}

	// --- Knowledge base and RAG engine ---
	kb := knowledge.NewBase()

	ragConfig := rag.DefaultConfig()
	ragConfig.RetrievalTopK = cfg.RetrievalTopK
	ragConfig.ChatModel = cfg.ChatModelName
	ragConfig.GenerationTimeout = time.Duration(cfg.GenerationTimeout) * time.Second
	engine, err := rag.NewEngine(ragConfig, store, kb, completion, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize RAG engine: %v", err)
	}

	// --- Chatbot service ---
	chatbotService, err := chatbot.NewService(chatbot.DefaultConfig(), engine, sessions, llmAvailable, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize chatbot service: %v", err)
	}

	// --- Handlers ---
	chatHandler := handlers.NewChatHandler(chatbotService)
	knowledgeHandler := handlers.NewKnowledgeHandler(engine)
	statusHandler := handlers.NewStatusHandler(chatbotService, engine)

	// --- Router Setup ---
	r := mux.NewRouter()
	r.Use(middleware.CORS)
	r.Use(middleware.RecoverPanic(logger))
	r.Use(middleware.LoggingMiddleware(logger))

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

	// --- Server Configuration ---
	port := ":8080"
	if cfg.ServerPort != "" {
		port = ":" + cfg.ServerPort
	}
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	logger.Info("server starting",
		"port", port,
		"llm_available", llmAvailable,
		"vector_backend", backendName(cfg),
		"indexed_chunks", store.Count(),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	logger.Info("server stopped")
}

func backendName(cfg *config.Config) string {
	if cfg.UsePinecone() {
		return "pinecone"
	}
	return "local"
}
