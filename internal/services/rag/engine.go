// File: internal/services/rag/engine.go
package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bulamuhealth/go-medassist/internal/domain"
	"github.com/bulamuhealth/go-medassist/internal/services/ai"
	"github.com/bulamuhealth/go-medassist/internal/services/knowledge"
	"github.com/bulamuhealth/go-medassist/internal/services/vectorstore"
)

// Logger defines the logging interface used by the RAG engine
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

const noContextAnswer = "I understand you have a medical question, but I don't have specific information " +
	"about this topic in my knowledge base. I recommend consulting with a qualified " +
	"healthcare provider who can give you personalized medical advice based on your " +
	"specific situation.\n\n" +
	"If this is an emergency, please seek immediate medical attention."

const emergencyBanner = "⚠️ **EMERGENCY ALERT**: If this is a medical emergency, " +
	"call emergency services immediately or go to the nearest hospital."

const medicalDisclaimer = "\n\n---\n*Medical Disclaimer: This information is for educational purposes only " +
	"and should not replace professional medical advice. Always consult with a " +
	"qualified healthcare provider for proper diagnosis and treatment.*"

// AskOptions are per-question parameters. History is read-only; the engine
// never mutates conversation state, it only reads a bounded window.
type AskOptions struct {
	ConversationID string
	Language       string
	IncludeSources bool
	History        []domain.Exchange
}

// retrievalContext bundles the signals gathered by the parallel retrieval
// legs for one question.
type retrievalContext struct {
	SemanticDocs     []domain.Chunk
	ScoredDocs       []domain.RetrievalResult
	KBResults        knowledge.SearchResults
	SymptomAnalysis  *domain.SymptomAnalysis
	FormattedContext string
	ContextChunks    []domain.Chunk
}

func (r retrievalContext) empty() bool {
	return len(r.SemanticDocs) == 0 &&
		len(r.ScoredDocs) == 0 &&
		r.KBResults.Total() == 0 &&
		(r.SymptomAnalysis == nil || len(r.SymptomAnalysis.PossibleConditions) == 0) &&
		r.FormattedContext == ""
}

// Engine orchestrates retrieval fusion, question analysis and answer
// generation for medical questions. Answers degrade gracefully: a missing or
// failing generation model falls back to templated synthesis from the corpus,
// and an empty retrieval still returns a successful apology response.
type Engine struct {
	config     *Config
	store      *vectorstore.Store
	kb         *knowledge.Base
	completion ai.CompletionProvider
	logger     Logger
	metrics    metricsRecorder
}

// NewEngine wires the engine and seeds the vector store with the structured
// corpus when the index is empty. completion may be nil for degraded mode.
func NewEngine(config *Config, store *vectorstore.Store, kb *knowledge.Base, completion ai.CompletionProvider, logger Logger) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, NewConfigError("vector store is required")
	}
	if kb == nil {
		return nil, NewConfigError("knowledge base is required")
	}

	e := &Engine{
		config:     config,
		store:      store,
		kb:         kb,
		completion: completion,
		logger:     logger,
	}

	if store.Count() == 0 {
		docs := kb.AllDocuments()
		if err := store.Index(context.Background(), docs); err != nil {
			return nil, NewIngestionError("init", "failed to load medical knowledge base", err)
		}
		logger.Info("loaded medical knowledge base", "documents", len(docs))
	} else {
		logger.Info("medical knowledge base already loaded", "chunks", store.Count())
	}

	return e, nil
}

// AskQuestion answers a medical question with retrieval-augmented
// generation. It never returns an error; failure modes are encoded in the
// result so callers always have something safe to show the patient.
func (e *Engine) AskQuestion(ctx context.Context, question string, opts AskOptions) (result domain.AnswerResult) {
	start := time.Now()
	e.metrics.recordQuery()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("panic answering question", "panic", r, "conversation_id", opts.ConversationID)
			result = domain.AnswerResult{
				Success:      false,
				Answer:       "I apologize, but I'm experiencing technical difficulties. Please try again or consult a healthcare provider directly.",
				QuestionType: domain.QuestionGeneral,
				Urgency:      domain.UrgencyNormal,
				Error:        fmt.Sprintf("internal error: %v", r),
				Timestamp:    time.Now().UTC(),
			}
		}
	}()

	if strings.TrimSpace(question) == "" {
		e.metrics.recordRetrieval(false)
		return domain.AnswerResult{
			Success:      false,
			Answer:       "I didn't receive a question. Please describe your health concern and I'll do my best to help.",
			QuestionType: domain.QuestionGeneral,
			Urgency:      domain.UrgencyNormal,
			Error:        "empty question",
			Timestamp:    time.Now().UTC(),
		}
	}

	rctx := e.retrieveContext(ctx, question)
	if rctx.empty() {
		e.metrics.recordRetrieval(false)
		e.metrics.recordResponseTime(time.Since(start).Seconds())
		e.logger.Info("no context found for question", "conversation_id", opts.ConversationID)
		return noContextResult()
	}
	e.metrics.recordRetrieval(true)

	analysis := Classify(question)

	answer, ragEnhanced := e.generate(ctx, question, rctx, analysis, opts)

	result = e.postProcess(answer, analysis, opts.IncludeSources, rctx.ContextChunks, ragEnhanced)
	e.metrics.recordResponseTime(time.Since(start).Seconds())

	e.logger.Debug("answered question",
		"type", result.QuestionType,
		"urgency", result.Urgency,
		"rag_enhanced", ragEnhanced,
		"sources", len(result.Sources),
	)
	return result
}

// retrieveContext runs the retrieval legs concurrently. Each leg is
// read-only, fails soft and contributes independently; one failing leg never
// sinks the others.
func (e *Engine) retrieveContext(ctx context.Context, question string) retrievalContext {
	var (
		wg   sync.WaitGroup
		rctx retrievalContext
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		rctx.SemanticDocs = e.store.HybridSearch(ctx, question, e.config.RetrievalTopK)
	}()
	go func() {
		defer wg.Done()
		scored, err := e.store.VectorSearchWithScore(ctx, question, e.config.ScoredTopK, e.config.RelevanceThreshold)
		if err != nil {
			e.logger.Warn("scored retrieval failed", "error", NewRetrievalError("retrieve_context", "scored vector retrieval failed", err))
			return
		}
		rctx.ScoredDocs = scored
	}()
	go func() {
		defer wg.Done()
		rctx.FormattedContext, rctx.ContextChunks = e.store.RelevantContext(ctx, question, e.config.ContextMaxTokens, e.config.RelevanceThreshold)
	}()
	go func() {
		defer wg.Done()
		rctx.KBResults = e.kb.SearchKnowledge(question)
	}()
	wg.Wait()

	// Symptom analysis reads only static tables, no need to parallelize.
	if IsSymptomQuestion(question) {
		if symptoms := ExtractSymptoms(question); len(symptoms) > 0 {
			analysis := e.kb.SymptomsAnalysis(symptoms)
			rctx.SymptomAnalysis = &analysis
		}
	}
	return rctx
}

// generate produces the answer text. The second return reports whether the
// answer came from the generation model rather than the templated fallback.
func (e *Engine) generate(ctx context.Context, question string, rctx retrievalContext, analysis domain.QuestionAnalysis, opts AskOptions) (string, bool) {
	if e.completion == nil {
		return FallbackAnswer(analysis.Type, rctx.KBResults), false
	}

	contextText := rctx.FormattedContext
	if rctx.SymptomAnalysis != nil {
		if data, err := json.MarshalIndent(rctx.SymptomAnalysis, "", "  "); err == nil {
			contextText += "\n\nSymptom Analysis: " + string(data)
		}
	}

	var prompt string
	if history := e.boundedHistory(opts.History); len(history) > 0 {
		prompt = BuildConversationPrompt(history, contextText, question)
	} else {
		prompt = BuildQAPrompt(contextText, question)
	}

	genCtx, cancel := context.WithTimeout(ctx, e.config.GenerationTimeout)
	defer cancel()

	answer, err := e.completion.GetCompletion(genCtx, e.config.ChatModel, prompt)
	if err != nil {
		e.logger.Warn("generation failed, using fallback answer", "error", NewGenerationError("generate", "completion call failed", err))
		return FallbackAnswer(analysis.Type, rctx.KBResults), false
	}
	return strings.TrimSpace(answer), true
}

func (e *Engine) boundedHistory(history []domain.Exchange) []domain.Exchange {
	if len(history) > e.config.HistoryWindow {
		return history[len(history)-e.config.HistoryWindow:]
	}
	return history
}

// postProcess applies the urgency banner, disclaimer and source citations.
func (e *Engine) postProcess(answer string, analysis domain.QuestionAnalysis, includeSources bool, docs []domain.Chunk, ragEnhanced bool) domain.AnswerResult {
	if analysis.Urgency == domain.UrgencyHigh {
		answer = emergencyBanner + "\n\n" + answer
	}
	if analysis.RequiresDisclaimer {
		answer += medicalDisclaimer
	}

	result := domain.AnswerResult{
		Success:      true,
		Answer:       answer,
		QuestionType: analysis.Type,
		Urgency:      analysis.Urgency,
		Timestamp:    time.Now().UTC(),
		Metadata: domain.AnswerMetadata{
			Categories:       analysis.Categories,
			SourcesAvailable: len(docs) > 0,
			RAGEnhanced:      ragEnhanced,
			Fallback:         !ragEnhanced,
		},
	}

	if includeSources && len(docs) > 0 {
		limit := len(docs)
		if limit > e.config.MaxSources {
			limit = e.config.MaxSources
		}
		for _, doc := range docs[:limit] {
			source := domain.Source{
				Type:     doc.Type(),
				Category: doc.Category(),
			}
			if name, ok := doc.Metadata["condition_name"]; ok {
				source.Condition = name
			}
			result.Sources = append(result.Sources, source)
		}
	}
	return result
}

func noContextResult() domain.AnswerResult {
	return domain.AnswerResult{
		Success:      true,
		Answer:       noContextAnswer,
		QuestionType: domain.QuestionGeneral,
		Urgency:      domain.UrgencyNormal,
		Timestamp:    time.Now().UTC(),
		Metadata: domain.AnswerMetadata{
			NoContextFound: true,
			Recommendation: "consult_healthcare_provider",
		},
	}
}

// AddKnowledge ingests structured medical knowledge. Each category maps to a
// list of entries (rendered field by field) or to plain text. Re-ingesting
// identical content is a no-op.
func (e *Engine) AddKnowledge(ctx context.Context, data map[string]interface{}) error {
	if len(data) == 0 {
		return NewValidationError("add_knowledge", "empty knowledge payload")
	}

	var docs []domain.Document
	for category, items := range data {
		switch v := items.(type) {
		case []interface{}:
			for _, raw := range v {
				item, ok := raw.(map[string]interface{})
				if !ok {
					continue
				}
				docs = append(docs, domain.Document{
					Content:  formatMedicalContent(item, category),
					Metadata: knowledgeMetadata(item, category),
				})
			}
		case string:
			docs = append(docs, domain.Document{
				Content: v,
				Metadata: map[string]string{
					"category": category,
					"source":   "medical_knowledge_base",
				},
			})
		}
	}

	if len(docs) == 0 {
		return NewValidationError("add_knowledge", "no ingestible entries in payload")
	}
	if err := e.store.Index(ctx, docs); err != nil {
		return NewIngestionError("add_knowledge", "failed to index new knowledge", err)
	}
	e.logger.Info("added new medical knowledge", "documents", len(docs))
	return nil
}

// formatMedicalContent renders a structured entry into searchable text,
// field by field in a fixed order.
func formatMedicalContent(item map[string]interface{}, category string) string {
	parts := []string{"Category: " + category}

	appendField := func(label, key string) {
		v, ok := item[key]
		if !ok {
			return
		}
		switch val := v.(type) {
		case string:
			parts = append(parts, fmt.Sprintf("%s: %s", label, val))
		case []interface{}:
			strs := make([]string, 0, len(val))
			for _, s := range val {
				if str, ok := s.(string); ok {
					strs = append(strs, str)
				}
			}
			if len(strs) > 0 {
				parts = append(parts, fmt.Sprintf("%s: %s", label, strings.Join(strs, ", ")))
			}
		}
	}

	appendField("Condition", "condition")
	appendField("Symptoms", "symptoms")
	appendField("Treatment", "treatment")
	appendField("Prevention", "prevention")
	appendField("Description", "description")
	appendField("Emergency signs", "emergency_signs")

	return strings.Join(parts, "\n")
}

func knowledgeMetadata(item map[string]interface{}, category string) map[string]string {
	meta := map[string]string{
		"category": category,
		"source":   "medical_knowledge_base",
	}
	if name, ok := item["condition"].(string); ok {
		meta["condition_name"] = name
	}
	return meta
}

// PerformanceMetrics returns a snapshot of engine counters plus index size.
func (e *Engine) PerformanceMetrics() Metrics {
	m := e.metrics.snapshot()
	m.IndexedChunks = e.store.Count()
	return m
}

// SearchKnowledge exposes direct corpus search for the knowledge endpoint.
func (e *Engine) SearchKnowledge(query string) knowledge.SearchResults {
	return e.kb.SearchKnowledge(query)
}

// SymptomsAnalysis exposes symptom scoring for the symptoms endpoint.
func (e *Engine) SymptomsAnalysis(symptoms []string) domain.SymptomAnalysis {
	return e.kb.SymptomsAnalysis(symptoms)
}

// HybridSearch exposes fused retrieval for the search endpoint.
func (e *Engine) HybridSearch(ctx context.Context, query string, k int) []domain.Chunk {
	return e.store.HybridSearch(ctx, query, k)
}
