// File: internal/services/chatbot/chatbot.go
package chatbot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bulamuhealth/go-medassist/internal/domain"
	sessionrepo "github.com/bulamuhealth/go-medassist/internal/repository/session"
	"github.com/bulamuhealth/go-medassist/internal/services/rag"
)

// Logger defines the logging interface used by the chatbot service
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// StartResult is the response to starting a conversation.
type StartResult struct {
	Success        bool        `json:"success"`
	ConversationID string      `json:"conversation_id"`
	WelcomeMessage string      `json:"welcome_message"`
	SessionInfo    SessionInfo `json:"session_info"`
}

type SessionInfo struct {
	Language          string   `json:"language"`
	FeaturesAvailable []string `json:"features_available"`
}

// ConversationFlow carries continuity hints attached to every answer.
type ConversationFlow struct {
	FollowUpSuggestions []string `json:"follow_up_suggestions"`
	RelatedTopics       []string `json:"related_topics"`
	NextSteps           []string `json:"next_steps"`
}

type ConversationInfo struct {
	MessageCount      int    `json:"message_count"`
	EmergencyDetected bool   `json:"emergency_detected"`
	SessionDuration   string `json:"session_duration"`
}

// MessageResult is the response to one message in a conversation.
type MessageResult struct {
	Success          bool                `json:"success"`
	Response         domain.AnswerResult `json:"response"`
	FollowUpQuestion string              `json:"follow_up_question,omitempty"`
	EmergencyNumbers map[string][]string `json:"emergency_numbers,omitempty"`
	ConversationFlow ConversationFlow    `json:"conversation_flow"`
	ConversationInfo ConversationInfo    `json:"conversation_info"`
	Error            string              `json:"error,omitempty"`
	Action           string              `json:"action,omitempty"`
}

// Summary describes an ended conversation.
type Summary struct {
	ConversationID string    `json:"conversation_id"`
	Duration       string    `json:"duration"`
	MessageCount   int       `json:"message_count"`
	EmergencyFlags int       `json:"emergency_flags"`
	EndTime        time.Time `json:"end_time"`
}

type EndResult struct {
	Success         bool    `json:"success"`
	Summary         Summary `json:"summary,omitempty"`
	FarewellMessage string  `json:"farewell_message,omitempty"`
	Error           string  `json:"error,omitempty"`
}

type SystemStatus struct {
	LLMAvailable        bool `json:"llm_available"`
	KnowledgeBaseLoaded bool `json:"knowledge_base_loaded"`
}

// Statistics is the aggregate view over all conversations.
type Statistics struct {
	ActiveConversations        int64        `json:"active_conversations"`
	TotalMessagesProcessed     int64        `json:"total_messages_processed"`
	EmergencySituationsHandled int64        `json:"emergency_situations_handled"`
	SupportedLanguages         []string     `json:"supported_languages"`
	RAGEngineMetrics           rag.Metrics  `json:"rag_engine_metrics"`
	SystemStatus               SystemStatus `json:"system_status"`
}

// Service manages conversation sessions on top of the RAG engine: session
// lifecycle, per-message emergency screening, conversational personality and
// history persistence. The engine itself stays stateless per question.
type Service struct {
	config       *Config
	engine       *rag.Engine
	sessions     sessionrepo.SessionRepository
	logger       Logger
	llmAvailable bool
}

func NewService(config *Config, engine *rag.Engine, sessions sessionrepo.SessionRepository, llmAvailable bool, logger Logger) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if engine == nil {
		return nil, fmt.Errorf("rag engine is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session repository is required")
	}
	return &Service{
		config:       config,
		engine:       engine,
		sessions:     sessions,
		logger:       logger,
		llmAvailable: llmAvailable,
	}, nil
}

// StartConversation opens a new session and returns a localized welcome.
// sessionData may carry "user_name" and "health_concern" for
// personalization.
func (s *Service) StartConversation(ctx context.Context, userID, language string, sessionData map[string]string) (StartResult, error) {
	if language == "" || !s.config.Supports(language) {
		language = s.config.DefaultLanguage()
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:           uuid.New().String(),
		UserID:       userID,
		Language:     language,
		State:        "active",
		StartedAt:    now,
		LastActivity: now,
	}
	if _, err := s.sessions.Create(ctx, session); err != nil {
		return StartResult{}, err
	}

	s.logger.Info("conversation started", "conversation_id", session.ID, "language", language)
	return StartResult{
		Success:        true,
		ConversationID: session.ID,
		WelcomeMessage: welcomeMessage(language, sessionData),
		SessionInfo: SessionInfo{
			Language:          language,
			FeaturesAvailable: availableFeatures,
		},
	}, nil
}

// SendMessage handles one user message: emergency screening first, then the
// RAG pipeline with conversation history, then personality and continuity
// hints. The exchange is persisted before returning.
func (s *Service) SendMessage(ctx context.Context, conversationID, message string) (MessageResult, error) {
	session, err := s.sessions.FindByID(ctx, conversationID)
	if err != nil {
		if err == sessionrepo.ErrSessionNotFound {
			return MessageResult{
				Success: false,
				Error:   "Conversation session not found or expired",
				Action:  "restart_conversation",
			}, nil
		}
		return MessageResult{}, err
	}

	session.LastActivity = time.Now().UTC()
	session.MessageCount++
	message = strings.TrimSpace(message)

	emergency := CheckEmergencyIntent(message)

	var result MessageResult
	if emergency.IsEmergency {
		session.EmergencyFlags++
		s.logger.Warn("emergency intent detected",
			"conversation_id", conversationID,
			"keywords", strings.Join(emergency.Keywords, ","),
			"confidence", emergency.Confidence,
		)
		result = s.emergencyResult(session.Language, emergency)
	} else {
		result = s.intelligentResult(ctx, session, message)
	}

	result.ConversationInfo = ConversationInfo{
		MessageCount:      session.MessageCount,
		EmergencyDetected: emergency.IsEmergency,
		SessionDuration:   formatDuration(time.Since(session.StartedAt)),
	}

	msg := &domain.SessionMessage{
		SessionID:    session.ID,
		Question:     message,
		Answer:       result.Response.Answer,
		QuestionType: string(result.Response.QuestionType),
		Urgency:      string(result.Response.Urgency),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.sessions.AddMessage(ctx, msg); err != nil {
		s.logger.Error("failed to persist exchange", "conversation_id", session.ID, "error", err)
	}
	if err := s.sessions.Update(ctx, session); err != nil {
		s.logger.Error("failed to update session", "conversation_id", session.ID, "error", err)
	}

	return result, nil
}

func (s *Service) emergencyResult(language string, emergency domain.EmergencyCheck) MessageResult {
	return MessageResult{
		Success: true,
		Response: domain.AnswerResult{
			Success:      true,
			Answer:       messageFor(emergencyActions, language),
			QuestionType: domain.QuestionEmergency,
			Urgency:      domain.UrgencyHigh,
			Timestamp:    time.Now().UTC(),
			Metadata: domain.AnswerMetadata{
				Categories:     []string{},
				Recommendation: emergency.Action,
			},
		},
		FollowUpQuestion: messageFor(emergencyFollowUps, language),
		EmergencyNumbers: ugandaEmergencyNumbers,
		ConversationFlow: ConversationFlow{
			NextSteps: nextStepsFor(domain.UrgencyHigh),
		},
	}
}

func (s *Service) intelligentResult(ctx context.Context, session *domain.Session, message string) MessageResult {
	history := s.loadHistory(ctx, session.ID)

	answer := s.engine.AskQuestion(ctx, message, rag.AskOptions{
		ConversationID: session.ID,
		Language:       session.Language,
		IncludeSources: true,
		History:        history,
	})

	if answer.Success {
		answer.Answer = addPersonality(answer.Answer, session.Language, answer.QuestionType)
	}

	return MessageResult{
		Success:  true,
		Response: answer,
		ConversationFlow: ConversationFlow{
			FollowUpSuggestions: followUpsFor(answer.QuestionType, session.Language),
			RelatedTopics:       relatedTopicsFor(answer.Metadata.Categories),
			NextSteps:           nextStepsFor(answer.Urgency),
		},
	}
}

func (s *Service) loadHistory(ctx context.Context, sessionID string) []domain.Exchange {
	messages, err := s.sessions.FindMessages(ctx, sessionID, s.config.HistoryWindow)
	if err != nil {
		s.logger.Warn("failed to load conversation history", "conversation_id", sessionID, "error", err)
		return nil
	}
	history := make([]domain.Exchange, 0, len(messages))
	for _, m := range messages {
		history = append(history, domain.Exchange{Question: m.Question, Answer: m.Answer})
	}
	return history
}

// addPersonality prepends an empathetic opening and, for symptom and
// treatment answers, appends an encouraging closing.
func addPersonality(answer, language string, questionType domain.QuestionType) string {
	if openings, ok := empathyOpenings[questionType]; ok {
		if opening, ok := openings[language]; ok {
			answer = opening + answer
		}
	}
	if questionType == domain.QuestionSymptoms || questionType == domain.QuestionTreatment {
		if closing, ok := encouragingClosings[language]; ok {
			answer += closing
		}
	}
	return answer
}

// EndConversation closes a session and returns its summary and a localized
// farewell.
func (s *Service) EndConversation(ctx context.Context, conversationID string) (EndResult, error) {
	session, err := s.sessions.FindByID(ctx, conversationID)
	if err != nil {
		if err == sessionrepo.ErrSessionNotFound {
			return EndResult{Success: false, Error: "Conversation not found"}, nil
		}
		return EndResult{}, err
	}

	summary := Summary{
		ConversationID: session.ID,
		Duration:       formatDuration(time.Since(session.StartedAt)),
		MessageCount:   session.MessageCount,
		EmergencyFlags: session.EmergencyFlags,
		EndTime:        time.Now().UTC(),
	}

	if err := s.sessions.Delete(ctx, conversationID); err != nil {
		return EndResult{}, err
	}

	s.logger.Info("conversation ended",
		"conversation_id", conversationID,
		"messages", summary.MessageCount,
		"emergency_flags", summary.EmergencyFlags,
	)
	return EndResult{
		Success:         true,
		Summary:         summary,
		FarewellMessage: messageFor(farewellMessages, session.Language),
	}, nil
}

// Statistics aggregates session counters with engine metrics.
func (s *Service) Statistics(ctx context.Context) Statistics {
	active, err := s.sessions.CountActive(ctx)
	if err != nil {
		s.logger.Warn("failed to count active sessions", "error", err)
	}
	messages, err := s.sessions.TotalMessages(ctx)
	if err != nil {
		s.logger.Warn("failed to count messages", "error", err)
	}
	emergencies, err := s.sessions.TotalEmergencyFlags(ctx)
	if err != nil {
		s.logger.Warn("failed to sum emergency flags", "error", err)
	}

	return Statistics{
		ActiveConversations:        active,
		TotalMessagesProcessed:     messages,
		EmergencySituationsHandled: emergencies,
		SupportedLanguages:         s.config.SupportedLanguages,
		RAGEngineMetrics:           s.engine.PerformanceMetrics(),
		SystemStatus: SystemStatus{
			LLMAvailable:        s.llmAvailable,
			KnowledgeBaseLoaded: true,
		},
	}
}

func formatDuration(d time.Duration) string {
	totalMinutes := int(d.Minutes())
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
