// File: internal/services/chatbot/chatbot_test.go
package chatbot

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bulamuhealth/go-medassist/internal/domain"
	sessionrepo "github.com/bulamuhealth/go-medassist/internal/repository/session"
	"github.com/bulamuhealth/go-medassist/internal/services/ai"
	"github.com/bulamuhealth/go-medassist/internal/services/knowledge"
	"github.com/bulamuhealth/go-medassist/internal/services/rag"
	"github.com/bulamuhealth/go-medassist/internal/services/vectorstore"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}

func newTestService(t *testing.T) *Service {
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

	service, err := NewService(DefaultConfig(), engine, sessionrepo.NewSessionRepository(db), false, nopLogger{})
	require.NoError(t, err)
	return service
}

func TestStartConversationDefaultsLanguage(t *testing.T) {
	service := newTestService(t)

	result, err := service.StartConversation(context.Background(), "user-1", "french", nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.ConversationID)
	assert.Equal(t, "english", result.SessionInfo.Language)
	assert.Contains(t, result.WelcomeMessage, "AI medical assistant")
	assert.Contains(t, result.SessionInfo.FeaturesAvailable, "symptom_analysis")
}

func TestStartConversationPersonalized(t *testing.T) {
	service := newTestService(t)

	result, err := service.StartConversation(context.Background(), "user-1", "swahili", map[string]string{
		"user_name":      "Amina",
		"health_concern": "malaria",
	})
	require.NoError(t, err)
	assert.Contains(t, result.WelcomeMessage, "Hujambo Amina!")
	assert.Contains(t, result.WelcomeMessage, "malaria")
}

func TestSendMessageEmergencyPath(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	started, err := service.StartConversation(ctx, "user-1", "english", nil)
	require.NoError(t, err)

	result, err := service.SendMessage(ctx, started.ConversationID, "I have severe chest pain and can't breathe")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, domain.QuestionEmergency, result.Response.QuestionType)
	assert.Equal(t, domain.UrgencyHigh, result.Response.Urgency)
	assert.Contains(t, result.Response.Answer, "MEDICAL EMERGENCY DETECTED")
	assert.Equal(t, []string{"999", "112"}, result.EmergencyNumbers["uganda_emergency"])
	assert.True(t, result.ConversationInfo.EmergencyDetected)
	assert.Equal(t, 1, result.ConversationInfo.MessageCount)

	session, err := service.sessions.FindByID(ctx, started.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, 1, session.EmergencyFlags)
}

func TestSendMessageIntelligentPath(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	started, err := service.StartConversation(ctx, "user-1", "english", nil)
	require.NoError(t, err)

	result, err := service.SendMessage(ctx, started.ConversationID, "How can I prevent malaria?")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, domain.QuestionPrevention, result.Response.QuestionType)
	assert.Contains(t, result.Response.Answer, "Prevention is always important")
	assert.False(t, result.ConversationInfo.EmergencyDetected)
	assert.Contains(t, result.ConversationFlow.RelatedTopics, "Prevention")
	assert.NotEmpty(t, result.ConversationFlow.NextSteps)

	// The exchange is persisted for the history window.
	messages, err := service.sessions.FindMessages(ctx, started.ConversationID, 10)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "How can I prevent malaria?", messages[0].Question)
}

func TestSendMessageUnknownSession(t *testing.T) {
	service := newTestService(t)

	result, err := service.SendMessage(context.Background(), "no-such-session", "hello")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "restart_conversation", result.Action)
}

func TestEndConversation(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	started, err := service.StartConversation(ctx, "user-1", "english", nil)
	require.NoError(t, err)
	_, err = service.SendMessage(ctx, started.ConversationID, "What are the symptoms of typhoid?")
	require.NoError(t, err)

	ended, err := service.EndConversation(ctx, started.ConversationID)
	require.NoError(t, err)
	assert.True(t, ended.Success)
	assert.Equal(t, started.ConversationID, ended.Summary.ConversationID)
	assert.Equal(t, 1, ended.Summary.MessageCount)
	assert.Contains(t, ended.FarewellMessage, "Take care of your health")

	again, err := service.EndConversation(ctx, started.ConversationID)
	require.NoError(t, err)
	assert.False(t, again.Success)
}

func TestStatistics(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	started, err := service.StartConversation(ctx, "user-1", "english", nil)
	require.NoError(t, err)
	_, err = service.SendMessage(ctx, started.ConversationID, "I can't breathe")
	require.NoError(t, err)

	stats := service.Statistics(ctx)
	assert.Equal(t, int64(1), stats.ActiveConversations)
	assert.Equal(t, int64(1), stats.TotalMessagesProcessed)
	assert.Equal(t, int64(1), stats.EmergencySituationsHandled)
	assert.Equal(t, []string{"english", "luganda", "swahili"}, stats.SupportedLanguages)
	assert.False(t, stats.SystemStatus.LLMAvailable)
	assert.True(t, stats.SystemStatus.KnowledgeBaseLoaded)
	assert.Greater(t, stats.RAGEngineMetrics.IndexedChunks, 0)
}

func TestCheckEmergencyIntent(t *testing.T) {
	check := CheckEmergencyIntent("I think I'm having a heart attack")
	assert.True(t, check.IsEmergency)
	assert.Contains(t, check.Keywords, "heart attack")
	assert.Equal(t, "seek_immediate_help", check.Action)
	assert.InDelta(t, float64(len(check.Keywords))/float64(len(conversationEmergencyKeywords)), check.Confidence, 1e-9)

	multilingual := CheckEmergencyIntent("dharura! maumivu ya kifua")
	assert.True(t, multilingual.IsEmergency)
	assert.Len(t, multilingual.Keywords, 2)

	none := CheckEmergencyIntent("what vaccines does my child need")
	assert.False(t, none.IsEmergency)
	assert.Zero(t, none.Confidence)
	assert.Equal(t, "continue", none.Action)
}

func TestWelcomeMessageFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, welcomeMessages["english"], welcomeMessage("german", nil))
}

func TestFollowUpsForKnownPairing(t *testing.T) {
	suggestions := followUpsFor(domain.QuestionSymptoms, "luganda")
	assert.Len(t, suggestions, 3)

	// Unlike canned messages there is no English fallback here.
	assert.Empty(t, followUpsFor(domain.QuestionTreatment, "swahili"))
	assert.Empty(t, followUpsFor(domain.QuestionGeneral, "english"))
}

func TestNextStepsByUrgency(t *testing.T) {
	assert.Equal(t, []string{"Seek immediate medical attention", "Monitor symptoms closely"}, nextStepsFor(domain.UrgencyHigh))
	assert.Len(t, nextStepsFor(domain.UrgencyNormal), 3)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0m", formatDuration(30*time.Second))
	assert.Equal(t, "5m", formatDuration(5*time.Minute))
	assert.Equal(t, "1h 15m", formatDuration(75*time.Minute))
}
