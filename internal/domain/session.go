// File: internal/domain/session.go
package domain

import "time"

// Session is a conversation session. The RAG core never owns these; the
// chatbot layer creates them and feeds the core a bounded history window.
type Session struct {
	ID             string    `json:"id" gorm:"primarykey"`
	UserID         string    `json:"user_id" gorm:"not null;index"`
	Language       string    `json:"language" gorm:"not null"`
	State          string    `json:"state" gorm:"not null"` // "active" or "ended"
	MessageCount   int       `json:"message_count"`
	EmergencyFlags int       `json:"emergency_flags"`
	StartedAt      time.Time `json:"started_at"`
	LastActivity   time.Time `json:"last_activity"`
}

// SessionMessage is one stored exchange within a session.
type SessionMessage struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	SessionID    string    `json:"session_id" gorm:"not null;index"`
	Question     string    `json:"question" gorm:"not null"`
	Answer       string    `json:"answer" gorm:"not null"`
	QuestionType string    `json:"question_type"`
	Urgency      string    `json:"urgency"`
	CreatedAt    time.Time `json:"created_at"`
}
