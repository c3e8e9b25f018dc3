// File: internal/repository/session/session_repository.go
package session

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/bulamuhealth/go-medassist/internal/domain"
)

var ErrSessionNotFound = errors.New("session not found")

type gormSessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &gormSessionRepository{db: db}
}

func (r *gormSessionRepository) Create(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	if session == nil || session.ID == "" {
		return nil, errors.New("session and session ID are required")
	}

	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		log.Printf("[SessionRepository] Database error creating session for user %s: %v", session.UserID, err)
		return nil, errors.New("database error creating session")
	}
	return session, nil
}

func (r *gormSessionRepository) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, errors.New("invalid session ID")
	}

	var session domain.Session
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		log.Printf("[SessionRepository] Database error finding session %s: %v", id, err)
		return nil, errors.New("database query failed")
	}
	return &session, nil
}

func (r *gormSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return errors.New("session and session ID are required")
	}

	result := r.db.WithContext(ctx).Save(session)
	if result.Error != nil {
		log.Printf("[SessionRepository] Database error updating session %s: %v", session.ID, result.Error)
		return errors.New("database error updating session")
	}
	return nil
}

func (r *gormSessionRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("invalid session ID")
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Session{})
	if result.Error != nil {
		log.Printf("[SessionRepository] Database error deleting session %s: %v", id, result.Error)
		return errors.New("database error deleting session")
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	// Messages are kept for the session summary; they only go when the
	// session row goes.
	if err := r.db.WithContext(ctx).Where("session_id = ?", id).Delete(&domain.SessionMessage{}).Error; err != nil {
		log.Printf("[SessionRepository] Database error deleting messages for session %s: %v", id, err)
		return errors.New("database error deleting session messages")
	}
	return nil
}

func (r *gormSessionRepository) AddMessage(ctx context.Context, message *domain.SessionMessage) error {
	if message == nil || message.SessionID == "" {
		return errors.New("message and session ID are required")
	}

	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		log.Printf("[SessionRepository] Database error adding message to session %s: %v", message.SessionID, err)
		return errors.New("database error adding message")
	}
	return nil
}

// FindMessages returns the most recent messages for a session in
// chronological order.
func (r *gormSessionRepository) FindMessages(ctx context.Context, sessionID string, limit int) ([]domain.SessionMessage, error) {
	if sessionID == "" {
		return nil, errors.New("invalid session ID")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var messages []domain.SessionMessage
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		log.Printf("[SessionRepository] Database error loading messages for session %s: %v", sessionID, err)
		return nil, errors.New("database error loading messages")
	}

	// Reverse into chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *gormSessionRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Session{}).Where("state = ?", "active").Count(&count).Error
	if err != nil {
		log.Printf("[SessionRepository] Database error counting active sessions: %v", err)
		return 0, errors.New("database error counting active sessions")
	}
	return count, nil
}

func (r *gormSessionRepository) TotalMessages(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.SessionMessage{}).Count(&count).Error
	if err != nil {
		log.Printf("[SessionRepository] Database error counting messages: %v", err)
		return 0, errors.New("database error counting messages")
	}
	return count, nil
}

func (r *gormSessionRepository) TotalEmergencyFlags(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Session{}).
		Select("COALESCE(SUM(emergency_flags), 0)").
		Scan(&total).Error
	if err != nil {
		log.Printf("[SessionRepository] Database error summing emergency flags: %v", err)
		return 0, errors.New("database error summing emergency flags")
	}
	return total, nil
}
