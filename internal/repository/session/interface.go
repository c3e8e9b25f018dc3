// File: internal/repository/session/interface.go
package session

import (
	"context"

	"github.com/bulamuhealth/go-medassist/internal/domain"
)

// SessionRepository handles conversation session persistence.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
	FindByID(ctx context.Context, id string) (*domain.Session, error)
	Update(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
	AddMessage(ctx context.Context, message *domain.SessionMessage) error
	FindMessages(ctx context.Context, sessionID string, limit int) ([]domain.SessionMessage, error)
	CountActive(ctx context.Context) (int64, error)
	TotalMessages(ctx context.Context) (int64, error)
	TotalEmergencyFlags(ctx context.Context) (int64, error)
}
