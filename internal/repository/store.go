// Package repository persists widget identity across two scopes: session
// rows (name, language) that live for a browser session, and visitor rows
// (conversion-nudge flag) that survive restarts.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/glowhire/sunshine/internal/domain"
)

// Store is the persistence port. GetSession returns domain.ErrSessionNotFound
// for unknown ids.
type Store interface {
	GetSession(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	PutSession(ctx context.Context, s *domain.Session) error
	DeleteSession(ctx context.Context, id uuid.UUID) error
	PruneSessions(ctx context.Context, olderThan time.Time) (int64, error)

	NudgeShown(ctx context.Context, visitorID uuid.UUID) (bool, error)
	MarkNudgeShown(ctx context.Context, visitorID uuid.UUID) error

	Ping(ctx context.Context) error
}
