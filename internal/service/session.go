package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/glowhire/sunshine/internal/domain"
	"github.com/glowhire/sunshine/internal/repository"
)

// SessionService manages widget identity: the name and language that outlive
// a single open/close cycle.
type SessionService struct {
	store repository.Store
}

func NewSessionService(store repository.Store) *SessionService {
	return &SessionService{store: store}
}

// FindOrCreate loads the session for id, or mints a fresh one when id is
// uuid.Nil or unknown.
func (s *SessionService) FindOrCreate(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	if id != uuid.Nil {
		sess, err := s.store.GetSession(ctx, id)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return nil, fmt.Errorf("find session: %w", err)
		}
	}

	sess := &domain.Session{
		ID:           uuid.New(),
		Language:     domain.LanguageEnglish,
		LastActiveAt: time.Now(),
	}
	if err := s.store.PutSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Get loads a session without creating one.
func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	if id == uuid.Nil {
		return nil, domain.ErrSessionNotFound
	}
	return s.store.GetSession(ctx, id)
}

// Save persists the session and refreshes its last-active timestamp.
func (s *SessionService) Save(ctx context.Context, sess *domain.Session) error {
	sess.LastActiveAt = time.Now()
	if err := s.store.PutSession(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the stored identity, used by the "start over" action.
func (s *SessionService) Clear(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Prune drops sessions idle for longer than ttl.
func (s *SessionService) Prune(ctx context.Context, ttl time.Duration) (int64, error) {
	return s.store.PruneSessions(ctx, time.Now().Add(-ttl))
}
