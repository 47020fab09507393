package repository

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/glowhire/sunshine/internal/domain"
)

// Resilient wraps a primary Store with an in-memory fallback. Storage being
// unavailable is never surfaced to the caller: a failed primary call is
// retried against the fallback and the store marks itself degraded. Identity
// written while degraded is lost on restart, which the widget tolerates.
type Resilient struct {
	primary  Store
	fallback *Memory
	degraded atomic.Bool
}

func NewResilient(primary Store) *Resilient {
	return &Resilient{primary: primary, fallback: NewMemory()}
}

// Degraded reports whether any primary call has failed.
func (r *Resilient) Degraded() bool {
	return r.degraded.Load()
}

func (r *Resilient) noteFailure(op string, err error) {
	if r.degraded.CompareAndSwap(false, true) {
		slog.Warn("store degraded to in-memory", "op", op, "error", err)
	}
}

func (r *Resilient) GetSession(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	s, err := r.primary.GetSession(ctx, id)
	if err == nil || errors.Is(err, domain.ErrSessionNotFound) {
		if err != nil {
			// Unknown to the primary; the row may live in the fallback.
			return r.fallback.GetSession(ctx, id)
		}
		return s, err
	}
	r.noteFailure("get_session", err)
	return r.fallback.GetSession(ctx, id)
}

func (r *Resilient) PutSession(ctx context.Context, s *domain.Session) error {
	if err := r.primary.PutSession(ctx, s); err != nil {
		r.noteFailure("put_session", err)
		return r.fallback.PutSession(ctx, s)
	}
	return nil
}

func (r *Resilient) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if err := r.primary.DeleteSession(ctx, id); err != nil {
		r.noteFailure("delete_session", err)
	}
	return r.fallback.DeleteSession(ctx, id)
}

func (r *Resilient) PruneSessions(ctx context.Context, olderThan time.Time) (int64, error) {
	n, err := r.primary.PruneSessions(ctx, olderThan)
	if err != nil {
		r.noteFailure("prune_sessions", err)
	}
	fn, _ := r.fallback.PruneSessions(ctx, olderThan)
	return n + fn, nil
}

func (r *Resilient) NudgeShown(ctx context.Context, visitorID uuid.UUID) (bool, error) {
	shown, err := r.primary.NudgeShown(ctx, visitorID)
	if err != nil {
		r.noteFailure("nudge_shown", err)
		return r.fallback.NudgeShown(ctx, visitorID)
	}
	if shown {
		return true, nil
	}
	// The flag may have been set while degraded.
	return r.fallback.NudgeShown(ctx, visitorID)
}

func (r *Resilient) MarkNudgeShown(ctx context.Context, visitorID uuid.UUID) error {
	if err := r.primary.MarkNudgeShown(ctx, visitorID); err != nil {
		r.noteFailure("mark_nudge_shown", err)
		return r.fallback.MarkNudgeShown(ctx, visitorID)
	}
	return nil
}

func (r *Resilient) Ping(ctx context.Context) error {
	return r.primary.Ping(ctx)
}
