package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glowhire/sunshine/internal/domain"
)

// Postgres implements Store on a pgx pool.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) GetSession(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	row := p.db.QueryRow(ctx,
		`SELECT id, name, language, last_active_at FROM sessions WHERE id = $1`, id)

	var s domain.Session
	var lang string
	if err := row.Scan(&s.ID, &s.Name, &lang, &s.LastActiveAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	s.Language = domain.Language(lang)
	return &s, nil
}

func (p *Postgres) PutSession(ctx context.Context, s *domain.Session) error {
	_, err := p.db.Exec(ctx,
		`INSERT INTO sessions (id, name, language, last_active_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE
		 SET name = EXCLUDED.name, language = EXCLUDED.language,
		     last_active_at = EXCLUDED.last_active_at`,
		s.ID, s.Name, string(s.Language), s.LastActiveAt)
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

func (p *Postgres) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if _, err := p.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (p *Postgres) PruneSessions(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := p.db.Exec(ctx, `DELETE FROM sessions WHERE last_active_at < $1`, olderThan)
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (p *Postgres) NudgeShown(ctx context.Context, visitorID uuid.UUID) (bool, error) {
	var shownAt *time.Time
	err := p.db.QueryRow(ctx,
		`SELECT nudge_shown_at FROM visitors WHERE id = $1`, visitorID).Scan(&shownAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("nudge shown: %w", err)
	}
	return shownAt != nil, nil
}

func (p *Postgres) MarkNudgeShown(ctx context.Context, visitorID uuid.UUID) error {
	_, err := p.db.Exec(ctx,
		`INSERT INTO visitors (id, nudge_shown_at) VALUES ($1, now())
		 ON CONFLICT (id) DO UPDATE SET nudge_shown_at = COALESCE(visitors.nudge_shown_at, now())`,
		visitorID)
	if err != nil {
		return fmt.Errorf("mark nudge shown: %w", err)
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}
