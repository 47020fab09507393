package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/glowhire/sunshine/internal/domain"
)

// Memory implements Store in process memory. It backs deployments without a
// database and absorbs writes when the database degrades mid-flight.
type Memory struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]domain.Session
	visitors map[uuid.UUID]time.Time
}

func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[uuid.UUID]domain.Session),
		visitors: make(map[uuid.UUID]time.Time),
	}
}

func (m *Memory) GetSession(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	out := s
	return &out, nil
}

func (m *Memory) PutSession(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *Memory) DeleteSession(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *Memory) PruneSessions(_ context.Context, olderThan time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.sessions {
		if s.LastActiveAt.Before(olderThan) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func (m *Memory) NudgeShown(_ context.Context, visitorID uuid.UUID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.visitors[visitorID]
	return ok, nil
}

func (m *Memory) MarkNudgeShown(_ context.Context, visitorID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.visitors[visitorID]; !ok {
		m.visitors[visitorID] = time.Now()
	}
	return nil
}

func (m *Memory) Ping(_ context.Context) error {
	return nil
}
