package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session holds the identity that outlives a single open/close cycle of the
// widget. The transcript does not live here; it dies with the conversation.
type Session struct {
	ID           uuid.UUID
	Name         string // empty until extracted from user text
	Language     Language
	LastActiveAt time.Time
}

// HasName reports whether a display name has been set for this session.
func (s *Session) HasName() bool {
	return s.Name != ""
}
