package domain

import (
	"time"

	"github.com/google/uuid"
)

// QuickActionKind tells the widget what pressing the button does.
type QuickActionKind string

const (
	// QuickActionNavigate navigates straight to Destination, same tab.
	QuickActionNavigate QuickActionKind = "navigate"
	// QuickActionPrompt feeds Prompt back into the conversation as a new turn.
	QuickActionPrompt QuickActionKind = "prompt"
)

// QuickAction is a suggested follow-up button attached to an assistant message.
type QuickAction struct {
	ID          string          `json:"id"`
	Label       string          `json:"label"`
	Kind        QuickActionKind `json:"kind"`
	Destination string          `json:"destination,omitempty"`
	Prompt      string          `json:"prompt,omitempty"`
}

// MessageLink is a navigation-style link harvested from an assistant reply.
type MessageLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Message is a single transcript entry. Immutable once appended, except for
// PendingRoute which is cleared after the user confirms or cancels.
type Message struct {
	ID           uuid.UUID     `json:"id"`
	Text         string        `json:"text"`
	FromUser     bool          `json:"from_user"`
	CreatedAt    time.Time     `json:"created_at"`
	Links        []MessageLink `json:"links,omitempty"`
	QuickActions []QuickAction `json:"quick_actions,omitempty"`
	PendingRoute *PendingRoute `json:"pending_route,omitempty"`
}
