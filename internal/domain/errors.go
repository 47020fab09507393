package domain

import "errors"

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrConversationClosed   = errors.New("conversation closed")
	ErrTurnInFlight         = errors.New("a turn is already in flight")
	ErrTurnSuperseded       = errors.New("turn superseded by reset")
	ErrNoPendingRoute       = errors.New("no pending route")
	ErrEmptyMessage         = errors.New("empty message")
)
