package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/glowhire/sunshine/internal/config"
	"github.com/glowhire/sunshine/internal/domain"
)

// closedConversationGrace is how long a closed conversation stays resolvable
// so an in-flight assistant call can drain before eviction.
const closedConversationGrace = 2 * time.Minute

// LogNavigator is the production Navigator. The actual page transition
// happens client-side from the confirm response; the server records it.
type LogNavigator struct{}

func (LogNavigator) Navigate(destination string) {
	slog.Info("navigation confirmed", "destination", destination)
}

// Conversation is one open widget instance: a transcript, a confirmation
// state machine, and at most one in-flight turn.
type Conversation struct {
	ID        uuid.UUID
	SessionID uuid.UUID

	mu       sync.Mutex
	messages []*domain.Message
	confirm  *RouteConfirmState
	inFlight bool
	closed   bool
	// gen counts transcript wipes. A turn captures it before the remote
	// call; a mismatch on return means close or reset cleared the
	// transcript mid-flight and the result must be discarded.
	gen      int
	cost     decimal.Decimal
}

func (c *Conversation) append(m *domain.Message) *domain.Message {
	c.messages = append(c.messages, m)
	return m
}

func newMessage(text string, fromUser bool) *domain.Message {
	return &domain.Message{
		ID:        uuid.New(),
		Text:      text,
		FromUser:  fromUser,
		CreatedAt: time.Now(),
	}
}

// ConversationService sequences user turns: optimistic append, language and
// name handling, the remote assistant round trip, and suggestion attachment.
// Every failure inside a turn resolves to a conversational message; errors
// escape only for caller mistakes (unknown conversation, busy turn, empty
// text).
type ConversationService struct {
	sessions  *SessionService
	assistant Assistant
	engine    *SuggestionEngine
	greeter   *GreetingRotator
	nav       Navigator
	timers    *timerSet

	mu            sync.RWMutex
	convos        map[uuid.UUID]*Conversation
	lastGreetings map[uuid.UUID]int
}

func NewConversationService(sessions *SessionService, assistant Assistant, nav Navigator) *ConversationService {
	return &ConversationService{
		sessions:      sessions,
		assistant:     assistant,
		engine:        NewSuggestionEngine(),
		greeter:       NewGreetingRotator(time.Now().UnixNano()),
		nav:           nav,
		timers:        newTimerSet(),
		convos:        make(map[uuid.UUID]*Conversation),
		lastGreetings: make(map[uuid.UUID]int),
	}
}

// Open starts a conversation for the given session (uuid.Nil mints a new
// one) and returns the opening greeting, rotated against the last greeting
// this session saw.
func (s *ConversationService) Open(ctx context.Context, sessionID uuid.UUID) (*Conversation, *domain.Message, error) {
	sess, err := s.sessions.FindOrCreate(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("open conversation: %w", err)
	}

	conv := &Conversation{
		ID:        uuid.New(),
		SessionID: sess.ID,
		confirm:   NewRouteConfirmState(),
	}

	s.mu.Lock()
	prev, ok := s.lastGreetings[sess.ID]
	if !ok {
		prev = -1
	}
	text, id := s.greeter.Next(sess.Language, prev)
	s.lastGreetings[sess.ID] = id
	s.convos[conv.ID] = conv
	s.mu.Unlock()

	greeting := newMessage(text, false)
	conv.mu.Lock()
	conv.append(greeting)
	conv.mu.Unlock()

	return conv, greeting, nil
}

func (s *ConversationService) get(id uuid.UUID) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.convos[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	return conv, nil
}

// Send runs one user turn and returns the assistant message appended for it.
func (s *ConversationService) Send(ctx context.Context, convID uuid.UUID, text string, authenticated bool) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}
	if len(text) > config.MaxMessageLen {
		cut := config.MaxMessageLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	conv, err := s.get(convID)
	if err != nil {
		return nil, err
	}

	conv.mu.Lock()
	if conv.closed {
		conv.mu.Unlock()
		return nil, domain.ErrConversationClosed
	}
	if conv.inFlight {
		conv.mu.Unlock()
		return nil, domain.ErrTurnInFlight
	}
	conv.inFlight = true
	gen := conv.gen
	sessionID := conv.SessionID
	conv.append(newMessage(text, true))
	conv.mu.Unlock()

	defer func() {
		conv.mu.Lock()
		conv.inFlight = false
		conv.mu.Unlock()
	}()

	sess, err := s.sessions.FindOrCreate(ctx, sessionID)
	if err != nil {
		// Identity is a nicety; the turn still runs on defaults.
		slog.Warn("session load failed", "error", err, "session", sessionID)
		sess = &domain.Session{ID: sessionID, Language: domain.LanguageEnglish}
	}

	lang := ClassifyLanguage(text)
	sess.Language = lang

	if name := ExtractName(text, lang); name != "" && !sess.HasName() {
		sess.Name = name
		if err := s.sessions.Save(ctx, sess); err != nil {
			slog.Warn("session save failed", "error", err)
		}
		reply := fmt.Sprintf(phrasesFor(lang).greetByName, name)
		return s.appendAssistant(conv, newMessage(reply, false), gen)
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		slog.Warn("session save failed", "error", err)
	}

	reply, err := s.assistant.Generate(ctx, AssistantRequest{
		Message:         text,
		UserID:          sess.ID.String(),
		UserName:        sess.Name,
		Language:        lang,
		IsAuthenticated: authenticated,
	})
	if err != nil {
		slog.Error("assistant call failed", "error", err, "conversation", convID)
		return s.appendAssistant(conv, newMessage(phrasesFor(lang).apology, false), gen)
	}

	body, links := SanitizeReply(reply.Response)
	suggestion := s.engine.Evaluate(text, body, lang, authenticated)
	body = applyFollowUps(body, text+" "+body, lang)

	msg := newMessage(body, false)
	msg.Links = links
	if suggestion.Route != nil {
		msg.PendingRoute = suggestion.Route
	} else {
		msg.QuickActions = suggestion.Actions
	}

	conv.mu.Lock()
	if conv.closed {
		conv.mu.Unlock()
		return nil, domain.ErrConversationClosed
	}
	if conv.gen != gen {
		conv.mu.Unlock()
		return nil, domain.ErrTurnSuperseded
	}
	conv.append(msg)
	if suggestion.Route != nil {
		conv.confirm.Set(suggestion.Route, msg)
	}
	if reply.Usage != nil {
		conv.cost = conv.cost.Add(decimal.NewFromFloat(reply.Usage.TotalCost))
		slog.Info("turn complete",
			"conversation", convID,
			"prompt_tokens", reply.Usage.PromptTokens,
			"completion_tokens", reply.Usage.CompletionTokens,
			"conversation_cost", conv.cost.String())
	}
	conv.mu.Unlock()

	return msg, nil
}

// appendAssistant attaches the message unless the widget was closed or reset
// while the turn was in flight, in which case the result is discarded.
func (s *ConversationService) appendAssistant(conv *Conversation, msg *domain.Message, gen int) (*domain.Message, error) {
	conv.mu.Lock()
	defer conv.mu.Unlock()
	if conv.closed {
		return nil, domain.ErrConversationClosed
	}
	if conv.gen != gen {
		return nil, domain.ErrTurnSuperseded
	}
	return conv.append(msg), nil
}

// Confirm executes the pending route and appends the single "taking you
// there" message.
func (s *ConversationService) Confirm(ctx context.Context, convID uuid.UUID) (*domain.PendingRoute, *domain.Message, error) {
	conv, err := s.get(convID)
	if err != nil {
		return nil, nil, err
	}

	lang := s.sessionLanguage(ctx, conv.SessionID)

	conv.mu.Lock()
	defer conv.mu.Unlock()
	route, err := conv.confirm.Confirm(s.nav)
	if err != nil {
		return nil, nil, err
	}
	msg := conv.append(newMessage(phrasesFor(lang).takingYouThere, false))
	return route, msg, nil
}

// CancelRoute discards the pending route without navigating.
func (s *ConversationService) CancelRoute(convID uuid.UUID) error {
	conv, err := s.get(convID)
	if err != nil {
		return err
	}
	conv.mu.Lock()
	defer conv.mu.Unlock()
	return conv.confirm.Cancel()
}

// Minimize collapses the widget to its floating affordance. The logical
// route state, pending confirmation included, is preserved.
func (s *ConversationService) Minimize(convID uuid.UUID) error {
	conv, err := s.get(convID)
	if err != nil {
		return err
	}
	conv.mu.Lock()
	defer conv.mu.Unlock()
	conv.confirm.Minimize()
	return nil
}

// Restore re-expands a minimized widget.
func (s *ConversationService) Restore(convID uuid.UUID) error {
	conv, err := s.get(convID)
	if err != nil {
		return err
	}
	conv.mu.Lock()
	defer conv.mu.Unlock()
	conv.confirm.Restore()
	return nil
}

// Close drops the transcript and schedules eviction. Identity survives; an
// in-flight assistant call resolves into the void.
func (s *ConversationService) Close(convID uuid.UUID) error {
	conv, err := s.get(convID)
	if err != nil {
		return err
	}

	conv.mu.Lock()
	conv.closed = true
	conv.gen++
	conv.messages = nil
	conv.confirm = NewRouteConfirmState()
	conv.mu.Unlock()

	s.timers.After(closedConversationGrace, func() {
		s.mu.Lock()
		delete(s.convos, convID)
		s.mu.Unlock()
	})
	return nil
}

// Reset is the "start over" action: identity cleared, transcript wiped, and
// a fresh session bound to the conversation.
func (s *ConversationService) Reset(ctx context.Context, convID uuid.UUID) (*domain.Message, error) {
	conv, err := s.get(convID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Clear(ctx, conv.SessionID); err != nil {
		slog.Warn("session clear failed", "error", err)
	}
	s.mu.Lock()
	delete(s.lastGreetings, conv.SessionID)
	s.mu.Unlock()

	sess, err := s.sessions.FindOrCreate(ctx, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("reset conversation: %w", err)
	}

	text, id := s.greeter.Next(sess.Language, -1)
	s.mu.Lock()
	s.lastGreetings[sess.ID] = id
	s.mu.Unlock()

	greeting := newMessage(text, false)

	conv.mu.Lock()
	defer conv.mu.Unlock()
	if conv.closed {
		return nil, domain.ErrConversationClosed
	}
	conv.SessionID = sess.ID
	conv.gen++
	conv.messages = nil
	conv.confirm = NewRouteConfirmState()
	conv.append(greeting)
	return greeting, nil
}

// Messages returns a snapshot of the transcript.
func (s *ConversationService) Messages(convID uuid.UUID) ([]domain.Message, error) {
	conv, err := s.get(convID)
	if err != nil {
		return nil, err
	}
	conv.mu.Lock()
	defer conv.mu.Unlock()
	out := make([]domain.Message, len(conv.messages))
	for i, m := range conv.messages {
		out[i] = *m
	}
	return out, nil
}

// SessionID reports which session a conversation is bound to.
func (s *ConversationService) SessionID(convID uuid.UUID) (uuid.UUID, error) {
	conv, err := s.get(convID)
	if err != nil {
		return uuid.Nil, err
	}
	conv.mu.Lock()
	defer conv.mu.Unlock()
	return conv.SessionID, nil
}

// Shutdown cancels all scheduled tasks.
func (s *ConversationService) Shutdown() {
	s.timers.StopAll()
}

func (s *ConversationService) sessionLanguage(ctx context.Context, sessionID uuid.UUID) domain.Language {
	sess, err := s.sessions.FindOrCreate(ctx, sessionID)
	if err != nil {
		return domain.LanguageEnglish
	}
	return sess.Language
}

// applyFollowUps glues the first matching contextual appendix onto the reply
// body.
func applyFollowUps(body, haystack string, lang domain.Language) string {
	lower := strings.ToLower(haystack)
	for _, fu := range followUps {
		if matchesAny(lower, fu.keywords) {
			return body + "\n\n" + localized(fu.text, lang)
		}
	}
	return body
}
