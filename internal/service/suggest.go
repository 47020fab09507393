package service

import "github.com/glowhire/sunshine/internal/domain"

// Suggestion is what a finished turn offers the user: either a route waiting
// for confirmation or a set of quick actions. Never both; Evaluate is the
// only constructor and it runs the generator only when routing came up empty.
type Suggestion struct {
	Route   *domain.PendingRoute
	Actions []domain.QuickAction
}

// SuggestionEngine binds the intent router and the quick-action generator
// into one mutually exclusive evaluation step.
type SuggestionEngine struct {
	router  *IntentRouter
	actions *QuickActionGenerator
}

func NewSuggestionEngine() *SuggestionEngine {
	return &SuggestionEngine{
		router:  NewIntentRouter(),
		actions: NewQuickActionGenerator(),
	}
}

func (e *SuggestionEngine) Evaluate(userText, replyText string, lang domain.Language, authenticated bool) Suggestion {
	if route := e.router.Detect(userText, replyText, lang, authenticated); route != nil {
		return Suggestion{Route: route}
	}
	return Suggestion{Actions: e.actions.Generate(userText, replyText, lang, authenticated)}
}
