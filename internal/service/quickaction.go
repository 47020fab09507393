package service

import (
	"strings"

	"github.com/glowhire/sunshine/internal/domain"
)

// QuickActionGenerator turns the same keyword scan the router uses into
// suggestion buttons for turns that produced no navigation intent.
type QuickActionGenerator struct {
	rules []intentRule
}

func NewQuickActionGenerator() *QuickActionGenerator {
	return &QuickActionGenerator{rules: intentRules}
}

// Generate derives at most one action per matched category, in rule order.
// It keys off the rules' soft topic keywords: a turn that merely mentions a
// topic gets a suggestion button, while the explicit phrases that would have
// routed were already consumed by the intent router. Authenticated users on
// public routes get a direct navigate action; everyone else gets a prompt
// action that feeds the rule's follow-up phrase back into the conversation.
// When nothing matched and the user sounds stuck, a single generic "ask me
// anything" action is appended.
func (g *QuickActionGenerator) Generate(userText, replyText string, lang domain.Language, authenticated bool) []domain.QuickAction {
	haystack := strings.ToLower(userText + " " + replyText)

	var actions []domain.QuickAction
	for _, rule := range g.rules {
		if !matchesAny(haystack, rule.topics) {
			continue
		}
		actions = append(actions, g.actionFor(rule, lang, authenticated))
	}

	if len(actions) == 0 && matchesAny(strings.ToLower(userText), helpKeywords) {
		p := phrasesFor(lang)
		actions = append(actions, domain.QuickAction{
			ID:     "ask_anything",
			Label:  p.askAnything,
			Kind:   domain.QuickActionPrompt,
			Prompt: p.askAnythingCue,
		})
	}

	return actions
}

func (g *QuickActionGenerator) actionFor(rule intentRule, lang domain.Language, authenticated bool) domain.QuickAction {
	action := domain.QuickAction{
		ID:    string(rule.category),
		Label: localized(rule.actionLabel, lang),
	}
	if authenticated && !rule.requiresAuth {
		action.Kind = domain.QuickActionNavigate
		action.Destination = rule.destination
		return action
	}
	action.Kind = domain.QuickActionPrompt
	action.Prompt = localized(rule.prompt, lang)
	return action
}
