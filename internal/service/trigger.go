package service

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/glowhire/sunshine/internal/config"
	"github.com/glowhire/sunshine/internal/repository"
)

// TriggerDecision tells the widget when to surface its attention-getting
// affordance for the current page view.
type TriggerDecision struct {
	VisitorID uuid.UUID
	Nudge     bool
	Delay     time.Duration
}

// TriggerService decides when to proactively surface the widget. The
// conversion nudge is one-shot per installation: the durable visitor flag is
// set the moment the randomized path is armed and is never cleared.
type TriggerService struct {
	store repository.Store

	mu  sync.Mutex
	rng *rand.Rand
}

func NewTriggerService(store repository.Store, seed int64) *TriggerService {
	return &TriggerService{store: store, rng: rand.New(rand.NewSource(seed))}
}

// Decide evaluates one page load. hasIdentity is whether a session with a
// name or prior activity already exists for this browser.
func (t *TriggerService) Decide(ctx context.Context, visitorID uuid.UUID, path string, hasIdentity bool) (TriggerDecision, error) {
	if visitorID == uuid.Nil {
		visitorID = uuid.New()
	}

	shown, err := t.store.NudgeShown(ctx, visitorID)
	if err != nil {
		// Storage trouble never blocks the page; fall back to the quiet path.
		slog.Warn("nudge flag lookup failed", "error", err)
		shown = true
	}

	if highIntentPath(path) && !shown && !hasIdentity {
		if err := t.store.MarkNudgeShown(ctx, visitorID); err != nil {
			slog.Warn("mark nudge shown failed", "error", err)
		}
		return TriggerDecision{
			VisitorID: visitorID,
			Nudge:     true,
			Delay:     t.randomDelay(),
		}, nil
	}

	return TriggerDecision{
		VisitorID: visitorID,
		Delay:     config.NudgeDelayFixed,
	}, nil
}

func (t *TriggerService) randomDelay() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	window := config.NudgeDelayMax - config.NudgeDelayMin
	return config.NudgeDelayMin + time.Duration(t.rng.Int63n(int64(window)))
}

func highIntentPath(path string) bool {
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		path = "/"
	}
	for _, p := range config.HighIntentPaths {
		if path == p {
			return true
		}
	}
	return false
}
