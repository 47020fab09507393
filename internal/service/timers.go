package service

import (
	"sync"
	"time"
)

// timerSet owns cancellable scheduled tasks tied to a component's lifetime.
// After StopAll, pending tasks become no-ops instead of firing against a
// closed owner.
type timerSet struct {
	mu      sync.Mutex
	stopped bool
	next    int
	timers  map[int]*time.Timer
}

func newTimerSet() *timerSet {
	return &timerSet{timers: make(map[int]*time.Timer)}
}

// After schedules fn to run once after d.
func (t *timerSet) After(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	id := t.next
	t.next++
	t.timers[id] = time.AfterFunc(d, func() {
		t.mu.Lock()
		if t.stopped {
			t.mu.Unlock()
			return
		}
		delete(t.timers, id)
		t.mu.Unlock()
		fn()
	})
}

// StopAll cancels every scheduled task. Tasks already mid-fire see the
// stopped flag and return without running their body.
func (t *timerSet) StopAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
}
