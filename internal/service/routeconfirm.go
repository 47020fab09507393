package service

import (
	"github.com/glowhire/sunshine/internal/domain"
)

// Navigator performs the single navigation primitive: go to an in-app path,
// same tab. The production implementation relays the destination back to the
// widget client; tests count calls.
type Navigator interface {
	Navigate(destination string)
}

// RouteState is the confirmation dialog's logical state.
type RouteState string

const (
	RouteIdle    RouteState = "idle"
	RoutePending RouteState = "pending"
)

// RouteConfirmState governs whether a detected intent is shown for
// confirmation, executed, or discarded. At most one PendingRoute exists at a
// time; a new intent replaces the old one. The minimized toggle is orthogonal
// and preserves whichever logical state was active. Not safe for concurrent
// use; the owning conversation serializes access.
type RouteConfirmState struct {
	state     RouteState
	pending   *domain.PendingRoute
	carrier   *domain.Message
	minimized bool
}

func NewRouteConfirmState() *RouteConfirmState {
	return &RouteConfirmState{state: RouteIdle}
}

func (s *RouteConfirmState) State() RouteState { return s.state }

func (s *RouteConfirmState) Pending() *domain.PendingRoute { return s.pending }

// Set installs a new pending route, replacing any unresolved one. carrier is
// the transcript message the confirmation payload rides on; its payload is
// cleared once the user responds.
func (s *RouteConfirmState) Set(route *domain.PendingRoute, carrier *domain.Message) {
	if s.carrier != nil {
		s.carrier.PendingRoute = nil
	}
	s.state = RoutePending
	s.pending = route
	s.carrier = carrier
}

// Confirm executes the pending route: exactly one Navigate call with the
// stored destination, then back to Idle.
func (s *RouteConfirmState) Confirm(nav Navigator) (*domain.PendingRoute, error) {
	if s.state != RoutePending || s.pending == nil {
		return nil, domain.ErrNoPendingRoute
	}
	route := s.pending
	nav.Navigate(route.Destination)
	s.reset()
	return route, nil
}

// Cancel discards the pending route without navigating.
func (s *RouteConfirmState) Cancel() error {
	if s.state != RoutePending || s.pending == nil {
		return domain.ErrNoPendingRoute
	}
	s.reset()
	return nil
}

func (s *RouteConfirmState) reset() {
	if s.carrier != nil {
		s.carrier.PendingRoute = nil
	}
	s.state = RouteIdle
	s.pending = nil
	s.carrier = nil
}

func (s *RouteConfirmState) Minimize() { s.minimized = true }
func (s *RouteConfirmState) Restore()  { s.minimized = false }

func (s *RouteConfirmState) Minimized() bool { return s.minimized }
