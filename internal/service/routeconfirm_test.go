package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowhire/sunshine/internal/domain"
)

type countingNavigator struct {
	calls        int
	destinations []string
}

func (n *countingNavigator) Navigate(destination string) {
	n.calls++
	n.destinations = append(n.destinations, destination)
}

func pendingRoute(dest string) *domain.PendingRoute {
	return &domain.PendingRoute{Destination: dest, Title: "T", Prompt: "P"}
}

func TestRouteConfirmHappyPath(t *testing.T) {
	s := NewRouteConfirmState()
	nav := &countingNavigator{}

	assert.Equal(t, RouteIdle, s.State())

	carrier := &domain.Message{PendingRoute: pendingRoute("/post-job")}
	s.Set(carrier.PendingRoute, carrier)
	assert.Equal(t, RoutePending, s.State())

	route, err := s.Confirm(nav)
	require.NoError(t, err)
	assert.Equal(t, "/post-job", route.Destination)
	assert.Equal(t, 1, nav.calls)
	assert.Equal(t, []string{"/post-job"}, nav.destinations)
	assert.Equal(t, RouteIdle, s.State())
	assert.Nil(t, s.Pending())
	assert.Nil(t, carrier.PendingRoute, "carrier payload cleared after confirm")
}

func TestRouteConfirmCancel(t *testing.T) {
	s := NewRouteConfirmState()
	nav := &countingNavigator{}

	carrier := &domain.Message{PendingRoute: pendingRoute("/blog")}
	s.Set(carrier.PendingRoute, carrier)

	require.NoError(t, s.Cancel())
	assert.Equal(t, RouteIdle, s.State())
	assert.Equal(t, 0, nav.calls)
	assert.Nil(t, carrier.PendingRoute)
}

func TestRouteConfirmReplacesPending(t *testing.T) {
	s := NewRouteConfirmState()
	nav := &countingNavigator{}

	first := &domain.Message{PendingRoute: pendingRoute("/post-job")}
	s.Set(first.PendingRoute, first)

	second := &domain.Message{PendingRoute: pendingRoute("/blog")}
	s.Set(second.PendingRoute, second)

	assert.Nil(t, first.PendingRoute, "superseded payload cleared")

	route, err := s.Confirm(nav)
	require.NoError(t, err)
	assert.Equal(t, "/blog", route.Destination)
	assert.Equal(t, 1, nav.calls)
}

func TestRouteConfirmErrorsWhenIdle(t *testing.T) {
	s := NewRouteConfirmState()
	nav := &countingNavigator{}

	_, err := s.Confirm(nav)
	assert.ErrorIs(t, err, domain.ErrNoPendingRoute)
	assert.ErrorIs(t, s.Cancel(), domain.ErrNoPendingRoute)
	assert.Equal(t, 0, nav.calls)
}

func TestMinimizeIsOrthogonal(t *testing.T) {
	s := NewRouteConfirmState()

	carrier := &domain.Message{PendingRoute: pendingRoute("/post-job")}
	s.Set(carrier.PendingRoute, carrier)

	s.Minimize()
	assert.True(t, s.Minimized())
	assert.Equal(t, RoutePending, s.State(), "pending confirmation survives minimize")

	s.Restore()
	assert.False(t, s.Minimized())
	assert.Equal(t, RoutePending, s.State())
}
