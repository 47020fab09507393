package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowhire/sunshine/internal/domain"
	"github.com/glowhire/sunshine/internal/repository"
)

func TestFindOrCreateMintsAndReloads(t *testing.T) {
	svc := NewSessionService(repository.NewMemory())
	ctx := context.Background()

	sess, err := svc.FindOrCreate(ctx, uuid.Nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, sess.ID)
	assert.Equal(t, domain.LanguageEnglish, sess.Language)
	assert.False(t, sess.HasName())

	again, err := svc.FindOrCreate(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, again.ID)
}

func TestFindOrCreateUnknownIDStartsFresh(t *testing.T) {
	svc := NewSessionService(repository.NewMemory())

	stale := uuid.New()
	sess, err := svc.FindOrCreate(context.Background(), stale)
	require.NoError(t, err)
	assert.NotEqual(t, stale, sess.ID, "a stale token gets a new identity, not an error")
}

func TestGetDoesNotCreate(t *testing.T) {
	svc := NewSessionService(repository.NewMemory())

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.Get(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSaveTouchesLastActive(t *testing.T) {
	svc := NewSessionService(repository.NewMemory())
	ctx := context.Background()

	sess, err := svc.FindOrCreate(ctx, uuid.Nil)
	require.NoError(t, err)

	sess.Name = "Kim"
	sess.LastActiveAt = time.Now().Add(-time.Hour)
	require.NoError(t, svc.Save(ctx, sess))

	got, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kim", got.Name)
	assert.WithinDuration(t, time.Now(), got.LastActiveAt, time.Minute)
}

func TestClearRemovesIdentity(t *testing.T) {
	svc := NewSessionService(repository.NewMemory())
	ctx := context.Background()

	sess, err := svc.FindOrCreate(ctx, uuid.Nil)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, sess.ID))
	_, err = svc.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestPruneDropsIdleSessions(t *testing.T) {
	store := repository.NewMemory()
	svc := NewSessionService(store)
	ctx := context.Background()

	idle := &domain.Session{ID: uuid.New(), Language: domain.LanguageEnglish, LastActiveAt: time.Now().Add(-48 * time.Hour)}
	require.NoError(t, store.PutSession(ctx, idle))

	fresh, err := svc.FindOrCreate(ctx, uuid.Nil)
	require.NoError(t, err)

	n, err := svc.Prune(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = svc.Get(ctx, idle.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = svc.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}
