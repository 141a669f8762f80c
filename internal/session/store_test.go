package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/trackswift/internal/domain"
)

func TestNewSession(t *testing.T) {
	account := &domain.Account{ID: 7, Username: "alice", Role: domain.RoleManager}

	sess := New(account, time.Hour)
	require.NotEmpty(t, sess.ID)
	require.Equal(t, int64(7), sess.AccountID)
	require.Equal(t, "alice", sess.Username)
	require.Equal(t, domain.RoleManager, sess.Role)
	require.WithinDuration(t, sess.CreatedAt.Add(time.Hour), sess.ExpiresAt, time.Second)

	other := New(account, time.Hour)
	require.NotEqual(t, sess.ID, other.ID)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := New(&domain.Account{ID: 1, Username: "alice", Role: domain.RoleUser}, time.Hour)
	require.NoError(t, store.Put(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting again is harmless.
	require.NoError(t, store.Delete(ctx, sess.ID))
}

func TestMemoryStoreMiss(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDropsExpired(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := New(&domain.Account{ID: 1, Username: "alice", Role: domain.RoleUser}, -time.Minute)
	require.NoError(t, store.Put(ctx, sess))

	_, err := store.Get(ctx, sess.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
