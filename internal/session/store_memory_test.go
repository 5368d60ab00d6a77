package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comparo/internal/domain"
)

func TestMemoryStoreSaveAndFind(t *testing.T) {
	store := NewMemoryStore(30*24*time.Hour, 12*time.Hour)
	ctx := context.Background()

	cred := domain.Credential{AccessToken: "at", RefreshToken: "rt", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, "sess-1", cred, false))

	got, err := store.Find(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, cred, got)
}

func TestMemoryStoreFindUnknownSession(t *testing.T) {
	store := NewMemoryStore(time.Hour, time.Hour)

	_, err := store.Find(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", domain.Credential{AccessToken: "at"}, true))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, err := store.Find(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent session is a no-op.
	assert.NoError(t, store.Delete(ctx, "sess-1"))
}

func TestMemoryStoreEvictsExpiredEntryOnFind(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := NewMemoryStore(time.Hour, time.Hour, WithClock(func() time.Time { return clock() }))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", domain.Credential{AccessToken: "at"}, false))

	now = now.Add(2 * time.Hour)
	_, err := store.Find(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// The entry was removed, not just filtered: rolling the clock back
	// inside the original TTL still finds nothing.
	now = now.Add(-2 * time.Hour)
	_, err = store.Find(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreTTLPolicy(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := NewMemoryStore(30*24*time.Hour, 12*time.Hour, WithClock(func() time.Time { return clock() }))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "durable", domain.Credential{AccessToken: "d"}, true))
	require.NoError(t, store.Save(ctx, "ephemeral", domain.Credential{AccessToken: "e"}, false))

	// Past the ephemeral TTL, before the durable one.
	now = now.Add(13 * time.Hour)

	_, err := store.Find(ctx, "ephemeral")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := store.Find(ctx, "durable")
	require.NoError(t, err)
	assert.Equal(t, "d", got.AccessToken)
}
