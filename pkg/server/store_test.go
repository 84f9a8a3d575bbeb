package server

import (
	"testing"
	"time"

	"github.com/decred/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *SessionStore {
	return NewSessionStore(slog.Disabled)
}

func TestStoreCreateAssignsUniqueIDs(t *testing.T) {
	store := newTestStore()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := store.Create(&Session{status: StatusPlaying})
		require.NotEmpty(t, id)
		require.False(t, seen[id], "id %s assigned twice", id)
		seen[id] = true
	}
	assert.Equal(t, 100, store.Count())
}

func TestStoreGet(t *testing.T) {
	store := newTestStore()
	id := store.Create(&Session{status: StatusPlaying})

	s, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, s.ID())

	_, err = store.Get("invalid_session")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore()
	id := store.Create(&Session{status: StatusPlaying})

	store.Delete(id)
	_, err := store.Get(id)
	require.ErrorIs(t, err, ErrSessionNotFound)

	// Deleting again is a no-op.
	store.Delete(id)
}

func TestStoreSweepRemovesOnlyExpired(t *testing.T) {
	store := newTestStore()

	oldID := store.Create(&Session{status: StatusPlaying})
	freshID := store.Create(&Session{status: StatusPlaying})

	old, err := store.Get(oldID)
	require.NoError(t, err)
	old.createdAt = time.Now().Add(-25 * time.Hour)

	remaining := store.Sweep(24 * time.Hour)
	assert.Equal(t, 1, remaining, "sweep returns the live count after removal")

	_, err = store.Get(oldID)
	require.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Get(freshID)
	require.NoError(t, err)
}

func TestStoreSweepNeverIncreasesCount(t *testing.T) {
	store := newTestStore()
	for i := 0; i < 10; i++ {
		store.Create(&Session{status: StatusPlaying})
	}

	before := store.Count()
	remaining := store.Sweep(24 * time.Hour)
	assert.LessOrEqual(t, remaining, before)
	assert.Equal(t, store.Count(), remaining)
}
