package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seenEntry struct {
	ID   string `json:"id"`
	HTML string `json:"html"`
}

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour)

	var missing []seenEntry
	found, err := store.Get(ctx, "sid", "seen", &missing)
	require.NoError(t, err)
	assert.False(t, found)

	want := []seenEntry{{ID: "p1", HTML: "<li>p1</li>"}, {ID: "p2", HTML: "<li>p2</li>"}}
	require.NoError(t, store.Set(ctx, "sid", "seen", want))

	var got []seenEntry
	found, err = store.Get(ctx, "sid", "seen", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	// sessions are isolated
	found, err = store.Get(ctx, "other", "seen", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Delete(ctx, "sid", "seen", "unknown"))
	found, err = store.Get(ctx, "sid", "seen", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Minute)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "sid", "step", "summary"))

	now = now.Add(30 * time.Second)
	var step string
	found, err := store.Get(ctx, "sid", "step", &step)
	require.NoError(t, err)
	assert.True(t, found)

	// the read above refreshed the session
	now = now.Add(45 * time.Second)
	found, err = store.Get(ctx, "sid", "step", &step)
	require.NoError(t, err)
	assert.True(t, found)

	now = now.Add(2 * time.Minute)
	found, err = store.Get(ctx, "sid", "step", &step)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemorySessionStoreRejectsEmptySessionID(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	assert.Error(t, store.Set(context.Background(), "", "key", 1))
}
