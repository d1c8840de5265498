package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestNewRedisClientRequiresURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "")
	assert.Error(t, err)
}

func TestRedisSessionStore(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	store := NewRedisSessionStore(client, 10*time.Minute)

	want := []seenEntry{{ID: "p1", HTML: "<li>p1</li>"}}
	require.NoError(t, store.Set(ctx, "sid", "seen", want))
	assert.Equal(t, 10*time.Minute, mr.TTL("session:sid"))

	var got []seenEntry
	found, err := store.Get(ctx, "sid", "seen", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	found, err = store.Get(ctx, "sid", "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Delete(ctx, "sid", "seen"))
	found, err = store.Get(ctx, "sid", "seen", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Ping(ctx))
}

func TestRedisSessionStoreExpiry(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	store := NewRedisSessionStore(client, time.Minute)

	require.NoError(t, store.Set(ctx, "sid", "step", "summary"))
	mr.FastForward(2 * time.Minute)

	var step string
	found, err := store.Get(ctx, "sid", "step", &step)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisContentCache(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	cache := NewRedisContentCache(client, time.Hour)

	require.NoError(t, cache.Set(ctx, "p1", "v1", nil, []string{"product", "product-p1"}))
	require.NoError(t, cache.Set(ctx, "p2", "v2", nil, []string{"product"}))
	assert.Equal(t, time.Hour, mr.TTL("cache:p1"))

	value, found, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v1", value)

	require.NoError(t, cache.DeleteByTags(ctx, "product-p1"))
	_, found, _ = cache.Get(ctx, "p1")
	assert.False(t, found)
	_, found, _ = cache.Get(ctx, "p2")
	assert.True(t, found)

	require.NoError(t, cache.DeleteByTags(ctx, "product"))
	_, found, _ = cache.Get(ctx, "p2")
	assert.False(t, found)
	assert.False(t, mr.Exists("cache:tag:product"))
}

func TestRedisContentCacheExplicitExpiry(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	cache := NewRedisContentCache(client, 0)

	expire := time.Now().Add(time.Minute)
	require.NoError(t, cache.Set(ctx, "p1", "v1", &expire, nil))
	mr.FastForward(2 * time.Minute)

	_, found, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, found)

	past := time.Now().Add(-time.Minute)
	require.NoError(t, cache.Set(ctx, "p2", "v2", &past, nil))
	_, found, _ = cache.Get(ctx, "p2")
	assert.False(t, found)
}

func TestRedisContentCacheTagsExpireWithEntries(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	cache := NewRedisContentCache(client, time.Minute)

	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("k%d", i)
		require.NoError(t, cache.Set(ctx, key, "v", nil, []string{"product", "product-" + key}))
	}
	assert.Greater(t, mr.TTL("cache:tag:product"), time.Duration(0))

	mr.FastForward(time.Hour)

	assert.False(t, mr.Exists("cache:tag:product"))
	assert.Empty(t, mr.Keys())
}

func TestRedisContentCacheTagOutlivesShorterEntries(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	cache := NewRedisContentCache(client, 0)

	long := time.Now().Add(time.Hour)
	short := time.Now().Add(time.Minute)
	require.NoError(t, cache.Set(ctx, "p1", "v1", &long, []string{"product"}))
	require.NoError(t, cache.Set(ctx, "p2", "v2", &short, []string{"product"}))

	mr.FastForward(2 * time.Minute)
	require.True(t, mr.Exists("cache:tag:product"))

	require.NoError(t, cache.DeleteByTags(ctx, "product"))
	_, found, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisContentCacheTagsWithoutExpiry(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	cache := NewRedisContentCache(client, 0)

	require.NoError(t, cache.Set(ctx, "p1", "v1", nil, []string{"product"}))
	mr.FastForward(time.Hour)

	assert.True(t, mr.Exists("cache:tag:product"))
	assert.Equal(t, time.Duration(0), mr.TTL("cache:tag:product"))
}
