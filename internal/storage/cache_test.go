package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, size int) *MemoryContentCache {
	t.Helper()
	cache, err := NewMemoryContentCache(size, 0)
	require.NoError(t, err)
	return cache
}

func TestMemoryContentCacheGetSet(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t, 8)

	_, found, err := cache.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, "k1", "<div>1</div>", nil, nil))
	value, found, err := cache.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "<div>1</div>", value)

	require.NoError(t, cache.Delete(ctx, "k1"))
	_, found, _ = cache.Get(ctx, "k1")
	assert.False(t, found)
}

func TestMemoryContentCacheExpiry(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t, 8)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	expire := now.Add(time.Minute)
	require.NoError(t, cache.Set(ctx, "k1", "v1", &expire, []string{"product"}))

	_, found, _ := cache.Get(ctx, "k1")
	assert.True(t, found)

	now = now.Add(time.Minute)
	_, found, _ = cache.Get(ctx, "k1")
	assert.False(t, found)
	assert.Empty(t, cache.tagged)
}

func TestMemoryContentCacheDefaultTTL(t *testing.T) {
	ctx := context.Background()
	cache, err := NewMemoryContentCache(8, time.Hour)
	require.NoError(t, err)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, "k1", "v1", nil, nil))
	now = now.Add(2 * time.Hour)
	_, found, _ := cache.Get(ctx, "k1")
	assert.False(t, found)
}

func TestMemoryContentCacheDeleteByTags(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t, 8)

	require.NoError(t, cache.Set(ctx, "p1", "v1", nil, []string{"product", "product-p1"}))
	require.NoError(t, cache.Set(ctx, "p2", "v2", nil, []string{"product", "product-p2"}))
	require.NoError(t, cache.Set(ctx, "s1", "v3", nil, []string{"supplier"}))

	require.NoError(t, cache.DeleteByTags(ctx, "product-p1"))
	_, found, _ := cache.Get(ctx, "p1")
	assert.False(t, found)
	_, found, _ = cache.Get(ctx, "p2")
	assert.True(t, found)

	require.NoError(t, cache.DeleteByTags(ctx, "product"))
	_, found, _ = cache.Get(ctx, "p2")
	assert.False(t, found)
	_, found, _ = cache.Get(ctx, "s1")
	assert.True(t, found)
	assert.Equal(t, 1, cache.Len())
}

func TestMemoryContentCacheEvictionDropsTags(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t, 2)

	require.NoError(t, cache.Set(ctx, "p1", "v1", nil, []string{"product-p1"}))
	require.NoError(t, cache.Set(ctx, "p2", "v2", nil, []string{"product-p2"}))
	require.NoError(t, cache.Set(ctx, "p3", "v3", nil, []string{"product-p3"}))

	assert.Equal(t, 2, cache.Len())
	assert.NotContains(t, cache.tagged, "product-p1")
	assert.Contains(t, cache.tagged, "product-p3")
}

func TestMemoryContentCacheReplaceUpdatesTags(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t, 4)

	require.NoError(t, cache.Set(ctx, "k", "old", nil, []string{"a"}))
	require.NoError(t, cache.Set(ctx, "k", "new", nil, []string{"b"}))

	require.NoError(t, cache.DeleteByTags(ctx, "a"))
	value, found, _ := cache.Get(ctx, "k")
	assert.True(t, found)
	assert.Equal(t, "new", value)
}
