package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ContentCache stores rendered content by key. Entries may expire and can
// be invalidated through the tags they were stored with.
type ContentCache interface {
	// Get returns the cached value and whether it was found
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value until expire (nil for the cache default) and
	// associates it with tags
	Set(ctx context.Context, key, value string, expire *time.Time, tags []string) error
	// Delete removes the given keys
	Delete(ctx context.Context, keys ...string) error
	// DeleteByTags removes every entry stored with one of the tags
	DeleteByTags(ctx context.Context, tags ...string) error
}

type cacheEntry struct {
	value   string
	expires time.Time
	tags    []string
}

// MemoryContentCache is a size-bounded in-process content cache
type MemoryContentCache struct {
	mu      sync.Mutex
	entries *lru.Cache[string, cacheEntry]
	tagged  map[string]map[string]struct{}
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryContentCache creates a cache holding at most size entries. ttl is
// applied to entries stored without an explicit expiry; zero keeps them
// until evicted.
func NewMemoryContentCache(size int, ttl time.Duration) (*MemoryContentCache, error) {
	m := &MemoryContentCache{
		tagged: make(map[string]map[string]struct{}),
		ttl:    ttl,
		now:    time.Now,
	}

	entries, err := lru.NewWithEvict(size, m.untag)
	if err != nil {
		return nil, fmt.Errorf("failed to create content cache: %w", err)
	}
	m.entries = entries
	return m, nil
}

// untag runs as eviction callback, always with m.mu held
func (m *MemoryContentCache) untag(key string, entry cacheEntry) {
	for _, tag := range entry.tags {
		keys := m.tagged[tag]
		delete(keys, key)
		if len(keys) == 0 {
			delete(m.tagged, tag)
		}
	}
}

// Get returns a cached value
func (m *MemoryContentCache) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries.Get(key)
	if !ok {
		return "", false, nil
	}
	if !entry.expires.IsZero() && !m.now().Before(entry.expires) {
		m.entries.Remove(key)
		return "", false, nil
	}
	return entry.value, true, nil
}

// Set stores a value
func (m *MemoryContentCache) Set(ctx context.Context, key, value string, expire *time.Time, tags []string) error {
	entry := cacheEntry{value: value, tags: append([]string(nil), tags...)}
	switch {
	case expire != nil:
		entry.expires = *expire
	case m.ttl > 0:
		entry.expires = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// drop the tags of a replaced entry
	m.entries.Remove(key)
	m.entries.Add(key, entry)
	for _, tag := range entry.tags {
		if m.tagged[tag] == nil {
			m.tagged[tag] = make(map[string]struct{})
		}
		m.tagged[tag][key] = struct{}{}
	}
	return nil
}

// Delete removes values
func (m *MemoryContentCache) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		m.entries.Remove(key)
	}
	return nil
}

// DeleteByTags removes all values stored with one of the tags
func (m *MemoryContentCache) DeleteByTags(ctx context.Context, tags ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tag := range tags {
		for key := range m.tagged[tag] {
			m.entries.Remove(key)
		}
		delete(m.tagged, tag)
	}
	return nil
}

// Len returns the number of cached entries, including expired ones not yet
// removed
func (m *MemoryContentCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries.Len()
}
