package storage

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SessionStore keeps per-session values. Values are JSON encoded, so Get
// decodes into dest the same way regardless of the backend.
type SessionStore interface {
	// Get decodes the value stored under key into dest and reports whether
	// it was present.
	Get(ctx context.Context, sessionID, key string, dest any) (bool, error)
	// Set stores value under key and refreshes the session TTL
	Set(ctx context.Context, sessionID, key string, value any) error
	// Delete removes the given keys. Deleting missing keys is not an error.
	Delete(ctx context.Context, sessionID string, keys ...string) error
	// Ping checks the backend
	Ping(ctx context.Context) error
}

type memorySession struct {
	values    map[string][]byte
	updatedAt time.Time
}

// MemorySessionStore is an in-memory implementation for development
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*memorySession
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionStore creates a new in-memory session store
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// session returns the live session or nil. Expired sessions are dropped.
func (m *MemorySessionStore) session(sessionID string) *memorySession {
	session, exists := m.sessions[sessionID]
	if !exists {
		return nil
	}
	if m.ttl > 0 && m.now().Sub(session.updatedAt) > m.ttl {
		delete(m.sessions, sessionID)
		return nil
	}
	return session
}

// Get retrieves a session value
func (m *MemorySessionStore) Get(ctx context.Context, sessionID, key string, dest any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.session(sessionID)
	if session == nil {
		return false, nil
	}
	data, ok := session.values[key]
	if !ok {
		return false, nil
	}
	session.updatedAt = m.now()

	if err := decode(data, dest); err != nil {
		return false, fmt.Errorf("failed to read session key %s: %w", key, err)
	}
	return true, nil
}

// Set stores a session value
func (m *MemorySessionStore) Set(ctx context.Context, sessionID, key string, value any) error {
	if sessionID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}
	data, err := encode(value)
	if err != nil {
		return fmt.Errorf("failed to write session key %s: %w", key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.session(sessionID)
	if session == nil {
		session = &memorySession{values: make(map[string][]byte)}
		m.sessions[sessionID] = session
	}
	session.values[key] = data
	session.updatedAt = m.now()
	return nil
}

// Delete removes session values
func (m *MemorySessionStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.session(sessionID)
	if session == nil {
		return nil
	}
	for _, key := range keys {
		delete(session.values, key)
	}
	return nil
}

// Ping always succeeds for the in-memory store
func (m *MemorySessionStore) Ping(ctx context.Context) error {
	return nil
}
