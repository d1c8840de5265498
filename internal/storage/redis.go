package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// SessionTTL is the default session TTL
	SessionTTL    = 60 * time.Minute
	sessionPrefix = "session:"
)

// NewRedisClient parses the Redis URL and checks the connection
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis URL is required")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// RedisSessionStore implements SessionStore with one Redis hash per session
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a new Redis session store
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

// key generates a Redis key for the given session ID
func (r *RedisSessionStore) key(sessionID string) string {
	return sessionPrefix + sessionID
}

// Get retrieves a session value and extends the session TTL
func (r *RedisSessionStore) Get(ctx context.Context, sessionID, key string, dest any) (bool, error) {
	data, err := r.client.HGet(ctx, r.key(sessionID), key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get session data: %w", err)
	}

	// Refresh TTL
	if err := r.client.Expire(ctx, r.key(sessionID), r.ttl).Err(); err != nil {
		return false, fmt.Errorf("failed to extend TTL: %w", err)
	}

	if err := decode(data, dest); err != nil {
		return false, fmt.Errorf("failed to read session key %s: %w", key, err)
	}
	return true, nil
}

// Set stores a session value with the session TTL
func (r *RedisSessionStore) Set(ctx context.Context, sessionID, key string, value any) error {
	if sessionID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}
	data, err := encode(value)
	if err != nil {
		return fmt.Errorf("failed to write session key %s: %w", key, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.key(sessionID), key, data)
		pipe.Expire(ctx, r.key(sessionID), r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set session data: %w", err)
	}
	return nil
}

// Delete removes session values
func (r *RedisSessionStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.HDel(ctx, r.key(sessionID), keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete session data: %w", err)
	}
	return nil
}

// Ping tests Redis connection
func (r *RedisSessionStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
