package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cachePrefix = "cache:"
	tagPrefix   = "cache:tag:"
)

// RedisContentCache implements ContentCache with plain string keys and one
// Redis set per tag listing the keys stored with it
type RedisContentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisContentCache creates a Redis content cache. ttl applies to entries
// stored without an explicit expiry; zero keeps them without expiry.
func NewRedisContentCache(client *redis.Client, ttl time.Duration) *RedisContentCache {
	return &RedisContentCache{client: client, ttl: ttl}
}

func (r *RedisContentCache) key(key string) string {
	return cachePrefix + key
}

func (r *RedisContentCache) tagKey(tag string) string {
	return tagPrefix + tag
}

// Get returns a cached value
func (r *RedisContentCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get cache entry: %w", err)
	}
	return value, true, nil
}

// Set stores a value and registers it under its tags
func (r *RedisContentCache) Set(ctx context.Context, key, value string, expire *time.Time, tags []string) error {
	ttl := r.ttl
	if expire != nil {
		ttl = time.Until(*expire)
		if ttl <= 0 {
			// already expired, nothing worth storing
			return r.Delete(ctx, key)
		}
	}

	tagTTLs, err := r.tagTTLs(ctx, tags)
	if err != nil {
		return err
	}

	// EXPIRE works in whole seconds, round up so tags outlive the entry
	tagTTL := ttl.Truncate(time.Second) + time.Second

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(key), value, ttl)
		for i, tag := range tags {
			tagKey := r.tagKey(tag)
			pipe.SAdd(ctx, tagKey, key)
			switch current := tagTTLs[i]; {
			case ttl <= 0:
				pipe.Persist(ctx, tagKey)
			case current == -2 || (current >= 0 && current < tagTTL):
				pipe.Expire(ctx, tagKey, tagTTL)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}
	return nil
}

// tagTTLs returns the remaining lifetime of each tag set: -2 for a missing
// set, -1 for one without expiry. A tag set lives as long as its longest
// living entry.
func (r *RedisContentCache) tagTTLs(ctx context.Context, tags []string) ([]time.Duration, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	cmds := make([]*redis.DurationCmd, len(tags))
	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, tag := range tags {
			cmds[i] = pipe.TTL(ctx, r.tagKey(tag))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read cache tag TTLs: %w", err)
	}

	ttls := make([]time.Duration, len(tags))
	for i, cmd := range cmds {
		ttls[i] = cmd.Val()
	}
	return ttls, nil
}

// Delete removes values
func (r *RedisContentCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	redisKeys := make([]string, len(keys))
	for i, key := range keys {
		redisKeys[i] = r.key(key)
	}
	if err := r.client.Del(ctx, redisKeys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache entries: %w", err)
	}
	return nil
}

// DeleteByTags removes all values stored with one of the tags
func (r *RedisContentCache) DeleteByTags(ctx context.Context, tags ...string) error {
	for _, tag := range tags {
		keys, err := r.client.SMembers(ctx, r.tagKey(tag)).Result()
		if err != nil {
			return fmt.Errorf("failed to read cache tag %s: %w", tag, err)
		}
		if err := r.Delete(ctx, keys...); err != nil {
			return err
		}
		if err := r.client.Del(ctx, r.tagKey(tag)).Err(); err != nil {
			return fmt.Errorf("failed to delete cache tag %s: %w", tag, err)
		}
	}
	return nil
}
