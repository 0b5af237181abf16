// Package cache stores normalized payloads in Redis so repeat requests skip
// the upstream fetch and decode entirely.
//
// The cache holds canonical JSON only — raw upstream bytes are never cached,
// so a cache hit always serves the reconciled shape.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin JSON wrapper over a Redis client. A nil Redis client
// disables caching: Get always misses and Set is a no-op, so callers never
// need to branch on whether Redis is configured.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New constructs a Cache. rdb may be nil to disable caching.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Get loads the cached value for key into dest. The boolean reports whether
// the key was present; a miss is not an error.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, nil
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache.Cache.Get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache.Cache.Get %s: unmarshal: %w", key, err)
	}
	return true, nil
}

// Set stores value under key as JSON with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if c == nil || c.rdb == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache.Cache.Set %s: marshal: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache.Cache.Set %s: %w", key, err)
	}
	return nil
}

// Connect opens a Redis client for addr, or returns nil when addr is empty
// (caching disabled).
func Connect(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}
