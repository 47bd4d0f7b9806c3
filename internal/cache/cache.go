// Package cache keeps public tracking results in Redis for a short time.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"sitrack/internal/events"
)

// redisClient is the part of *redis.Client the cache uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Tracking caches JSON values keyed by letter number.
type Tracking struct {
	client redisClient
	prefix string
	ttl    time.Duration
}

// NewTracking creates a cache storing entries under prefix for ttl.
func NewTracking(client redisClient, prefix string, ttl time.Duration) *Tracking {
	return &Tracking{client: client, prefix: prefix, ttl: ttl}
}

// Key returns the Redis key of a letter number. Letter numbers match
// case-insensitively, so the key is normalized the same way.
func (c *Tracking) Key(noSurat string) string {
	return c.prefix + strings.ToLower(strings.TrimSpace(noSurat))
}

// Get decodes the cached value into dst. It reports false on a miss.
func (c *Tracking) Get(ctx context.Context, noSurat string, dst any) (bool, error) {
	b, err := c.client.Get(ctx, c.Key(noSurat)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}
	return true, nil
}

// Set stores v.
func (c *Tracking) Set(ctx context.Context, noSurat string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.Key(noSurat), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Evict drops the entry of noSurat.
func (c *Tracking) Evict(ctx context.Context, noSurat string) error {
	if err := c.client.Del(ctx, c.Key(noSurat)).Err(); err != nil {
		return fmt.Errorf("cache evict: %w", err)
	}
	return nil
}

// Evictor returns a publisher that evicts the entry of every event's letter number.
func (c *Tracking) Evictor() events.Publisher {
	return events.PublisherFunc(func(ctx context.Context, e events.Event) error {
		if e.NoSurat == "" {
			return nil
		}
		return c.Evict(ctx, e.NoSurat)
	})
}
