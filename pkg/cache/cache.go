// Package cache is a Redis-backed store for WordPress API responses. Reads
// go through it; writes to the API invalidate the affected key prefix. Redis
// being down degrades to cache misses, never to request failures.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 5 * time.Minute

type Cache struct {
	rdb    *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

func New(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{
		rdb:    rdb,
		logger: logger.With(slog.String("component", "cache")),
		ttl:    ttl,
	}
}

// Key builds the cache key for one API read. Query values are encoded in
// sorted order so equivalent requests share an entry.
func Key(siteID, path string, query url.Values) string {
	key := "wp:" + siteID + ":" + path
	if encoded := query.Encode(); encoded != "" {
		key += "?" + encoded
	}
	return key
}

// Prefix builds the invalidation prefix covering every read under a
// resource path.
func Prefix(siteID, path string) string {
	return "wp:" + siteID + ":" + path
}

// Get returns the cached payload and whether it was present. Errors count
// as misses.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("cache read failed (degraded mode)",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return nil, false
	}
	return payload, true
}

// Set stores a payload under the cache TTL.
func (c *Cache) Set(ctx context.Context, key string, payload []byte) {
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed (degraded mode)",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

// Invalidate deletes every key under prefix and returns how many were
// removed.
func (c *Cache) Invalidate(ctx context.Context, prefix string) int {
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			c.logger.Warn("cache invalidation scan failed (degraded mode)",
				slog.String("prefix", prefix),
				slog.Any("error", err),
			)
			return removed
		}
		if len(keys) > 0 {
			deleted, err := c.rdb.Del(ctx, keys...).Result()
			if err != nil {
				c.logger.Warn("cache invalidation delete failed (degraded mode)",
					slog.String("prefix", prefix),
					slog.Any("error", err),
				)
			}
			removed += int(deleted)
		}
		cursor = next
		if cursor == 0 {
			return removed
		}
	}
}
