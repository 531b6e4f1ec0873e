// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps the redis client used for caching rendered search responses.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a redis-backed response cache.
func NewCache(addr, password string, ttl time.Duration) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: rdb, ttl: ttl}
}

// Ping tests the redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Get retrieves a cached response body. A cache miss returns redis.Nil.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.client.Get(ctx, key).Bytes()
}

// Set stores a response body under key for the cache TTL.
func (c *Cache) Set(ctx context.Context, key string, body []byte) error {
	return c.client.Set(ctx, key, body, c.ttl).Err()
}

// searchKey builds the cache key for a search query.
func searchKey(query string) string {
	return "search:" + query
}
