// Package cache provides a small redis-backed cache-aside helper for catalog
// reads. A nil *Cache is valid and disables caching entirely, so callers can
// wire it unconditionally.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New connects to redis at addr. An empty addr returns a nil cache, which
// every method treats as a no-op miss.
func New(ctx context.Context, addr, prefix string, ttl time.Duration) (*Cache, error) {
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}

	return &Cache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

// Get unmarshals the cached value for key into dest. The bool reports a hit.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}

		return false, fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal error: %w", err)
	}

	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	return nil
}

// InvalidatePrefix drops every key under the cache's prefix matching pattern.
func (c *Cache) InvalidatePrefix(ctx context.Context, pattern string) error {
	if c == nil {
		return nil
	}

	iter := c.client.Scan(ctx, 0, c.prefix+pattern+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete error: %w", err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan error: %w", err)
	}

	return nil
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}

	return c.client.Close()
}
