// Package cache provides Redis cache access layer.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache provides Redis cache access methods.
type Cache struct {
	client *redis.Client
}

// Options tunes the Redis client. Zero values keep the defaults.
type Options struct {
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
}

// New creates a new Cache with a Redis client and verifies connectivity.
func New(ctx context.Context, redisURL string, opts ...Options) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute
	for _, o := range opts {
		if o.PoolSize > 0 {
			opt.PoolSize = o.PoolSize
		}
		if o.MinIdleConns > 0 {
			opt.MinIdleConns = o.MinIdleConns
		}
		if o.DialTimeout > 0 {
			opt.DialTimeout = o.DialTimeout
		}
	}

	return NewFromClient(ctx, redis.NewClient(opt))
}

// NewFromClient wraps an existing client after a ping.
func NewFromClient(ctx context.Context, client *redis.Client) (*Cache, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return &Cache{client: client}, nil
}

// Ping checks Redis connectivity. Used by the readiness probe.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Client returns the underlying Redis client.
func (c *Cache) Client() *redis.Client {
	return c.client
}
