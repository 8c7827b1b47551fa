// Package cache holds the Redis read models of the inventory: single items
// and the low-stock snapshot polled by the notification endpoint.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/stocktracker/pkg/config"
)

const connectTimeout = 2 * time.Second

// RedisClient owns the pooled connection shared by the item cache and the
// session store.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient connects to REDIS_URL and pings it before returning.
func NewRedisClient(cfg *config.Config) (*RedisClient, error) {
	opts, err := redisOptions(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}
	return &RedisClient{client: rdb}, nil
}

// redisOptions parses url and applies pool limits sized for the API and
// worker, whose Redis calls are all single-key reads and small pipelines.
func redisOptions(url string) (*redis.Options, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolTimeout = 4 * time.Second
	return opts, nil
}

// Ping reports whether Redis answers. Used by /health.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the pool. A zero RedisClient closes without error.
func (r *RedisClient) Close() error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client exposes the go-redis client to the item cache and session store.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
