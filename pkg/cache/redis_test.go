package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ghuser/stocktracker/pkg/config"
)

func TestRedisOptions(t *testing.T) {
	opts, err := redisOptions("redis://:secret@cache.internal:6380/2")
	if err != nil {
		t.Fatalf("redisOptions: %v", err)
	}
	if opts.Addr != "cache.internal:6380" || opts.DB != 2 || opts.Password != "secret" {
		t.Errorf("unexpected connection options: addr=%s db=%d", opts.Addr, opts.DB)
	}
	if opts.PoolSize != 10 || opts.MinIdleConns != 2 || opts.MaxRetries != 3 {
		t.Errorf("unexpected pool options: %+v", opts)
	}
	if opts.ReadTimeout != 3*time.Second {
		t.Errorf("ReadTimeout = %s", opts.ReadTimeout)
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	if _, err := NewRedisClient(&config.Config{RedisURL: "not-a-valid-url"}); err == nil {
		t.Fatal("expected error for invalid URL")
	}
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	if _, err := NewRedisClient(&config.Config{RedisURL: "redis://localhost:19999"}); err == nil {
		t.Fatal("expected error when Redis is unreachable")
	}
}

func TestRedisClient_ZeroValueClose(t *testing.T) {
	if err := (&RedisClient{}).Close(); err != nil {
		t.Fatalf("Close on zero client: %v", err)
	}
}

func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	rc, err := NewRedisClient(&config.Config{RedisURL: redisURL})
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	if err := rc.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if rc.Client() == nil {
		t.Fatal("expected non-nil underlying client")
	}
}
