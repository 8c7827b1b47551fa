package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/stocktracker/pkg/config"
)

func TestDecodeItem(t *testing.T) {
	id := uuid.New()
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	vals := map[string]string{
		"id":            id.String(),
		"name":          "Milk",
		"quantity":      "4",
		"min_threshold": "2",
		"category":      "BEVERAGE",
		"created_at":    ts.Format(time.RFC3339Nano),
		"updated_at":    ts.Format(time.RFC3339Nano),
	}

	got, err := decodeItem(vals)
	if err != nil {
		t.Fatalf("decodeItem: %v", err)
	}
	if got.ID != id || got.Name != "Milk" || got.Quantity != 4 || got.MinThreshold != 2 || got.Category != "BEVERAGE" {
		t.Errorf("unexpected item: %+v", got)
	}
	if !got.UpdatedAt.Equal(ts) {
		t.Errorf("updated_at = %v, want %v", got.UpdatedAt, ts)
	}
}

func TestDecodeItem_BadFields(t *testing.T) {
	base := func() map[string]string {
		ts := time.Now().UTC().Format(time.RFC3339Nano)
		return map[string]string{
			"id": uuid.NewString(), "name": "x", "quantity": "1", "min_threshold": "0",
			"category": "OTHER", "created_at": ts, "updated_at": ts,
		}
	}
	for _, field := range []string{"id", "quantity", "min_threshold", "created_at", "updated_at"} {
		t.Run(field, func(t *testing.T) {
			vals := base()
			vals[field] = "garbage"
			if _, err := decodeItem(vals); err == nil {
				t.Errorf("expected error for corrupt %s", field)
			}
		})
	}
}

// Integration tests, skipped unless REDIS_URL is set.
func TestItemCacheIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	rc, err := NewRedisClient(&config.Config{RedisURL: redisURL})
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	c := NewItemCache(rc)
	ctx := context.Background()

	t.Run("Set_Get_Delete", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Millisecond)
		item := &CachedItem{ID: uuid.New(), Name: "Flour", Quantity: 3, MinThreshold: 5, Category: "FOOD", CreatedAt: now, UpdatedAt: now}
		if err := c.Set(ctx, item); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, err := c.Get(ctx, item.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Quantity != 3 || got.Name != "Flour" {
			t.Errorf("unexpected cached item: %+v", got)
		}
		if ttl := rc.Client().TTL(ctx, c.key(item.ID)).Val(); ttl <= 0 {
			t.Errorf("expected TTL to be set, got %v", ttl)
		}
		if err := c.Delete(ctx, item.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := c.Get(ctx, item.ID); !errors.Is(err, redis.Nil) {
			t.Errorf("expected redis.Nil after delete, got %v", err)
		}
	})

	t.Run("LowStockSnapshot", func(t *testing.T) {
		snap := &LowStockSnapshot{
			Items:      []CachedItem{{ID: uuid.New(), Name: "Salt", Quantity: 0, MinThreshold: 1, Category: "FOOD"}},
			Digest:     "abc",
			ComputedAt: time.Now().UTC(),
		}
		if err := c.SetLowStock(ctx, snap, time.Minute); err != nil {
			t.Fatalf("SetLowStock: %v", err)
		}
		got, err := c.GetLowStock(ctx)
		if err != nil {
			t.Fatalf("GetLowStock: %v", err)
		}
		if got.Digest != "abc" || len(got.Items) != 1 {
			t.Errorf("unexpected snapshot: %+v", got)
		}
		if err := c.InvalidateLowStock(ctx); err != nil {
			t.Fatalf("InvalidateLowStock: %v", err)
		}
		if _, err := c.GetLowStock(ctx); !errors.Is(err, redis.Nil) {
			t.Errorf("expected redis.Nil after invalidate, got %v", err)
		}
	})
}
