package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// ItemCacheTTL is the time-to-live for cached items.
	ItemCacheTTL = 24 * time.Hour

	itemCacheKeyPrefix = "inventory:item"
	lowStockKey        = "inventory:low_stock"
)

// CachedItem is the denormalized read model stored in Redis.
// Fields are stored as a Redis hash.
type CachedItem struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	MinThreshold int       `json:"min_threshold"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LowStockSnapshot is the cached result of the low-stock query together with
// its digest, refreshed by the worker after every stock change.
type LowStockSnapshot struct {
	Items      []CachedItem `json:"items"`
	Digest     string       `json:"digest"`
	ComputedAt time.Time    `json:"computed_at"`
}

// ItemCache provides structured read/write operations for item cache entries.
// Key format: "inventory:item:{itemID}"
type ItemCache struct {
	client *RedisClient
}

// NewItemCache creates a new ItemCache backed by the given RedisClient.
func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get retrieves a cached item by ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ItemCache) Get(ctx context.Context, itemID uuid.UUID) (*CachedItem, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}
	return decodeItem(vals)
}

// Set writes a cached item as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) error {
	key := c.key(item.ID)
	pipe := c.client.Client().TxPipeline()
	pipe.HSet(ctx, key,
		"id", item.ID.String(),
		"name", item.Name,
		"quantity", strconv.Itoa(item.Quantity),
		"min_threshold", strconv.Itoa(item.MinThreshold),
		"category", item.Category,
		"created_at", item.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at", item.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, ItemCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached item.
func (c *ItemCache) Delete(ctx context.Context, itemID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// GetLowStock returns the cached low-stock snapshot, or redis.Nil when absent.
func (c *ItemCache) GetLowStock(ctx context.Context) (*LowStockSnapshot, error) {
	raw, err := c.client.Client().Get(ctx, lowStockKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, redis.Nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get low stock: %w", err)
	}
	var snap LowStockSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("cache decode low stock: %w", err)
	}
	return &snap, nil
}

// SetLowStock stores snap for ttl. A zero ttl keeps it until invalidated.
func (c *ItemCache) SetLowStock(ctx context.Context, snap *LowStockSnapshot, ttl time.Duration) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cache encode low stock: %w", err)
	}
	if err := c.client.Client().Set(ctx, lowStockKey, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set low stock: %w", err)
	}
	return nil
}

// InvalidateLowStock drops the low-stock snapshot so the next read recomputes it.
func (c *ItemCache) InvalidateLowStock(ctx context.Context) error {
	if err := c.client.Client().Del(ctx, lowStockKey).Err(); err != nil {
		return fmt.Errorf("cache invalidate low stock: %w", err)
	}
	return nil
}

// key builds the Redis key: "inventory:item:{itemID}"
func (c *ItemCache) key(itemID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", itemCacheKeyPrefix, itemID)
}

func decodeItem(vals map[string]string) (*CachedItem, error) {
	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	quantity, err := strconv.Atoi(vals["quantity"])
	if err != nil {
		return nil, fmt.Errorf("cache parse quantity: %w", err)
	}
	threshold, err := strconv.Atoi(vals["min_threshold"])
	if err != nil {
		return nil, fmt.Errorf("cache parse min_threshold: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}

	return &CachedItem{
		ID:           id,
		Name:         vals["name"],
		Quantity:     quantity,
		MinThreshold: threshold,
		Category:     vals["category"],
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}
