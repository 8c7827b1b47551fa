package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the inventory repository inside the write
// transaction (outbox).
const (
	TopicItemCreated   = "inventory.item_created"
	TopicItemUpdated   = "inventory.item_updated"
	TopicStockAdjusted = "inventory.stock_adjusted"
	TopicItemDeleted   = "inventory.item_deleted"
)

// Topics lists every topic the worker subscribes to.
var Topics = []string{TopicItemCreated, TopicItemUpdated, TopicStockAdjusted, TopicItemDeleted}

// ItemChangedEvent is the payload on all inventory topics. Delta is set only
// on stock_adjusted and restocks via create-or-merge.
type ItemChangedEvent struct {
	EventID      uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version      int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID       uuid.UUID `json:"item_id"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	MinThreshold int       `json:"min_threshold"`
	Category     string    `json:"category"`
	Delta        int       `json:"delta,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
