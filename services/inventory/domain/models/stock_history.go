package models

import (
	"time"

	"github.com/google/uuid"
)

// StockHistoryEntry records the quantity an item reached after a QUICK
// adjustment. Entries are append-only.
type StockHistoryEntry struct {
	ID        uuid.UUID
	ItemID    uuid.UUID
	ItemName  string
	Quantity  int
	Timestamp time.Time
}

// NewStockHistoryEntry snapshots item at time at.
func NewStockHistoryEntry(item *Item, at time.Time) *StockHistoryEntry {
	return &StockHistoryEntry{
		ID:        uuid.New(),
		ItemID:    item.ID,
		ItemName:  item.Name.String(),
		Quantity:  item.Quantity,
		Timestamp: at.UTC(),
	}
}
