package db

import (
	"time"

	"github.com/google/uuid"
)

type InventoryItem struct {
	ID           uuid.UUID
	Name         string
	Quantity     int32
	MinThreshold int32
	Category     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type StockHistory struct {
	ID         uuid.UUID
	ItemID     uuid.UUID
	ItemName   string
	Quantity   int32
	RecordedAt time.Time
}
