package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is the core aggregate for the inventory bounded context.
// Quantity is never negative once persisted.
type Item struct {
	ID           uuid.UUID
	Name         ItemName
	Quantity     int
	MinThreshold int
	Category     Category
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewItem constructs an Item with a generated ID and current timestamps.
// Field constraints are enforced by the domain validator, not here.
func NewItem(name ItemName, quantity, minThreshold int, category Category) *Item {
	now := time.Now().UTC()
	return &Item{
		ID:           uuid.New(),
		Name:         name,
		Quantity:     quantity,
		MinThreshold: minThreshold,
		Category:     category,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Clone returns a copy that can be mutated without touching the receiver.
func (i *Item) Clone() *Item {
	c := *i
	return &c
}

// CreateItemInput is the payload of create-or-merge.
type CreateItemInput struct {
	Name         string
	Quantity     int
	MinThreshold int
	Category     string
}

// ItemPatch is a FULL-mode replacement. Nil fields are left untouched.
type ItemPatch struct {
	Name         *string
	Quantity     *int
	MinThreshold *int
	Category     *string
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Quantity == nil && p.MinThreshold == nil && p.Category == nil
}

// ItemChanges is a validated ItemPatch. Stores write only the non-nil
// columns so a concurrent QUICK adjustment is never overwritten by an edit
// that left quantity alone.
type ItemChanges struct {
	Name         *ItemName
	Quantity     *int
	MinThreshold *int
	Category     *Category
}
