package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewItem(t *testing.T) {
	name := ItemName("Test Item")

	t.Run("returns item with non-zero ID", func(t *testing.T) {
		item := NewItem(name, 5, 2, CategoryFood)
		if item.ID == (uuid.UUID{}) {
			t.Fatal("expected non-zero UUID for ID")
		}
	})

	t.Run("copies fields", func(t *testing.T) {
		item := NewItem(name, 5, 2, CategoryFood)
		if item.Name != name || item.Quantity != 5 || item.MinThreshold != 2 || item.Category != CategoryFood {
			t.Fatalf("unexpected item: %+v", item)
		}
	})

	t.Run("sets timestamps to approximately now UTC", func(t *testing.T) {
		before := time.Now().UTC()
		item := NewItem(name, 0, 0, CategoryOther)
		after := time.Now().UTC()
		if item.CreatedAt.Before(before) || item.CreatedAt.After(after) {
			t.Fatalf("CreatedAt %v not between %v and %v", item.CreatedAt, before, after)
		}
		if !item.UpdatedAt.Equal(item.CreatedAt) {
			t.Fatalf("UpdatedAt %v != CreatedAt %v", item.UpdatedAt, item.CreatedAt)
		}
	})

	t.Run("generates unique IDs on each call", func(t *testing.T) {
		item1 := NewItem(name, 1, 1, CategoryFood)
		item2 := NewItem(name, 1, 1, CategoryFood)
		if item1.ID == item2.ID {
			t.Fatal("expected unique IDs, got identical")
		}
	})
}

func TestItem_Clone(t *testing.T) {
	item := NewItem("Milk", 3, 1, CategoryBeverage)
	c := item.Clone()
	c.Quantity = 99
	if item.Quantity != 3 {
		t.Fatalf("clone mutated original: %d", item.Quantity)
	}
}

func TestItemPatch_Empty(t *testing.T) {
	if !(ItemPatch{}).Empty() {
		t.Fatal("zero patch must be empty")
	}
	q := 1
	if (ItemPatch{Quantity: &q}).Empty() {
		t.Fatal("patch with quantity must not be empty")
	}
}
