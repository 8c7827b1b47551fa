package services

import (
	"time"

	"github.com/ghuser/stocktracker/services/inventory/domain"
	"github.com/ghuser/stocktracker/services/inventory/domain/models"
)

// ApplyDelta computes the quantity after a QUICK adjustment. A positive delta
// adds stock, a negative one removes it. A result below zero returns
// domain.ErrInvalidOperation and the caller must not write.
func ApplyDelta(current, delta int) (int, error) {
	next := current + delta
	if next < 0 {
		return current, domain.ErrInvalidOperation
	}
	return next, nil
}

// Adjust returns a copy of item with delta applied and UpdatedAt set to now.
func Adjust(item *models.Item, delta int, now time.Time) (*models.Item, error) {
	q, err := ApplyDelta(item.Quantity, delta)
	if err != nil {
		return nil, err
	}
	out := item.Clone()
	out.Quantity = q
	out.UpdatedAt = now.UTC()
	return out, nil
}

// MergeRestock folds a create-or-merge candidate into the existing item with
// the same name: quantities add up as a restock, category is replaced, and the
// threshold is replaced only when the candidate carries a non-zero value.
func MergeRestock(existing, candidate *models.Item, now time.Time) *models.Item {
	out := existing.Clone()
	out.Quantity += candidate.Quantity
	if candidate.MinThreshold != 0 {
		out.MinThreshold = candidate.MinThreshold
	}
	if candidate.Category.Valid() {
		out.Category = candidate.Category
	}
	out.UpdatedAt = now.UTC()
	return out
}

// ApplyChanges returns a copy of item with each provided field overwritten.
// Applying the same changes twice yields the same item as applying them once.
func ApplyChanges(item *models.Item, ch ItemChanges, now time.Time) *models.Item {
	out := item.Clone()
	if ch.Name != nil {
		out.Name = *ch.Name
	}
	if ch.Quantity != nil {
		out.Quantity = *ch.Quantity
	}
	if ch.MinThreshold != nil {
		out.MinThreshold = *ch.MinThreshold
	}
	if ch.Category != nil {
		out.Category = *ch.Category
	}
	out.UpdatedAt = now.UTC()
	return out
}
