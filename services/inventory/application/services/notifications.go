package services

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"

	"github.com/ghuser/stocktracker/services/inventory/domain/models"
)

// LowStockSummary is the payload behind the low-stock notification.
type LowStockSummary struct {
	Items  []*models.Item
	Digest string
}

// Count returns the number of low-stock items.
func (s LowStockSummary) Count() int { return len(s.Items) }

// Open reports whether the notification should be shown to a browser that
// last dismissed dismissedDigest.
func (s LowStockSummary) Open(dismissedDigest string) bool {
	return len(s.Items) > 0 && s.Digest != dismissedDigest
}

// LowStockDigest hashes (id, quantity, minThreshold) of every item so any
// change to the low-stock set, or to a member's levels, changes the digest.
// Input order does not matter.
func LowStockDigest(items []*models.Item) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = it.ID.String() + ":" + strconv.Itoa(it.Quantity) + ":" + strconv.Itoa(it.MinThreshold)
	}
	sort.Strings(lines)

	h := sha256.New()
	for _, l := range lines {
		h.Write([]byte(l))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
