package services

import (
	"fmt"

	"github.com/ghuser/stocktracker/services/inventory/domain/models"
)

// StatusPolicy selects how quantity and threshold map to a StockStatus.
// A deployment runs exactly one policy; both share the LOW boundary of
// IsLowStock so the low-stock query and the classifier never disagree.
type StatusPolicy int

const (
	// TwoTier: LOW when quantity <= minThreshold, otherwise GOOD.
	TwoTier StatusPolicy = iota
	// ThreeTier: LOW when quantity <= minThreshold, MEDIUM up to 1.5x the
	// threshold, otherwise GOOD.
	ThreeTier
)

// ParseStatusPolicy accepts "two-tier" or "three-tier".
func ParseStatusPolicy(s string) (StatusPolicy, error) {
	switch s {
	case "two-tier":
		return TwoTier, nil
	case "three-tier":
		return ThreeTier, nil
	default:
		return TwoTier, fmt.Errorf("unknown status policy %q", s)
	}
}

func (p StatusPolicy) String() string {
	if p == ThreeTier {
		return "three-tier"
	}
	return "two-tier"
}

// IsLowStock is the single LOW boundary: quantity <= minThreshold.
func IsLowStock(quantity, minThreshold int) bool {
	return quantity <= minThreshold
}

// Classify derives the display status for quantity and minThreshold.
func (p StatusPolicy) Classify(quantity, minThreshold int) models.StockStatus {
	if IsLowStock(quantity, minThreshold) {
		return models.StockStatusLow
	}
	// quantity <= minThreshold*1.5, kept in integers.
	if p == ThreeTier && 2*quantity <= 3*minThreshold {
		return models.StockStatusMedium
	}
	return models.StockStatusGood
}

// ClassifyItem is Classify applied to an item.
func (p StatusPolicy) ClassifyItem(item *models.Item) models.StockStatus {
	return p.Classify(item.Quantity, item.MinThreshold)
}
