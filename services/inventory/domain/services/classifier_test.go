package services

import (
	"testing"

	"github.com/ghuser/stocktracker/services/inventory/domain/models"
)

func TestStatusPolicy_Classify(t *testing.T) {
	tests := []struct {
		name      string
		policy    StatusPolicy
		quantity  int
		threshold int
		want      models.StockStatus
	}{
		{"two-tier below threshold", TwoTier, 1, 5, models.StockStatusLow},
		{"two-tier at threshold", TwoTier, 5, 5, models.StockStatusLow},
		{"two-tier above threshold", TwoTier, 6, 5, models.StockStatusGood},
		{"two-tier zero threshold zero stock", TwoTier, 0, 0, models.StockStatusLow},
		{"two-tier never medium", TwoTier, 7, 5, models.StockStatusGood},
		{"three-tier at threshold", ThreeTier, 4, 4, models.StockStatusLow},
		{"three-tier just above threshold", ThreeTier, 5, 4, models.StockStatusMedium},
		{"three-tier at 1.5x", ThreeTier, 6, 4, models.StockStatusMedium},
		{"three-tier above 1.5x", ThreeTier, 7, 4, models.StockStatusGood},
		{"three-tier odd threshold 1.5x boundary", ThreeTier, 7, 5, models.StockStatusMedium},
		{"three-tier odd threshold past boundary", ThreeTier, 8, 5, models.StockStatusGood},
		{"three-tier zero threshold", ThreeTier, 1, 0, models.StockStatusGood},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.Classify(tt.quantity, tt.threshold); got != tt.want {
				t.Fatalf("Classify(%d, %d) = %s, want %s", tt.quantity, tt.threshold, got, tt.want)
			}
		})
	}
}

// TestClassify_LowMatchesIsLowStock checks the classifier's LOW branch and the
// low-stock filter agree on every small input, for both policies.
func TestClassify_LowMatchesIsLowStock(t *testing.T) {
	for _, p := range []StatusPolicy{TwoTier, ThreeTier} {
		for q := 0; q <= 20; q++ {
			for th := 0; th <= 20; th++ {
				low := p.Classify(q, th) == models.StockStatusLow
				if low != IsLowStock(q, th) {
					t.Fatalf("%s: Classify(%d,%d) LOW=%v but IsLowStock=%v", p, q, th, low, !low)
				}
			}
		}
	}
}

func TestParseStatusPolicy(t *testing.T) {
	if p, err := ParseStatusPolicy("three-tier"); err != nil || p != ThreeTier {
		t.Fatalf("got %v, %v", p, err)
	}
	if p, err := ParseStatusPolicy("two-tier"); err != nil || p != TwoTier {
		t.Fatalf("got %v, %v", p, err)
	}
	if _, err := ParseStatusPolicy("both"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}
