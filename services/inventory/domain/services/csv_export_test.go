package services

import (
	"testing"

	"github.com/ghuser/stocktracker/services/inventory/domain/models"
)

func TestConvertToCSV(t *testing.T) {
	t.Run("single item", func(t *testing.T) {
		items := []*models.Item{{Name: "Test Item", Category: models.CategoryFood, Quantity: 5, MinThreshold: 2}}
		want := "Name,Category,Current Quantity,Min Threshold\nTest Item,food,5,2"
		if got := ConvertToCSV(items); got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("no items is header only", func(t *testing.T) {
		want := "Name,Category,Current Quantity,Min Threshold"
		if got := ConvertToCSV(nil); got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("multiple rows without trailing newline", func(t *testing.T) {
		items := []*models.Item{
			{Name: "Cola", Category: models.CategoryBeverage, Quantity: 12, MinThreshold: 6},
			{Name: "Napkins", Category: models.CategorySupplies, Quantity: 0, MinThreshold: 1},
		}
		want := "Name,Category,Current Quantity,Min Threshold\nCola,beverage,12,6\nNapkins,supplies,0,1"
		if got := ConvertToCSV(items); got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})
}
