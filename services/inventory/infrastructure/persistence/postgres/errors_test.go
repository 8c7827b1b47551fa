package postgres

import (
	"database/sql"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	inventory "github.com/ghuser/stocktracker/services/inventory/domain"
	"github.com/ghuser/stocktracker/services/inventory/infrastructure/persistence/postgres/db"
)

func TestTranslatePgError(t *testing.T) {
	tests := []struct {
		name string
		code string
		want error
	}{
		{"unique violation", "23505", inventory.ErrDuplicateName},
		{"check violation", "23514", inventory.ErrInvalidOperation},
		{"numeric out of range", "22003", inventory.ErrInvalidItem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translatePgError(&pgconn.PgError{Code: tt.code})
			if !errors.Is(got, tt.want) {
				t.Errorf("translatePgError(%s) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}

	t.Run("other errors pass through", func(t *testing.T) {
		raw := errors.New("connection reset")
		if got := translatePgError(raw); got != raw {
			t.Errorf("expected passthrough, got %v", got)
		}
	})
}

func TestNotFound(t *testing.T) {
	if !errors.Is(notFound(sql.ErrNoRows), inventory.ErrItemNotFound) {
		t.Error("sql.ErrNoRows should map to ErrItemNotFound")
	}
	other := errors.New("x")
	if notFound(other) != other {
		t.Error("non-ErrNoRows errors should pass through")
	}
}

func TestWrapErr(t *testing.T) {
	if wrapErr("op", nil) != nil {
		t.Fatal("nil should stay nil")
	}

	for _, domainErr := range []error{
		inventory.ErrItemNotFound,
		inventory.ErrInvalidOperation,
		inventory.ErrDuplicateName,
		inventory.NewValidationError(),
	} {
		if got := wrapErr("op", domainErr); got != domainErr {
			t.Errorf("domain error %v should pass through unchanged, got %v", domainErr, got)
		}
	}

	raw := errors.New("dial tcp: refused")
	got := wrapErr("query items", raw)
	if !errors.Is(got, inventory.ErrStorage) {
		t.Errorf("expected ErrStorage, got %v", got)
	}
	if !errors.Is(got, raw) {
		t.Errorf("expected cause to be preserved, got %v", got)
	}
}

func TestToInt32(t *testing.T) {
	if v, err := toInt32("quantity", 42); err != nil || v != 42 {
		t.Fatalf("toInt32(42) = %d, %v", v, err)
	}
	if _, err := toInt32("quantity", math.MaxInt32+1); !errors.Is(err, inventory.ErrInvalidItem) {
		t.Errorf("expected validation error above MaxInt32, got %v", err)
	}
	if _, err := toInt32("delta", math.MinInt32-1); !errors.Is(err, inventory.ErrInvalidItem) {
		t.Errorf("expected validation error below MinInt32, got %v", err)
	}
}

func TestRowToItem(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	row := db.InventoryItem{
		ID:           uuid.New(),
		Name:         "Milk",
		Quantity:     4,
		MinThreshold: 2,
		Category:     "BEVERAGE",
		CreatedAt:    time.Date(2024, 1, 1, 10, 0, 0, 0, loc),
		UpdatedAt:    time.Date(2024, 1, 2, 10, 0, 0, 0, loc),
	}
	item := rowToItem(row)
	if item.ID != row.ID || item.Name.String() != "Milk" || item.Quantity != 4 || item.MinThreshold != 2 {
		t.Errorf("unexpected mapping: %+v", item)
	}
	if item.Category.String() != "BEVERAGE" {
		t.Errorf("category = %s", item.Category)
	}
	if item.CreatedAt.Location() != time.UTC || item.UpdatedAt.Location() != time.UTC {
		t.Error("timestamps should be normalized to UTC")
	}
}
