package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_Messages(t *testing.T) {
	if ErrItemNotFound.Error() != "item not found" {
		t.Fatalf("unexpected message: %q", ErrItemNotFound.Error())
	}
	if ErrInvalidOperation.Error() != "Cannot reduce quantity below 0" {
		t.Fatalf("unexpected message: %q", ErrInvalidOperation.Error())
	}
	if ErrInvalidItem.Error() != "invalid item" {
		t.Fatalf("unexpected message: %q", ErrInvalidItem.Error())
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("adjust quantity: %w", ErrInvalidOperation)
	if !errors.Is(wrapped, ErrInvalidOperation) {
		t.Fatal("errors.Is must match wrapped ErrInvalidOperation")
	}

	wrapped2 := fmt.Errorf("%w: %w", ErrStorage, errors.New("connection refused"))
	if !errors.Is(wrapped2, ErrStorage) {
		t.Fatal("errors.Is must match double-wrapped ErrStorage")
	}
}

func TestValidationError(t *testing.T) {
	t.Run("empty is nil", func(t *testing.T) {
		if err := NewValidationError().OrNil(); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})

	t.Run("matches ErrInvalidItem when wrapped", func(t *testing.T) {
		ve := NewValidationError()
		ve.Add("quantity", "Quantity cannot be negative")
		err := fmt.Errorf("create item: %w", ve.OrNil())

		if !errors.Is(err, ErrInvalidItem) {
			t.Fatal("errors.Is must match ErrInvalidItem")
		}
		var got *ValidationError
		if !errors.As(err, &got) {
			t.Fatal("errors.As must recover *ValidationError")
		}
		if got.Fields["quantity"] != "Quantity cannot be negative" {
			t.Fatalf("unexpected field message: %q", got.Fields["quantity"])
		}
	})

	t.Run("first message per field wins", func(t *testing.T) {
		ve := NewValidationError()
		ve.Add("name", "first")
		ve.Add("name", "second")
		if ve.Fields["name"] != "first" {
			t.Fatalf("expected first, got %q", ve.Fields["name"])
		}
	})

	t.Run("message is deterministic", func(t *testing.T) {
		ve := NewValidationError()
		ve.Add("name", "b")
		ve.Add("category", "a")
		want := "invalid item: category: a; name: b"
		if ve.Error() != want {
			t.Fatalf("got %q, want %q", ve.Error(), want)
		}
	})
}
