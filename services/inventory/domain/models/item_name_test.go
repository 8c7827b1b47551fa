package models

import (
	"strings"
	"testing"
)

func TestNewItemName(t *testing.T) {
	t.Run("valid single character", func(t *testing.T) {
		n, err := NewItemName("a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.String() != "a" {
			t.Fatalf("expected %q, got %q", "a", n.String())
		}
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		n, err := NewItemName("  Coffee Beans \t")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.String() != "Coffee Beans" {
			t.Fatalf("expected %q, got %q", "Coffee Beans", n.String())
		}
	})

	t.Run("valid 60 characters", func(t *testing.T) {
		s := strings.Repeat("x", 60)
		if _, err := NewItemName(s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("60 multibyte characters are accepted", func(t *testing.T) {
		s := strings.Repeat("ž", 60)
		if _, err := NewItemName(s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("empty string returns error", func(t *testing.T) {
		if _, err := NewItemName(""); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("whitespace only returns error", func(t *testing.T) {
		if _, err := NewItemName("   "); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("61 characters returns error", func(t *testing.T) {
		_, err := NewItemName(strings.Repeat("x", 61))
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if err.Error() != "Name cannot be more than 60 characters" {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	})
}

func TestItemName_KeyAndSameAs(t *testing.T) {
	a := ItemName("Widget")
	b := ItemName("wIDGET")
	if a.Key() != "widget" {
		t.Fatalf("expected key %q, got %q", "widget", a.Key())
	}
	if !a.SameAs(b) {
		t.Fatal("expected names to match case-insensitively")
	}
	if a.SameAs("Widgets") {
		t.Fatal("expected exact match only, not prefix")
	}
}
