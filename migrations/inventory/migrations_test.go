package inventory

import (
	"io/fs"
	"strings"
	"testing"
)

func TestFS_ContainsOrderedGooseMigrations(t *testing.T) {
	names, err := fs.Glob(FS, "*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(names) < 2 {
		t.Fatalf("expected at least 2 migrations, got %v", names)
	}
	for i, name := range names {
		data, err := fs.ReadFile(FS, name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		body := string(data)
		if !strings.Contains(body, "-- +goose Up") || !strings.Contains(body, "-- +goose Down") {
			t.Errorf("%s: missing goose Up/Down annotations", name)
		}
		if i > 0 && names[i-1] >= name {
			t.Errorf("migrations out of order: %s before %s", names[i-1], name)
		}
	}
}

func TestFS_ItemsTableEnforcesNonNegativeQuantity(t *testing.T) {
	data, err := fs.ReadFile(FS, "00001_create_inventory.sql")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "CHECK (quantity >= 0)") {
		t.Error("inventory_items must reject negative quantities at the storage level")
	}
}
