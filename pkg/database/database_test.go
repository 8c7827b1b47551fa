package database

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/ghuser/stocktracker/pkg/logger"
)

func TestNewPool_InvalidURL(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://nobody@127.0.0.1:1/none?connect_timeout=1", logger.Discard())
	if err == nil {
		t.Fatal("expected error for unreachable database, got nil")
	}
}

// Integration tests, skipped unless DATABASE_URL is set.
func TestDatabaseIntegration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}

	d, err := NewPool(context.Background(), url, logger.Discard())
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer d.Close()

	t.Run("Ping", func(t *testing.T) {
		if err := d.Ping(context.Background()); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})

	t.Run("WithTx_RollsBackOnError", func(t *testing.T) {
		sentinel := errors.New("boom")
		err := d.WithTx(context.Background(), func(tx *sql.Tx) error {
			if _, err := tx.Exec(`CREATE TEMP TABLE tx_probe (id int)`); err != nil {
				return err
			}
			return sentinel
		})
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected sentinel error, got %v", err)
		}
	})

	t.Run("WithTx_Commits", func(t *testing.T) {
		var got int
		err := d.WithTx(context.Background(), func(tx *sql.Tx) error {
			return tx.QueryRow(`SELECT 1`).Scan(&got)
		})
		if err != nil {
			t.Fatalf("WithTx: %v", err)
		}
		if got != 1 {
			t.Fatalf("expected 1, got %d", got)
		}
	})
}
