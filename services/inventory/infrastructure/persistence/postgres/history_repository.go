package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/ghuser/stocktracker/pkg/database"
	"github.com/ghuser/stocktracker/services/inventory/domain/models"
	"github.com/ghuser/stocktracker/services/inventory/domain/repositories"
	"github.com/ghuser/stocktracker/services/inventory/infrastructure/persistence/postgres/db"
)

// StockHistoryRepository implements repositories.StockHistoryRepository.
// Rows are inserted by ItemRepository.AdjustQuantity.
type StockHistoryRepository struct {
	db *database.Database
}

// NewStockHistoryRepository returns a StockHistoryRepository on the given pool.
func NewStockHistoryRepository(database *database.Database) *StockHistoryRepository {
	return &StockHistoryRepository{db: database}
}

// List returns entries newest-first.
func (r *StockHistoryRepository) List(ctx context.Context, q repositories.HistoryQuery) ([]*models.StockHistoryEntry, error) {
	params := db.ListStockHistoryParams{Since: q.Since.UTC()}
	if q.Limit > 0 {
		limit, err := toInt32("limit", q.Limit)
		if err != nil {
			return nil, err
		}
		params.MaxRows = sql.NullInt32{Int32: limit, Valid: true}
	}

	rows, err := db.New(r.db.DB()).ListStockHistory(ctx, params)
	if err != nil {
		return nil, wrapErr("query stock history", err)
	}

	entries := make([]*models.StockHistoryEntry, len(rows))
	for i, row := range rows {
		entries[i] = &models.StockHistoryEntry{
			ID:        row.ID,
			ItemID:    row.ItemID,
			ItemName:  row.ItemName,
			Quantity:  int(row.Quantity),
			Timestamp: row.RecordedAt.UTC(),
		}
	}
	return entries, nil
}

// PruneBefore deletes entries recorded strictly before cutoff.
func (r *StockHistoryRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := db.New(r.db.DB()).PruneStockHistory(ctx, cutoff.UTC())
	if err != nil {
		return 0, wrapErr("prune stock history", err)
	}
	return n, nil
}
