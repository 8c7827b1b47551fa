// Query bindings for queries/history.sql, hand-written in sqlc's layout.

package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const insertStockHistory = `-- name: InsertStockHistory :exec
INSERT INTO stock_history (id, item_id, item_name, quantity, recorded_at)
VALUES ($1, $2, $3, $4, $5)
`

type InsertStockHistoryParams struct {
	ID         uuid.UUID
	ItemID     uuid.UUID
	ItemName   string
	Quantity   int32
	RecordedAt time.Time
}

func (q *Queries) InsertStockHistory(ctx context.Context, arg InsertStockHistoryParams) error {
	_, err := q.db.ExecContext(ctx, insertStockHistory,
		arg.ID,
		arg.ItemID,
		arg.ItemName,
		arg.Quantity,
		arg.RecordedAt,
	)
	return err
}

const listStockHistory = `-- name: ListStockHistory :many
SELECT id, item_id, item_name, quantity, recorded_at
FROM stock_history
WHERE recorded_at >= $1
ORDER BY recorded_at DESC, id
LIMIT $2
`

type ListStockHistoryParams struct {
	Since   time.Time
	MaxRows sql.NullInt32
}

func (q *Queries) ListStockHistory(ctx context.Context, arg ListStockHistoryParams) ([]StockHistory, error) {
	rows, err := q.db.QueryContext(ctx, listStockHistory, arg.Since, arg.MaxRows)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []StockHistory
	for rows.Next() {
		var i StockHistory
		if err := rows.Scan(
			&i.ID,
			&i.ItemID,
			&i.ItemName,
			&i.Quantity,
			&i.RecordedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const pruneStockHistory = `-- name: PruneStockHistory :execrows
DELETE FROM stock_history
WHERE recorded_at < $1
`

func (q *Queries) PruneStockHistory(ctx context.Context, recordedAt time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, pruneStockHistory, recordedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
