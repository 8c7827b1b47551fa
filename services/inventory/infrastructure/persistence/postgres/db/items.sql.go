// Query bindings for queries/items.sql, hand-written in sqlc's layout.

package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const adjustItemQuantity = `-- name: AdjustItemQuantity :one
UPDATE inventory_items
SET quantity = quantity + $2, updated_at = $3
WHERE id = $1 AND quantity + $2 >= 0
RETURNING id, name, quantity, min_threshold, category, created_at, updated_at
`

type AdjustItemQuantityParams struct {
	ID        uuid.UUID
	Delta     int32
	UpdatedAt time.Time
}

func (q *Queries) AdjustItemQuantity(ctx context.Context, arg AdjustItemQuantityParams) (InventoryItem, error) {
	row := q.db.QueryRowContext(ctx, adjustItemQuantity, arg.ID, arg.Delta, arg.UpdatedAt)
	var i InventoryItem
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Quantity,
		&i.MinThreshold,
		&i.Category,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteItem = `-- name: DeleteItem :one
DELETE FROM inventory_items
WHERE id = $1
RETURNING id, name, quantity, min_threshold, category, created_at, updated_at
`

func (q *Queries) DeleteItem(ctx context.Context, id uuid.UUID) (InventoryItem, error) {
	row := q.db.QueryRowContext(ctx, deleteItem, id)
	var i InventoryItem
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Quantity,
		&i.MinThreshold,
		&i.Category,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const findItemByName = `-- name: FindItemByName :one
SELECT id, name, quantity, min_threshold, category, created_at, updated_at
FROM inventory_items
WHERE lower(name) = lower($1)
LIMIT 1
`

func (q *Queries) FindItemByName(ctx context.Context, lower string) (InventoryItem, error) {
	row := q.db.QueryRowContext(ctx, findItemByName, lower)
	var i InventoryItem
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Quantity,
		&i.MinThreshold,
		&i.Category,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getItemByID = `-- name: GetItemByID :one
SELECT id, name, quantity, min_threshold, category, created_at, updated_at
FROM inventory_items
WHERE id = $1
`

func (q *Queries) GetItemByID(ctx context.Context, id uuid.UUID) (InventoryItem, error) {
	row := q.db.QueryRowContext(ctx, getItemByID, id)
	var i InventoryItem
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Quantity,
		&i.MinThreshold,
		&i.Category,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertItem = `-- name: InsertItem :exec
INSERT INTO inventory_items (id, name, quantity, min_threshold, category, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type InsertItemParams struct {
	ID           uuid.UUID
	Name         string
	Quantity     int32
	MinThreshold int32
	Category     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) InsertItem(ctx context.Context, arg InsertItemParams) error {
	_, err := q.db.ExecContext(ctx, insertItem,
		arg.ID,
		arg.Name,
		arg.Quantity,
		arg.MinThreshold,
		arg.Category,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const itemExists = `-- name: ItemExists :one
SELECT EXISTS(SELECT 1 FROM inventory_items WHERE id = $1)
`

func (q *Queries) ItemExists(ctx context.Context, id uuid.UUID) (bool, error) {
	row := q.db.QueryRowContext(ctx, itemExists, id)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const listItems = `-- name: ListItems :many
SELECT id, name, quantity, min_threshold, category, created_at, updated_at
FROM inventory_items
ORDER BY name, id
`

func (q *Queries) ListItems(ctx context.Context) ([]InventoryItem, error) {
	rows, err := q.db.QueryContext(ctx, listItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []InventoryItem
	for rows.Next() {
		var i InventoryItem
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Quantity,
			&i.MinThreshold,
			&i.Category,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const listLowStockItems = `-- name: ListLowStockItems :many
SELECT id, name, quantity, min_threshold, category, created_at, updated_at
FROM inventory_items
WHERE quantity <= min_threshold
ORDER BY name, id
`

func (q *Queries) ListLowStockItems(ctx context.Context) ([]InventoryItem, error) {
	rows, err := q.db.QueryContext(ctx, listLowStockItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []InventoryItem
	for rows.Next() {
		var i InventoryItem
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Quantity,
			&i.MinThreshold,
			&i.Category,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const replaceItem = `-- name: ReplaceItem :one
UPDATE inventory_items
SET name          = COALESCE($1, name),
    quantity      = COALESCE($2, quantity),
    min_threshold = COALESCE($3, min_threshold),
    category      = COALESCE($4, category),
    updated_at    = $5
WHERE id = $6
RETURNING id, name, quantity, min_threshold, category, created_at, updated_at
`

type ReplaceItemParams struct {
	Name         sql.NullString
	Quantity     sql.NullInt32
	MinThreshold sql.NullInt32
	Category     sql.NullString
	UpdatedAt    time.Time
	ID           uuid.UUID
}

func (q *Queries) ReplaceItem(ctx context.Context, arg ReplaceItemParams) (InventoryItem, error) {
	row := q.db.QueryRowContext(ctx, replaceItem,
		arg.Name,
		arg.Quantity,
		arg.MinThreshold,
		arg.Category,
		arg.UpdatedAt,
		arg.ID,
	)
	var i InventoryItem
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Quantity,
		&i.MinThreshold,
		&i.Category,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const restockItem = `-- name: RestockItem :one
UPDATE inventory_items
SET quantity = quantity + $2, min_threshold = $3, category = $4, updated_at = $5
WHERE id = $1
RETURNING id, name, quantity, min_threshold, category, created_at, updated_at
`

type RestockItemParams struct {
	ID           uuid.UUID
	Added        int32
	MinThreshold int32
	Category     string
	UpdatedAt    time.Time
}

func (q *Queries) RestockItem(ctx context.Context, arg RestockItemParams) (InventoryItem, error) {
	row := q.db.QueryRowContext(ctx, restockItem,
		arg.ID,
		arg.Added,
		arg.MinThreshold,
		arg.Category,
		arg.UpdatedAt,
	)
	var i InventoryItem
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Quantity,
		&i.MinThreshold,
		&i.Category,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
