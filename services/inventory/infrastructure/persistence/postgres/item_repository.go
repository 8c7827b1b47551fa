package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/stocktracker/pkg/database"
	"github.com/ghuser/stocktracker/pkg/events"
	inventory "github.com/ghuser/stocktracker/services/inventory/domain"
	domainevents "github.com/ghuser/stocktracker/services/inventory/domain/events"
	"github.com/ghuser/stocktracker/services/inventory/domain/models"
	"github.com/ghuser/stocktracker/services/inventory/infrastructure/persistence/postgres/db"
)

// PostgreSQL error codes the repository translates into domain errors.
const (
	pgUniqueViolation   = "23505"
	pgCheckViolation    = "23514"
	pgNumericOutOfRange = "22003"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
	now func() time.Time
}

// NewItemRepository returns an ItemRepository backed by the given connection pool
// and event bus. Every write publishes its event inside the write transaction.
// A nil bus disables publishing.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, bus: bus, now: func() time.Time { return time.Now().UTC() }}
}

// Create inserts a new Item and publishes inventory.item_created.
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	quantity, err := toInt32("quantity", item.Quantity)
	if err != nil {
		return err
	}
	threshold, err := toInt32("minThreshold", item.MinThreshold)
	if err != nil {
		return err
	}

	err = r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if err := q.InsertItem(ctx, db.InsertItemParams{
			ID:           item.ID,
			Name:         item.Name.String(),
			Quantity:     quantity,
			MinThreshold: threshold,
			Category:     item.Category.String(),
			CreatedAt:    item.CreatedAt,
			UpdatedAt:    item.UpdatedAt,
		}); err != nil {
			return translatePgError(err)
		}
		return r.publish(ctx, tx, domainevents.TopicItemCreated, item, 0)
	})
	return wrapErr("insert item", err)
}

// GetByID returns ErrItemNotFound if no row matches.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row, err := db.New(r.db.DB()).GetItemByID(ctx, id)
	if err != nil {
		return nil, wrapErr("query item", notFound(err))
	}
	return rowToItem(row), nil
}

// FindByName matches lower(name) against the lowered input.
func (r *ItemRepository) FindByName(ctx context.Context, name models.ItemName) (*models.Item, error) {
	row, err := db.New(r.db.DB()).FindItemByName(ctx, name.String())
	if err != nil {
		return nil, wrapErr("query item by name", notFound(err))
	}
	return rowToItem(row), nil
}

// List returns all items ordered by name.
func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListItems(ctx)
	if err != nil {
		return nil, wrapErr("query items", err)
	}
	return rowsToItems(rows), nil
}

// ListLowStock returns items where quantity <= min_threshold ordered by name.
func (r *ItemRepository) ListLowStock(ctx context.Context) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListLowStockItems(ctx)
	if err != nil {
		return nil, wrapErr("query low stock items", err)
	}
	return rowsToItems(rows), nil
}

// Restock adds to the stored quantity rather than writing merged.Quantity, so
// concurrent restocks of the same item never lose an increment.
func (r *ItemRepository) Restock(ctx context.Context, merged *models.Item, added int) (*models.Item, error) {
	add, err := toInt32("quantity", added)
	if err != nil {
		return nil, err
	}
	threshold, err := toInt32("minThreshold", merged.MinThreshold)
	if err != nil {
		return nil, err
	}

	var out *models.Item
	err = r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).RestockItem(ctx, db.RestockItemParams{
			ID:           merged.ID,
			Added:        add,
			MinThreshold: threshold,
			Category:     merged.Category.String(),
			UpdatedAt:    merged.UpdatedAt,
		})
		if err != nil {
			return translatePgError(notFound(err))
		}
		out = rowToItem(row)
		return r.publish(ctx, tx, domainevents.TopicItemUpdated, out, added)
	})
	if err != nil {
		return nil, wrapErr("restock item", err)
	}
	return out, nil
}

// Replace writes only the columns set in ch. Unset columns are COALESCEd to
// their stored value inside the UPDATE, so an edit that leaves quantity alone
// never undoes a quick adjustment committed after the caller read the item.
func (r *ItemRepository) Replace(ctx context.Context, id uuid.UUID, ch models.ItemChanges, updatedAt time.Time) (*models.Item, error) {
	params := db.ReplaceItemParams{ID: id, UpdatedAt: updatedAt}
	if ch.Name != nil {
		params.Name = sql.NullString{String: ch.Name.String(), Valid: true}
	}
	if ch.Category != nil {
		params.Category = sql.NullString{String: ch.Category.String(), Valid: true}
	}
	if ch.Quantity != nil {
		q, err := toInt32("quantity", *ch.Quantity)
		if err != nil {
			return nil, err
		}
		params.Quantity = sql.NullInt32{Int32: q, Valid: true}
	}
	if ch.MinThreshold != nil {
		t, err := toInt32("minThreshold", *ch.MinThreshold)
		if err != nil {
			return nil, err
		}
		params.MinThreshold = sql.NullInt32{Int32: t, Valid: true}
	}

	var out *models.Item
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).ReplaceItem(ctx, params)
		if err != nil {
			return translatePgError(notFound(err))
		}
		out = rowToItem(row)
		return r.publish(ctx, tx, domainevents.TopicItemUpdated, out, 0)
	})
	if err != nil {
		return nil, wrapErr("replace item", err)
	}
	return out, nil
}

// AdjustQuantity applies delta with a single conditional UPDATE so the
// non-negative check and the write cannot interleave with another adjustment.
// When the UPDATE matches no row, an existence probe inside the same
// transaction tells a missing item apart from an insufficient quantity.
func (r *ItemRepository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int, recordHistory bool) (*models.Item, error) {
	d, err := toInt32("delta", delta)
	if err != nil {
		if delta < 0 {
			// No stored quantity can absorb a decrease this large.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, inventory.ErrInvalidOperation
		}
		return nil, err
	}

	var out *models.Item
	err = r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		now := r.now()
		row, err := q.AdjustItemQuantity(ctx, db.AdjustItemQuantityParams{
			ID:        id,
			Delta:     d,
			UpdatedAt: now,
		})
		if errors.Is(err, sql.ErrNoRows) {
			exists, existsErr := q.ItemExists(ctx, id)
			if existsErr != nil {
				return fmt.Errorf("check item exists: %w", existsErr)
			}
			if !exists {
				return inventory.ErrItemNotFound
			}
			return inventory.ErrInvalidOperation
		}
		if err != nil {
			return translatePgError(err)
		}
		out = rowToItem(row)

		if recordHistory {
			entry := models.NewStockHistoryEntry(out, now)
			if err := q.InsertStockHistory(ctx, db.InsertStockHistoryParams{
				ID:         entry.ID,
				ItemID:     entry.ItemID,
				ItemName:   entry.ItemName,
				Quantity:   int32(entry.Quantity), //nolint:gosec // read back from an INTEGER column
				RecordedAt: entry.Timestamp,
			}); err != nil {
				return fmt.Errorf("insert stock history: %w", err)
			}
		}
		return r.publish(ctx, tx, domainevents.TopicStockAdjusted, out, delta)
	})
	if err != nil {
		return nil, wrapErr("adjust quantity", err)
	}
	return out, nil
}

// Delete removes an item and returns the deleted row.
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var out *models.Item
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).DeleteItem(ctx, id)
		if err != nil {
			return notFound(err)
		}
		out = rowToItem(row)
		return r.publish(ctx, tx, domainevents.TopicItemDeleted, out, 0)
	})
	if err != nil {
		return nil, wrapErr("delete item", err)
	}
	return out, nil
}

func (r *ItemRepository) publish(ctx context.Context, tx *sql.Tx, topic string, item *models.Item, delta int) error {
	if r.bus == nil {
		return nil
	}
	event := domainevents.ItemChangedEvent{
		EventID:      uuid.New(),
		Version:      1,
		ItemID:       item.ID,
		Name:         item.Name.String(),
		Quantity:     item.Quantity,
		MinThreshold: item.MinThreshold,
		Category:     item.Category.String(),
		Delta:        delta,
		OccurredAt:   item.UpdatedAt,
	}
	msg, err := events.NewJSONMessage(event.EventID.String(), event.Version, event)
	if err != nil {
		return err
	}
	if err := r.bus.PublishTx(ctx, tx, topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return inventory.ErrItemNotFound
	}
	return err
}

// translatePgError maps constraint failures onto domain errors.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return inventory.ErrDuplicateName
	case pgCheckViolation:
		return inventory.ErrInvalidOperation
	case pgNumericOutOfRange:
		v := inventory.NewValidationError()
		v.Add("quantity", "Quantity is out of range")
		return v
	}
	return err
}

// wrapErr passes domain errors through and tags everything else as ErrStorage.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		inventory.ErrItemNotFound,
		inventory.ErrInvalidOperation,
		inventory.ErrInvalidItem,
		inventory.ErrDuplicateName,
		inventory.ErrStorage,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %w", inventory.ErrStorage, op, err)
}

func toInt32(field string, v int) (int32, error) {
	if v > math.MaxInt32 || v < math.MinInt32 {
		e := inventory.NewValidationError()
		e.Add(field, "Value is out of range")
		return 0, e
	}
	return int32(v), nil
}

// rowToItem maps a db.InventoryItem to a domain models.Item.
func rowToItem(row db.InventoryItem) *models.Item {
	return &models.Item{
		ID:           row.ID,
		Name:         models.ItemName(row.Name),
		Quantity:     int(row.Quantity),
		MinThreshold: int(row.MinThreshold),
		Category:     models.Category(row.Category),
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
}

func rowsToItems(rows []db.InventoryItem) []*models.Item {
	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items
}
