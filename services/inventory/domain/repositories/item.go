package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stocktracker/services/inventory/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
// Every method performs at most one logical write.
type ItemRepository interface {
	// Create inserts a new item. Returns ErrDuplicateName when the name is taken.
	Create(ctx context.Context, item *models.Item) error

	// GetByID returns ErrItemNotFound when no item has id.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// FindByName matches the whole name case-insensitively.
	// Returns ErrItemNotFound when nothing matches.
	FindByName(ctx context.Context, name models.ItemName) (*models.Item, error)

	// List returns all items ordered by name.
	List(ctx context.Context) ([]*models.Item, error)

	// ListLowStock returns items with quantity <= min_threshold ordered by name.
	ListLowStock(ctx context.Context) ([]*models.Item, error)

	// Restock adds quantity to an existing item and overwrites the threshold
	// (when non-zero) and category in a single update.
	Restock(ctx context.Context, merged *models.Item, added int) (*models.Item, error)

	// Replace overwrites only the provided fields in a single UPDATE and
	// stamps updatedAt. Columns left nil keep their stored value.
	// Returns ErrItemNotFound or ErrDuplicateName.
	Replace(ctx context.Context, id uuid.UUID, ch models.ItemChanges, updatedAt time.Time) (*models.Item, error)

	// AdjustQuantity atomically applies delta if the result stays >= 0 and,
	// when recordHistory is set, appends a StockHistory entry in the same
	// transaction. Returns ErrItemNotFound or ErrInvalidOperation without
	// writing anything.
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int, recordHistory bool) (*models.Item, error)

	// Delete removes an item and returns it. Returns ErrItemNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) (*models.Item, error)
}

// HistoryQuery bounds a stock history listing. Zero values mean unbounded.
type HistoryQuery struct {
	Limit int
	Since time.Time
}

// StockHistoryRepository reads and prunes the append-only history log.
// Entries are written only by ItemRepository.AdjustQuantity.
type StockHistoryRepository interface {
	// List returns entries newest-first.
	List(ctx context.Context, q HistoryQuery) ([]*models.StockHistoryEntry, error)

	// PruneBefore deletes entries older than cutoff and returns how many.
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
