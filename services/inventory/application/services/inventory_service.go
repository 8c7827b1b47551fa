package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	pkgcache "github.com/ghuser/stocktracker/pkg/cache"
	"github.com/ghuser/stocktracker/pkg/logger"
	inventory "github.com/ghuser/stocktracker/services/inventory/domain"
	"github.com/ghuser/stocktracker/services/inventory/domain/models"
	"github.com/ghuser/stocktracker/services/inventory/domain/repositories"
	domainsvcs "github.com/ghuser/stocktracker/services/inventory/domain/services"
)

// ItemCache is the subset of pkg/cache.ItemCache the service depends on.
type ItemCache interface {
	Get(ctx context.Context, itemID uuid.UUID) (*pkgcache.CachedItem, error)
	Set(ctx context.Context, item *pkgcache.CachedItem) error
	Delete(ctx context.Context, itemID uuid.UUID) error
	GetLowStock(ctx context.Context) (*pkgcache.LowStockSnapshot, error)
	SetLowStock(ctx context.Context, snap *pkgcache.LowStockSnapshot, ttl time.Duration) error
	InvalidateLowStock(ctx context.Context) error
}

// Options are the per-deployment inventory settings.
type Options struct {
	StatusPolicy   domainsvcs.StatusPolicy
	Bucket         domainsvcs.Bucket
	HistoryEnabled bool
	LowStockTTL    time.Duration
}

// InventoryService orchestrates the inventory use cases.
// Event publishing is handled by the repository layer (outbox pattern).
// Single-item reads and the low-stock set are served from Redis when available.
type InventoryService struct {
	repo    repositories.ItemRepository
	history repositories.StockHistoryRepository
	cache   ItemCache
	opts    Options
	log     logger.Logger
	metrics *metrics
	tracer  trace.Tracer
	now     func() time.Time
}

// NewInventoryService wires the service. cache may be nil.
func NewInventoryService(
	repo repositories.ItemRepository,
	history repositories.StockHistoryRepository,
	cache ItemCache,
	opts Options,
	log logger.Logger,
) *InventoryService {
	return &InventoryService{
		repo:    repo,
		history: history,
		cache:   cache,
		opts:    opts,
		log:     log,
		metrics: newMetrics(otel.GetMeterProvider().Meter(instrumentationName)),
		tracer:  otel.Tracer(instrumentationName),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// StatusPolicy returns the classifier configured for this deployment.
func (s *InventoryService) StatusPolicy() domainsvcs.StatusPolicy {
	return s.opts.StatusPolicy
}

// Classify derives the display status of item under the configured policy.
func (s *InventoryService) Classify(item *models.Item) models.StockStatus {
	return s.opts.StatusPolicy.ClassifyItem(item)
}

// CreateOrMerge inserts a new item, or restocks the existing item whose name
// matches case-insensitively. merged reports which branch ran.
func (s *InventoryService) CreateOrMerge(ctx context.Context, in models.CreateItemInput) (item *models.Item, merged bool, err error) {
	ctx, span := s.tracer.Start(ctx, "inventory.CreateOrMerge")
	defer func() { endSpan(span, err) }()

	candidate, err := domainsvcs.ValidateCreate(in)
	if err != nil {
		return nil, false, err
	}

	// A concurrent create can win the unique index between lookup and insert;
	// the second attempt then finds that row and merges into it.
	for attempt := 0; attempt < 2; attempt++ {
		existing, err := s.repo.FindByName(ctx, candidate.Name)
		switch {
		case errors.Is(err, inventory.ErrItemNotFound):
			err = s.repo.Create(ctx, candidate)
			if errors.Is(err, inventory.ErrDuplicateName) {
				continue
			}
			if err != nil {
				return nil, false, fmt.Errorf("create item: %w", err)
			}
			s.metrics.created.Add(ctx, 1)
			s.invalidate(ctx, candidate.ID)
			s.log.InfoContext(ctx, "item created", "item_id", candidate.ID, "name", candidate.Name.String())
			return candidate, false, nil

		case err != nil:
			return nil, false, fmt.Errorf("find item by name: %w", err)
		}

		restocked, err := s.repo.Restock(ctx, domainsvcs.MergeRestock(existing, candidate, s.now()), candidate.Quantity)
		if err != nil {
			return nil, false, fmt.Errorf("restock item: %w", err)
		}
		s.metrics.merged.Add(ctx, 1)
		s.invalidate(ctx, restocked.ID)
		s.log.InfoContext(ctx, "item merged into existing",
			"item_id", restocked.ID, "added", candidate.Quantity, "quantity", restocked.Quantity)
		return restocked, true, nil
	}
	return nil, false, fmt.Errorf("create item: %w", inventory.ErrDuplicateName)
}

// AdjustQuantity applies a signed delta (QUICK mode). Returns ErrItemNotFound,
// or ErrInvalidOperation when the result would be negative; neither writes.
func (s *InventoryService) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (item *models.Item, err error) {
	ctx, span := s.tracer.Start(ctx, "inventory.AdjustQuantity",
		trace.WithAttributes(attribute.String("item.id", id.String()), attribute.Int("delta", delta)))
	defer func() { endSpan(span, err) }()

	item, err = s.repo.AdjustQuantity(ctx, id, delta, s.opts.HistoryEnabled)
	if err != nil {
		if errors.Is(err, inventory.ErrInvalidOperation) {
			s.metrics.rejected.Add(ctx, 1)
			s.log.InfoContext(ctx, "adjustment rejected", "item_id", id, "delta", delta)
			return nil, err
		}
		return nil, fmt.Errorf("adjust quantity: %w", err)
	}

	s.metrics.recordAdjustment(ctx, delta)
	s.invalidate(ctx, id)
	return item, nil
}

// ReplaceFields overwrites the provided fields (FULL mode). No history entry
// is written. An empty patch returns the current item unchanged.
func (s *InventoryService) ReplaceFields(ctx context.Context, id uuid.UUID, patch models.ItemPatch) (item *models.Item, err error) {
	ctx, span := s.tracer.Start(ctx, "inventory.ReplaceFields",
		trace.WithAttributes(attribute.String("item.id", id.String())))
	defer func() { endSpan(span, err) }()

	changes, err := domainsvcs.ValidatePatch(patch)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if patch.Empty() {
		return current, nil
	}

	if changes.Name != nil && !changes.Name.SameAs(current.Name) {
		other, err := s.repo.FindByName(ctx, *changes.Name)
		switch {
		case err == nil && other.ID != id:
			return nil, duplicateNameError()
		case err != nil && !errors.Is(err, inventory.ErrItemNotFound):
			return nil, fmt.Errorf("find item by name: %w", err)
		}
	}

	updated, err := s.repo.Replace(ctx, id, changes, s.now())
	if errors.Is(err, inventory.ErrDuplicateName) {
		return nil, duplicateNameError()
	}
	if err != nil {
		return nil, fmt.Errorf("replace item: %w", err)
	}
	s.invalidate(ctx, id)
	return updated, nil
}

// Delete removes the item and returns it.
func (s *InventoryService) Delete(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete item: %w", err)
	}
	s.invalidate(ctx, id)
	s.log.InfoContext(ctx, "item deleted", "item_id", id)
	return item, nil
}

// Get retrieves an Item using a read-through cache:
//  1. Check Redis first.
//  2. On miss (or cache error), query Postgres.
//  3. Warm the cache with the Postgres result.
func (s *InventoryService) Get(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return fromCached(cached), nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "item cache read failed", "item_id", id, "error", err)
		}
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, toCached(item)); err != nil {
			s.log.WarnContext(ctx, "item cache write failed", "item_id", id, "error", err)
		}
	}
	return item, nil
}

// List returns all items ordered by name.
func (s *InventoryService) List(ctx context.Context) ([]*models.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// ListLowStock returns items with quantity <= minThreshold ordered by name.
func (s *InventoryService) ListLowStock(ctx context.Context) ([]*models.Item, error) {
	items, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return items, nil
}

// LowStock returns the low-stock set with its digest, preferring the cached
// snapshot the worker maintains.
func (s *InventoryService) LowStock(ctx context.Context) (LowStockSummary, error) {
	if s.cache != nil {
		snap, err := s.cache.GetLowStock(ctx)
		if err == nil {
			items := make([]*models.Item, len(snap.Items))
			for i := range snap.Items {
				items[i] = fromCached(&snap.Items[i])
			}
			return LowStockSummary{Items: items, Digest: snap.Digest}, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "low stock cache read failed", "error", err)
		}
	}
	return s.RefreshLowStock(ctx)
}

// RefreshLowStock recomputes the low-stock set from the store and stores the
// snapshot in Redis.
func (s *InventoryService) RefreshLowStock(ctx context.Context) (LowStockSummary, error) {
	items, err := s.ListLowStock(ctx)
	if err != nil {
		return LowStockSummary{}, err
	}
	summary := LowStockSummary{Items: items, Digest: LowStockDigest(items)}

	if s.cache != nil {
		snap := &pkgcache.LowStockSnapshot{
			Items:      make([]pkgcache.CachedItem, len(items)),
			Digest:     summary.Digest,
			ComputedAt: s.now(),
		}
		for i, it := range items {
			snap.Items[i] = *toCached(it)
		}
		if err := s.cache.SetLowStock(ctx, snap, s.opts.LowStockTTL); err != nil {
			s.log.WarnContext(ctx, "low stock cache write failed", "error", err)
		}
	}
	return summary, nil
}

// ListHistory returns stock history newest-first. limit <= 0 returns everything.
func (s *InventoryService) ListHistory(ctx context.Context, limit int) ([]*models.StockHistoryEntry, error) {
	entries, err := s.history.List(ctx, repositories.HistoryQuery{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list stock history: %w", err)
	}
	return entries, nil
}

// Analytics builds per-item trends and restock forecasts from the full
// history and the current items.
func (s *InventoryService) Analytics(ctx context.Context) (report domainsvcs.Report, err error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Analytics")
	defer func() { endSpan(span, err) }()

	history, err := s.history.List(ctx, repositories.HistoryQuery{})
	if err != nil {
		return domainsvcs.Report{}, fmt.Errorf("list stock history: %w", err)
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return domainsvcs.Report{}, fmt.Errorf("list items: %w", err)
	}
	return domainsvcs.Analyze(history, items, s.opts.Bucket), nil
}

// ExportCSV renders every item in the stock-levels CSV format.
func (s *InventoryService) ExportCSV(ctx context.Context) (string, error) {
	items, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	return domainsvcs.ConvertToCSV(items), nil
}

// PruneHistory deletes history entries recorded before cutoff.
func (s *InventoryService) PruneHistory(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := s.history.PruneBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune stock history: %w", err)
	}
	s.log.InfoContext(ctx, "stock history pruned", "cutoff", cutoff, "deleted", n)
	return n, nil
}

// invalidate drops the cached item and low-stock snapshot after a write.
// Cache failures are logged; the write already committed.
func (s *InventoryService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.WarnContext(ctx, "item cache invalidate failed", "item_id", id, "error", err)
	}
	if err := s.cache.InvalidateLowStock(ctx); err != nil {
		s.log.WarnContext(ctx, "low stock cache invalidate failed", "error", err)
	}
}

func duplicateNameError() error {
	v := inventory.NewValidationError()
	v.Add(domainsvcs.FieldName, inventory.ErrDuplicateName.Error())
	return v
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func toCached(item *models.Item) *pkgcache.CachedItem {
	return &pkgcache.CachedItem{
		ID:           item.ID,
		Name:         item.Name.String(),
		Quantity:     item.Quantity,
		MinThreshold: item.MinThreshold,
		Category:     item.Category.String(),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func fromCached(c *pkgcache.CachedItem) *models.Item {
	return &models.Item{
		ID:           c.ID,
		Name:         models.ItemName(c.Name),
		Quantity:     c.Quantity,
		MinThreshold: c.MinThreshold,
		Category:     models.Category(c.Category),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
