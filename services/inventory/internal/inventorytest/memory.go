// Package inventorytest provides in-memory implementations of the inventory
// repositories and cache for tests.
package inventorytest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/stocktracker/pkg/cache"
	inventory "github.com/ghuser/stocktracker/services/inventory/domain"
	"github.com/ghuser/stocktracker/services/inventory/domain/models"
	"github.com/ghuser/stocktracker/services/inventory/domain/repositories"
	domainsvcs "github.com/ghuser/stocktracker/services/inventory/domain/services"
)

// Repo is an in-memory ItemRepository guarded by a mutex. History reads its
// history log. WriteCount reports successful mutations.
type Repo struct {
	mu      sync.Mutex
	items   map[uuid.UUID]*models.Item
	history []*models.StockHistoryEntry
	writes  int
	now     func() time.Time
}

var (
	_ repositories.ItemRepository         = (*Repo)(nil)
	_ repositories.StockHistoryRepository = History{}
)

func NewRepo() *Repo {
	return &Repo{
		items: make(map[uuid.UUID]*models.Item),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *Repo) Create(_ context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findByNameLocked(item.Name) != nil {
		return inventory.ErrDuplicateName
	}
	r.items[item.ID] = item.Clone()
	r.writes++
	return nil
}

func (r *Repo) GetByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, inventory.ErrItemNotFound
	}
	return it.Clone(), nil
}

func (r *Repo) FindByName(_ context.Context, name models.ItemName) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it := r.findByNameLocked(name); it != nil {
		return it.Clone(), nil
	}
	return nil, inventory.ErrItemNotFound
}

func (r *Repo) findByNameLocked(name models.ItemName) *models.Item {
	for _, it := range r.items {
		if it.Name.SameAs(name) {
			return it
		}
	}
	return nil
}

func (r *Repo) List(_ context.Context) ([]*models.Item, error) {
	return r.filter(func(*models.Item) bool { return true }), nil
}

func (r *Repo) ListLowStock(_ context.Context) ([]*models.Item, error) {
	return r.filter(func(it *models.Item) bool { return domainsvcs.IsLowStock(it.Quantity, it.MinThreshold) }), nil
}

func (r *Repo) filter(keep func(*models.Item) bool) []*models.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Item, 0, len(r.items))
	for _, it := range r.items {
		if keep(it) {
			out = append(out, it.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Repo) Restock(_ context.Context, merged *models.Item, added int) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[merged.ID]
	if !ok {
		return nil, inventory.ErrItemNotFound
	}
	it.Quantity += added
	it.MinThreshold = merged.MinThreshold
	it.Category = merged.Category
	it.UpdatedAt = merged.UpdatedAt
	r.writes++
	return it.Clone(), nil
}

// Replace applies ch to the stored item under the lock, matching the
// column-wise COALESCE of the Postgres store.
func (r *Repo) Replace(_ context.Context, id uuid.UUID, ch models.ItemChanges, updatedAt time.Time) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, inventory.ErrItemNotFound
	}
	if ch.Name != nil {
		if other := r.findByNameLocked(*ch.Name); other != nil && other.ID != id {
			return nil, inventory.ErrDuplicateName
		}
	}
	next := domainsvcs.ApplyChanges(it, ch, updatedAt)
	r.items[id] = next
	r.writes++
	return next.Clone(), nil
}

func (r *Repo) AdjustQuantity(_ context.Context, id uuid.UUID, delta int, recordHistory bool) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, inventory.ErrItemNotFound
	}
	now := r.now()
	next, err := domainsvcs.Adjust(it, delta, now)
	if err != nil {
		return nil, err
	}
	r.items[id] = next
	if recordHistory {
		r.history = append(r.history, models.NewStockHistoryEntry(next, now))
	}
	r.writes++
	return next.Clone(), nil
}

func (r *Repo) Delete(_ context.Context, id uuid.UUID) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, inventory.ErrItemNotFound
	}
	delete(r.items, id)
	r.writes++
	return it, nil
}

// History is the StockHistoryRepository view of a Repo.
type History struct{ *Repo }

func (h History) List(_ context.Context, q repositories.HistoryQuery) ([]*models.StockHistoryEntry, error) {
	r := h.Repo
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.StockHistoryEntry, 0, len(r.history))
	for i := len(r.history) - 1; i >= 0; i-- {
		e := r.history[i]
		if e.Timestamp.Before(q.Since) {
			continue
		}
		out = append(out, e)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (h History) PruneBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r := h.Repo
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.history[:0]
	var n int64
	for _, e := range r.history {
		if e.Timestamp.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, e)
	}
	r.history = kept
	return n, nil
}

// SetClock replaces the time source used for adjustments and history.
func (r *Repo) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// HistoryLen returns the number of recorded history entries.
func (r *Repo) HistoryLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.history)
}

// WriteCount returns the number of successful writes.
func (r *Repo) WriteCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// Cache is an in-memory item cache returning redis.Nil on misses.
type Cache struct {
	mu       sync.Mutex
	items    map[uuid.UUID]pkgcache.CachedItem
	lowStock *pkgcache.LowStockSnapshot
}

func NewCache() *Cache {
	return &Cache{items: make(map[uuid.UUID]pkgcache.CachedItem)}
}

func (c *Cache) Get(_ context.Context, id uuid.UUID) (*pkgcache.CachedItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.items[id]
	if !ok {
		return nil, redis.Nil
	}
	return &it, nil
}

func (c *Cache) Set(_ context.Context, item *pkgcache.CachedItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[item.ID] = *item
	return nil
}

func (c *Cache) Delete(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	return nil
}

func (c *Cache) GetLowStock(_ context.Context) (*pkgcache.LowStockSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lowStock == nil {
		return nil, redis.Nil
	}
	snap := *c.lowStock
	return &snap, nil
}

func (c *Cache) SetLowStock(_ context.Context, snap *pkgcache.LowStockSnapshot, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *snap
	c.lowStock = &cp
	return nil
}

func (c *Cache) InvalidateLowStock(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lowStock = nil
	return nil
}

// Has reports whether item id is cached.
func (c *Cache) Has(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[id]
	return ok
}
