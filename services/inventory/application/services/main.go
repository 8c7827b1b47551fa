package services

import (
	"fmt"

	"github.com/ghuser/stocktracker/pkg/app"
	"github.com/ghuser/stocktracker/pkg/cache"
	"github.com/ghuser/stocktracker/pkg/config"
	domainsvcs "github.com/ghuser/stocktracker/services/inventory/domain/services"
	"github.com/ghuser/stocktracker/services/inventory/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Inventory *InventoryService
}

// New wires all inventory application services with infrastructure from the
// Application container. Redis is optional.
func New(a *app.Application) (*Services, error) {
	opts, err := OptionsFromConfig(a.Config)
	if err != nil {
		return nil, err
	}

	repo := postgres.NewItemRepository(a.Db, a.EventBus)
	history := postgres.NewStockHistoryRepository(a.Db)

	var itemCache ItemCache
	if a.Redis != nil {
		itemCache = cache.NewItemCache(a.Redis)
	}

	return &Services{
		Inventory: NewInventoryService(repo, history, itemCache, opts, a.Logger),
	}, nil
}

// OptionsFromConfig translates the inventory settings of cfg.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	policy, err := domainsvcs.ParseStatusPolicy(cfg.StatusPolicy)
	if err != nil {
		return Options{}, fmt.Errorf("STATUS_POLICY: %w", err)
	}
	bucket, err := domainsvcs.ParseBucket(cfg.AnalyticsBucket)
	if err != nil {
		return Options{}, fmt.Errorf("ANALYTICS_BUCKET: %w", err)
	}
	return Options{
		StatusPolicy:   policy,
		Bucket:         bucket,
		HistoryEnabled: cfg.HistoryEnabled,
		LowStockTTL:    cfg.LowStockCacheTTL,
	}, nil
}
