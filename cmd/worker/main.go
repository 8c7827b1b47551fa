// Command worker consumes inventory events from the outbox and, when
// Temporal is enabled, runs the stock history retention workflow.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghuser/stocktracker/pkg/app"
	"github.com/ghuser/stocktracker/pkg/cache"
	"github.com/ghuser/stocktracker/pkg/config"
	"github.com/ghuser/stocktracker/pkg/database"
	"github.com/ghuser/stocktracker/pkg/events"
	"github.com/ghuser/stocktracker/pkg/logger"
	"github.com/ghuser/stocktracker/pkg/telemetry"
	"github.com/ghuser/stocktracker/pkg/workflows"
	appsvcs "github.com/ghuser/stocktracker/services/inventory/application/services"
	"github.com/ghuser/stocktracker/services/inventory/application/subscribers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg).With("process", "worker")
	if err := run(cfg, log); err != nil {
		log.Error("worker stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("setup otel: %w", err)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg, "worker"); err != nil {
		log.Warn("sentry disabled", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	// Close waits for in-flight handlers, so it must run before the pool
	// and redis are released.
	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		return fmt.Errorf("setup event bus: %w", err)
	}

	// The worker only refreshes the low-stock cache, which is pointless
	// without redis.
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		_ = eventBus.Close()
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close() //nolint:errcheck
	defer eventBus.Close()    //nolint:errcheck

	a := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}
	if cfg.TemporalEnabled {
		tc, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, cfg.TemporalTaskQueue, log)
		if err != nil {
			return fmt.Errorf("connect temporal: %w", err)
		}
		defer tc.Close()
		a.TemporalClient = tc
	}

	svcs, err := appsvcs.New(a)
	if err != nil {
		return fmt.Errorf("wire inventory services: %w", err)
	}
	if err := subscribers.Register(ctx, eventBus, svcs.Inventory, log); err != nil {
		return fmt.Errorf("register subscribers: %w", err)
	}
	stopRetention, err := startRetention(ctx, a, svcs.Inventory)
	if err != nil {
		return err
	}
	defer stopRetention()

	log.Info("worker running", "temporal", cfg.TemporalEnabled, "history_retention_days", cfg.HistoryRetentionDays)
	<-ctx.Done()
	log.Info("shutting down worker")
	return nil
}

// startRetention starts the Temporal worker and schedules the nightly prune.
// The returned func stops the worker and must run before the client closes.
func startRetention(ctx context.Context, a *app.Application, pruner workflows.HistoryPruner) (func(), error) {
	tc := a.TemporalClient
	if tc == nil {
		return func() {}, nil
	}
	w := tc.NewWorker(pruner)
	if err := w.Start(); err != nil {
		return nil, fmt.Errorf("start temporal worker: %w", err)
	}

	// Always reconcile so a changed or disabled retention replaces the old cron.
	if err := tc.ScheduleRetention(ctx, a.Config.HistoryRetentionDays); err != nil {
		// A missed schedule only delays pruning; stockctl prune-history covers it.
		a.Logger.Error("failed to schedule history retention", "error", err)
	}
	return w.Stop, nil
}
