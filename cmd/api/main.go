package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	_ "github.com/ghuser/stocktracker/docs/swagger"
	"github.com/ghuser/stocktracker/pkg/app"
	"github.com/ghuser/stocktracker/pkg/cache"
	"github.com/ghuser/stocktracker/pkg/config"
	"github.com/ghuser/stocktracker/pkg/database"
	"github.com/ghuser/stocktracker/pkg/events"
	"github.com/ghuser/stocktracker/pkg/httpx"
	"github.com/ghuser/stocktracker/pkg/logger"
	"github.com/ghuser/stocktracker/pkg/session"
	"github.com/ghuser/stocktracker/pkg/telemetry"
	inventoryApi "github.com/ghuser/stocktracker/services/inventory/application/api"
)

const shutdownTimeout = 30 * time.Second

// @title					Stock Tracker API
// @version				1.0
// @description			Inventory stock tracking: items, quick adjustments, low-stock alerts, history and analytics.
// @contact.name			API Support
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
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

	log := logger.New(cfg).With("process", "api")
	if err := run(cfg, log); err != nil {
		log.Error("api stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("setup otel: %w", err)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg, "api"); err != nil {
		log.Warn("sentry disabled", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	eventBus, err := events.NewEventBusWithForwarder(cfg, log)
	if err != nil {
		return fmt.Errorf("setup event bus: %w", err)
	}
	defer eventBus.Close() //nolint:errcheck
	if err := eventBus.StartForwarder(ctx); err != nil {
		return fmt.Errorf("start event forwarder: %w", err)
	}

	a := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
	}

	// Without redis the API still serves items; the low-stock cache and
	// notification dismissal are switched off.
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("redis unavailable, running without cache and sessions", "error", err)
	} else {
		defer redisClient.Close() //nolint:errcheck
		a.Redis = redisClient
		a.SessionStore = session.NewRedisStore(
			redisClient.Client(),
			[]byte(cfg.SessionAuthKey),
			[]byte(cfg.SessionEncryptionKey),
			cfg.Environment == config.EnvProduction,
		)
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RequestsPerMinute:  cfg.RateLimitPerMinute,
		},
		httpx.Middlewares{
			Recovery: logger.Recovery(log),
			Sentry:   telemetry.SentryMiddleware(),
			Tracing:  otelhttp.NewMiddleware(cfg.ServiceName),
			Logger:   logger.Middleware(log),
		},
	)
	r.Get("/health", httpx.HealthHandler(healthChecks(a)...))
	r.Handle("/metrics", metricsHandler)
	if cfg.Environment != config.EnvProduction {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	var routeErr error
	r.Route("/api", func(r chi.Router) {
		routeErr = inventoryApi.InventoryRoutes(r, a)
	})
	if routeErr != nil {
		return fmt.Errorf("register routes: %w", routeErr)
	}

	srv := httpx.NewServer(cfg.HTTPAddr, r)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "status_policy", cfg.StatusPolicy)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func healthChecks(a *app.Application) []httpx.HealthCheck {
	checks := []httpx.HealthCheck{
		{Name: "database", Checker: a.Db},
		{Name: "event_bus", Checker: a.EventBus},
		{Name: "redis", Optional: true},
	}
	if a.Redis != nil {
		checks[2].Checker = a.Redis
	}
	return checks
}
