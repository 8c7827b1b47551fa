// Package app carries the infrastructure shared by the API, the worker and
// the inventory bounded context.
package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/stocktracker/pkg/cache"
	"github.com/ghuser/stocktracker/pkg/config"
	"github.com/ghuser/stocktracker/pkg/database"
	"github.com/ghuser/stocktracker/pkg/events"
	"github.com/ghuser/stocktracker/pkg/logger"
	"github.com/ghuser/stocktracker/pkg/workflows"
)

// Application is built once per process by cmd/api or cmd/worker and handed
// to services.New and the route registration.
type Application struct {
	Config   *config.Config
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus
	// Redis is nil when the API starts without it; the low-stock cache is
	// then skipped.
	Redis *cache.RedisClient
	// TemporalClient is set by the worker when TEMPORAL_ENABLED.
	TemporalClient *workflows.TemporalClient
	// SessionStore backs notification dismissal. Nil without redis and in
	// the worker.
	SessionStore sessions.Store
}
