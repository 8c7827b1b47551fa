package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/ghuser/stocktracker/pkg/config"
)

// SetupSentry initializes Sentry and tags every event with the process name
// (api, worker). It does nothing when SENTRY_DSN is empty.
func SetupSentry(cfg *config.Config, process string) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.ServiceName + "@" + cfg.ServiceVersion,
		AttachStacktrace: true,
		TracesSampleRate: 0.2,
	}); err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("process", process)
		scope.SetTag("status_policy", cfg.StatusPolicy)
	})
	return nil
}

// SentryFlush waits up to 2s for buffered events.
func SentryFlush() {
	sentry.Flush(2 * time.Second)
}

// SentryMiddleware reports panics and re-panics so logger.Recovery still
// writes the 500.
func SentryMiddleware() func(http.Handler) http.Handler {
	return sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle
}
