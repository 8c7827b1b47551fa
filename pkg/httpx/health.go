package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const healthTimeout = 2 * time.Second

// HealthChecker is anything with a Ping, such as the pgx pool, the redis
// client, the event bus or the Temporal client.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthCheck names one dependency. Optional dependencies are reported but do
// not mark the service as degraded.
type HealthCheck struct {
	Name     string
	Checker  HealthChecker
	Optional bool
}

// HealthReport is the body served by HealthHandler.
type HealthReport struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Probe pings every check in parallel. Nil checkers are reported as
// "disabled".
func Probe(ctx context.Context, checks []HealthCheck) HealthReport {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	report := HealthReport{Status: "ok", Components: make(map[string]string, len(checks))}
	var mu sync.Mutex
	var g errgroup.Group
	for _, c := range checks {
		if c.Checker == nil {
			report.Components[c.Name] = "disabled"
			continue
		}
		g.Go(func() error {
			state := "ok"
			if err := c.Checker.Ping(ctx); err != nil {
				state = "unreachable"
			}
			mu.Lock()
			defer mu.Unlock()
			report.Components[c.Name] = state
			if state != "ok" && !c.Optional {
				report.Status = "degraded"
			}
			return nil
		})
	}
	_ = g.Wait()
	return report
}

// HealthHandler serves Probe results, answering 503 while degraded.
func HealthHandler(checks ...HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := Probe(r.Context(), checks)
		status := http.StatusOK
		if report.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, report)
	}
}
