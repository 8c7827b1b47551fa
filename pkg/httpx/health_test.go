package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/stocktracker/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

var errDown = errors.New("down")

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		checks     []httpx.HealthCheck
		wantCode   int
		wantStatus string
		wantParts  map[string]string
	}{
		{
			name: "all healthy",
			checks: []httpx.HealthCheck{
				{Name: "postgres", Checker: &stubChecker{}},
				{Name: "redis", Checker: &stubChecker{}},
			},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantParts:  map[string]string{"postgres": "ok", "redis": "ok"},
		},
		{
			name: "required dependency down",
			checks: []httpx.HealthCheck{
				{Name: "postgres", Checker: &stubChecker{err: errDown}},
				{Name: "redis", Checker: &stubChecker{}},
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
			wantParts:  map[string]string{"postgres": "unreachable", "redis": "ok"},
		},
		{
			name: "optional dependency down",
			checks: []httpx.HealthCheck{
				{Name: "postgres", Checker: &stubChecker{}},
				{Name: "temporal", Checker: &stubChecker{err: errDown}, Optional: true},
			},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantParts:  map[string]string{"temporal": "unreachable"},
		},
		{
			name: "nil checker is disabled",
			checks: []httpx.HealthCheck{
				{Name: "postgres", Checker: &stubChecker{}},
				{Name: "temporal", Optional: true},
			},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantParts:  map[string]string{"temporal": "disabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			httpx.HealthHandler(tt.checks...).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

			if rr.Code != tt.wantCode {
				t.Fatalf("code: got %d, want %d", rr.Code, tt.wantCode)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
				t.Errorf("Content-Type: got %q", ct)
			}
			var report httpx.HealthReport
			if err := json.NewDecoder(rr.Body).Decode(&report); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if report.Status != tt.wantStatus {
				t.Errorf("status: got %q, want %q", report.Status, tt.wantStatus)
			}
			for name, want := range tt.wantParts {
				if got := report.Components[name]; got != want {
					t.Errorf("%s: got %q, want %q", name, got, want)
				}
			}
		})
	}
}

func TestProbe_HonoursCallerDeadline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := httpx.Probe(ctx, []httpx.HealthCheck{
		{Name: "postgres", Checker: pingFunc(func(ctx context.Context) error { return ctx.Err() })},
	})
	if report.Status != "degraded" {
		t.Fatalf("expected degraded with a cancelled context, got %+v", report)
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }
