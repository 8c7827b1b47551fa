package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"

	"github.com/ghuser/stocktracker/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		ServiceName:    "stocktracker-test",
		ServiceVersion: "test",
		Environment:    config.EnvTesting,
		StatusPolicy:   config.StatusPolicyTwoTier,
	}
}

func TestSetup_WithoutOTLP(t *testing.T) {
	shutdown, handler, err := Setup(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handler == nil {
		t.Fatal("expected non-nil metrics handler")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_InstallsTraceContextPropagator(t *testing.T) {
	shutdown, _, err := Setup(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer shutdown(context.Background()) //nolint:errcheck

	fields := otel.GetTextMapPropagator().Fields()
	found := false
	for _, f := range fields {
		if f == "traceparent" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected traceparent among propagator fields, got %v", fields)
	}
}

func TestSetup_MetricsHandlerExposesInventoryCounters(t *testing.T) {
	shutdown, handler, err := Setup(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer shutdown(context.Background()) //nolint:errcheck

	counter, err := otel.Meter("test").Int64Counter("inventory.stock.adjustments")
	if err != nil {
		t.Fatalf("counter: %v", err)
	}
	counter.Add(context.Background(), 2)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"inventory_stock_adjustments", "go_goroutines"} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestSetupSentry_NoDSN(t *testing.T) {
	if err := SetupSentry(testConfig(), "api"); err != nil {
		t.Fatalf("expected nil without DSN, got %v", err)
	}
}
