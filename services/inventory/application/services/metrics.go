package services

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/ghuser/stocktracker/services/inventory"

// metrics holds the inventory counters exported through the global MeterProvider.
type metrics struct {
	adjustments metric.Int64Counter
	rejected    metric.Int64Counter
	created     metric.Int64Counter
	merged      metric.Int64Counter
}

func newMetrics(meter metric.Meter) *metrics {
	m := &metrics{}
	var err error
	if m.adjustments, err = meter.Int64Counter("inventory.adjustments",
		metric.WithDescription("Successful QUICK quantity adjustments")); err != nil {
		return noopMetrics()
	}
	if m.rejected, err = meter.Int64Counter("inventory.adjustments.rejected",
		metric.WithDescription("Adjustments rejected because quantity would drop below zero")); err != nil {
		return noopMetrics()
	}
	if m.created, err = meter.Int64Counter("inventory.items.created",
		metric.WithDescription("Items inserted by create-or-merge")); err != nil {
		return noopMetrics()
	}
	if m.merged, err = meter.Int64Counter("inventory.items.merged",
		metric.WithDescription("Create requests merged into an existing item as a restock")); err != nil {
		return noopMetrics()
	}
	return m
}

func noopMetrics() *metrics {
	meter := noop.NewMeterProvider().Meter(instrumentationName)
	m := &metrics{}
	m.adjustments, _ = meter.Int64Counter("inventory.adjustments")
	m.rejected, _ = meter.Int64Counter("inventory.adjustments.rejected")
	m.created, _ = meter.Int64Counter("inventory.items.created")
	m.merged, _ = meter.Int64Counter("inventory.items.merged")
	return m
}

func (m *metrics) recordAdjustment(ctx context.Context, delta int) {
	direction := "increase"
	switch {
	case delta < 0:
		direction = "decrease"
	case delta == 0:
		direction = "none"
	}
	m.adjustments.Add(ctx, 1, metric.WithAttributes(attribute.String("direction", direction)))
}
