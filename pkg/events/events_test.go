package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/stocktracker/pkg/config"
	"github.com/ghuser/stocktracker/pkg/logger"
)

var fastRetry = RetryPolicy{Attempts: 3, BaseDelay: time.Millisecond}

func failingTimes(n int, calls *int) func(context.Context, *message.Message) error {
	return func(context.Context, *message.Message) error {
		*calls++
		if *calls <= n {
			return errors.New("transient")
		}
		return nil
	}
}

func TestRetryPolicy(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		wantCalls int
		wantErr   bool
	}{
		{"first attempt succeeds", 0, 1, false},
		{"succeeds on last attempt", 2, 3, false},
		{"exhausts attempts", 10, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := fastRetry.run(context.Background(), message.NewMessage("id", nil), failingTimes(tt.failures, &calls), logger.Discard())
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryPolicy_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	slow := RetryPolicy{Attempts: 3, BaseDelay: time.Hour}
	err := slow.run(ctx, message.NewMessage("id", nil), failingTimes(10, &calls), logger.Discard())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call before cancel, got %d", calls)
	}
}

func TestConfigFrom(t *testing.T) {
	c := ConfigFrom(&config.Config{DatabaseURL: "postgres://x", ServiceName: "stocktracker"}, true)
	if c.ConsumerGroup != "stocktracker-inventory-worker" {
		t.Errorf("ConsumerGroup = %q", c.ConsumerGroup)
	}
	if !c.Forwarder || c.Retry != DefaultRetryPolicy {
		t.Errorf("unexpected config %+v", c)
	}
}

func TestStartForwarder_NonForwarderMode(t *testing.T) {
	bus := &EventBus{}
	if err := bus.StartForwarder(context.Background()); err == nil {
		t.Fatal("expected error for non-forwarder EventBus")
	}
}

func TestNewJSONMessage(t *testing.T) {
	msg, err := NewJSONMessage("evt-1", 2, map[string]int{"quantity": 4})
	if err != nil {
		t.Fatalf("NewJSONMessage: %v", err)
	}
	if got := msg.Metadata.Get(MetadataEventID); got != "evt-1" {
		t.Errorf("event id = %q", got)
	}
	if got := msg.Metadata.Get(MetadataEventVersion); got != "2" {
		t.Errorf("event version = %q", got)
	}
	var body map[string]int
	if err := json.Unmarshal(msg.Payload, &body); err != nil || body["quantity"] != 4 {
		t.Errorf("payload = %s (%v)", msg.Payload, err)
	}

	if _, err := NewJSONMessage("evt-2", 1, make(chan int)); err == nil {
		t.Error("expected marshal error")
	}
}

func TestInjectTrace_NoSpan(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	msgs := []*message.Message{message.NewMessage("a", nil), message.NewMessage("b", nil)}
	injectTrace(context.Background(), msgs)
	for _, m := range msgs {
		if got := m.Metadata.Get("traceparent"); got != "" {
			t.Errorf("expected empty traceparent, got %q", got)
		}
	}
}

func TestTracePropagation(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background()) //nolint:errcheck
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	ctx, span := otel.Tracer("test").Start(context.Background(), "adjust-stock")
	defer span.End()

	msg := message.NewMessage("id", nil)
	injectTrace(ctx, []*message.Message{msg})

	got := trace.SpanFromContext(extractTrace(context.Background(), msg)).SpanContext()
	if !got.IsValid() {
		t.Fatal("extracted span context is not valid")
	}
	if got.TraceID() != span.SpanContext().TraceID() {
		t.Errorf("trace ID mismatch: want %s, got %s", span.SpanContext().TraceID(), got.TraceID())
	}
}
