package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/ghuser/stocktracker/pkg/config"
)

func newTestLogger(buf *bytes.Buffer) Logger {
	return NewWithWriter(&config.Config{
		LogLevel:    "debug",
		Environment: config.EnvTesting,
		ServiceName: "stocktracker",
	}, buf)
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &m))
	return m
}

func TestNewWithWriter_BaseAttributes(t *testing.T) {
	var buf bytes.Buffer
	newTestLogger(&buf).Info("item created", "item_id", "42")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "stocktracker", entry["service"])
	assert.Equal(t, config.EnvTesting, entry["env"])
	assert.Equal(t, "42", entry["item_id"])
}

func TestNewWithWriter_DevelopmentUsesText(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&config.Config{LogLevel: "info", Environment: config.EnvDevelopment}, &buf)
	log.Info("low stock refreshed", "count", 3)

	assert.Contains(t, buf.String(), `msg="low stock refreshed"`)
	assert.Contains(t, buf.String(), "count=3")
}

func TestCorrelation_TraceAndSpan(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background()) //nolint:errcheck
	tracer := tp.Tracer("test")

	var buf bytes.Buffer
	log := newTestLogger(&buf)

	ctx, parent := tracer.Start(context.Background(), "adjust")
	log.ErrorContext(ctx, "adjust failed", "error", errors.New("boom"))
	parentEntry := lastEntry(t, &buf)

	ctx, child := tracer.Start(ctx, "history")
	log.InfoContext(ctx, "history written")
	childEntry := lastEntry(t, &buf)
	child.End()
	parent.End()

	require.NotEmpty(t, parentEntry["trace_id"])
	assert.Equal(t, parentEntry["trace_id"], childEntry["trace_id"])
	assert.NotEqual(t, parentEntry["span_id"], childEntry["span_id"])
	assert.Equal(t, "boom", parentEntry["error"])
}

func TestCorrelation_NoSpan(t *testing.T) {
	var buf bytes.Buffer
	newTestLogger(&buf).InfoContext(context.Background(), "no span")

	entry := lastEntry(t, &buf)
	assert.NotContains(t, entry, "trace_id")
	assert.NotContains(t, entry, "span_id")
}

func TestMiddleware_LogsRoutePatternAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	r := chi.NewRouter()
	r.Use(middleware.RequestID, Middleware(newTestLogger(&buf)))
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Milk"}`))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/7f0c", http.NoBody))

	entry := lastEntry(t, &buf)
	assert.Equal(t, "/items/7f0c", entry["path"])
	assert.Equal(t, "/items/{id}", entry["route"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
	assert.EqualValues(t, len(`{"name":"Milk"}`), entry["bytes"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestMiddleware_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/api/items", http.StatusOK, "INFO"},
		{"/api/items/1/adjust", http.StatusConflict, "WARN"},
		{"/api/items", http.StatusInternalServerError, "ERROR"},
		{"/health", http.StatusOK, "DEBUG"},
		{"/health", http.StatusServiceUnavailable, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.path+" "+http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			h := Middleware(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, tt.path, http.NoBody))

			assert.Equal(t, tt.want, lastEntry(t, &buf)["level"])
		})
	}
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	h := Recovery(newTestLogger(&buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil item")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/items", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
	entry := lastEntry(t, &buf)
	assert.Equal(t, "panic recovered", entry["msg"])
	assert.Equal(t, "nil item", entry["panic"])
}

func TestRecovery_RepanicsOnAbort(t *testing.T) {
	h := Recovery(Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	})
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"DEBUG": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelInfo,
		"":      slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}
