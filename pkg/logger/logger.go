// Package logger wraps log/slog with trace and request correlation and the
// HTTP access-log and panic-recovery middlewares used by cmd/api.
package logger

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/stocktracker/pkg/config"
	"github.com/ghuser/stocktracker/pkg/httpx"
)

// Logger is what the rest of the module logs through.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	DebugContext(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
	// ToSlog is for libraries that take a *slog.Logger (watermill, temporal).
	ToSlog() *slog.Logger
}

// New logs to stdout.
func New(cfg *config.Config) Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter logs to w. Development gets the text handler, every other
// environment gets JSON. Each record carries service and environment.
// stockctl passes stderr so command output stays clean on stdout.
func NewWithWriter(cfg *config.Config, w io.Writer) Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	var base slog.Handler
	if cfg.Environment == config.EnvDevelopment {
		base = slog.NewTextHandler(w, opts)
	} else {
		base = slog.NewJSONHandler(w, opts)
	}
	sl := slog.New(&correlationHandler{base}).With(
		"service", cfg.ServiceName,
		"env", cfg.Environment,
	)
	return &slogLogger{Logger: sl}
}

// Discard drops every record.
func Discard() Logger {
	return &slogLogger{Logger: slog.New(slog.DiscardHandler)}
}

type slogLogger struct {
	*slog.Logger
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{Logger: l.Logger.With(args...)}
}

func (l *slogLogger) ToSlog() *slog.Logger {
	return l.Logger
}

// correlationHandler stamps trace_id, span_id and request_id from ctx.
type correlationHandler struct {
	slog.Handler
}

func (h *correlationHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	if id := middleware.GetReqID(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *correlationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &correlationHandler{h.Handler.WithAttrs(attrs)}
}

func (h *correlationHandler) WithGroup(name string) slog.Handler {
	return &correlationHandler{h.Handler.WithGroup(name)}
}

// quietPaths are probed constantly and only logged at debug.
var quietPaths = map[string]bool{"/health": true, "/metrics": true}

// Middleware writes one access-log line per request. The chi route pattern
// is logged next to the raw path so item ids do not fragment dashboards.
func Middleware(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"route", routePattern(r),
				"status", status,
				"bytes", ww.BytesWritten(),
				"latency_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
			}
			ctx := r.Context()
			switch {
			case status >= http.StatusInternalServerError:
				log.ErrorContext(ctx, "request", args...)
			case status >= http.StatusBadRequest:
				log.WarnContext(ctx, "request", args...)
			case quietPaths[r.URL.Path]:
				log.DebugContext(ctx, "request", args...)
			default:
				log.InfoContext(ctx, "request", args...)
			}
		})
	}
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// Recovery turns a panic into a logged 500 with the usual JSON error body.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recovery(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler { //nolint:errorlint
					panic(rec)
				}
				log.ErrorContext(r.Context(), "panic recovered",
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				httpx.JSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
