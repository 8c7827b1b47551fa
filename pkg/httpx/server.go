package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

const (
	defaultRateLimit      = 300
	defaultBodyLimit      = 1 << 20
	defaultHandlerTimeout = 30 * time.Second
)

// ServerConfig holds the options for NewRouter. Zero limits fall back to
// defaults.
type ServerConfig struct {
	IsDevelopment bool
	// CORSAllowedOrigins is a comma-separated list; "*" allows all.
	CORSAllowedOrigins string
	// RequestsPerMinute is the per-IP budget. The dashboard polls
	// /items/low-stock, so keep it well above 60.
	RequestsPerMinute int
	BodyLimitBytes    int64
	HandlerTimeout    time.Duration
}

func (c ServerConfig) withDefaults() ServerConfig {
	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = defaultRateLimit
	}
	if c.BodyLimitBytes <= 0 {
		c.BodyLimitBytes = defaultBodyLimit
	}
	if c.HandlerTimeout <= 0 {
		c.HandlerTimeout = defaultHandlerTimeout
	}
	return c
}

// Middlewares are the process-specific wrappers installed ahead of the chi
// built-ins. Nil entries are skipped.
type Middlewares struct {
	Recovery func(http.Handler) http.Handler
	Sentry   func(http.Handler) http.Handler
	Tracing  func(http.Handler) http.Handler
	Logger   func(http.Handler) http.Handler
}

// NewRouter returns a chi.Mux with the standard stack, outermost first:
// recovery, sentry, request id, tracing, access log, real ip, rate limit,
// CORS, body limit, timeout, security headers.
func NewRouter(cfg ServerConfig, mw Middlewares) *chi.Mux {
	cfg = cfg.withDefaults()
	sec := secure.New(SecurityOptions(cfg.IsDevelopment))

	r := chi.NewRouter()
	use := func(m func(http.Handler) http.Handler) {
		if m != nil {
			r.Use(m)
		}
	}
	use(mw.Recovery)
	use(mw.Sentry)
	r.Use(middleware.RequestID)
	use(mw.Tracing)
	use(mw.Logger)
	r.Use(
		middleware.RealIP,
		httprate.LimitByIP(cfg.RequestsPerMinute, time.Minute),
		CORSMiddleware(cfg.CORSAllowedOrigins),
		RequestBodyLimit(cfg.BodyLimitBytes),
		middleware.Timeout(cfg.HandlerTimeout),
		sec.Handler,
	)
	return r
}

// SecurityOptions are the response headers applied to every route. The
// swagger UI loads inline scripts, so CSP allows them outside production.
func SecurityOptions(isDevelopment bool) secure.Options {
	csp := "default-src 'self'"
	if isDevelopment {
		csp = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'"
	}
	return secure.Options{
		STSSeconds:            63072000,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: csp,
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=(), usb=()",
		IsDevelopment:         isDevelopment,
	}
}

// CORSMiddleware allows the listed origins to call the API. Cookies are
// sent cross-origin only when the origins are explicit.
func CORSMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	origins := parseOrigins(allowedOrigins)
	wildcard := len(origins) == 1 && origins[0] == "*"
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-Id"},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	})
}

func parseOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// RequestBodyLimit caps request bodies at maxBytes. Decoders see an
// *http.MaxBytesError once the cap is crossed.
func RequestBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// NewServer wraps handler with the listener timeouts used by cmd/api.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      defaultHandlerTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}
