package internal

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/waypoint/pkg/health"
	"github.com/dmitrymomot/waypoint/pkg/logger"
	"github.com/dmitrymomot/waypoint/pkg/router"
)

const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second

	tracerName = "github.com/dmitrymomot/waypoint"
)

// App serves a route table over HTTP. It is immutable after New.
type App struct {
	mux            chi.Router
	router         *router.Router
	logger         *slog.Logger
	errorHandler   ErrorHandler
	tracer         trace.Tracer
	metrics        *Metrics
	metricsHandler http.Handler
	healthConfig   *healthConfig
	metricsPath    string
	middlewares    []Middleware
}

// New creates an App dispatching to rt.
func New(rt *router.Router, opts ...Option) *App {
	a := &App{
		mux:         chi.NewRouter(),
		router:      rt,
		logger:      logger.NewNope(),
		tracer:      otel.Tracer(tracerName),
		metricsPath: defaultMetricsPath,
	}
	if a.router == nil {
		a.router = router.New()
	}

	for _, opt := range opts {
		opt(a)
	}
	if a.errorHandler == nil {
		a.errorHandler = DefaultErrorHandler
	}

	a.setupRoutes()
	return a
}

// Handler returns the root http.Handler.
func (a *App) Handler() http.Handler {
	return a.mux
}

// Router returns the route table.
func (a *App) Router() *router.Router {
	return a.router
}

// Run serves the app on addr and blocks until shutdown.
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	return runServer(runtimeConfig{
		handler:         a.mux,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

func (a *App) setupRoutes() {
	// chi resolves routes by method, so normalize it before routing.
	a.mux.Use(normalizeMethod)
	for _, mw := range a.middlewares {
		a.mux.Use(mw)
	}

	if a.healthConfig != nil {
		opts := []health.Option{health.WithLogger(a.logger), health.WithTimeout(a.healthConfig.timeout)}
		a.mux.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.mux.Get(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks, opts...))
	}

	if a.metricsHandler != nil {
		a.mux.Get(a.metricsPath, a.metricsHandler.ServeHTTP)
	}

	a.mux.Handle("/*", http.HandlerFunc(a.dispatch))
}

func normalizeMethod(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if upper := strings.ToUpper(r.Method); upper != r.Method {
			r = r.WithContext(r.Context())
			r.Method = upper
		}
		next.ServeHTTP(w, r)
	})
}
