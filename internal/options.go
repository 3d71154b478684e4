package internal

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/waypoint/pkg/health"
)

const defaultMetricsPath = "/metrics"

// Option configures the App.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMiddleware appends global middleware, applied in order.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithErrorHandler replaces [DefaultErrorHandler].
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithHealthChecks mounts liveness and readiness endpoints.
//
//	internal.WithHealthChecks(
//	    internal.WithReadinessCheck("db", db.Healthcheck(pool)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			timeout:       defaultHealthTimeout,
			checks:        make(health.Checks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithMetrics registers dispatch metrics on reg and serves reg at
// "/metrics".
func WithMetrics(reg *prometheus.Registry) Option {
	return func(a *App) {
		if reg == nil {
			return
		}
		a.metrics = NewMetrics(reg)
		a.metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	}
}

// WithMetricsPath overrides "/metrics".
func WithMetricsPath(path string) Option {
	return func(a *App) {
		if path != "" {
			a.metricsPath = path
		}
	}
}

// WithTracerProvider sets the provider for dispatch spans. Defaults to the
// global otel provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *App) {
		if tp != nil {
			a.tracer = tp.Tracer(tracerName)
		}
	}
}
