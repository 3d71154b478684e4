package waypoint

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/waypoint/internal"
	"github.com/dmitrymomot/waypoint/pkg/health"
	"github.com/dmitrymomot/waypoint/pkg/logger"
	"github.com/dmitrymomot/waypoint/pkg/router"
)

// Type aliases - public API
type (
	// App serves a route table over HTTP.
	App = internal.App

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// Middleware wraps the root http.Handler.
	Middleware = internal.Middleware

	// ErrorHandler renders a classified error.
	ErrorHandler = internal.ErrorHandler

	// HTTPError carries a status code and a client-safe message.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// Response lets a handler choose status and headers.
	Response = internal.Response

	// Config is the process configuration read from the environment.
	Config = internal.Config

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor

	// Router is the route table.
	Router = router.Router

	// Handler is a resolved route handler.
	Handler = router.Handler
)

// Constructors

// New creates an application dispatching to rt.
//
// Example:
//
//	rt := router.New()
//	_ = rt.Get("/entries/{id}", router.Method(entries, "Show", router.Arg("id")))
//
//	app := waypoint.New(rt,
//	    waypoint.WithLogger(log),
//	    waypoint.WithHealthChecks(),
//	)
//	err := app.Run(":8080")
func New(rt *Router, opts ...Option) *App {
	return internal.New(rt, opts...)
}

// NewRouter creates an empty route table.
func NewRouter(opts ...router.Option) *Router {
	return router.New(opts...)
}

// LoadConfig parses Config from the environment.
func LoadConfig() (Config, error) {
	return internal.LoadConfig()
}

// App options

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithMiddleware adds global middleware, applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithErrorHandler replaces the JSON error renderer.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithHealthChecks enables health check endpoints.
// Liveness (/health/live) always returns OK.
// Readiness (/health/ready) runs all configured checks.
//
// Example:
//
//	waypoint.WithHealthChecks(
//	    waypoint.WithReadinessCheck("db", db.Healthcheck(pool)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithMetrics registers request metrics on reg and serves them at /metrics.
func WithMetrics(reg *prometheus.Registry) Option {
	return internal.WithMetrics(reg)
}

// WithMetricsPath overrides the metrics endpoint path.
func WithMetricsPath(path string) Option {
	return internal.WithMetricsPath(path)
}

// WithTracerProvider sets the provider for per-request spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return internal.WithTracerProvider(tp)
}

// Health check options

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// WithHealthTimeout bounds a readiness run.
func WithHealthTimeout(d time.Duration) HealthOption {
	return internal.WithHealthTimeout(d)
}

// Run options

// Logger sets the logger used by the server runtime.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the graceful shutdown timeout.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run before the listener opens.
// Hooks run in order; the first error aborts startup.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a function to run after the server stops.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets a base context; cancelling it triggers shutdown.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Responses and errors

// Created wraps body in a 201 response.
func Created(body any) *Response {
	return internal.Created(body)
}

// NewHTTPError creates an HTTPError. An empty message uses the status text.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithErrorCode sets a machine-readable error code.
func WithErrorCode(code string) HTTPErrorOption {
	return internal.WithErrorCode(code)
}

// WithError attaches the underlying cause.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// ErrBadRequest creates a 400 error.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrNotFound creates a 404 error.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrConflict creates a 409 error.
func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrConflict(message, opts...)
}

// ErrUnprocessable creates a 422 error.
func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnprocessable(message, opts...)
}

// ErrInternal creates a 500 error.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// AsHTTPError extracts an HTTPError from err's chain.
func AsHTTPError(err error) (*HTTPError, bool) {
	return internal.AsHTTPError(err)
}

// ToHTTPError classifies err into an HTTPError.
func ToHTTPError(err error) *HTTPError {
	return internal.ToHTTPError(err)
}

// DefaultErrorHandler writes the error as JSON.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err *HTTPError) {
	internal.DefaultErrorHandler(w, r, err)
}
