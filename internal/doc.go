// Package internal implements the HTTP shell around [router.Router].
//
// Import "github.com/dmitrymomot/waypoint" instead; it re-exports the public
// API.
//
// # Dispatch
//
// Every request that is not a health or metrics endpoint is handed to the
// route table. The method is upper-cased, the first matching route wins and
// its handler is invoked with arguments resolved from the path. The handler
// result is written as:
//
//   - nil: 204 No Content
//   - string: text/plain
//   - []byte: application/octet-stream
//   - *Response: explicit status, headers and body
//   - anything else: JSON
//
// # Errors
//
// Handler and routing errors are translated into *HTTPError before they
// reach the [ErrorHandler]: unroutable requests become 404, route or handler
// configuration bugs become 500, expired request deadlines become 504.
// Handlers may return *HTTPError directly to pick the status.
//
// # Observability
//
// Dispatch stores the matched route in the request context for
// logger.RouteExtractor, opens an OpenTelemetry server span named
// "METHOD definition", and records Prometheus request counters and
// latencies labelled by route definition when [WithMetrics] is used.
//
//	app := internal.New(rt,
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.AccessLog(log)),
//	    internal.WithHealthChecks(internal.WithReadinessCheck("db", db.Healthcheck(pool))),
//	    internal.WithMetrics(prometheus.NewRegistry()),
//	)
//	err := app.Run(":8080", internal.ShutdownHook(db.Shutdown(pool)))
package internal
