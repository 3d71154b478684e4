// Package middlewares provides net/http middleware used by the waypoint
// HTTP shell. Every middleware has the func(http.Handler) http.Handler shape
// and can be mounted on any chi router.
//
// # Request ID
//
// RequestID reuses an upstream ID from X-Request-ID (or X-Correlation-ID) or
// generates a UUID, stores it in the request context and echoes it in the
// response. Pair it with RequestIDExtractor so every log record carries it:
//
//	log := logger.New(cfg, middlewares.RequestIDExtractor())
//	r.Use(middlewares.RequestID())
//
// # Recover
//
// Recover turns a panic into a *PanicError passed to a handler callback,
// which by default logs it and writes 500.
//
// # Timeout
//
// Timeout sets a deadline on the request context. Handlers that respect
// context cancellation stop early; the HTTP shell maps an expired deadline
// to 504.
//
// # Access log
//
// AccessLog logs one record per request with status, size and duration.
package middlewares
