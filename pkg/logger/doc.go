// Package logger builds the structured loggers used across waypoint.
//
// It extends log/slog with context extractors, which add request-scoped
// attributes such as the request ID or the matched route to every record, and
// with optional Sentry forwarding.
//
//	log := logger.New(logger.Config{Level: "debug"},
//		middlewares.RequestIDExtractor(),
//		logger.RouteExtractor(),
//	)
//
//	ctx = logger.WithRoute(ctx, "GET", "/entry/{id}/edit")
//	log.InfoContext(ctx, "entry loaded")
//	// {"level":"INFO","msg":"entry loaded","route":{"method":"GET","definition":"/entry/{id}/edit"}}
//
// When Config.Sentry.DSN is empty only stdout is used, so the same setup runs
// in development and production.
package logger
