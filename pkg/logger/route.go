package logger

import (
	"context"
	"log/slog"
)

type routeKey struct{}

type routeInfo struct {
	method     string
	definition string
}

// WithRoute stores the matched route in ctx so [RouteExtractor] can add it
// to every record logged with that context.
func WithRoute(ctx context.Context, method, definition string) context.Context {
	return context.WithValue(ctx, routeKey{}, routeInfo{method: method, definition: definition})
}

// RouteExtractor adds a "route" group with method and definition.
func RouteExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		info, ok := ctx.Value(routeKey{}).(routeInfo)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.Group("route",
			slog.String("method", info.method),
			slog.String("definition", info.definition),
		), true
	}
}
