package internal

import (
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/waypoint/pkg/logger"
	"github.com/dmitrymomot/waypoint/pkg/router"
)

// dispatch routes r through the route table and writes the handler result.
func (a *App) dispatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	method := strings.ToUpper(r.Method)

	route, err := a.router.Match(r.URL.Path, method)
	if err != nil {
		status := a.handleError(w, r, err)
		a.metrics.observe(method, unmatchedRoute, status, time.Since(start))
		return
	}

	definition := route.Definition()
	ctx := logger.WithRoute(r.Context(), method, definition)
	ctx, span := a.tracer.Start(ctx, method+" "+definition,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("http.route", definition),
			attribute.String("url.path", r.URL.Path),
			attribute.String("waypoint.handler", route.Handler().Name()),
		),
	)
	defer span.End()
	r = r.WithContext(ctx)

	result, err := a.router.Invoke(route, router.NewHTTPRequest(r))

	var status int
	if err == nil {
		status, err = writeResult(w, result)
		if err != nil && status == 0 {
			status = a.handleError(w, r, err)
		}
	} else {
		status = a.handleError(w, r, err)
	}

	if err != nil {
		span.RecordError(err)
	}
	if status >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, http.StatusText(status))
	}
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	a.metrics.observe(method, definition, status, time.Since(start))
}
