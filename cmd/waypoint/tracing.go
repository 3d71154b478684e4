package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var errUnknownTracing = errors.New("waypoint: unknown tracing exporter")

// newTracerProvider builds the provider selected by WAYPOINT_TRACING.
// The returned func flushes and stops it.
func newTracerProvider(kind string, w io.Writer) (trace.TracerProvider, func(context.Context) error, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "none":
		return noop.NewTracerProvider(), func(context.Context) error { return nil }, nil
	case "stdout":
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(w),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
		return tp, tp.Shutdown, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", errUnknownTracing, kind)
	}
}
