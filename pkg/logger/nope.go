package logger

import (
	"io"
	"log/slog"
)

// NewNope creates a logger that discards all output.
// Packages use it as their default until a logger is configured.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewWriter creates a text logger writing to w at the given level.
// Tests use it to capture output.
func NewWriter(w io.Writer, level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewLogHandlerDecorator(h, extractors...))
}
