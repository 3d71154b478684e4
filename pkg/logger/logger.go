package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls the base handler.
type Config struct {
	// Level is one of debug, info, warn, error. Unknown values fall back to info.
	Level string `env:"WAYPOINT_LOG_LEVEL" envDefault:"info"`

	// Format is json or text.
	Format string `env:"WAYPOINT_LOG_FORMAT" envDefault:"json"`

	Sentry SentryConfig
}

// New creates a logger writing to stdout with optional context extractors.
// When cfg.Sentry.DSN is set, records are also forwarded to Sentry.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	base := newBaseHandler(os.Stdout, cfg)
	if cfg.Sentry.DSN == "" {
		return slog.New(NewLogHandlerDecorator(base, extractors...))
	}
	return slog.New(NewLogHandlerDecorator(withSentry(base, cfg.Sentry), extractors...))
}

// ParseLevel converts a level name to slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newBaseHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
