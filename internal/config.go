package internal

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/waypoint/pkg/db"
	"github.com/dmitrymomot/waypoint/pkg/logger"
	"github.com/dmitrymomot/waypoint/pkg/redis"
)

// Config is the process configuration read from the environment.
type Config struct {
	Addr       string `env:"WAYPOINT_ADDR" envDefault:":8080"`
	RoutesFile string `env:"WAYPOINT_ROUTES_FILE"`
	// Tracing selects the span exporter: "" disables tracing, "stdout" prints spans.
	Tracing         string        `env:"WAYPOINT_TRACING"`
	ShutdownTimeout time.Duration `env:"WAYPOINT_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"WAYPOINT_REQUEST_TIMEOUT" envDefault:"30s"`
	CacheTTL        time.Duration `env:"WAYPOINT_CACHE_TTL" envDefault:"1m"`

	Log   logger.Config
	DB    db.Config
	Redis redis.Config
}

// LoadConfig parses Config from the environment.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
