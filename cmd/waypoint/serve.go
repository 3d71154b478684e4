package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/waypoint"
	"github.com/dmitrymomot/waypoint/middlewares"
	"github.com/dmitrymomot/waypoint/pkg/cache"
	"github.com/dmitrymomot/waypoint/pkg/db"
	"github.com/dmitrymomot/waypoint/pkg/logger"
	"github.com/dmitrymomot/waypoint/pkg/redis"
)

const memoryCacheEntries = 1000

const sentryFlushTimeout = 2 * time.Second

func serveCmd() *cobra.Command {
	var (
		addr    string
		migrate bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server and block until SIGINT or SIGTERM.

Without DATABASE_CONN_URL entries are kept in memory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := waypoint.LoadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return serve(cmd.Context(), cfg, migrate)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides WAYPOINT_ADDR)")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply pending migrations before serving")

	return cmd
}

func serve(ctx context.Context, cfg waypoint.Config, migrate bool) error {
	log := logger.New(cfg.Log, middlewares.RequestIDExtractor(), logger.RouteExtractor())

	tp, stopTracing, err := newTracerProvider(cfg.Tracing, os.Stdout)
	if err != nil {
		return err
	}

	runOpts := []waypoint.RunOption{
		waypoint.Logger(log),
		waypoint.ShutdownTimeout(cfg.ShutdownTimeout),
		waypoint.WithContext(ctx),
		waypoint.ShutdownHook(stopTracing),
	}
	if cfg.Log.Sentry.DSN != "" {
		runOpts = append(runOpts, waypoint.ShutdownHook(func(context.Context) error {
			sentry.Flush(sentryFlushTimeout)
			return nil
		}))
	}

	deps := appDeps{log: log, cfg: cfg, tracerProvider: tp}
	if cfg.DB.Enabled() {
		pool, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		if migrate {
			runOpts = append(runOpts, waypoint.StartupHook(func(ctx context.Context) error {
				return applyMigrations(ctx, pool, cfg.DB.MigrationsTable, log)
			}))
		}
		runOpts = append(runOpts, waypoint.ShutdownHook(db.Shutdown(pool)))
		deps.store = &pgStore{pool: pool}
		deps.checks = append(deps.checks, waypoint.WithReadinessCheck("postgres", db.Healthcheck(pool)))
	} else {
		log.Warn("DATABASE_CONN_URL is not set, entries are kept in memory")
		deps.store = newMemStore()
	}

	entries, err := entryCache(ctx, cfg, &deps, &runOpts)
	if err != nil {
		return err
	}
	deps.store = &cachedStore{entryStore: deps.store, entries: entries}

	app, err := newApp(deps)
	if err != nil {
		return err
	}

	log.Info("starting server", "addr", cfg.Addr, "routes", len(app.Router().Routes()))
	return app.Run(cfg.Addr, runOpts...)
}

// entryCache uses Redis when REDIS_URL is set and process memory otherwise.
func entryCache(ctx context.Context, cfg waypoint.Config, deps *appDeps, runOpts *[]waypoint.RunOption) (*cache.Loader[Entry], error) {
	if !cfg.Redis.Enabled() {
		return cache.NewLoader[Entry](cache.NewMemory[Entry](cache.WithMaxEntries(memoryCacheEntries)), cfg.CacheTTL), nil
	}

	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	deps.checks = append(deps.checks, waypoint.WithReadinessCheck("redis", redis.Healthcheck(client)))
	*runOpts = append(*runOpts, waypoint.ShutdownHook(redis.Shutdown(client)))

	return cache.NewLoader[Entry](cache.NewRedis[Entry](client, "waypoint:entries", cfg.CacheTTL), cfg.CacheTTL), nil
}
