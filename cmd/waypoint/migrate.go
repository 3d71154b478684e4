package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/waypoint"
	"github.com/dmitrymomot/waypoint/pkg/db"
	"github.com/dmitrymomot/waypoint/pkg/logger"
)

var errNoDatabase = errors.New("waypoint: DATABASE_CONN_URL is not set")

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := waypoint.LoadConfig()
			if err != nil {
				return err
			}
			if !cfg.DB.Enabled() {
				return errNoDatabase
			}

			log := logger.New(cfg.Log)
			pool, err := db.Connect(cmd.Context(), cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			return applyMigrations(cmd.Context(), pool, cfg.DB.MigrationsTable, log)
		},
	}
}

func applyMigrations(ctx context.Context, pool *pgxpool.Pool, table string, log *slog.Logger) error {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	return db.Migrate(ctx, pool, sub, table, log)
}
