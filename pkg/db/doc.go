// Package db wraps [github.com/jackc/pgx/v5/pgxpool] for the application:
// pool setup with startup retries, a health probe, transactions, goose
// migrations and execution of [query.Builder] statements.
//
// # Configuration
//
// [Config] is populated from the environment:
//
//	DATABASE_CONN_URL           - PostgreSQL connection URL (empty disables the database)
//	DATABASE_MAX_OPEN_CONNS     - Maximum open connections (default: 10)
//	DATABASE_MIN_CONNS          - Minimum idle connections (default: 2)
//	DATABASE_HEALTHCHECK_PERIOD - Pool health check interval (default: 1m)
//	DATABASE_MAX_CONN_IDLE_TIME - Maximum connection idle time (default: 10m)
//	DATABASE_MAX_CONN_LIFETIME  - Maximum connection lifetime (default: 30m)
//	DATABASE_RETRY_ATTEMPTS     - Connection attempts at startup (default: 3)
//	DATABASE_RETRY_INTERVAL     - Base retry interval (default: 5s)
//	DATABASE_MIGRATIONS_TABLE   - Migrations table name (default: schema_migrations)
//
// # Queries
//
// Builders passed to [Select], [SelectInto] and [SelectOne] must use the
// Postgres dialect; [NewQuery] returns one.
//
//	type Entry struct {
//		ID    int64  `db:"id"`
//		Title string `db:"title"`
//	}
//
//	entries, err := db.SelectInto[Entry](ctx, pool,
//		db.NewQuery().From("entries").WhereStartsWith("title", "go").Limit(20))
//
// # Transactions
//
//	err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//		_, err := tx.Exec(ctx, "UPDATE entries SET views = views + 1 WHERE id = $1", id)
//		return err
//	})
//
// Errors from collaborators are wrapped with [errors.Join] and a package
// sentinel such as [ErrFailedToOpenDBConnection].
package db
