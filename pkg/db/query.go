package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/waypoint/pkg/query"
)

// Querier is implemented by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// NewQuery returns a builder using the Postgres dialect.
func NewQuery() *query.Builder {
	return query.New(query.WithDialect(query.Postgres))
}

// Select compiles b and runs it on q. Builders must use [query.Postgres].
func Select(ctx context.Context, q Querier, b *query.Builder) (pgx.Rows, error) {
	sql, err := compile(b)
	if err != nil {
		return nil, err
	}
	return q.Query(ctx, sql)
}

// SelectInto runs b and maps every row onto T by column name.
func SelectInto[T any](ctx context.Context, q Querier, b *query.Builder) ([]T, error) {
	rows, err := Select(ctx, q, b)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

// SelectOne runs b and maps exactly one row onto T. No rows yields
// [ErrNotFound].
func SelectOne[T any](ctx context.Context, q Querier, b *query.Builder) (T, error) {
	var zero T
	rows, err := Select(ctx, q, b)
	if err != nil {
		return zero, err
	}
	v, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, ErrNotFound
	}
	return v, err
}

func compile(b *query.Builder) (string, error) {
	if b == nil {
		return "", fmt.Errorf("%w: nil builder", query.ErrInvalidQueryExpression)
	}
	if b.Dialect().Name() != query.Postgres.Name() {
		return "", fmt.Errorf("%w: got %s", ErrQueryDialect, b.Dialect().Name())
	}
	return b.SQL()
}
