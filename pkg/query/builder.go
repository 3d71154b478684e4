package query

import (
	"fmt"
	"strings"
)

// Builder assembles a SELECT statement through chained calls.
//
// A failing call records its error and leaves the builder exactly as it was;
// every later call is a no-op and [Builder.SQL] returns the recorded error
// until [Builder.ClearErr] drops it.
// The only check deferred to SQL is join orphan detection, because joins may
// be declared before the table they hang off.
//
// Each clause is compiled lazily and cached until a call touches its part of
// the state. A Builder is not safe for concurrent use.
type Builder struct {
	err     error
	dialect Dialect

	selects      []column
	selectNames  map[string]struct{}
	tables       []table
	tableAliases map[string]struct{}
	joins        map[string][]join
	joinCount    int
	wheres       [][]condition
	orderBys     []ordering
	limit        *int
	offset       *int

	cache clauseCache
}

// clauseCache holds compiled clauses; nil means absent.
type clauseCache struct {
	selectClause  *string
	fromClause    *string
	whereClause   *string
	orderByClause *string
}

// Option configures a Builder.
type Option func(*Builder)

// WithDialect selects the SQL dialect. Defaults to [MySQL].
func WithDialect(d Dialect) Option {
	return func(b *Builder) {
		if d.quote != 0 {
			b.dialect = d
		}
	}
}

// New creates an empty builder.
//
// Example:
//
//	sql, err := query.New().
//	    From("users").
//	    Where("age", ">", 18).
//	    OrderBy(query.Asc("name")).
//	    Limit(10).
//	    SQL()
//	// SELECT `users`.* FROM `users` WHERE (`age` > 18) ORDER BY `name` ASC LIMIT 10
func New(opts ...Option) *Builder {
	b := &Builder{dialect: MySQL}
	for _, opt := range opts {
		opt(b)
	}
	b.Reset()
	return b
}

// Reset clears all state except the dialect, so the builder can be reused
// for a new query.
func (b *Builder) Reset() *Builder {
	b.err = nil
	b.selects = nil
	b.selectNames = make(map[string]struct{})
	b.tables = nil
	b.tableAliases = make(map[string]struct{})
	b.joins = make(map[string][]join)
	b.joinCount = 0
	b.wheres = [][]condition{nil}
	b.orderBys = nil
	b.limit = nil
	b.offset = nil
	b.cache = clauseCache{}
	return b
}

// Dialect returns the builder dialect.
func (b *Builder) Dialect() Dialect {
	return b.dialect
}

// Err returns the first error recorded by a builder call.
func (b *Builder) Err() error {
	return b.err
}

// ClearErr drops the recorded error and keeps every clause, so the builder
// continues from the state before the failing call.
func (b *Builder) ClearErr() *Builder {
	b.err = nil
	return b
}

// fail records err unless an error is already recorded.
func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// SQL compiles the full statement. Clauses whose cache is present are reused.
func (b *Builder) SQL() (string, error) {
	if b.err != nil {
		return "", b.err
	}

	from, err := cached(&b.cache.fromClause, b.compileFrom)
	if err != nil {
		return "", err
	}
	sel, _ := cached(&b.cache.selectClause, b.compileSelect)
	where, _ := cached(&b.cache.whereClause, b.compileWhere)
	order, _ := cached(&b.cache.orderByClause, b.compileOrderBy)

	parts := make([]string, 0, 5)
	for _, p := range []string{sel, from, where, order, b.compileLimit()} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " "), nil
}

// String implements fmt.Stringer. Errors are rendered inline.
func (b *Builder) String() string {
	sql, err := b.SQL()
	if err != nil {
		return fmt.Sprintf("<invalid query: %v>", err)
	}
	return sql
}

// cached returns *slot, computing and storing it first when absent.
func cached(slot **string, compile func() (string, error)) (string, error) {
	if *slot != nil {
		return **slot, nil
	}
	s, err := compile()
	if err != nil {
		return "", err
	}
	*slot = &s
	return s, nil
}
