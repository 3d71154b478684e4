// Package query builds SELECT statements through a fluent, chainable API.
//
// Every clause is kept as structured state and compiled on demand. The
// compiled SELECT, FROM, WHERE and ORDER BY fragments are cached and
// invalidated independently, so repeated SQL calls on a builder that only
// had its WHERE clause touched recompile only that clause.
//
// Errors are sticky: the first invalid call is recorded, the builder state is
// left as it was before that call, and SQL returns the error.
//
//	b := query.New().
//	    From("users").
//	    LeftJoinAs("users", "posts", "p", query.On("users.id", "=", "p.user_id")).
//	    WhereGroup(func(q *query.Builder) {
//	        q.WhereEquals("users.role", "admin").OrWhereNotNull("p.id")
//	    }).
//	    OrderBy(query.Desc("users.created_at")).
//	    Limit(20)
//
//	sql, err := b.SQL()
//
// Joins may be declared before the table they hang off; a join whose local
// alias never appears in FROM is reported as [ErrOrphanedJoin] by SQL.
//
// [MySQL] is the default dialect. [Postgres] switches identifier quoting and
// boolean literals for use with pgx.
package query
