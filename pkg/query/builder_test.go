package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/pkg/query"
)

func TestBuilderScenario(t *testing.T) {
	t.Parallel()

	sql, err := query.New().
		From("users").
		Where("age", ">", 18).
		OrderBy(query.Asc("name")).
		Limit(10).
		SQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT `users`.* FROM `users` WHERE (`age` > 18) ORDER BY `name` ASC LIMIT 10", sql)
}

func TestBuilderEmpty(t *testing.T) {
	t.Parallel()

	sql, err := query.New().SQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT *", sql)
}

func TestSelect(t *testing.T) {
	t.Parallel()

	t.Run("explicit columns", func(t *testing.T) {
		t.Parallel()
		sql, err := query.New().Select("id", "users.name").From("users").SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `id`, `users`.`name` FROM `users`", sql)
	})

	t.Run("select replaces", func(t *testing.T) {
		t.Parallel()
		sql, err := query.New().Select("id").Select("email").From("users").SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `email` FROM `users`", sql)
	})

	t.Run("add select appends", func(t *testing.T) {
		t.Parallel()
		sql, err := query.New().
			Select("id").
			AddSelect("email").
			AddSelectAs("author", "p.name").
			AddRawSelect("total", "COUNT(*)").
			From("users").
			SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `id`, `email`, `p`.`name` AS `author`, COUNT(*) AS `total` FROM `users`", sql)
	})

	t.Run("default selects every from alias", func(t *testing.T) {
		t.Parallel()
		sql, err := query.New().From("users").FromAs("p", "posts").SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `users`.*, `p`.* FROM `users`, `posts` AS `p`", sql)
	})

	t.Run("duplicate column", func(t *testing.T) {
		t.Parallel()
		_, err := query.New().Select("id").AddSelect("id").From("users").SQL()
		require.ErrorIs(t, err, query.ErrDuplicateColumnName)
	})

	t.Run("duplicate within one call", func(t *testing.T) {
		t.Parallel()
		_, err := query.New().Select("id", "id").SQL()
		require.ErrorIs(t, err, query.ErrDuplicateColumnName)
	})

	t.Run("duplicate ignores quoting", func(t *testing.T) {
		t.Parallel()
		_, err := query.New().Select("a", "`a`").SQL()
		require.ErrorIs(t, err, query.ErrDuplicateColumnName)

		_, err = query.New().Select("users.id").AddSelect("`users`.`id`").SQL()
		require.ErrorIs(t, err, query.ErrDuplicateColumnName)

		_, err = query.New().Select("total").AddRawSelect("`total`", "COUNT(*)").SQL()
		require.ErrorIs(t, err, query.ErrDuplicateColumnName)
	})

	t.Run("duplicate raw alias", func(t *testing.T) {
		t.Parallel()
		_, err := query.New().Select("total").AddRawSelect("total", "COUNT(*)").SQL()
		require.ErrorIs(t, err, query.ErrDuplicateColumnName)
	})

	t.Run("empty column", func(t *testing.T) {
		t.Parallel()
		_, err := query.New().Select("").SQL()
		require.ErrorIs(t, err, query.ErrInvalidColumnName)

		_, err = query.New().Select("users.").SQL()
		require.ErrorIs(t, err, query.ErrInvalidColumnName)
	})

	t.Run("empty raw expression", func(t *testing.T) {
		t.Parallel()
		_, err := query.New().AddRawSelect("x", "  ").SQL()
		require.ErrorIs(t, err, query.ErrInvalidQueryExpression)
	})
}

func TestFrom(t *testing.T) {
	t.Parallel()

	t.Run("quoted once", func(t *testing.T) {
		t.Parallel()
		sql, err := query.New().From("`users`").SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `users`.* FROM `users`", sql)
	})

	t.Run("schema qualified", func(t *testing.T) {
		t.Parallel()
		sql, err := query.New().From("app.users").SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `users`.* FROM `app`.`users` AS `users`", sql)
	})

	t.Run("alias", func(t *testing.T) {
		t.Parallel()
		sql, err := query.New().FromAs("u", "users").SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `u`.* FROM `users` AS `u`", sql)
	})

	t.Run("raw", func(t *testing.T) {
		t.Parallel()
		sql, err := query.New().RawFrom("d", "(SELECT 1 AS n)").SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `d`.* FROM (SELECT 1 AS n) AS `d`", sql)
	})

	t.Run("subquery", func(t *testing.T) {
		t.Parallel()
		sub := query.New().From("posts").Limit(5)
		sql, err := query.New().FromSub("recent", sub).SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `recent`.* FROM (SELECT `posts`.* FROM `posts` LIMIT 5) AS `recent`", sql)
	})

	t.Run("invalid subquery propagates", func(t *testing.T) {
		t.Parallel()
		sub := query.New().Limit(-1)
		_, err := query.New().FromSub("recent", sub).SQL()
		require.ErrorIs(t, err, query.ErrInvalidLimit)
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		_, err := query.New().From(" ").SQL()
		require.ErrorIs(t, err, query.ErrInvalidTableName)
	})

	t.Run("duplicate alias", func(t *testing.T) {
		t.Parallel()
		_, err := query.New().From("users").FromAs("users", "accounts").SQL()
		require.ErrorIs(t, err, query.ErrDuplicateTableName)

		_, err = query.New().From("`users`").FromAs("users", "accounts").SQL()
		require.ErrorIs(t, err, query.ErrDuplicateTableName)
	})
}

func TestJoin(t *testing.T) {
	t.Parallel()

	t.Run("left join with alias", func(t *testing.T) {
		t.Parallel()
		sql, err := query.New().
			From("users").
			LeftJoinAs("users", "posts", "p", query.On("users.id", "=", "p.user_id")).
			SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `users`.* FROM `users` LEFT JOIN `posts` AS `p` ON `users`.`id` = `p`.`user_id`", sql)
	})

	t.Run("chain", func(t *testing.T) {
		t.Parallel()
		sql, err := query.New().
			From("a").
			InnerJoin("a", "b", query.On("a.id", "=", "b.a_id")).
			InnerJoin("b", "c", query.On("b.id", "=", "c.b_id")).
			SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `a`.* FROM `a` INNER JOIN `b` ON `a`.`id` = `b`.`a_id` INNER JOIN `c` ON `b`.`id` = `c`.`b_id`", sql)
	})

	t.Run("joins follow their table", func(t *testing.T) {
		t.Parallel()
		sql, err := query.New().
			From("a").
			From("x").
			RightJoin("x", "y", query.On("x.id", "=", "y.x_id")).
			LeftJoin("a", "b", query.On("a.id", "=", "b.a_id")).
			SQL()
		require.NoError(t, err)
		assert.Equal(t,
			"SELECT `a`.*, `x`.* FROM `a` LEFT JOIN `b` ON `a`.`id` = `b`.`a_id`, `x` RIGHT JOIN `y` ON `x`.`id` = `y`.`x_id`",
			sql)
	})

	t.Run("or combine", func(t *testing.T) {
		t.Parallel()
		sql, err := query.New().
			From("a").
			Join(query.JoinInner, "a", "b", "", query.Or,
				query.On("a.x", "=", "b.x"),
				query.On("a.y", "<>", "b.y"),
			).
			SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `a`.* FROM `a` INNER JOIN `b` ON `a`.`x` = `b`.`x` OR `a`.`y` <> `b`.`y`", sql)
	})

	t.Run("raw join", func(t *testing.T) {
		t.Parallel()
		sql, err := query.New().
			From("users").
			RawLeftJoin("users", "(SELECT user_id FROM bans)", "b", query.On("users.id", "=", "b.user_id")).
			SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `users`.* FROM `users` LEFT JOIN (SELECT user_id FROM bans) AS `b` ON `users`.`id` = `b`.`user_id`", sql)
	})

	t.Run("join before from", func(t *testing.T) {
		t.Parallel()
		b := query.New().LeftJoin("users", "posts", query.On("users.id", "=", "posts.user_id"))
		require.NoError(t, b.Err())

		sql, err := b.From("users").SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `users`.* FROM `users` LEFT JOIN `posts` ON `users`.`id` = `posts`.`user_id`", sql)
	})

	t.Run("orphaned join is deferred", func(t *testing.T) {
		t.Parallel()
		b := query.New().From("a").LeftJoin("b", "c", query.On("b.id", "=", "c.b_id"))
		require.NoError(t, b.Err())

		_, err := b.SQL()
		require.ErrorIs(t, err, query.ErrOrphanedJoin)
		assert.Contains(t, err.Error(), `"b"`)
	})

	t.Run("unreachable cycle is orphaned", func(t *testing.T) {
		t.Parallel()
		_, err := query.New().
			From("a").
			LeftJoinAs("x", "t1", "y", query.On("x.id", "=", "y.id")).
			LeftJoinAs("y", "t2", "x", query.On("y.id", "=", "x.id")).
			SQL()
		require.ErrorIs(t, err, query.ErrOrphanedJoin)
	})

	t.Run("quoted from is a join anchor", func(t *testing.T) {
		t.Parallel()
		sql, err := query.New().
			From("`users`").
			LeftJoin("users", "posts", query.On("users.id", "=", "posts.user_id")).
			SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `users`.* FROM `users` LEFT JOIN `posts` ON `users`.`id` = `posts`.`user_id`", sql)

		sql, err = query.New().
			From("users").
			LeftJoin("`users`", "`posts`", query.On("users.id", "=", "posts.user_id")).
			SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `users`.* FROM `users` LEFT JOIN `posts` ON `users`.`id` = `posts`.`user_id`", sql)
	})

	t.Run("duplicate alias", func(t *testing.T) {
		t.Parallel()
		_, err := query.New().From("users").LeftJoin("users", "users", query.On("users.id", "=", "users.id")).SQL()
		require.ErrorIs(t, err, query.ErrDuplicateTableName)
	})

	t.Run("invalid operator", func(t *testing.T) {
		t.Parallel()
		_, err := query.New().From("a").LeftJoin("a", "b", query.On("a.id", "LIKE", "b.id")).SQL()
		require.ErrorIs(t, err, query.ErrInvalidOperator)
	})

	t.Run("missing on", func(t *testing.T) {
		t.Parallel()
		_, err := query.New().From("a").LeftJoin("a", "b").SQL()
		require.ErrorIs(t, err, query.ErrInvalidQueryExpression)
	})

	t.Run("empty column in on", func(t *testing.T) {
		t.Parallel()
		_, err := query.New().From("a").LeftJoin("a", "b", query.On("", "=", "b.id")).SQL()
		require.ErrorIs(t, err, query.ErrInvalidColumnName)
	})
}

func TestWhere(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(*query.Builder) *query.Builder
		want  string
	}{
		{
			name:  "and",
			build: func(b *query.Builder) *query.Builder { return b.Where("a", ">=", 1).Where("b", "<", 2) },
			want:  "WHERE (`a` >= 1 AND `b` < 2)",
		},
		{
			name:  "or",
			build: func(b *query.Builder) *query.Builder { return b.WhereEquals("a", 1).OrWhereEquals("b", "x") },
			want:  "WHERE (`a` = 1 OR `b` = 'x')",
		},
		{
			name:  "nil equals",
			build: func(b *query.Builder) *query.Builder { return b.Where("deleted_at", "=", nil) },
			want:  "WHERE (`deleted_at` IS NULL)",
		},
		{
			name:  "nil not equals",
			build: func(b *query.Builder) *query.Builder { return b.Where("deleted_at", "!=", nil) },
			want:  "WHERE (`deleted_at` IS NOT NULL)",
		},
		{
			name:  "null helpers",
			build: func(b *query.Builder) *query.Builder { return b.WhereNull("a").OrWhereNotNull("b") },
			want:  "WHERE (`a` IS NULL OR `b` IS NOT NULL)",
		},
		{
			name:  "operator normalized",
			build: func(b *query.Builder) *query.Builder { return b.Where("name", "not  like", "a%") },
			want:  "WHERE (`name` NOT LIKE 'a%')",
		},
		{
			name:  "in",
			build: func(b *query.Builder) *query.Builder { return b.WhereIn("id", []int{1, 2, 3}) },
			want:  "WHERE (`id` IN (1, 2, 3))",
		},
		{
			name:  "not in strings",
			build: func(b *query.Builder) *query.Builder { return b.WhereNotIn("role", []string{"a", "b"}) },
			want:  "WHERE (`role` NOT IN ('a', 'b'))",
		},
		{
			name: "in subquery",
			build: func(b *query.Builder) *query.Builder {
				return b.WhereIn("id", query.New().Select("user_id").From("posts"))
			},
			want: "WHERE (`id` IN (SELECT `user_id` FROM `posts`))",
		},
		{
			name:  "contains escapes wildcards",
			build: func(b *query.Builder) *query.Builder { return b.WhereContains("title", "50%_off") },
			want:  "WHERE (`title` LIKE '%50\\\\%\\\\_off%')",
		},
		{
			name:  "starts and ends",
			build: func(b *query.Builder) *query.Builder { return b.WhereStartsWith("a", "x").OrWhereNotEndsWith("b", "y") },
			want:  "WHERE (`a` LIKE 'x%' OR `b` NOT LIKE '%y')",
		},
		{
			name:  "not contains",
			build: func(b *query.Builder) *query.Builder { return b.WhereNotContains("a", "x") },
			want:  "WHERE (`a` NOT LIKE '%x%')",
		},
		{
			name:  "length",
			build: func(b *query.Builder) *query.Builder { return b.WhereLength("code", "=", 6).OrWhereLength("code", ">", 10) },
			want:  "WHERE (CHAR_LENGTH(`code`) = 6 OR CHAR_LENGTH(`code`) > 10)",
		},
		{
			name:  "raw",
			build: func(b *query.Builder) *query.Builder { return b.WhereEquals("a", true).OrWhereRaw("b > NOW()") },
			want:  "WHERE (`a` = 1 OR b > NOW())",
		},
		{
			name: "group",
			build: func(b *query.Builder) *query.Builder {
				return b.WhereGroup(func(q *query.Builder) {
					q.WhereEquals("a", 1).OrWhereEquals("b", 2)
				})
			},
			want: "WHERE (`a` = 1 OR `b` = 2)",
		},
		{
			name: "or group",
			build: func(b *query.Builder) *query.Builder {
				return b.WhereEquals("a", 1).OrWhereGroup(func(q *query.Builder) {
					q.WhereEquals("b", 2).WhereEquals("c", 3)
				})
			},
			want: "WHERE (`a` = 1 OR (`b` = 2 AND `c` = 3))",
		},
		{
			name: "nested groups",
			build: func(b *query.Builder) *query.Builder {
				return b.WhereGroup(func(q *query.Builder) {
					q.WhereEquals("a", 1).OrWhereGroup(func(q *query.Builder) {
						q.WhereEquals("b", 2).WhereEquals("c", 3)
					})
				}).WhereNotNull("d")
			},
			want: "WHERE ((`a` = 1 OR (`b` = 2 AND `c` = 3)) AND `d` IS NOT NULL)",
		},
		{
			name: "empty group dropped",
			build: func(b *query.Builder) *query.Builder {
				return b.WhereGroup(func(*query.Builder) {}).WhereEquals("a", 1)
			},
			want: "WHERE (`a` = 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sql, err := tt.build(query.New().From("t")).SQL()
			require.NoError(t, err)
			assert.Equal(t, "SELECT `t`.* FROM `t` "+tt.want, sql)
		})
	}
}

func TestWhereErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		build   func(*query.Builder) *query.Builder
		wantErr error
	}{
		{"unknown operator", func(b *query.Builder) *query.Builder { return b.Where("a", "~~", 1) }, query.ErrInvalidOperator},
		{"empty column", func(b *query.Builder) *query.Builder { return b.Where("", "=", 1) }, query.ErrInvalidColumnName},
		{"nil with ordering operator", func(b *query.Builder) *query.Builder { return b.Where("a", ">", nil) }, query.ErrInvalidOperator},
		{"is with value", func(b *query.Builder) *query.Builder { return b.Where("a", "IS", 1) }, query.ErrInvalidQueryExpression},
		{"in with scalar", func(b *query.Builder) *query.Builder { return b.WhereIn("a", 1) }, query.ErrInvalidQueryExpression},
		{"in empty", func(b *query.Builder) *query.Builder { return b.WhereIn("a", []int{}) }, query.ErrInvalidQueryExpression},
		{"unsupported value", func(b *query.Builder) *query.Builder { return b.WhereEquals("a", struct{}{}) }, query.ErrInvalidQueryExpression},
		{"length with like", func(b *query.Builder) *query.Builder { return b.WhereLength("a", "LIKE", 1) }, query.ErrInvalidOperator},
		{"negative length", func(b *query.Builder) *query.Builder { return b.WhereLength("a", ">", -1) }, query.ErrInvalidQueryExpression},
		{"empty raw", func(b *query.Builder) *query.Builder { return b.WhereRaw("") }, query.ErrInvalidQueryExpression},
		{"nil group", func(b *query.Builder) *query.Builder { return b.WhereGroup(nil) }, query.ErrInvalidQueryExpression},
		{
			"error inside group",
			func(b *query.Builder) *query.Builder {
				return b.WhereGroup(func(q *query.Builder) { q.WhereEquals("a", 1).Where("b", "??", 2) })
			},
			query.ErrInvalidOperator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := tt.build(query.New().From("t"))
			require.ErrorIs(t, b.Err(), tt.wantErr)

			_, err := b.SQL()
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOrderBy(t *testing.T) {
	t.Parallel()

	t.Run("multiple", func(t *testing.T) {
		t.Parallel()
		sql, err := query.New().From("t").OrderBy(query.Desc("created_at"), query.By("id", "asc")).SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `t`.* FROM `t` ORDER BY `created_at` DESC, `id` ASC", sql)
	})

	t.Run("empty direction defaults to asc", func(t *testing.T) {
		t.Parallel()
		sql, err := query.New().From("t").OrderBy(query.By("id", "")).SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `t`.* FROM `t` ORDER BY `id` ASC", sql)
	})

	t.Run("same column replaces direction", func(t *testing.T) {
		t.Parallel()
		sql, err := query.New().From("t").OrderBy(query.Asc("a"), query.Asc("b")).OrderBy(query.Desc("a")).SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `t`.* FROM `t` ORDER BY `a` DESC, `b` ASC", sql)
	})

	t.Run("raw", func(t *testing.T) {
		t.Parallel()
		sql, err := query.New().From("t").RawOrderBy("RAND()", query.ASC).SQL()
		require.NoError(t, err)
		assert.Equal(t, "SELECT `t`.* FROM `t` ORDER BY RAND() ASC", sql)
	})

	t.Run("invalid direction", func(t *testing.T) {
		t.Parallel()
		_, err := query.New().From("t").OrderBy(query.Asc("a"), query.By("b", "SIDEWAYS")).SQL()
		require.ErrorIs(t, err, query.ErrInvalidOrderByDirection)

		_, err = query.New().From("t").RawOrderBy("RAND()", "UP").SQL()
		require.ErrorIs(t, err, query.ErrInvalidOrderByDirection)
	})

	t.Run("empty raw", func(t *testing.T) {
		t.Parallel()
		_, err := query.New().From("t").RawOrderBy("", query.ASC).SQL()
		require.ErrorIs(t, err, query.ErrInvalidQueryExpression)
	})
}

func TestLimitOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		build   func(*query.Builder) *query.Builder
		want    string
		wantErr error
	}{
		{"limit", func(b *query.Builder) *query.Builder { return b.Limit(10) }, "LIMIT 10", nil},
		{"zero limit", func(b *query.Builder) *query.Builder { return b.Limit(0) }, "LIMIT 0", nil},
		{"limit and offset", func(b *query.Builder) *query.Builder { return b.Limit(10).Offset(20) }, "LIMIT 10 OFFSET 20", nil},
		{"offset only", func(b *query.Builder) *query.Builder { return b.Offset(5) }, "LIMIT 18446744073709551615 OFFSET 5", nil},
		{"negative limit", func(b *query.Builder) *query.Builder { return b.Limit(-1) }, "", query.ErrInvalidLimit},
		{"negative offset", func(b *query.Builder) *query.Builder { return b.Offset(-1) }, "", query.ErrInvalidLimitOffset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sql, err := tt.build(query.New().From("t")).SQL()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "SELECT `t`.* FROM `t` "+tt.want, sql)
		})
	}
}

func TestBuilderStickyError(t *testing.T) {
	t.Parallel()

	b := query.New().From("").From("users").Where("a", "=", 1)
	require.ErrorIs(t, b.Err(), query.ErrInvalidTableName)
	assert.Contains(t, b.String(), "invalid query")

	sql, err := b.Reset().From("users").SQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT `users`.* FROM `users`", sql)
}

func TestBuilderClearErr(t *testing.T) {
	t.Parallel()

	b := query.New().From("t").OrderBy(query.Asc("a"))
	b.OrderBy(query.Asc("b"), query.By("c", "SIDEWAYS"))
	require.ErrorIs(t, b.Err(), query.ErrInvalidOrderByDirection)

	// Calls made while the error is recorded are dropped.
	_, err := b.Limit(5).SQL()
	require.ErrorIs(t, err, query.ErrInvalidOrderByDirection)

	sql, err := b.ClearErr().SQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT `t`.* FROM `t` ORDER BY `a` ASC", sql)

	sql, err = b.Limit(5).SQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT `t`.* FROM `t` ORDER BY `a` ASC LIMIT 5", sql)
}

func TestBuilderSQLIsRepeatable(t *testing.T) {
	t.Parallel()

	b := query.New().From("users").WhereEquals("id", 1)
	first, err := b.SQL()
	require.NoError(t, err)
	second, err := b.SQL()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	third, err := b.WhereEquals("active", true).SQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT `users`.* FROM `users` WHERE (`id` = 1 AND `active` = 1)", third)
}

func TestPostgresDialect(t *testing.T) {
	t.Parallel()

	sql, err := query.New(query.WithDialect(query.Postgres)).
		From("public.users").
		WhereEquals("active", true).
		WhereContains("name", `a\b`).
		Offset(10).
		SQL()
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT "users".* FROM "public"."users" AS "users" WHERE ("active" = TRUE AND "name" LIKE '%a\\b%') LIMIT ALL OFFSET 10`,
		sql)
}
