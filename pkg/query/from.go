package query

import (
	"fmt"
	"strings"
)

// JoinKind is the join flavour.
type JoinKind string

const (
	JoinLeft  JoinKind = "LEFT"
	JoinRight JoinKind = "RIGHT"
	JoinInner JoinKind = "INNER"
)

// Combine joins sibling conditions.
type Combine string

const (
	And Combine = "AND"
	Or  Combine = "OR"
)

// OnExpr is one join condition comparing two column references.
type OnExpr struct {
	Left     string
	Operator string
	Right    string
}

// On builds a join condition.
//
//	query.On("u.id", "=", "p.user_id")
func On(left, operator, right string) OnExpr {
	return OnExpr{Left: left, Operator: operator, Right: right}
}

type table struct {
	alias string
	expr  string
}

type join struct {
	kind    JoinKind
	target  string
	alias   string
	combine Combine
	on      []string
	// aliased is set when target and alias differ.
	aliased bool
}

// From adds a table to the FROM list under its own name.
func (b *Builder) From(name string) *Builder {
	if b.err != nil {
		return b
	}
	expr, ok := b.dialect.QuoteName(name)
	if !ok {
		return b.fail(fmt.Errorf("%w: %q", ErrInvalidTableName, name))
	}
	alias := b.dialect.nameKey(name)
	if i := strings.LastIndex(alias, "."); i >= 0 {
		alias = alias[i+1:]
		expr += " AS " + b.dialect.QuoteIdent(alias)
	}
	return b.addTable(alias, expr)
}

// FromAs adds a table to the FROM list under alias.
func (b *Builder) FromAs(alias, name string) *Builder {
	if b.err != nil {
		return b
	}
	expr, ok := b.dialect.QuoteName(name)
	if !ok {
		return b.fail(fmt.Errorf("%w: %q", ErrInvalidTableName, name))
	}
	alias = b.dialect.unquote(alias)
	if alias == "" {
		return b.fail(fmt.Errorf("%w: empty alias for %q", ErrInvalidTableName, name))
	}
	if alias != b.dialect.nameKey(name) {
		expr += " AS " + b.dialect.QuoteIdent(alias)
	}
	return b.addTable(alias, expr)
}

// RawFrom adds an arbitrary expression, typically a parenthesized subquery,
// under alias.
func (b *Builder) RawFrom(alias, expr string) *Builder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(expr) == "" {
		return b.fail(fmt.Errorf("%w: empty from expression", ErrInvalidQueryExpression))
	}
	alias = b.dialect.unquote(alias)
	if alias == "" {
		return b.fail(fmt.Errorf("%w: raw from needs an alias", ErrInvalidTableName))
	}
	return b.addTable(alias, expr+" AS "+b.dialect.QuoteIdent(alias))
}

// FromSub adds sub as a derived table. sub is compiled immediately; later
// changes to it are not reflected.
func (b *Builder) FromSub(alias string, sub *Builder) *Builder {
	if b.err != nil {
		return b
	}
	if sub == nil {
		return b.fail(fmt.Errorf("%w: nil subquery", ErrInvalidQueryExpression))
	}
	sql, err := sub.SQL()
	if err != nil {
		return b.fail(err)
	}
	return b.RawFrom(alias, "("+sql+")")
}

func (b *Builder) addTable(alias, expr string) *Builder {
	if _, ok := b.tableAliases[alias]; ok {
		return b.fail(fmt.Errorf("%w: %q", ErrDuplicateTableName, alias))
	}
	b.tables = append(b.tables, table{alias: alias, expr: expr})
	b.tableAliases[alias] = struct{}{}
	// The default selection lists every FROM alias.
	b.cache.fromClause = nil
	b.cache.selectClause = nil
	return b
}

// Join adds a join hanging off the table or join aliased local. An empty
// alias means the foreign table name is the alias.
func (b *Builder) Join(kind JoinKind, local, foreign, alias string, combine Combine, on ...OnExpr) *Builder {
	return b.addJoin(kind, local, foreign, alias, false, combine, on)
}

// LeftJoin adds a LEFT JOIN of foreign under its own name.
func (b *Builder) LeftJoin(local, foreign string, on ...OnExpr) *Builder {
	return b.addJoin(JoinLeft, local, foreign, "", false, And, on)
}

// LeftJoinAs adds a LEFT JOIN of foreign under alias.
func (b *Builder) LeftJoinAs(local, foreign, alias string, on ...OnExpr) *Builder {
	return b.addJoin(JoinLeft, local, foreign, alias, false, And, on)
}

// RawLeftJoin adds a LEFT JOIN of an arbitrary expression under alias.
func (b *Builder) RawLeftJoin(local, expr, alias string, on ...OnExpr) *Builder {
	return b.addJoin(JoinLeft, local, expr, alias, true, And, on)
}

// RightJoin adds a RIGHT JOIN of foreign under its own name.
func (b *Builder) RightJoin(local, foreign string, on ...OnExpr) *Builder {
	return b.addJoin(JoinRight, local, foreign, "", false, And, on)
}

// RightJoinAs adds a RIGHT JOIN of foreign under alias.
func (b *Builder) RightJoinAs(local, foreign, alias string, on ...OnExpr) *Builder {
	return b.addJoin(JoinRight, local, foreign, alias, false, And, on)
}

// RawRightJoin adds a RIGHT JOIN of an arbitrary expression under alias.
func (b *Builder) RawRightJoin(local, expr, alias string, on ...OnExpr) *Builder {
	return b.addJoin(JoinRight, local, expr, alias, true, And, on)
}

// InnerJoin adds an INNER JOIN of foreign under its own name.
func (b *Builder) InnerJoin(local, foreign string, on ...OnExpr) *Builder {
	return b.addJoin(JoinInner, local, foreign, "", false, And, on)
}

// InnerJoinAs adds an INNER JOIN of foreign under alias.
func (b *Builder) InnerJoinAs(local, foreign, alias string, on ...OnExpr) *Builder {
	return b.addJoin(JoinInner, local, foreign, alias, false, And, on)
}

// RawInnerJoin adds an INNER JOIN of an arbitrary expression under alias.
func (b *Builder) RawInnerJoin(local, expr, alias string, on ...OnExpr) *Builder {
	return b.addJoin(JoinInner, local, expr, alias, true, And, on)
}

func (b *Builder) addJoin(kind JoinKind, local, foreign, alias string, raw bool, combine Combine, on []OnExpr) *Builder {
	if b.err != nil {
		return b
	}

	switch kind {
	case JoinLeft, JoinRight, JoinInner:
	default:
		return b.fail(fmt.Errorf("%w: join kind %q", ErrInvalidQueryExpression, kind))
	}
	if combine != And && combine != Or {
		return b.fail(fmt.Errorf("%w: combine %q", ErrInvalidOperator, combine))
	}

	local = b.dialect.unquote(local)
	if local == "" {
		return b.fail(fmt.Errorf("%w: empty local table", ErrInvalidTableName))
	}

	j := join{kind: kind, combine: combine}
	alias = b.dialect.unquote(alias)
	if raw {
		if strings.TrimSpace(foreign) == "" {
			return b.fail(fmt.Errorf("%w: empty join expression", ErrInvalidQueryExpression))
		}
		if alias == "" {
			return b.fail(fmt.Errorf("%w: raw join needs an alias", ErrInvalidTableName))
		}
		j.target, j.alias, j.aliased = foreign, alias, true
	} else {
		target, ok := b.dialect.QuoteName(foreign)
		if !ok {
			return b.fail(fmt.Errorf("%w: %q", ErrInvalidTableName, foreign))
		}
		name := b.dialect.nameKey(foreign)
		if alias == "" {
			alias = name
			if i := strings.LastIndex(name, "."); i >= 0 {
				alias = name[i+1:]
			}
		}
		j.target, j.alias, j.aliased = target, alias, alias != name
	}

	if _, ok := b.tableAliases[j.alias]; ok {
		return b.fail(fmt.Errorf("%w: %q", ErrDuplicateTableName, j.alias))
	}

	if len(on) == 0 {
		return b.fail(fmt.Errorf("%w: join %q has no ON condition", ErrInvalidQueryExpression, j.alias))
	}
	for _, expr := range on {
		left, ok := b.dialect.QuoteName(expr.Left)
		if !ok {
			return b.fail(fmt.Errorf("%w: %q", ErrInvalidColumnName, expr.Left))
		}
		right, ok := b.dialect.QuoteName(expr.Right)
		if !ok {
			return b.fail(fmt.Errorf("%w: %q", ErrInvalidColumnName, expr.Right))
		}
		op, err := comparisonOperator(expr.Operator)
		if err != nil {
			return b.fail(err)
		}
		j.on = append(j.on, left+" "+op+" "+right)
	}

	b.joins[local] = append(b.joins[local], j)
	b.joinCount++
	b.tableAliases[j.alias] = struct{}{}
	b.cache.fromClause = nil
	return b
}

// compileFrom emits FROM with every table followed by its join tree,
// depth first. Joins that cannot be reached from a FROM entry are orphaned.
func (b *Builder) compileFrom() (string, error) {
	for local := range b.joins {
		if _, ok := b.tableAliases[local]; !ok {
			return "", fmt.Errorf("%w: %q", ErrOrphanedJoin, local)
		}
	}

	if len(b.tables) == 0 {
		if b.joinCount > 0 {
			return "", fmt.Errorf("%w: no FROM table", ErrOrphanedJoin)
		}
		return "", nil
	}

	emitted := 0
	parts := make([]string, len(b.tables))
	for i, t := range b.tables {
		var sb strings.Builder
		sb.WriteString(t.expr)
		b.writeJoins(&sb, t.alias, &emitted)
		parts[i] = sb.String()
	}

	if emitted != b.joinCount {
		return "", fmt.Errorf("%w: %d join(s) unreachable from FROM", ErrOrphanedJoin, b.joinCount-emitted)
	}

	return "FROM " + strings.Join(parts, ", "), nil
}

func (b *Builder) writeJoins(sb *strings.Builder, local string, emitted *int) {
	for _, j := range b.joins[local] {
		sb.WriteString(" ")
		sb.WriteString(string(j.kind))
		sb.WriteString(" JOIN ")
		sb.WriteString(j.target)
		if j.aliased {
			sb.WriteString(" AS ")
			sb.WriteString(b.dialect.QuoteIdent(j.alias))
		}
		sb.WriteString(" ON ")
		sb.WriteString(strings.Join(j.on, " "+string(j.combine)+" "))
		*emitted++
		b.writeJoins(sb, j.alias, emitted)
	}
}
