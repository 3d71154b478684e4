package query

import (
	"fmt"
	"strings"
)

// condition is a WHERE node: a compiled leaf or a parenthesized group.
type condition struct {
	combine  Combine
	expr     string
	children []condition
	group    bool
}

type operatorClass int

const (
	opCompare operatorClass = iota
	opPattern
	opNull
	opList
)

var operators = map[string]operatorClass{
	"=":        opCompare,
	"!=":       opCompare,
	"<>":       opCompare,
	"<":        opCompare,
	"<=":       opCompare,
	">":        opCompare,
	">=":       opCompare,
	"LIKE":     opPattern,
	"NOT LIKE": opPattern,
	"IS":       opNull,
	"IS NOT":   opNull,
	"IN":       opList,
	"NOT IN":   opList,
}

// normalizeOperator upper-cases op and collapses inner whitespace.
func normalizeOperator(op string) (string, operatorClass, error) {
	norm := strings.ToUpper(strings.Join(strings.Fields(op), " "))
	class, ok := operators[norm]
	if !ok {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidOperator, op)
	}
	return norm, class, nil
}

// comparisonOperator accepts only the binary comparison operators.
func comparisonOperator(op string) (string, error) {
	norm, class, err := normalizeOperator(op)
	if err != nil {
		return "", err
	}
	if class != opCompare {
		return "", fmt.Errorf("%w: %q is not a comparison", ErrInvalidOperator, op)
	}
	return norm, nil
}

// Where adds "column operator value" combined with AND.
//
// A nil value turns "=" into IS NULL and "!=" or "<>" into IS NOT NULL.
// IN and NOT IN expect a slice or a *Builder.
func (b *Builder) Where(column, operator string, value any) *Builder {
	return b.where(And, column, operator, value)
}

// OrWhere adds "column operator value" combined with OR.
func (b *Builder) OrWhere(column, operator string, value any) *Builder {
	return b.where(Or, column, operator, value)
}

// WhereEquals is shorthand for Where(column, "=", value).
func (b *Builder) WhereEquals(column string, value any) *Builder {
	return b.where(And, column, "=", value)
}

// OrWhereEquals is shorthand for OrWhere(column, "=", value).
func (b *Builder) OrWhereEquals(column string, value any) *Builder {
	return b.where(Or, column, "=", value)
}

func (b *Builder) WhereNull(column string) *Builder {
	return b.where(And, column, "IS", nil)
}

func (b *Builder) OrWhereNull(column string) *Builder {
	return b.where(Or, column, "IS", nil)
}

func (b *Builder) WhereNotNull(column string) *Builder {
	return b.where(And, column, "IS NOT", nil)
}

func (b *Builder) OrWhereNotNull(column string) *Builder {
	return b.where(Or, column, "IS NOT", nil)
}

// WhereIn adds "column IN (...)". values is a slice or a *Builder subquery.
func (b *Builder) WhereIn(column string, values any) *Builder {
	return b.where(And, column, "IN", values)
}

func (b *Builder) OrWhereIn(column string, values any) *Builder {
	return b.where(Or, column, "IN", values)
}

func (b *Builder) WhereNotIn(column string, values any) *Builder {
	return b.where(And, column, "NOT IN", values)
}

func (b *Builder) OrWhereNotIn(column string, values any) *Builder {
	return b.where(Or, column, "NOT IN", values)
}

// WhereContains matches column against %value%. LIKE wildcards inside
// value are escaped.
func (b *Builder) WhereContains(column, value string) *Builder {
	return b.like(And, column, "%"+escapeLike(value)+"%", false)
}

func (b *Builder) OrWhereContains(column, value string) *Builder {
	return b.like(Or, column, "%"+escapeLike(value)+"%", false)
}

func (b *Builder) WhereNotContains(column, value string) *Builder {
	return b.like(And, column, "%"+escapeLike(value)+"%", true)
}

func (b *Builder) OrWhereNotContains(column, value string) *Builder {
	return b.like(Or, column, "%"+escapeLike(value)+"%", true)
}

// WhereStartsWith matches column against value%.
func (b *Builder) WhereStartsWith(column, value string) *Builder {
	return b.like(And, column, escapeLike(value)+"%", false)
}

func (b *Builder) OrWhereStartsWith(column, value string) *Builder {
	return b.like(Or, column, escapeLike(value)+"%", false)
}

func (b *Builder) WhereNotStartsWith(column, value string) *Builder {
	return b.like(And, column, escapeLike(value)+"%", true)
}

func (b *Builder) OrWhereNotStartsWith(column, value string) *Builder {
	return b.like(Or, column, escapeLike(value)+"%", true)
}

// WhereEndsWith matches column against %value.
func (b *Builder) WhereEndsWith(column, value string) *Builder {
	return b.like(And, column, "%"+escapeLike(value), false)
}

func (b *Builder) OrWhereEndsWith(column, value string) *Builder {
	return b.like(Or, column, "%"+escapeLike(value), false)
}

func (b *Builder) WhereNotEndsWith(column, value string) *Builder {
	return b.like(And, column, "%"+escapeLike(value), true)
}

func (b *Builder) OrWhereNotEndsWith(column, value string) *Builder {
	return b.like(Or, column, "%"+escapeLike(value), true)
}

// WhereLength compares the character length of column with n.
//
//	b.WhereLength("code", "=", 6) // CHAR_LENGTH(`code`) = 6
func (b *Builder) WhereLength(column, operator string, n int) *Builder {
	return b.length(And, column, operator, n)
}

func (b *Builder) OrWhereLength(column, operator string, n int) *Builder {
	return b.length(Or, column, operator, n)
}

// WhereRaw adds expr verbatim.
func (b *Builder) WhereRaw(expr string) *Builder {
	return b.raw(And, expr)
}

func (b *Builder) OrWhereRaw(expr string) *Builder {
	return b.raw(Or, expr)
}

// WhereGroup collects the conditions added by fn into one parenthesized
// group combined with AND. An empty group is dropped.
//
//	b.WhereGroup(func(q *query.Builder) {
//	    q.WhereEquals("a", 1).OrWhereEquals("b", 2)
//	})
//	// WHERE (`a` = 1 OR `b` = 2)
func (b *Builder) WhereGroup(fn func(*Builder)) *Builder {
	return b.group(And, fn)
}

// OrWhereGroup is WhereGroup combined with OR.
func (b *Builder) OrWhereGroup(fn func(*Builder)) *Builder {
	return b.group(Or, fn)
}

func (b *Builder) group(combine Combine, fn func(*Builder)) *Builder {
	if b.err != nil {
		return b
	}
	if fn == nil {
		return b.fail(fmt.Errorf("%w: nil where group", ErrInvalidQueryExpression))
	}

	b.wheres = append(b.wheres, nil)
	fn(b)
	last := len(b.wheres) - 1
	frame := b.wheres[last]
	b.wheres = b.wheres[:last]

	if b.err != nil || len(frame) == 0 {
		return b
	}
	return b.push(condition{combine: combine, children: frame, group: true})
}

func (b *Builder) where(combine Combine, column, operator string, value any) *Builder {
	if b.err != nil {
		return b
	}
	lhs, ok := b.dialect.QuoteName(column)
	if !ok {
		return b.fail(fmt.Errorf("%w: %q", ErrInvalidColumnName, column))
	}
	op, class, err := normalizeOperator(operator)
	if err != nil {
		return b.fail(err)
	}

	var rhs string
	switch {
	case class == opList:
		rhs, err = b.dialect.List(value)
	case value == nil && class == opCompare:
		switch op {
		case "=":
			op = "IS"
		case "!=", "<>":
			op = "IS NOT"
		default:
			return b.fail(fmt.Errorf("%w: %s NULL", ErrInvalidOperator, op))
		}
		rhs = "NULL"
	case class == opNull && value != nil:
		return b.fail(fmt.Errorf("%w: %s expects NULL", ErrInvalidQueryExpression, op))
	default:
		rhs, err = b.dialect.Value(value)
	}
	if err != nil {
		return b.fail(err)
	}

	return b.push(condition{combine: combine, expr: lhs + " " + op + " " + rhs})
}

func (b *Builder) like(combine Combine, column, pattern string, negate bool) *Builder {
	if b.err != nil {
		return b
	}
	lhs, ok := b.dialect.QuoteName(column)
	if !ok {
		return b.fail(fmt.Errorf("%w: %q", ErrInvalidColumnName, column))
	}
	op := "LIKE"
	if negate {
		op = "NOT LIKE"
	}
	return b.push(condition{combine: combine, expr: lhs + " " + op + " " + b.dialect.QuoteString(pattern)})
}

func (b *Builder) length(combine Combine, column, operator string, n int) *Builder {
	if b.err != nil {
		return b
	}
	lhs, ok := b.dialect.QuoteName(column)
	if !ok {
		return b.fail(fmt.Errorf("%w: %q", ErrInvalidColumnName, column))
	}
	op, err := comparisonOperator(operator)
	if err != nil {
		return b.fail(err)
	}
	if n < 0 {
		return b.fail(fmt.Errorf("%w: negative length %d", ErrInvalidQueryExpression, n))
	}
	return b.push(condition{combine: combine, expr: fmt.Sprintf("CHAR_LENGTH(%s) %s %d", lhs, op, n)})
}

func (b *Builder) raw(combine Combine, expr string) *Builder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(expr) == "" {
		return b.fail(fmt.Errorf("%w: empty where expression", ErrInvalidQueryExpression))
	}
	return b.push(condition{combine: combine, expr: expr})
}

// push appends c to the innermost open frame.
func (b *Builder) push(c condition) *Builder {
	top := len(b.wheres) - 1
	b.wheres[top] = append(b.wheres[top], c)
	b.cache.whereClause = nil
	return b
}

func (b *Builder) compileWhere() (string, error) {
	if len(b.wheres[0]) == 0 {
		return "", nil
	}
	return "WHERE " + renderGroup(b.wheres[0]), nil
}

// renderGroup wraps nodes in parentheses. A group holding a single group
// renders as that group.
func renderGroup(nodes []condition) string {
	if len(nodes) == 1 && nodes[0].group {
		return renderGroup(nodes[0].children)
	}

	var sb strings.Builder
	sb.WriteByte('(')
	for i, n := range nodes {
		if i > 0 {
			sb.WriteByte(' ')
			sb.WriteString(string(n.combine))
			sb.WriteByte(' ')
		}
		if n.group {
			sb.WriteString(renderGroup(n.children))
			continue
		}
		sb.WriteString(n.expr)
	}
	sb.WriteByte(')')
	return sb.String()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
