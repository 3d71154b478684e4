package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Sort directions.
const (
	ASC  = "ASC"
	DESC = "DESC"
)

// Order is one ORDER BY entry.
type Order struct {
	Column    string
	Direction string
}

// Asc orders by column ascending.
func Asc(column string) Order { return Order{Column: column, Direction: ASC} }

// Desc orders by column descending.
func Desc(column string) Order { return Order{Column: column, Direction: DESC} }

// By orders by column in direction, which is validated by OrderBy.
func By(column, direction string) Order { return Order{Column: column, Direction: direction} }

type ordering struct {
	expr      string
	direction string
}

// OrderBy appends orders. Every entry is validated before any is applied,
// so a bad direction leaves the existing ordering untouched.
func (b *Builder) OrderBy(orders ...Order) *Builder {
	if b.err != nil {
		return b
	}

	pending := make([]ordering, 0, len(orders))
	for _, o := range orders {
		expr, ok := b.dialect.QuoteName(o.Column)
		if !ok {
			return b.fail(fmt.Errorf("%w: %q", ErrInvalidColumnName, o.Column))
		}
		dir, err := direction(o.Direction)
		if err != nil {
			return b.fail(err)
		}
		pending = append(pending, ordering{expr: expr, direction: dir})
	}

	return b.addOrderings(pending)
}

// RawOrderBy appends an arbitrary ordering expression.
//
//	b.RawOrderBy("FIELD(`status`, 'open', 'closed')", query.ASC)
func (b *Builder) RawOrderBy(expr, dir string) *Builder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(expr) == "" {
		return b.fail(fmt.Errorf("%w: empty order by expression", ErrInvalidQueryExpression))
	}
	d, err := direction(dir)
	if err != nil {
		return b.fail(err)
	}
	return b.addOrderings([]ordering{{expr: expr, direction: d}})
}

// addOrderings replaces the direction of an expression already present and
// appends the rest.
func (b *Builder) addOrderings(pending []ordering) *Builder {
	for _, o := range pending {
		replaced := false
		for i := range b.orderBys {
			if b.orderBys[i].expr == o.expr {
				b.orderBys[i].direction = o.direction
				replaced = true
				break
			}
		}
		if !replaced {
			b.orderBys = append(b.orderBys, o)
		}
	}
	b.cache.orderByClause = nil
	return b
}

// Limit caps the number of rows.
func (b *Builder) Limit(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		return b.fail(fmt.Errorf("%w: %d", ErrInvalidLimit, n))
	}
	b.limit = &n
	return b
}

// Offset skips n rows.
func (b *Builder) Offset(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		return b.fail(fmt.Errorf("%w: %d", ErrInvalidLimitOffset, n))
	}
	b.offset = &n
	return b
}

func direction(dir string) (string, error) {
	switch d := strings.ToUpper(strings.TrimSpace(dir)); d {
	case "":
		return ASC, nil
	case ASC, DESC:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOrderByDirection, dir)
	}
}

func (b *Builder) compileOrderBy() (string, error) {
	if len(b.orderBys) == 0 {
		return "", nil
	}
	parts := make([]string, len(b.orderBys))
	for i, o := range b.orderBys {
		parts[i] = o.expr + " " + o.direction
	}
	return "ORDER BY " + strings.Join(parts, ", "), nil
}

// compileLimit is not cached; it is two integers.
func (b *Builder) compileLimit() string {
	switch {
	case b.limit == nil && b.offset == nil:
		return ""
	case b.offset == nil:
		return "LIMIT " + strconv.Itoa(*b.limit)
	case b.limit == nil:
		return "LIMIT " + b.dialect.limitAll + " OFFSET " + strconv.Itoa(*b.offset)
	default:
		return "LIMIT " + strconv.Itoa(*b.limit) + " OFFSET " + strconv.Itoa(*b.offset)
	}
}
