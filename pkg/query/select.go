package query

import (
	"fmt"
	"strings"
)

type column struct {
	alias string
	expr  string
	// aliased is set when the alias must be emitted with AS.
	aliased bool
}

// Select replaces the selected columns.
func (b *Builder) Select(columns ...string) *Builder {
	if b.err != nil {
		return b
	}
	cols, err := b.plainColumns(columns, nil)
	if err != nil {
		return b.fail(err)
	}

	b.selects = cols
	b.selectNames = make(map[string]struct{}, len(cols))
	for _, c := range cols {
		b.selectNames[c.alias] = struct{}{}
	}
	b.cache.selectClause = nil
	return b
}

// AddSelect appends columns to the selection.
func (b *Builder) AddSelect(columns ...string) *Builder {
	if b.err != nil {
		return b
	}
	cols, err := b.plainColumns(columns, b.selectNames)
	if err != nil {
		return b.fail(err)
	}
	for _, c := range cols {
		b.addColumn(c)
	}
	return b
}

// AddSelectAs appends a column under an explicit alias.
func (b *Builder) AddSelectAs(alias, name string) *Builder {
	if b.err != nil {
		return b
	}
	expr, ok := b.dialect.QuoteName(name)
	if !ok {
		return b.fail(fmt.Errorf("%w: %q", ErrInvalidColumnName, name))
	}
	return b.addAliased(alias, expr)
}

// AddRawSelect appends an arbitrary expression under alias.
//
//	b.AddRawSelect("total", "COUNT(*)")
func (b *Builder) AddRawSelect(alias, expr string) *Builder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(expr) == "" {
		return b.fail(fmt.Errorf("%w: empty select expression", ErrInvalidQueryExpression))
	}
	return b.addAliased(alias, expr)
}

func (b *Builder) addAliased(alias, expr string) *Builder {
	alias = b.dialect.unquote(alias)
	if alias == "" {
		return b.fail(fmt.Errorf("%w: empty alias", ErrInvalidColumnName))
	}
	if _, ok := b.selectNames[alias]; ok {
		return b.fail(fmt.Errorf("%w: %q", ErrDuplicateColumnName, alias))
	}
	b.addColumn(column{alias: alias, expr: expr, aliased: true})
	return b
}

func (b *Builder) addColumn(c column) {
	b.selects = append(b.selects, c)
	b.selectNames[c.alias] = struct{}{}
	b.cache.selectClause = nil
}

// plainColumns validates names against taken and against each other.
func (b *Builder) plainColumns(names []string, taken map[string]struct{}) ([]column, error) {
	cols := make([]column, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		expr, ok := b.dialect.QuoteName(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColumnName, name)
		}
		key := b.dialect.nameKey(name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumnName, name)
		}
		if _, dup := taken[key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumnName, name)
		}
		seen[key] = struct{}{}
		cols = append(cols, column{alias: key, expr: expr})
	}
	return cols, nil
}

// compileSelect emits the SELECT clause. Without explicit columns every
// FROM entry contributes alias.*.
func (b *Builder) compileSelect() (string, error) {
	if len(b.selects) == 0 {
		if len(b.tables) == 0 {
			return "SELECT *", nil
		}
		parts := make([]string, len(b.tables))
		for i, t := range b.tables {
			parts[i] = b.dialect.QuoteIdent(t.alias) + ".*"
		}
		return "SELECT " + strings.Join(parts, ", "), nil
	}

	parts := make([]string, len(b.selects))
	for i, c := range b.selects {
		if c.aliased {
			parts[i] = c.expr + " AS " + b.dialect.QuoteIdent(c.alias)
			continue
		}
		parts[i] = c.expr
	}
	return "SELECT " + strings.Join(parts, ", "), nil
}
