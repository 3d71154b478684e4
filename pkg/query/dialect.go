package query

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// SQL literal layouts for time values.
const (
	DateTimeLayout = "2006-01-02 15:04:05"
	DateLayout     = "2006-01-02"
)

// Raw is an SQL fragment emitted verbatim.
type Raw string

// Date is a calendar date emitted as 'YYYY-MM-DD'.
type Date time.Time

// Dialect holds the vendor specific parts of SQL emission.
type Dialect struct {
	name     string
	limitAll string
	quote    byte
	// backslashEscapes is set for vendors that treat \ as an escape in string literals.
	backslashEscapes bool
	nativeBool       bool
}

var (
	// MySQL quotes identifiers with backticks.
	MySQL = Dialect{name: "mysql", quote: '`', limitAll: "18446744073709551615", backslashEscapes: true}

	// Postgres quotes identifiers with double quotes.
	Postgres = Dialect{name: "postgres", quote: '"', limitAll: "ALL", nativeBool: true}
)

// Name returns the dialect name.
func (d Dialect) Name() string {
	return d.name
}

// QuoteIdent wraps a single identifier. Already wrapped input and "*" are
// returned unchanged.
func (d Dialect) QuoteIdent(ident string) string {
	q := string(d.quote)
	if ident == "*" {
		return ident
	}
	if len(ident) >= 2 && ident[0] == d.quote && ident[len(ident)-1] == d.quote {
		return ident
	}
	return q + strings.ReplaceAll(ident, q, q+q) + q
}

// QuoteName splits a dotted reference such as "users.id" and wraps every
// part independently.
func (d Dialect) QuoteName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	parts := strings.Split(name, ".")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return "", false
		}
		parts[i] = d.QuoteIdent(part)
	}
	return strings.Join(parts, "."), true
}

// unquote strips one layer of identifier quotes, so `a` and a name the same
// thing.
func (d Dialect) unquote(ident string) string {
	ident = strings.TrimSpace(ident)
	if len(ident) >= 2 && ident[0] == d.quote && ident[len(ident)-1] == d.quote {
		q := string(d.quote)
		return strings.ReplaceAll(ident[1:len(ident)-1], q+q, q)
	}
	return ident
}

// nameKey is the unquoted form of a dotted reference, used to detect
// duplicate columns and aliases.
func (d Dialect) nameKey(name string) string {
	parts := strings.Split(strings.TrimSpace(name), ".")
	for i, part := range parts {
		parts[i] = d.unquote(part)
	}
	return strings.Join(parts, ".")
}

// QuoteString wraps s as a string literal.
func (d Dialect) QuoteString(s string) string {
	if d.backslashEscapes {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Value renders v as an SQL literal.
func (d Dialect) Value(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case Raw:
		return string(val), nil
	case string:
		return d.QuoteString(val), nil
	case bool:
		return d.boolean(val), nil
	case time.Time:
		return "'" + val.Format(DateTimeLayout) + "'", nil
	case *time.Time:
		if val == nil {
			return "NULL", nil
		}
		return "'" + val.Format(DateTimeLayout) + "'", nil
	case Date:
		return "'" + time.Time(val).Format(DateLayout) + "'", nil
	case *Builder:
		sql, err := val.SQL()
		if err != nil {
			return "", err
		}
		return "(" + sql + ")", nil
	}

	// Named types fall through to their underlying kind.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cast.ToStringE(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return cast.ToStringE(rv.Uint())
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", fmt.Errorf("%w: %v is not a finite number", ErrInvalidQueryExpression, v)
		}
		if rv.Kind() == reflect.Float32 {
			return cast.ToStringE(float32(f))
		}
		return cast.ToStringE(f)
	case reflect.String:
		return d.QuoteString(rv.String()), nil
	case reflect.Bool:
		return d.boolean(rv.Bool()), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return "NULL", nil
		}
		return d.Value(rv.Elem().Interface())
	}

	return "", fmt.Errorf("%w: unsupported value type %T", ErrInvalidQueryExpression, v)
}

// List renders a slice as a parenthesized value list, or a builder as a subquery.
func (d Dialect) List(v any) (string, error) {
	if sub, ok := v.(*Builder); ok {
		return d.Value(sub)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return "", fmt.Errorf("%w: IN expects a slice, got %T", ErrInvalidQueryExpression, v)
	}
	if rv.Len() == 0 {
		return "", fmt.Errorf("%w: IN list is empty", ErrInvalidQueryExpression)
	}

	items := make([]string, rv.Len())
	for i := range rv.Len() {
		s, err := d.Value(rv.Index(i).Interface())
		if err != nil {
			return "", err
		}
		items[i] = s
	}
	return "(" + strings.Join(items, ", ") + ")", nil
}

func (d Dialect) boolean(b bool) string {
	switch {
	case d.nativeBool && b:
		return "TRUE"
	case d.nativeBool:
		return "FALSE"
	case b:
		return "1"
	default:
		return "0"
	}
}
