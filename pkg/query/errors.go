package query

import "errors"

var (
	ErrDuplicateColumnName     = errors.New("query: duplicate column name")
	ErrDuplicateTableName      = errors.New("query: duplicate table name")
	ErrInvalidColumnName       = errors.New("query: invalid column name")
	ErrInvalidTableName        = errors.New("query: invalid table name")
	ErrInvalidOperator         = errors.New("query: invalid operator")
	ErrInvalidLimit            = errors.New("query: invalid limit")
	ErrInvalidLimitOffset      = errors.New("query: invalid limit offset")
	ErrInvalidOrderByDirection = errors.New("query: invalid order by direction")
	ErrOrphanedJoin            = errors.New("query: join references unknown table")
	ErrInvalidQueryExpression  = errors.New("query: invalid query expression")
)
