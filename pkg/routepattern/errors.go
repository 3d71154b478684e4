package routepattern

import "errors"

var (
	ErrInvalidParameterName   = errors.New("routepattern: invalid parameter name")
	ErrDuplicateParameterName = errors.New("routepattern: duplicate parameter name")
)
