package router

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/waypoint/pkg/routepattern"
)

// Registration errors.
var (
	ErrInvalidRouteParameterName   = routepattern.ErrInvalidParameterName
	ErrDuplicateRouteParameterName = routepattern.ErrDuplicateParameterName
	ErrConflictingRoute            = errors.New("router: conflicting route")
	ErrInvalidMethod               = errors.New("router: invalid HTTP method")
	ErrInvalidHandler              = errors.New("router: invalid handler")
)

// Routing errors.
var (
	ErrUnroutableRequest    = errors.New("router: no route matches request")
	ErrHandlerMismatch      = errors.New("router: handler does not match route")
	ErrHandlerInstantiation = errors.New("router: handler cannot be instantiated")
	ErrArgumentCoercion     = errors.New("router: argument coercion failed")
)

// ConflictError is returned when a definition compiles to the same matcher as
// a route already registered for the method.
type ConflictError struct {
	Definition string
	Existing   string
	Method     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("router: route %q conflicts with %q for %s", e.Definition, e.Existing, e.Method)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflictingRoute
}

// CoercionError describes a captured value that cannot be converted to the
// declared parameter type.
type CoercionError struct {
	Err   error
	Param string
	Raw   string
	Kind  Kind
}

func (e *CoercionError) Error() string {
	msg := fmt.Sprintf("router: parameter %q expects %s, got %q", e.Param, e.Kind, e.Raw)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CoercionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrArgumentCoercion}
	}
	return []error{ErrArgumentCoercion, e.Err}
}

// IsLogicError reports whether err comes from a route/handler configuration
// bug rather than from the incoming request. HTTP layers translate these to 500.
func IsLogicError(err error) bool {
	return errors.Is(err, ErrHandlerMismatch) ||
		errors.Is(err, ErrHandlerInstantiation) ||
		errors.Is(err, ErrArgumentCoercion) ||
		errors.Is(err, ErrInvalidHandler)
}
