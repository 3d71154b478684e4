package router

import (
	"context"
	"fmt"
	"net/http"
	"reflect"

	"github.com/dmitrymomot/waypoint/pkg/routepattern"
)

// resolveArgs builds the argument list for h in its declaration order from
// the captures of pattern against the request path.
func resolveArgs(h Handler, pattern *routepattern.Pattern, req Request) ([]reflect.Value, error) {
	captures, ok := pattern.Captures(req.Path())
	if !ok {
		return nil, fmt.Errorf("%w: %q does not match %q", ErrHandlerMismatch, req.Path(), pattern.Definition())
	}

	args := make([]reflect.Value, 0, len(h.params))
	for i, info := range h.params {
		if info.Kind == KindRequest {
			v, err := injectRequest(info.Type, req)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrHandlerMismatch, h.name, err)
			}
			args = append(args, v)
			continue
		}

		raw, ok := captures[info.Name]
		if !ok {
			if info.Optional {
				args = append(args, h.defaults[i])
				continue
			}
			return nil, fmt.Errorf("%w: %s requires parameter %q which route %q does not capture",
				ErrHandlerMismatch, h.name, info.Name, pattern.Definition())
		}

		v, err := coerce(raw, info)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	return args, nil
}

// injectRequest produces the live request value for an input of type t.
func injectRequest(t reflect.Type, req Request) (reflect.Value, error) {
	rv := reflect.ValueOf(req)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}

	if t == httpRequestType {
		if hr, ok := req.(interface{ HTTP() *http.Request }); ok && hr.HTTP() != nil {
			return reflect.ValueOf(hr.HTTP()), nil
		}
		return reflect.Value{}, fmt.Errorf("request %T carries no *http.Request", req)
	}

	if cr, ok := req.(interface{ Context() context.Context }); ok {
		cv := reflect.ValueOf(cr.Context())
		if cv.IsValid() && cv.Type().AssignableTo(t) {
			return cv, nil
		}
	}

	if t == contextType {
		return reflect.ValueOf(context.Background()), nil
	}

	return reflect.Value{}, fmt.Errorf("request %T is not assignable to %s", req, t)
}
