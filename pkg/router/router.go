package router

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/dmitrymomot/waypoint/pkg/logger"
	"github.com/dmitrymomot/waypoint/pkg/routepattern"
)

// Route is one registered (method, definition, handler) triple.
type Route struct {
	pattern *routepattern.Pattern
	handler Handler
	method  string
}

// Method returns the HTTP method the route is registered for.
func (r *Route) Method() string { return r.method }

// Definition returns the route definition text.
func (r *Route) Definition() string { return r.pattern.Definition() }

// Pattern returns the compiled pattern.
func (r *Route) Pattern() *routepattern.Pattern { return r.pattern }

// Handler returns the route's handler.
func (r *Route) Handler() Handler { return r.handler }

// RouteInfo describes a registration for listings.
type RouteInfo struct {
	Method     string
	Definition string
	Handler    string
}

// Router maps (method, path) pairs to handlers and invokes them with
// arguments resolved from the path.
//
// The route table is guarded by a read-write lock, so routes may be
// registered while requests are being routed.
type Router struct {
	logger *slog.Logger
	routes map[string][]*Route
	order  []*Route
	mu     sync.RWMutex
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates an empty Router.
func New(opts ...Option) *Router {
	r := &Router{
		logger: logger.NewNope(),
		routes: make(map[string][]*Route, len(Methods)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds definition for every method in methods. [MethodAll] expands
// to all supported methods.
//
// Registration is all or nothing: parameter names are validated and every
// target method is checked for a conflicting matcher before anything is
// stored. Registering the same definition and method twice is a conflict.
func (r *Router) Register(definition string, methods []string, h Handler) error {
	if h.err != nil {
		return h.err
	}
	if h.call == nil {
		return fmt.Errorf("%w: empty handler for %q", ErrInvalidHandler, definition)
	}

	targets, err := expandMethods(methods)
	if err != nil {
		return err
	}

	pattern := routepattern.Compile(definition)
	if err := routepattern.Validate(pattern); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, method := range targets {
		for _, existing := range r.routes[method] {
			if existing.pattern.Equal(pattern) {
				return &ConflictError{
					Definition: definition,
					Existing:   existing.Definition(),
					Method:     method,
				}
			}
		}
	}

	for _, method := range targets {
		route := &Route{pattern: pattern, handler: h, method: method}
		r.routes[method] = append(r.routes[method], route)
		r.order = append(r.order, route)
	}

	r.logger.Debug("route registered",
		slog.String("route", definition),
		slog.Any("methods", targets),
		slog.String("handler", h.name),
	)

	return nil
}

// Get registers a GET route.
func (r *Router) Get(definition string, h Handler) error {
	return r.Register(definition, []string{http.MethodGet}, h)
}

// Post registers a POST route.
func (r *Router) Post(definition string, h Handler) error {
	return r.Register(definition, []string{http.MethodPost}, h)
}

// Put registers a PUT route.
func (r *Router) Put(definition string, h Handler) error {
	return r.Register(definition, []string{http.MethodPut}, h)
}

// Patch registers a PATCH route.
func (r *Router) Patch(definition string, h Handler) error {
	return r.Register(definition, []string{http.MethodPatch}, h)
}

// Delete registers a DELETE route.
func (r *Router) Delete(definition string, h Handler) error {
	return r.Register(definition, []string{http.MethodDelete}, h)
}

// Head registers a HEAD route.
func (r *Router) Head(definition string, h Handler) error {
	return r.Register(definition, []string{http.MethodHead}, h)
}

// Options registers an OPTIONS route.
func (r *Router) Options(definition string, h Handler) error {
	return r.Register(definition, []string{http.MethodOptions}, h)
}

// Connect registers a CONNECT route.
func (r *Router) Connect(definition string, h Handler) error {
	return r.Register(definition, []string{http.MethodConnect}, h)
}

// Any registers a route for all supported methods.
func (r *Router) Any(definition string, h Handler) error {
	return r.Register(definition, []string{MethodAll}, h)
}

// Match returns the first route registered for method whose matcher accepts
// path. Routes are tried in registration order; overlapping definitions are
// resolved by that order alone.
func (r *Router) Match(path, method string) (*Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, route := range r.routes[method] {
		if _, ok := route.pattern.Match(path); ok {
			return route, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s", ErrUnroutableRequest, method, path)
}

// Route matches req, resolves the handler arguments and invokes the handler.
// The handler result is returned unchanged.
func (r *Router) Route(req Request) (any, error) {
	route, err := r.Match(req.Path(), req.Method())
	if err != nil {
		return nil, err
	}
	return r.Invoke(route, req)
}

// Invoke resolves arguments for route from req and calls its handler.
func (r *Router) Invoke(route *Route, req Request) (any, error) {
	r.logger.Debug("route matched",
		slog.String("method", route.method),
		slog.String("route", route.Definition()),
		slog.String("path", req.Path()),
	)

	args, err := resolveArgs(route.handler, route.pattern, req)
	if err != nil {
		return nil, err
	}
	return route.handler.invoke(args)
}

// Routes lists registrations in the order they were made.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]RouteInfo, 0, len(r.order))
	for _, route := range r.order {
		out = append(out, RouteInfo{
			Method:     route.method,
			Definition: route.Definition(),
			Handler:    route.handler.name,
		})
	}
	return out
}
