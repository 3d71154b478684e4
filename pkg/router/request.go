package router

import (
	"context"
	"net/http"
	"strings"
)

// Request is what the router needs from an incoming request.
// Method must already be upper case.
type Request interface {
	Path() string
	Method() string
}

// HTTPRequest adapts *http.Request to [Request]. Handlers can declare
// *http.Request, context.Context or Request inputs to receive it.
type HTTPRequest struct {
	r *http.Request
}

// NewHTTPRequest wraps r.
func NewHTTPRequest(r *http.Request) *HTTPRequest {
	return &HTTPRequest{r: r}
}

func (r *HTTPRequest) Path() string {
	return r.r.URL.Path
}

func (r *HTTPRequest) Method() string {
	return strings.ToUpper(r.r.Method)
}

// Context returns the request context.
func (r *HTTPRequest) Context() context.Context {
	return r.r.Context()
}

// HTTP returns the wrapped request.
func (r *HTTPRequest) HTTP() *http.Request {
	return r.r
}

// simpleRequest is a bare method/path pair.
type simpleRequest struct {
	ctx    context.Context
	method string
	path   string
}

// NewRequest returns a Request for method and path without any HTTP
// machinery. Useful for tests and offline dispatch.
func NewRequest(ctx context.Context, method, path string) Request {
	if ctx == nil {
		ctx = context.Background()
	}
	return &simpleRequest{ctx: ctx, method: strings.ToUpper(method), path: path}
}

func (r *simpleRequest) Path() string             { return r.path }
func (r *simpleRequest) Method() string           { return r.method }
func (r *simpleRequest) Context() context.Context { return r.ctx }
