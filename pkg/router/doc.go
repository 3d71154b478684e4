// Package router maps route definitions to handlers and calls them with
// arguments resolved from the request path.
//
// # Registration
//
// Routes are registered per HTTP method. [MethodAll] expands to GET, POST,
// PUT, HEAD, DELETE, CONNECT, OPTIONS and PATCH:
//
//	r := router.New(router.WithLogger(log))
//
//	err := r.Get("/entry/{id}/edit", router.Func(editEntry, router.Arg("id")))
//	err = r.Register("/ping", []string{router.MethodAll}, router.Func(ping))
//
// Registration fails atomically on invalid or duplicate parameter names and
// on conflicts. Two definitions conflict when they compile to the same
// matcher for a method, so "/foo/{a}" and "/foo/{b}" conflict.
//
// # Handlers
//
// Go cannot recover parameter names through reflection, so each handler
// declares them explicitly with [Arg] and [Optional]. Types come from the
// function signature:
//
//	func editEntry(ctx context.Context, id int, draft bool) (string, error)
//
//	router.Func(editEntry, router.Arg("id"), router.Optional("draft", false))
//
// Inputs of type [Request], context.Context or *http.Request receive the
// live request and need no name. Integer, float and bool inputs are coerced
// from the captured string; string and any inputs receive it unchanged.
//
// [Method] binds a method of an existing value. [Controller] creates a fresh
// zero value of a struct per dispatch, the Go counterpart of a lazily
// constructed controller class.
//
// # Routing
//
// [Router.Route] picks the first route registered for the request method
// whose matcher accepts the path. No match yields [ErrUnroutableRequest].
// A required parameter absent from the route yields [ErrHandlerMismatch];
// a capture that cannot be coerced yields a [*CoercionError]. Use
// [IsLogicError] to tell configuration bugs from unroutable requests.
package router
