// Package waypoint serves a reflective route table over HTTP.
//
// Routes are declared on a [Router] as URL patterns with named captures.
// Handlers are plain Go functions or methods; captured values are coerced to
// the declared parameter types and request values are injected by type:
//
//	rt := waypoint.NewRouter()
//	_ = rt.Get("/entries/{id}", router.Method(entries, "Show", router.Arg("id")))
//	_ = rt.Post("/entries", router.Method(entries, "Create"))
//
//	app := waypoint.New(rt,
//	    waypoint.WithLogger(log),
//	    waypoint.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    waypoint.WithHealthChecks(),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Results
//
// Handler results are written by type:
//
//   - nil: 204 No Content
//   - string: text/plain
//   - []byte: application/octet-stream
//   - *Response: custom status and headers
//   - anything else: JSON
//
// # Errors
//
// Returned errors are classified by [ToHTTPError]. Unroutable requests and
// db.ErrNotFound become 404, deadline errors 504, route configuration
// errors (handler mismatch, coercion failure) 500. Return an [HTTPError] to
// control the response directly.
//
// # Packages
//
//   - pkg/routepattern compiles route definitions.
//   - pkg/router holds the route table and resolves handler arguments.
//   - pkg/routesfile loads routes from a YAML manifest.
//   - pkg/query builds SQL statements.
//   - pkg/db connects to PostgreSQL and runs built queries.
package waypoint
