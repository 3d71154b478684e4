// Package routepattern compiles route definitions such as "/entry/{id}/edit"
// into anchored matchers and an ordered list of parameter names.
//
// Every "{name}" segment becomes a capture matching one path segment; every
// other segment is matched literally. Leading and trailing slashes are optional
// when matching:
//
//	p := routepattern.Compile("/entry/{id}/edit")
//	p.Expr()   // ^/?entry/([^/]+)/edit/?$
//	p.Params() // [id]
//
//	captures, ok := p.Match("/entry/42/edit") // [42], true
//
// Two definitions that reduce to the same literal/placeholder skeleton compile
// to equal matchers, which is what route conflict detection relies on:
//
//	routepattern.Compile("/x/{a}").Equal(routepattern.Compile("/x/{b}")) // true
//
// Compile is permissive. Callers that accept definitions from users validate
// them with [Validate] before registering anything.
package routepattern
