// Package routesfile loads route registrations from a YAML manifest.
//
// A manifest lists routes in registration order:
//
//	routes:
//	  - path: /entries
//	    handler: entries.list
//	  - path: /entries/{id}
//	    methods: [GET, HEAD]
//	    handler: entries.show
//	  - path: /health
//	    methods: ALL
//	    handler: health
//
// Handler names are resolved through a [Registry]. Missing methods default to
// GET. Since the router is first-match-wins, the order of entries is the
// order in which overlapping routes are tried.
package routesfile
