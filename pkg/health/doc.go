// Package health provides liveness and readiness HTTP handlers.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "postgres": db.Healthcheck(pool),
//	}, health.WithTimeout(3*time.Second)))
//
// Checks run concurrently. Responses are plain text ("OK" or
// "Service Unavailable") unless the client asks for JSON with
// Accept: application/json or ?format=json:
//
//	{"status": "unhealthy", "checks": {"postgres": {"status": "unhealthy", "error": "..."}}}
package health
