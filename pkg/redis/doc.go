// Package redis opens go-redis clients from environment configuration.
//
//	cfg := redis.Config{URL: "redis://localhost:6379/0"}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	app := waypoint.New(rt,
//		waypoint.WithHealthChecks(waypoint.WithReadinessCheck("redis", redis.Healthcheck(client))),
//	)
//
// Connect retries with linear backoff, like pkg/db.
package redis
