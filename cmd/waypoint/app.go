package main

import (
	"embed"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/waypoint"
	"github.com/dmitrymomot/waypoint/middlewares"
	"github.com/dmitrymomot/waypoint/pkg/router"
	"github.com/dmitrymomot/waypoint/pkg/routesfile"
)

//go:embed routes.yaml
var defaultRoutes []byte

//go:embed migrations/*.sql
var migrations embed.FS

func registry(entries *EntriesController) routesfile.Registry {
	return routesfile.Registry{
		"status.show":    router.Controller[statusController]("Show"),
		"entries.list":   router.Method(entries, "List", router.Optional("page", 1)),
		"entries.search": router.Method(entries, "Search", router.Arg("term")),
		"entries.show":   router.Method(entries, "Show", router.Arg("id")),
		"entries.create": router.Method(entries, "Create"),
		"entries.delete": router.Method(entries, "Delete", router.Arg("id")),
	}
}

// buildRouter loads routesFile, or the embedded manifest when it is empty.
func buildRouter(routesFile string, store entryStore, log *slog.Logger) (*router.Router, error) {
	rt := router.New(router.WithLogger(log))
	reg := registry(newEntriesController(store))

	if routesFile == "" {
		return rt, routesfile.Load(rt, defaultRoutes, reg)
	}
	return rt, routesfile.LoadFile(rt, routesFile, reg)
}

type appDeps struct {
	log            *slog.Logger
	cfg            waypoint.Config
	tracerProvider trace.TracerProvider
	store          entryStore
	checks         []waypoint.HealthOption
}

func newApp(d appDeps) (*waypoint.App, error) {
	rt, err := buildRouter(d.cfg.RoutesFile, d.store, d.log)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts := []waypoint.Option{
		waypoint.WithLogger(d.log),
		waypoint.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(middlewares.WithRecoverLogger(d.log)),
			middlewares.AccessLog(d.log),
			middlewares.Timeout(d.cfg.RequestTimeout),
		),
		waypoint.WithHealthChecks(d.checks...),
		waypoint.WithMetrics(reg),
	}
	if d.tracerProvider != nil {
		opts = append(opts, waypoint.WithTracerProvider(d.tracerProvider))
	}

	return waypoint.New(rt, opts...), nil
}
