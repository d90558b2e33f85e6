package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/xe-labs/ontoview/internal/server"
	"github.com/xe-labs/ontoview/modules"
	"github.com/xe-labs/ontoview/pkg/application"
	"github.com/xe-labs/ontoview/pkg/configuration"
	"github.com/xe-labs/ontoview/pkg/graph"
	"github.com/xe-labs/ontoview/pkg/logging"
	"github.com/xe-labs/ontoview/pkg/metrics"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	defer conf.Unload()
	logger := conf.Logger()

	// Set up OpenTelemetry if enabled
	if conf.OpenTelemetry.Enabled {
		tracingCleanup := logging.SetupTracing(
			context.Background(),
			conf.OpenTelemetry.ServiceName,
			conf.OpenTelemetry.TempoURL,
		)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to Tempo at " + conf.OpenTelemetry.TempoURL)
	}

	g, err := graph.Load(conf.Ontology.File)
	if err != nil {
		logger.WithError(err).WithField("file", conf.Ontology.File).Error("failed to load ontology")
		conf.Unload()
		os.Exit(1)
	}
	metrics.GraphTriples.Set(float64(g.Len()))
	logger.WithField("triples", g.Len()).Info("ontology loaded from " + conf.Ontology.File)

	app := application.New(&application.ApplicationOptions{
		Graph:              g,
		Logger:             logger,
		Bundle:             application.LoadBundle(),
		SupportedLanguages: conf.SupportedLanguages,
	})
	if err := modules.Load(app, modules.BuiltInModules(conf)...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}
	app.RegisterNavItems(modules.NavLinks...)
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	options := &server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
	}
	serverInstance, err := server.Default(options)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Serve(ctx, conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
