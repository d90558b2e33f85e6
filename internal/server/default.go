package server

import (
	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/xe-labs/ontoview/modules/ontology/presentation/controllers"
	"github.com/xe-labs/ontoview/pkg/application"
	"github.com/xe-labs/ontoview/pkg/configuration"
	"github.com/xe-labs/ontoview/pkg/constants"
	"github.com/xe-labs/ontoview/pkg/middleware"
	"github.com/xe-labs/ontoview/pkg/routing"
	"github.com/xe-labs/ontoview/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration

	classifier, err := routeClassifier(conf, options.Logger)
	if err != nil {
		return nil, err
	}

	// Core middleware stack with tracing capabilities
	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, middleware.DefaultLoggerOptions()), // This creates the root span for each request

		middleware.TracedMiddleware("provide"),
		middleware.Provide(constants.AppKey, app),

		middleware.TracedMiddleware("cors"),
		middleware.Cors(conf.CORS.AllowedOrigins...),

		middleware.TracedMiddleware("classifyRoute"),
		middleware.ClassifyRoute(classifier),
	}

	if conf.RateLimit.Enabled {
		var store limiter.Store

		switch conf.RateLimit.Storage {
		case "redis":
			store, err = middleware.NewRedisStore(conf.RateLimit.RedisURL)
			if err != nil {
				options.Logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
				store = middleware.NewMemoryStore()
			}
		default:
			store = middleware.NewMemoryStore()
		}

		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: conf.RateLimit.GlobalRPS,
				Store:             store,
				Skip:              middleware.SkipOps,
			}),
		)
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("requestParams"),
		middleware.RequestParams(),
	)

	app.RegisterMiddleware(middlewares...)

	serverInstance := server.NewHTTPServer(
		app,
		controllers.NotFound(app),
		controllers.MethodNotAllowed(app),
	)
	return serverInstance, nil
}

func routeClassifier(conf *configuration.Configuration, logger *logrus.Logger) (*routing.Classifier, error) {
	rules, err := routing.LoadAllowlist(conf.Routing.AllowlistPath, "server")
	if errors.Is(err, routing.ErrAllowlistNotFound) {
		logger.WithError(err).Warn("Using built-in routing allowlist")
		rules = routing.DefaultRules()
	} else if err != nil {
		return nil, errors.Wrap(err, "load routing allowlist")
	}
	classifier := routing.NewClassifier(rules)
	if conf.Prometheus.Enabled {
		classifier.Add(routing.AllowlistRule{Prefix: conf.Prometheus.Path, Class: routing.RouteClassOps})
	}
	return classifier, nil
}
