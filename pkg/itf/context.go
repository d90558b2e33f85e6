package itf

import (
	"context"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/xe-labs/ontoview/pkg/application"
	"github.com/xe-labs/ontoview/pkg/composables"
	"github.com/xe-labs/ontoview/pkg/graph"
	"github.com/xe-labs/ontoview/pkg/intl"
	"github.com/xe-labs/ontoview/pkg/server"
	"github.com/xe-labs/ontoview/pkg/types"
)

// TestContext provides a fluent API for building test environments
type TestContext struct {
	ctx              context.Context
	graphFile        string
	graph            *graph.Graph
	modules          []application.Module
	navItems         []types.NavigationItem
	middleware       []mux.MiddlewareFunc
	locale           language.Tag
	notFound         func(app application.Application) http.Handler
	methodNotAllowed func(app application.Application) http.Handler
}

// NewTestContext creates a new TestContext builder
func NewTestContext() *TestContext {
	return &TestContext{
		ctx:     context.Background(),
		modules: []application.Module{},
		locale:  language.English,
	}
}

// WithModules adds modules to the test context
func (tc *TestContext) WithModules(modules ...application.Module) *TestContext {
	tc.modules = append(tc.modules, modules...)
	return tc
}

// WithGraphFile loads the graph from an RDF file during Build
func (tc *TestContext) WithGraphFile(path string) *TestContext {
	tc.graphFile = path
	return tc
}

// WithGraph uses an already built graph
func (tc *TestContext) WithGraph(g *graph.Graph) *TestContext {
	tc.graph = g
	return tc
}

// WithNavItems registers navigation after the modules are loaded
func (tc *TestContext) WithNavItems(items ...types.NavigationItem) *TestContext {
	tc.navItems = append(tc.navItems, items...)
	return tc
}

// WithMiddleware registers middleware ahead of the controllers
func (tc *TestContext) WithMiddleware(middleware ...mux.MiddlewareFunc) *TestContext {
	tc.middleware = append(tc.middleware, middleware...)
	return tc
}

// WithLocale sets the locale of the environment context
func (tc *TestContext) WithLocale(tag language.Tag) *TestContext {
	tc.locale = tag
	return tc
}

// WithErrorHandlers sets the fallback handlers of the HTTP server
func (tc *TestContext) WithErrorHandlers(notFound, methodNotAllowed func(app application.Application) http.Handler) *TestContext {
	tc.notFound = notFound
	tc.methodNotAllowed = methodNotAllowed
	return tc
}

// Build creates the test environment with all dependencies
func (tc *TestContext) Build(tb testing.TB) *TestEnvironment {
	tb.Helper()

	g := tc.graph
	if g == nil && tc.graphFile != "" {
		loaded, err := graph.Load(tc.graphFile)
		if err != nil {
			tb.Fatal(err)
		}
		g = loaded
	}
	if g == nil {
		g = graph.New(nil)
	}

	app, err := SetupApplication(g, tc.modules...)
	if err != nil {
		tb.Fatal(err)
	}
	app.RegisterNavItems(tc.navItems...)
	app.RegisterMiddleware(tc.middleware...)

	var notFound, methodNotAllowed http.Handler
	if tc.notFound != nil {
		notFound = tc.notFound(app)
	}
	if tc.methodNotAllowed != nil {
		methodNotAllowed = tc.methodNotAllowed(app)
	}

	return &TestEnvironment{
		Ctx:    tc.buildContext(app),
		App:    app,
		Graph:  g,
		Server: server.NewHTTPServer(app, notFound, methodNotAllowed),
	}
}

func (tc *TestContext) buildContext(app application.Application) context.Context {
	ctx := tc.ctx
	ctx = composables.WithParams(ctx, DefaultParams())
	base, _ := tc.locale.Base()
	ctx = intl.WithLocalizer(ctx, i18n.NewLocalizer(app.Bundle(), base.String()))
	ctx = intl.WithLocale(ctx, tc.locale)
	return ctx
}

// TestEnvironment contains all test dependencies
type TestEnvironment struct {
	Ctx    context.Context
	App    application.Application
	Graph  *graph.Graph
	Server *server.HTTPServer
}

// Service retrieves a service from the application
func (te *TestEnvironment) Service(service interface{}) interface{} {
	return te.App.Service(service)
}

// GetService is a generic helper that retrieves and casts a service
func GetService[T any](te *TestEnvironment) *T {
	var zero T
	service := te.App.Service(zero)
	if service == nil {
		return nil
	}
	return service.(*T)
}

// AssertNoError fails the test if err is not nil
func (te *TestEnvironment) AssertNoError(tb testing.TB, err error) {
	tb.Helper()
	if err != nil {
		tb.Fatal(err)
	}
}
