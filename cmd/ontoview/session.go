package main

import (
	"context"
	"fmt"

	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/xe-labs/ontoview/modules/ontology"
	"github.com/xe-labs/ontoview/modules/ontology/services"
	"github.com/xe-labs/ontoview/pkg/application"
	"github.com/xe-labs/ontoview/pkg/configuration"
	"github.com/xe-labs/ontoview/pkg/graph"
	"github.com/xe-labs/ontoview/pkg/intl"
)

const defaultNamespace = configuration.DefaultNamespace

// session is a loaded graph with the ontology module registered on it.
type session struct {
	app     application.Application
	service *services.OntologyService
}

func openSession(opts *globalOptions) (*session, error) {
	switch opts.format {
	case "table", "json":
	default:
		return nil, withCode(exitUsage, fmt.Errorf("unknown --format %q (want table or json)", opts.format))
	}
	g, err := graph.Load(opts.file)
	if err != nil {
		return nil, withCode(exitLoad, fmt.Errorf("load %s: %w", opts.file, err))
	}
	app := application.New(&application.ApplicationOptions{
		Graph:  g,
		Bundle: application.LoadBundle(),
	})
	if err := ontology.NewModule(ontology.ModuleOptions{Namespace: opts.namespace}).Register(app); err != nil {
		return nil, withCode(exitUsage, err)
	}
	return &session{
		app:     app,
		service: app.Service(services.OntologyService{}).(*services.OntologyService),
	}, nil
}

// localize attaches a localizer for lang so fallback texts are translated.
func (s *session) localize(ctx context.Context, lang string) context.Context {
	return intl.WithLocalizer(ctx, i18n.NewLocalizer(s.app.Bundle(), lang))
}

// translationBundle registers the locale files of the ontology module on an
// empty graph, which is enough for the translation checks.
func translationBundle() (*i18n.Bundle, error) {
	app := application.New(&application.ApplicationOptions{
		Graph:  graph.New(nil),
		Bundle: application.LoadBundle(),
	})
	if err := ontology.NewModule().Register(app); err != nil {
		return nil, err
	}
	return app.Bundle(), nil
}
