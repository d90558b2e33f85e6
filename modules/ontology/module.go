package ontology

import (
	"embed"

	"github.com/go-faster/errors"

	"github.com/xe-labs/ontoview/modules/ontology/domain/vocabulary"
	"github.com/xe-labs/ontoview/modules/ontology/infrastructure/persistence"
	"github.com/xe-labs/ontoview/modules/ontology/infrastructure/queries"
	"github.com/xe-labs/ontoview/modules/ontology/presentation/controllers"
	"github.com/xe-labs/ontoview/modules/ontology/services"
	"github.com/xe-labs/ontoview/pkg/application"
	"github.com/xe-labs/ontoview/pkg/configuration"
	"github.com/xe-labs/ontoview/pkg/spotlight"
)

//go:embed presentation/locales/*.toml
var LocaleFiles embed.FS

type ModuleOptions struct {
	// Namespace of the ontology; configuration.DefaultNamespace when empty.
	Namespace string
}

func NewModule(opts ...ModuleOptions) application.Module {
	m := &Module{namespace: configuration.DefaultNamespace}
	if len(opts) > 0 && opts[0].Namespace != "" {
		m.namespace = opts[0].Namespace
	}
	return m
}

type Module struct {
	namespace string
}

func (m *Module) Register(app application.Application) error {
	if app.Graph() == nil {
		return errors.New("ontology module requires a loaded graph")
	}
	bank, err := queries.NewBank(m.namespace)
	if err != nil {
		return errors.Wrap(err, "build query bank")
	}
	vocab := vocabulary.New(m.namespace)

	ontologyService := services.NewOntologyService(
		persistence.NewOntologyRepository(app.Graph(), bank, vocab),
	)
	searchService := services.NewSearchService(ontologyService, vocab)

	app.RegisterLocaleFiles(&LocaleFiles)
	app.RegisterServices(
		ontologyService,
		searchService,
	)
	app.RegisterControllers(
		controllers.NewOntologyController(app),
		controllers.NewSpotlightController(app),
		controllers.NewHealthController(app),
	)
	app.Spotlight().Register(searchService)
	app.QuickLinks().Add(
		spotlight.NewQuickLink(ProjectsLink.Name, ProjectsLink.Href),
		spotlight.NewQuickLink(EmployeesLink.Name, EmployeesLink.Href),
		spotlight.NewQuickLink(WorkloadLink.Name, WorkloadLink.Href),
	)
	return nil
}

func (m *Module) Name() string {
	return "ontology"
}
