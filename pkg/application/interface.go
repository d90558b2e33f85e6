package application

import (
	"embed"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"

	"github.com/xe-labs/ontoview/pkg/graph"
	"github.com/xe-labs/ontoview/pkg/spotlight"
	"github.com/xe-labs/ontoview/pkg/types"
)

// Controller registers HTTP routes on the shared router.
type Controller interface {
	Register(r *mux.Router)
	Key() string
}

// Module is a self-contained feature that registers its services,
// controllers and locale files with the application.
type Module interface {
	Register(app Application) error
	Name() string
}

// Application is the registry every module is wired through.
type Application interface {
	Graph() *graph.Graph
	Logger() *logrus.Logger
	Bundle() *i18n.Bundle
	GetSupportedLanguages() []string
	Spotlight() spotlight.Spotlight
	QuickLinks() *spotlight.QuickLinks
	NavItems(localizer *i18n.Localizer) []types.NavigationItem
	RegisterNavItems(items ...types.NavigationItem)
	Middleware() []mux.MiddlewareFunc
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	Controllers() []Controller
	RegisterControllers(controllers ...Controller)
	RegisterLocaleFiles(fs ...*embed.FS)
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
	Services() map[reflect.Type]interface{}
}
