package modules

import (
	"slices"

	"github.com/xe-labs/ontoview/modules/ontology"
	"github.com/xe-labs/ontoview/pkg/application"
	"github.com/xe-labs/ontoview/pkg/configuration"
)

var NavLinks = slices.Concat(
	ontology.NavItems,
)

// BuiltInModules returns the modules every deployment runs, configured from conf.
func BuiltInModules(conf *configuration.Configuration) []application.Module {
	return []application.Module{
		ontology.NewModule(ontology.ModuleOptions{Namespace: conf.Ontology.Namespace}),
	}
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
