package ontology_test

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/xe-labs/ontoview/modules/ontology"
	"github.com/xe-labs/ontoview/modules/ontology/services"
	"github.com/xe-labs/ontoview/pkg/application"
	"github.com/xe-labs/ontoview/pkg/commands"
	"github.com/xe-labs/ontoview/pkg/itf"
)

func TestModule_RegistersServices(t *testing.T) {
	env := itf.NewTestContext().
		WithModules(ontology.NewModule()).
		WithGraphFile("testdata/staff.rdf").
		Build(t)

	svc := itf.GetService[services.OntologyService](env)
	require.NotNil(t, svc)
	require.Equal(t, env.Graph.Len(), svc.TripleCount())

	projects, err := svc.Projects(env.Ctx)
	env.AssertNoError(t, err)
	require.Len(t, projects, 3)

	items := env.App.Spotlight().Find(env.Ctx, "alpha")
	require.NotEmpty(t, items)
}

func TestModule_RequiresGraph(t *testing.T) {
	app := application.New(&application.ApplicationOptions{})
	require.Error(t, ontology.NewModule().Register(app))
}

func TestModule_Translations(t *testing.T) {
	env := itf.NewTestContext().
		WithModules(ontology.NewModule()).
		WithGraphFile("testdata/staff.rdf").
		Build(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	require.NoError(t, commands.CheckTrKeys(env.App.Bundle(), []string{"en", "ru"}, logger))
	require.NoError(t, commands.CheckTrUsage(".", env.App.Bundle(), []string{"en", "ru"}, logger))
}
