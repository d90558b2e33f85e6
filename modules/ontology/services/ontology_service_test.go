package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/xe-labs/ontoview/modules/ontology/domain/rows"
	"github.com/xe-labs/ontoview/modules/ontology/domain/vocabulary"
	"github.com/xe-labs/ontoview/modules/ontology/infrastructure/persistence"
	"github.com/xe-labs/ontoview/modules/ontology/infrastructure/queries"
	"github.com/xe-labs/ontoview/pkg/configuration"
	"github.com/xe-labs/ontoview/pkg/graph"
	"github.com/xe-labs/ontoview/pkg/metrics"
)

type mockRepo struct {
	calledWith string
	err        error
}

func (m *mockRepo) Projects(ctx context.Context) ([]rows.Project, error) {
	return []rows.Project{{}, {}}, m.err
}
func (m *mockRepo) Employees(ctx context.Context) ([]rows.Employee, error) {
	return nil, m.err
}
func (m *mockRepo) Workload(ctx context.Context) ([]rows.Workload, error) {
	return nil, m.err
}
func (m *mockRepo) ProjectTree(ctx context.Context, projectID string) ([]rows.TreeNode, error) {
	m.calledWith = projectID
	return nil, m.err
}
func (m *mockRepo) TripleCount() int { return 42 }

func newGraphService(t *testing.T) (*OntologyService, *vocabulary.Vocabulary) {
	t.Helper()
	g, err := graph.Load("../testdata/staff.rdf")
	require.NoError(t, err)
	bank, err := queries.NewBank(configuration.DefaultNamespace)
	require.NoError(t, err)
	vocab := vocabulary.New(configuration.DefaultNamespace)
	return NewOntologyService(persistence.NewOntologyRepository(g, bank, vocab)), vocab
}

func TestOntologyService_RecordsMetrics(t *testing.T) {
	svc := NewOntologyService(&mockRepo{})
	before := testutil.ToFloat64(metrics.QueryRows.WithLabelValues(queries.ProjectsName))

	got, err := svc.Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.InDelta(t, before+2, testutil.ToFloat64(metrics.QueryRows.WithLabelValues(queries.ProjectsName)), 0.001)
	require.Equal(t, 42, svc.TripleCount())
}

func TestOntologyService_CountsErrors(t *testing.T) {
	svc := NewOntologyService(&mockRepo{err: errors.New("boom")})
	before := testutil.ToFloat64(metrics.QueryErrors.WithLabelValues(queries.WorkloadName))

	_, err := svc.Workload(context.Background())
	require.Error(t, err)
	require.InDelta(t, before+1, testutil.ToFloat64(metrics.QueryErrors.WithLabelValues(queries.WorkloadName)), 0.001)
}

func TestOntologyService_ProjectTree(t *testing.T) {
	repo := &mockRepo{}
	svc := NewOntologyService(repo)
	_, err := svc.ProjectTree(context.Background(), "Project_Alpha")
	require.NoError(t, err)
	require.Equal(t, "Project_Alpha", repo.calledWith)

	repo.err = persistence.ErrInvalidProjectID
	_, err = svc.ProjectTree(context.Background(), "a b")
	require.True(t, IsInvalidProjectID(err))
	require.Equal(t, "a b", repo.calledWith)

	graphSvc, _ := newGraphService(t)
	_, err = graphSvc.ProjectTree(context.Background(), "bad id")
	require.Error(t, err)
	require.True(t, IsInvalidProjectID(err))
	require.False(t, IsInvalidProjectID(errors.New("other")))
}

func TestSearchService_Find(t *testing.T) {
	svc, vocab := newGraphService(t)
	search := NewSearchService(svc, vocab)

	items := search.Find(context.Background(), "alph")
	require.NotEmpty(t, items)
	require.Equal(t, "Alpha", items[0].Label())
	require.Equal(t, "/project_tree/Project_Alpha", items[0].Link())

	items = search.Find(context.Background(), "boris")
	require.Len(t, items, 1)
	require.Equal(t, "Boris Ivanov", items[0].Label())
	require.Equal(t, "/employees", items[0].Link())

	items = search.Find(context.Background(), "beta")
	require.Len(t, items, 1)
	require.Equal(t, "Project_Beta", items[0].Label())

	require.Empty(t, search.Find(context.Background(), "zzzz"))
}
