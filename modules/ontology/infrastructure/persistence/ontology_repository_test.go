package persistence_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/knakk/rdf"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/xe-labs/ontoview/modules/ontology/domain/rows"
	"github.com/xe-labs/ontoview/modules/ontology/domain/vocabulary"
	"github.com/xe-labs/ontoview/modules/ontology/infrastructure/persistence"
	"github.com/xe-labs/ontoview/modules/ontology/infrastructure/queries"
	"github.com/xe-labs/ontoview/pkg/configuration"
	"github.com/xe-labs/ontoview/pkg/graph"
)

const ns = configuration.DefaultNamespace

func newRepository(t *testing.T) rows.Repository {
	t.Helper()
	g, err := graph.Load("../../testdata/staff.rdf")
	require.NoError(t, err)
	bank, err := queries.NewBank(ns)
	require.NoError(t, err)
	return persistence.NewOntologyRepository(g, bank, vocabulary.New(ns))
}

func str(t rdf.Term) string {
	if t == nil {
		return "<unbound>"
	}
	return t.String()
}

func TestGraphRepository_Projects(t *testing.T) {
	repo := newRepository(t)
	got, err := repo.Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	byID := map[string]rows.Project{}
	for _, p := range got {
		byID[graph.Fragment(p.Project.String())] = p
	}
	require.Equal(t, "Alpha", str(byID["Project_Alpha"].Name))
	require.Equal(t, "120000", str(byID["Project_Alpha"].Budget))
	require.Nil(t, byID["Project_Beta"].Name)
	require.Nil(t, byID["Project_Beta"].Description)
	require.Nil(t, byID["Project_Gamma"].Description)
}

func TestGraphRepository_Employees(t *testing.T) {
	repo := newRepository(t)
	got, err := repo.Employees(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	positions := map[string]string{}
	for _, e := range got {
		positions[graph.Fragment(e.Employee.String())] = str(e.Position)
	}
	require.Equal(t, map[string]string{
		"Employee_1": "Developer",
		"Employee_2": "<unbound>",
		"Employee_3": "Manager",
	}, positions)
}

func TestGraphRepository_Workload(t *testing.T) {
	repo := newRepository(t)
	got, err := repo.Workload(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 4)

	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		require.LessOrEqual(t, str(prev.EmployeeName)+"\x00"+str(prev.ProjectName),
			str(cur.EmployeeName)+"\x00"+str(cur.ProjectName))
	}
	require.Equal(t, "Boris Ivanov", str(got[3].EmployeeName))
	require.Equal(t, "Gamma", str(got[3].ProjectName))
	require.Equal(t, "Deploy", str(got[3].TaskName))
}

func TestGraphRepository_ProjectTree(t *testing.T) {
	repo := newRepository(t)

	got, err := repo.ProjectTree(context.Background(), "Project_Alpha")
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "Build", str(got[0].TaskSetName))
	require.Equal(t, "Task_Backend", graph.Fragment(got[0].Task.String()))
	require.Nil(t, got[0].TaskName)

	got, err = repo.ProjectTree(context.Background(), "Project_Gamma")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "TaskSet_Ops", str(got[0].TaskSetName))

	got, err = repo.ProjectTree(context.Background(), "Project_Beta")
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = repo.ProjectTree(context.Background(), "Nope")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGraphRepository_ProjectTreeRejectsInvalidID(t *testing.T) {
	repo := newRepository(t)
	for _, id := range []string{
		"",
		"Project_Alpha> . ?s ?p ?o",
		"x } UNION { ?s ?p ?o",
		"a b",
		"../etc",
	} {
		_, err := repo.ProjectTree(context.Background(), id)
		require.ErrorIs(t, err, persistence.ErrInvalidProjectID, id)
	}
}

func TestGraphRepository_CanceledContext(t *testing.T) {
	repo := newRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.Workload(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGraphRepository_TripleCount(t *testing.T) {
	require.Positive(t, newRepository(t).TripleCount())
}

// Run with -race: every goroutine shares one graph and one query bank.
func TestGraphRepository_ConcurrentQueries(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()

	wantWorkload, err := repo.Workload(ctx)
	require.NoError(t, err)
	wantTree, err := repo.ProjectTree(ctx, "Project_Alpha")
	require.NoError(t, err)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			for j := 0; j < 20; j++ {
				workload, err := repo.Workload(ctx)
				if err != nil {
					return err
				}
				if len(workload) != len(wantWorkload) {
					return fmt.Errorf("workload: got %d rows, want %d", len(workload), len(wantWorkload))
				}
				tree, err := repo.ProjectTree(ctx, "Project_Alpha")
				if err != nil {
					return err
				}
				if len(tree) != len(wantTree) {
					return fmt.Errorf("project tree: got %d rows, want %d", len(tree), len(wantTree))
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
