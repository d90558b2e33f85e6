package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/xe-labs/ontoview/modules/ontology/domain/rows"
	"github.com/xe-labs/ontoview/modules/ontology/domain/vocabulary"
	"github.com/xe-labs/ontoview/modules/ontology/infrastructure/queries"
	"github.com/xe-labs/ontoview/pkg/graph"
	"github.com/xe-labs/ontoview/pkg/sparql"
)

var (
	ErrInvalidProjectID = errors.New("invalid project id")
)

type GraphRepository struct {
	graph *graph.Graph
	bank  *queries.Bank
	vocab *vocabulary.Vocabulary
}

func NewOntologyRepository(g *graph.Graph, bank *queries.Bank, vocab *vocabulary.Vocabulary) rows.Repository {
	return &GraphRepository{
		graph: g,
		bank:  bank,
		vocab: vocab,
	}
}

func (g *GraphRepository) TripleCount() int {
	return g.graph.Len()
}

func (g *GraphRepository) Projects(ctx context.Context) ([]rows.Project, error) {
	res, err := sparql.Execute(ctx, g.graph, g.bank.Projects, nil)
	if err != nil {
		return nil, errors.Wrap(err, "projects query")
	}
	out := make([]rows.Project, 0, res.Len())
	for s := range res.Rows() {
		out = append(out, rows.Project{
			Project:     s["p"],
			Name:        s["name"],
			Description: s["desc"],
			Budget:      s["budget"],
		})
	}
	return out, nil
}

func (g *GraphRepository) Employees(ctx context.Context) ([]rows.Employee, error) {
	res, err := sparql.Execute(ctx, g.graph, g.bank.Employees, nil)
	if err != nil {
		return nil, errors.Wrap(err, "employees query")
	}
	out := make([]rows.Employee, 0, res.Len())
	for s := range res.Rows() {
		out = append(out, rows.Employee{
			Employee: s["emp"],
			Name:     s["name"],
			Position: s["pos"],
		})
	}
	return out, nil
}

func (g *GraphRepository) Workload(ctx context.Context) ([]rows.Workload, error) {
	res, err := sparql.Execute(ctx, g.graph, g.bank.Workload, nil)
	if err != nil {
		return nil, errors.Wrap(err, "workload query")
	}
	out := make([]rows.Workload, 0, res.Len())
	for s := range res.Rows() {
		out = append(out, rows.Workload{
			EmployeeName: s["empName"],
			ProjectName:  s["projectName"],
			Task:         s["task"],
			TaskName:     s["taskName"],
		})
	}
	return out, nil
}

// ProjectTree binds ?project to the project IRI instead of splicing the id
// into the query text. An id that is not a plain local name is rejected
// before any query runs.
func (g *GraphRepository) ProjectTree(ctx context.Context, projectID string) ([]rows.TreeNode, error) {
	project, err := g.vocab.IRI(projectID)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidProjectID, "%q", projectID)
	}
	res, err := sparql.Execute(ctx, g.graph, g.bank.ProjectTree, sparql.Bindings{"project": project})
	if err != nil {
		return nil, errors.Wrap(err, "project tree query")
	}
	out := make([]rows.TreeNode, 0, res.Len())
	for s := range res.Rows() {
		out = append(out, rows.TreeNode{
			ProjectName: s["projectName"],
			TaskSet:     s["ts"],
			TaskSetName: s["tsName"],
			Task:        s["task"],
			TaskName:    s["taskName"],
		})
	}
	return out, nil
}
