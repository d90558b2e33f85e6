// Package rows holds the raw result rows of the fixed ontology queries.
// A nil term means the variable was left unbound by the query.
package rows

import (
	"context"

	"github.com/knakk/rdf"
)

type Project struct {
	Project     rdf.Term
	Name        rdf.Term
	Description rdf.Term
	Budget      rdf.Term
}

type Employee struct {
	Employee rdf.Term
	Name     rdf.Term
	Position rdf.Term
}

type Workload struct {
	EmployeeName rdf.Term
	ProjectName  rdf.Term
	Task         rdf.Term
	TaskName     rdf.Term
}

type TreeNode struct {
	ProjectName rdf.Term
	TaskSet     rdf.Term
	TaskSetName rdf.Term
	Task        rdf.Term
	TaskName    rdf.Term
}

type Repository interface {
	Projects(ctx context.Context) ([]Project, error)
	Employees(ctx context.Context) ([]Employee, error)
	Workload(ctx context.Context) ([]Workload, error)
	// ProjectTree returns the task sets and tasks of the project whose IRI
	// is the namespace followed by projectID.
	ProjectTree(ctx context.Context, projectID string) ([]TreeNode, error)
	TripleCount() int
}
