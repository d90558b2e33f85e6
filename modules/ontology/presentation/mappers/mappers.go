package mappers

import (
	"context"
	"net/url"

	"github.com/knakk/rdf"

	"github.com/xe-labs/ontoview/modules/ontology/domain/rows"
	"github.com/xe-labs/ontoview/modules/ontology/presentation/viewmodels"
	"github.com/xe-labs/ontoview/pkg/constants"
	"github.com/xe-labs/ontoview/pkg/graph"
	"github.com/xe-labs/ontoview/pkg/intl"
)

// Labels are the texts shown in place of missing values.
type Labels struct {
	UntitledProject    string
	NoDescription      string
	NoBudget           string
	NoPosition         string
	ProjectPlaceholder string
}

func DefaultLabels() Labels {
	return Labels{
		UntitledProject:    "Untitled project",
		NoDescription:      "No description",
		NoBudget:           "Not specified",
		NoPosition:         "Position not specified",
		ProjectPlaceholder: "Project",
	}
}

// LabelsFromContext translates the labels with the request localizer.
func LabelsFromContext(ctx context.Context) Labels {
	if _, ok := intl.UseLocalizer(ctx); !ok {
		return DefaultLabels()
	}
	return Labels{
		UntitledProject:    intl.T(ctx, "Fallback.UntitledProject"),
		NoDescription:      intl.T(ctx, "Fallback.NoDescription"),
		NoBudget:           intl.T(ctx, "Fallback.NoBudget"),
		NoPosition:         intl.T(ctx, "Fallback.NoPosition"),
		ProjectPlaceholder: intl.T(ctx, "Fallback.ProjectPlaceholder"),
	}
}

// text returns the lexical form of t, or "" when t is unbound or an empty
// literal. Both count as absent.
func text(t rdf.Term) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func orElse(t rdf.Term, fallback string) string {
	if s := text(t); s != "" {
		return s
	}
	return fallback
}

func fragment(t rdf.Term) string {
	return graph.Fragment(text(t))
}

func ProjectToViewModel(row rows.Project, labels Labels) viewmodels.Project {
	id := fragment(row.Project)
	vm := viewmodels.Project{
		ID:          id,
		Name:        orElse(row.Name, labels.UntitledProject),
		Description: orElse(row.Description, labels.NoDescription),
		Budget:      orElse(row.Budget, labels.NoBudget),
	}
	if constants.IsLocalName(id) {
		vm.TreeURL = "/project_tree/" + url.PathEscape(id)
	}
	return vm
}

func EmployeeToViewModel(row rows.Employee, labels Labels) viewmodels.Employee {
	return viewmodels.Employee{
		Name:     orElse(row.Name, fragment(row.Employee)),
		Position: orElse(row.Position, labels.NoPosition),
	}
}

func WorkloadToViewModel(row rows.Workload) viewmodels.Workload {
	return viewmodels.Workload{
		Employee: text(row.EmployeeName),
		Project:  text(row.ProjectName),
		Task:     orElse(row.TaskName, fragment(row.Task)),
	}
}

// ProjectTreeToViewModel groups tasks under their task set. Groups appear in
// the order their first row appears and tasks keep row order. Rows sharing a
// task set name land in the same group. With no rows the project gets the
// placeholder name and no groups.
func ProjectTreeToViewModel(projectID string, nodes []rows.TreeNode, labels Labels) viewmodels.ProjectTree {
	tree := viewmodels.ProjectTree{
		ProjectID:   projectID,
		ProjectName: labels.ProjectPlaceholder,
		Groups:      []viewmodels.TaskGroup{},
	}
	index := map[string]int{}
	for _, n := range nodes {
		if name := text(n.ProjectName); name != "" {
			tree.ProjectName = name
		}
		group := orElse(n.TaskSetName, fragment(n.TaskSet))
		task := orElse(n.TaskName, fragment(n.Task))

		i, ok := index[group]
		if !ok {
			i = len(tree.Groups)
			index[group] = i
			tree.Groups = append(tree.Groups, viewmodels.TaskGroup{Name: group})
		}
		tree.Groups[i].Tasks = append(tree.Groups[i].Tasks, task)
	}
	return tree
}

func mapAll[R, V any](in []R, fn func(R) V) []V {
	out := make([]V, 0, len(in))
	for _, r := range in {
		out = append(out, fn(r))
	}
	return out
}

func ProjectsToViewModels(in []rows.Project, labels Labels) []viewmodels.Project {
	return mapAll(in, func(r rows.Project) viewmodels.Project { return ProjectToViewModel(r, labels) })
}

func EmployeesToViewModels(in []rows.Employee, labels Labels) []viewmodels.Employee {
	return mapAll(in, func(r rows.Employee) viewmodels.Employee { return EmployeeToViewModel(r, labels) })
}

func WorkloadToViewModels(in []rows.Workload) []viewmodels.Workload {
	return mapAll(in, WorkloadToViewModel)
}
