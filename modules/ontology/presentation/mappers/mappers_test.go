package mappers

import (
	"testing"

	"github.com/knakk/rdf"
	"github.com/stretchr/testify/require"

	"github.com/xe-labs/ontoview/modules/ontology/domain/rows"
	"github.com/xe-labs/ontoview/modules/ontology/presentation/viewmodels"
	"github.com/xe-labs/ontoview/pkg/graph"
)

const ns = "http://example.org/onto#"

func iri(local string) rdf.Term {
	return graph.MustIRI(ns + local)
}

func lit(s string) rdf.Term {
	return graph.StringLiteral(s)
}

func TestProjectToViewModel_Fallbacks(t *testing.T) {
	labels := DefaultLabels()

	vm := ProjectToViewModel(rows.Project{Project: iri("P1")}, labels)
	require.Equal(t, viewmodels.Project{
		ID:          "P1",
		Name:        labels.UntitledProject,
		Description: labels.NoDescription,
		Budget:      labels.NoBudget,
		TreeURL:     "/project_tree/P1",
	}, vm)

	vm = ProjectToViewModel(rows.Project{
		Project:     iri("P2"),
		Name:        lit(""),
		Description: lit(""),
		Budget:      lit(""),
	}, labels)
	require.Equal(t, labels.UntitledProject, vm.Name)
	require.Equal(t, labels.NoDescription, vm.Description)
	require.Equal(t, labels.NoBudget, vm.Budget)

	vm = ProjectToViewModel(rows.Project{
		Project:     iri("P3"),
		Name:        lit("Alpha"),
		Description: lit("Rewrite"),
		Budget:      rdf.NewTypedLiteral("100", graph.MustIRI("http://www.w3.org/2001/XMLSchema#integer")),
	}, labels)
	require.Equal(t, "Alpha", vm.Name)
	require.Equal(t, "Rewrite", vm.Description)
	require.Equal(t, "100", vm.Budget)
}

func TestProjectToViewModel_NoTreeURLForForeignIRI(t *testing.T) {
	vm := ProjectToViewModel(rows.Project{Project: graph.MustIRI("http://example.org/projects/")}, DefaultLabels())
	require.Equal(t, "http://example.org/projects/", vm.ID)
	require.Empty(t, vm.TreeURL)
}

func TestEmployeeToViewModel(t *testing.T) {
	labels := DefaultLabels()

	vm := EmployeeToViewModel(rows.Employee{Employee: iri("Employee_7")}, labels)
	require.Equal(t, "Employee_7", vm.Name)
	require.Equal(t, labels.NoPosition, vm.Position)

	vm = EmployeeToViewModel(rows.Employee{
		Employee: iri("Employee_8"),
		Name:     lit("Vera"),
		Position: lit("Analyst"),
	}, labels)
	require.Equal(t, viewmodels.Employee{Name: "Vera", Position: "Analyst"}, vm)
}

func TestTaskWithoutNameUsesFragmentEverywhere(t *testing.T) {
	task := iri("Task_Unnamed")

	wl := WorkloadToViewModel(rows.Workload{
		EmployeeName: lit("Anna"),
		ProjectName:  lit("Alpha"),
		Task:         task,
	})
	tree := ProjectTreeToViewModel("Alpha", []rows.TreeNode{{
		ProjectName: lit("Alpha"),
		TaskSet:     iri("TS"),
		TaskSetName: lit("Set"),
		Task:        task,
	}}, DefaultLabels())

	require.Equal(t, "Task_Unnamed", wl.Task)
	require.Equal(t, wl.Task, tree.Groups[0].Tasks[0])
}

func TestProjectTreeToViewModel_Groups(t *testing.T) {
	nodes := []rows.TreeNode{
		{ProjectName: lit("Alpha"), TaskSet: iri("A"), TaskSetName: lit("A"), Task: iri("t1"), TaskName: lit("T1")},
		{ProjectName: lit("Alpha"), TaskSet: iri("A"), TaskSetName: lit("A"), Task: iri("t2"), TaskName: lit("T2")},
		{ProjectName: lit("Alpha"), TaskSet: iri("B"), TaskSetName: lit("B"), Task: iri("t3"), TaskName: lit("T3")},
	}
	tree := ProjectTreeToViewModel("Alpha", nodes, DefaultLabels())
	require.Equal(t, viewmodels.ProjectTree{
		ProjectID:   "Alpha",
		ProjectName: "Alpha",
		Groups: []viewmodels.TaskGroup{
			{Name: "A", Tasks: []string{"T1", "T2"}},
			{Name: "B", Tasks: []string{"T3"}},
		},
	}, tree)
}

func TestProjectTreeToViewModel_KeepsDuplicatesAndMergesSameName(t *testing.T) {
	nodes := []rows.TreeNode{
		{ProjectName: lit("P"), TaskSet: iri("S1"), TaskSetName: lit("Same"), Task: iri("t1"), TaskName: lit("T")},
		{ProjectName: lit("P"), TaskSet: iri("S2"), TaskSetName: lit("Same"), Task: iri("t1"), TaskName: lit("T")},
		{ProjectName: lit("P"), TaskSet: iri("S3"), Task: iri("t9")},
	}
	tree := ProjectTreeToViewModel("P", nodes, DefaultLabels())
	require.Len(t, tree.Groups, 2)
	require.Equal(t, []string{"T", "T"}, tree.Groups[0].Tasks)
	require.Equal(t, "S3", tree.Groups[1].Name)
	require.Equal(t, []string{"t9"}, tree.Groups[1].Tasks)
}

func TestProjectTreeToViewModel_Empty(t *testing.T) {
	labels := DefaultLabels()
	labels.ProjectPlaceholder = "Проект"

	tree := ProjectTreeToViewModel("Unknown", nil, labels)
	require.Equal(t, "Проект", tree.ProjectName)
	require.NotNil(t, tree.Groups)
	require.Empty(t, tree.Groups)
}

func TestMappersAreDeterministic(t *testing.T) {
	in := []rows.Employee{
		{Employee: iri("E1"), Name: lit("Anna")},
		{Employee: iri("E2")},
	}
	first := EmployeesToViewModels(in, DefaultLabels())
	second := EmployeesToViewModels(in, DefaultLabels())
	require.Equal(t, first, second)
	require.Len(t, first, 2)

	require.Empty(t, WorkloadToViewModels(nil))
	require.Len(t, ProjectsToViewModels([]rows.Project{{Project: iri("P")}}, DefaultLabels()), 1)
}
