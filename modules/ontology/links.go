package ontology

import (
	"github.com/xe-labs/ontoview/pkg/types"
)

var HomeLink = types.NavigationItem{
	Name: "NavigationLinks.Home",
	Href: "/",
}

var ProjectsLink = types.NavigationItem{
	Name: "NavigationLinks.Projects",
	Href: "/projects",
}

var EmployeesLink = types.NavigationItem{
	Name: "NavigationLinks.Employees",
	Href: "/employees",
}

var WorkloadLink = types.NavigationItem{
	Name: "NavigationLinks.Workload",
	Href: "/workload",
}

var NavItems = []types.NavigationItem{
	HomeLink,
	ProjectsLink,
	EmployeesLink,
	WorkloadLink,
}
