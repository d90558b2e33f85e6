// Package queries holds the fixed SPARQL queries behind every view. The
// query files use the "ns:" prefix, which is bound to the configured
// ontology namespace when the bank is built.
package queries

import (
	"embed"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/xe-labs/ontoview/pkg/sparql"
)

//go:embed *.rq
var files embed.FS

const (
	ProjectsName    = "projects"
	EmployeesName   = "employees"
	WorkloadName    = "workload"
	ProjectTreeName = "project_tree"
)

// Bank is the parsed set of queries. It is immutable and shared by all
// requests.
type Bank struct {
	Projects    *sparql.Query
	Employees   *sparql.Query
	Workload    *sparql.Query
	ProjectTree *sparql.Query
}

// NewBank parses every query with ns: bound to namespace.
func NewBank(namespace string) (*Bank, error) {
	b := &Bank{}
	targets := []struct {
		name string
		dst  **sparql.Query
	}{
		{ProjectsName, &b.Projects},
		{EmployeesName, &b.Employees},
		{WorkloadName, &b.Workload},
		{ProjectTreeName, &b.ProjectTree},
	}
	for _, t := range targets {
		q, err := parse(namespace, t.name)
		if err != nil {
			return nil, err
		}
		*t.dst = q
	}
	return b, nil
}

// Source returns the query text of name as it is parsed, prologue included.
func Source(namespace, name string) (string, error) {
	body, err := files.ReadFile(name + ".rq")
	if err != nil {
		return "", errors.Wrapf(err, "query %q", name)
	}
	return fmt.Sprintf("PREFIX ns: <%s>\n%s", namespace, body), nil
}

func parse(namespace, name string) (*sparql.Query, error) {
	src, err := Source(namespace, name)
	if err != nil {
		return nil, err
	}
	q, err := sparql.Parse(src)
	if err != nil {
		return nil, errors.Wrapf(err, "parse query %q", name)
	}
	return q, nil
}
