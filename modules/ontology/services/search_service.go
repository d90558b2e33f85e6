package services

import (
	"context"
	"net/url"

	"github.com/knakk/rdf"

	"github.com/xe-labs/ontoview/modules/ontology/domain/vocabulary"
	"github.com/xe-labs/ontoview/pkg/composables"
	"github.com/xe-labs/ontoview/pkg/graph"
	"github.com/xe-labs/ontoview/pkg/spotlight"
)

// SearchService feeds project and employee names into the spotlight.
type SearchService struct {
	ontology *OntologyService
	vocab    *vocabulary.Vocabulary
}

func NewSearchService(ontology *OntologyService, vocab *vocabulary.Vocabulary) *SearchService {
	return &SearchService{
		ontology: ontology,
		vocab:    vocab,
	}
}

var _ spotlight.DataSource = (*SearchService)(nil)

func (s *SearchService) Find(ctx context.Context, q string) []spotlight.Item {
	logger := composables.UseLogger(ctx)
	var labels, links []string

	projects, err := s.ontology.Projects(ctx)
	if err != nil {
		logger.WithError(err).Warn("spotlight: projects unavailable")
	}
	for _, p := range projects {
		iri := p.Project.String()
		if !s.vocab.Contains(iri) {
			continue
		}
		id := graph.Fragment(iri)
		labels = append(labels, displayName(p.Name, id))
		links = append(links, "/project_tree/"+url.PathEscape(id))
	}

	employees, err := s.ontology.Employees(ctx)
	if err != nil {
		logger.WithError(err).Warn("spotlight: employees unavailable")
	}
	for _, e := range employees {
		labels = append(labels, displayName(e.Name, graph.Fragment(e.Employee.String())))
		links = append(links, "/employees")
	}

	idx := spotlight.Rank(q, labels)
	items := make([]spotlight.Item, 0, len(idx))
	for _, i := range idx {
		items = append(items, spotlight.NewItem(labels[i], links[i]))
	}
	return items
}

func displayName(name rdf.Term, fallback string) string {
	if name == nil || name.String() == "" {
		return fallback
	}
	return name.String()
}
