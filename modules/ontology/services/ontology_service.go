package services

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/xe-labs/ontoview/modules/ontology/domain/rows"
	"github.com/xe-labs/ontoview/modules/ontology/infrastructure/persistence"
	"github.com/xe-labs/ontoview/modules/ontology/infrastructure/queries"
	"github.com/xe-labs/ontoview/pkg/composables"
	"github.com/xe-labs/ontoview/pkg/metrics"
)

type OntologyService struct {
	repo rows.Repository
}

func NewOntologyService(repo rows.Repository) *OntologyService {
	return &OntologyService{
		repo: repo,
	}
}

func observe[T any](ctx context.Context, name string, fn func(context.Context) ([]T, error)) ([]T, error) {
	started := time.Now()
	out, err := fn(ctx)
	metrics.ObserveQuery(name, started, len(out), err)
	logger := composables.UseLogger(ctx).WithField("query", name)
	if err != nil {
		logger.WithError(err).Error("query failed")
		return nil, err
	}
	logger.WithField("rows", len(out)).WithField("elapsed", time.Since(started)).Debug("query executed")
	return out, nil
}

func (s *OntologyService) Projects(ctx context.Context) ([]rows.Project, error) {
	return observe(ctx, queries.ProjectsName, s.repo.Projects)
}

func (s *OntologyService) Employees(ctx context.Context) ([]rows.Employee, error) {
	return observe(ctx, queries.EmployeesName, s.repo.Employees)
}

func (s *OntologyService) Workload(ctx context.Context) ([]rows.Workload, error) {
	return observe(ctx, queries.WorkloadName, s.repo.Workload)
}

// ProjectTree leaves id validation to the repository, which answers
// persistence.ErrInvalidProjectID for ids outside the vocabulary.
func (s *OntologyService) ProjectTree(ctx context.Context, projectID string) ([]rows.TreeNode, error) {
	out, err := observe(ctx, queries.ProjectTreeName, func(ctx context.Context) ([]rows.TreeNode, error) {
		return s.repo.ProjectTree(ctx, projectID)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "project %q", projectID)
	}
	return out, nil
}

func (s *OntologyService) TripleCount() int {
	return s.repo.TripleCount()
}

// IsInvalidProjectID reports whether err was caused by a malformed project id.
func IsInvalidProjectID(err error) bool {
	return errors.Is(err, persistence.ErrInvalidProjectID)
}
