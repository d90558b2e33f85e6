// Package vocabulary names the classes and predicates of the staffing
// ontology. Local names are fixed; the namespace they live in is configurable.
package vocabulary

import (
	"github.com/go-faster/errors"
	"github.com/knakk/rdf"

	"github.com/xe-labs/ontoview/pkg/constants"
)

// Classes.
const (
	Project    = "Project"
	Employee   = "Employee"
	Task       = "Task"
	TaskSet    = "TaskSet"
	Assignment = "Assignment"
)

// Datatype properties.
const (
	HasName        = "hasName"
	HasDescription = "hasDescription"
	Budget         = "budget"
)

// Object properties.
const (
	// HoldsPosition links an employee to the position individual they hold.
	HoldsPosition = "Занимает_должность"

	// PerformsAssignment links an employee to an assignment.
	PerformsAssignment = "Выполняет_назначение"

	// AssignedTo links a task to the assignment it is part of.
	AssignedTo = "Назначена_в"

	// ContainsTasks links a task set to its tasks.
	ContainsTasks = "Содержит_задачи"

	// IncludesTaskSets links a project to its task sets.
	IncludesTaskSets = "Включает_наборы"
)

var ErrInvalidLocalName = errors.New("invalid local name")

// Vocabulary resolves local names against one namespace.
type Vocabulary struct {
	namespace string
}

func New(namespace string) *Vocabulary {
	return &Vocabulary{namespace: namespace}
}

func (v *Vocabulary) Namespace() string {
	return v.namespace
}

// IRI returns namespace+local after checking that local is a plain local
// name, so the result never smuggles in another namespace or IRI syntax.
func (v *Vocabulary) IRI(local string) (rdf.IRI, error) {
	if !constants.IsLocalName(local) {
		return rdf.IRI{}, errors.Wrapf(ErrInvalidLocalName, "%q", local)
	}
	iri, err := rdf.NewIRI(v.namespace + local)
	if err != nil {
		return rdf.IRI{}, errors.Wrapf(ErrInvalidLocalName, "%q: %v", local, err)
	}
	return iri, nil
}

// Contains reports whether iri lives directly in the namespace.
func (v *Vocabulary) Contains(iri string) bool {
	if len(iri) <= len(v.namespace) || iri[:len(v.namespace)] != v.namespace {
		return false
	}
	return constants.IsLocalName(iri[len(v.namespace):])
}
