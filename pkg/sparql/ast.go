package sparql

import (
	"github.com/knakk/rdf"
)

// Query is a parsed SELECT query. It is immutable after Parse and may be
// executed concurrently.
type Query struct {
	prefixes map[string]string
	distinct bool
	project  []string
	visible  []string
	where    *group
	order    []orderCondition
	limit    int
	offset   int
}

// Variables returns the projected variable names in SELECT order. For
// SELECT * it lists every variable of the pattern in order of appearance.
func (q *Query) Variables() []string {
	if q.project != nil {
		return append([]string(nil), q.project...)
	}
	return append([]string(nil), q.visible...)
}

// Distinct reports whether the query asked for DISTINCT solutions.
func (q *Query) Distinct() bool {
	return q.distinct
}

type orderCondition struct {
	expr       expr
	descending bool
}

type group struct {
	elements []element
	filters  []expr
}

type element interface {
	isElement()
}

type triplesBlock struct {
	patterns []triplePattern
}

type optionalElement struct {
	group *group
}

type unionElement struct {
	branches []*group
}

type bindElement struct {
	expr     expr
	variable string
}

func (*triplesBlock) isElement()    {}
func (*optionalElement) isElement() {}
func (*unionElement) isElement()    {}
func (*bindElement) isElement()     {}

// node is a triple-pattern position: either a variable or a concrete term.
type node struct {
	variable string
	term     rdf.Term
}

func (n node) isVar() bool {
	return n.variable != ""
}

type triplePattern struct {
	subj, pred, obj node
}
