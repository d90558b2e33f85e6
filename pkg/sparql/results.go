package sparql

import (
	"iter"

	"github.com/knakk/rdf"
)

// Solution maps variable names (without '?') to the terms bound to them.
// Unbound variables are absent.
type Solution map[string]rdf.Term

// Get returns the term bound to name.
func (s Solution) Get(name string) (rdf.Term, bool) {
	t, ok := s[name]
	return t, ok
}

func (s Solution) clone() Solution {
	out := make(Solution, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Bindings pre-binds variables before evaluation.
type Bindings map[string]rdf.Term

// Results is the outcome of a SELECT query.
type Results struct {
	vars      []string
	solutions []Solution
}

// Variables returns the projected variable names.
func (r *Results) Variables() []string {
	return append([]string(nil), r.vars...)
}

// Len returns the number of solutions.
func (r *Results) Len() int {
	return len(r.solutions)
}

// Rows yields the solutions in result order.
func (r *Results) Rows() iter.Seq[Solution] {
	return func(yield func(Solution) bool) {
		for _, s := range r.solutions {
			if !yield(s) {
				return
			}
		}
	}
}
