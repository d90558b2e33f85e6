// Package graph provides a read-only, indexed in-memory RDF triple store.
//
// A Graph is built once (usually from a file at process start) and is never
// mutated afterwards, so a single *Graph can be shared by any number of
// goroutines without locking.
package graph

import (
	"github.com/knakk/rdf"
)

type Graph struct {
	triples []rdf.Triple
	bySubj  map[string][]int
	byPred  map[string][]int
	byObj   map[string][]int
}

// New indexes the given triples. Duplicate statements are stored once.
func New(triples []rdf.Triple) *Graph {
	g := &Graph{
		triples: make([]rdf.Triple, 0, len(triples)),
		bySubj:  make(map[string][]int),
		byPred:  make(map[string][]int),
		byObj:   make(map[string][]int),
	}
	seen := make(map[string]struct{}, len(triples))
	for _, t := range triples {
		s, p, o := TermKey(t.Subj), TermKey(t.Pred), TermKey(t.Obj)
		key := s + " " + p + " " + o
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		idx := len(g.triples)
		g.triples = append(g.triples, t)
		g.bySubj[s] = append(g.bySubj[s], idx)
		g.byPred[p] = append(g.byPred[p], idx)
		g.byObj[o] = append(g.byObj[o], idx)
	}
	return g
}

// Len returns the number of distinct triples in the graph.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns a copy of all statements in load order.
func (g *Graph) Triples() []rdf.Triple {
	out := make([]rdf.Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Match returns every triple matching the pattern. A nil term is a wildcard.
// Results keep load order.
func (g *Graph) Match(subj, pred, obj rdf.Term) []rdf.Triple {
	var sKey, pKey, oKey string
	candidates := -1
	var idx []int

	pick := func(index map[string][]int, key string) bool {
		list, ok := index[key]
		if !ok {
			idx = nil
			candidates = 0
			return false
		}
		if candidates < 0 || len(list) < candidates {
			idx = list
			candidates = len(list)
		}
		return true
	}

	if subj != nil {
		sKey = TermKey(subj)
		if !pick(g.bySubj, sKey) {
			return nil
		}
	}
	if pred != nil {
		pKey = TermKey(pred)
		if !pick(g.byPred, pKey) {
			return nil
		}
	}
	if obj != nil {
		oKey = TermKey(obj)
		if !pick(g.byObj, oKey) {
			return nil
		}
	}

	if candidates < 0 {
		return g.Triples()
	}

	out := make([]rdf.Triple, 0, len(idx))
	for _, i := range idx {
		t := g.triples[i]
		if subj != nil && TermKey(t.Subj) != sKey {
			continue
		}
		if pred != nil && TermKey(t.Pred) != pKey {
			continue
		}
		if obj != nil && TermKey(t.Obj) != oKey {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Has reports whether the exact statement is present.
func (g *Graph) Has(subj, pred, obj rdf.Term) bool {
	return len(g.Match(subj, pred, obj)) > 0
}
