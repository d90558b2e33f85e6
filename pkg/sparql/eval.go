package sparql

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/go-faster/errors"
	"github.com/knakk/rdf"

	"github.com/xe-labs/ontoview/pkg/graph"
)

// Execute evaluates q against g. Variables in initial are bound before the
// WHERE clause is evaluated, so patterns see them as constants. Execute only
// reads g and may run concurrently with other executions.
func Execute(ctx context.Context, g *graph.Graph, q *Query, initial Bindings) (*Results, error) {
	seed := Solution{}
	for name, t := range initial {
		if !slices.Contains(q.visible, name) {
			return nil, errors.Wrapf(ErrUnboundVariable, "?%s", name)
		}
		if t != nil {
			seed[name] = t
		}
	}

	e := &evaluator{ctx: ctx, g: g}
	sols, err := e.evalGroup(q.where, []Solution{seed})
	if err != nil {
		return nil, err
	}

	if len(q.order) > 0 {
		sortSolutions(sols, q.order)
	}

	vars := q.Variables()
	if q.project != nil {
		for i, s := range sols {
			p := make(Solution, len(vars))
			for _, v := range vars {
				if t, ok := s[v]; ok {
					p[v] = t
				}
			}
			sols[i] = p
		}
	}
	if q.distinct {
		sols = distinct(sols, vars)
	}

	if q.offset > 0 {
		if q.offset >= len(sols) {
			sols = nil
		} else {
			sols = sols[q.offset:]
		}
	}
	if q.limit >= 0 && q.limit < len(sols) {
		sols = sols[:q.limit]
	}
	return &Results{vars: vars, solutions: sols}, nil
}

type evaluator struct {
	ctx context.Context
	g   *graph.Graph
}

func (e *evaluator) evalGroup(g *group, input []Solution) ([]Solution, error) {
	cur := input
	for _, el := range g.elements {
		if err := e.ctx.Err(); err != nil {
			return nil, err
		}
		var (
			next []Solution
			err  error
		)
		switch el := el.(type) {
		case *triplesBlock:
			for _, mu := range cur {
				if next, err = e.matchBGP(el.patterns, mu, next); err != nil {
					return nil, err
				}
			}
		case *optionalElement:
			for _, mu := range cur {
				ext, err := e.evalGroup(el.group, []Solution{mu})
				if err != nil {
					return nil, err
				}
				if len(ext) == 0 {
					next = append(next, mu)
				} else {
					next = append(next, ext...)
				}
			}
		case *unionElement:
			for _, mu := range cur {
				for _, branch := range el.branches {
					ext, err := e.evalGroup(branch, []Solution{mu})
					if err != nil {
						return nil, err
					}
					next = append(next, ext...)
				}
			}
		case *bindElement:
			for _, mu := range cur {
				v, err := el.expr.eval(mu)
				if err != nil || v == nil {
					next = append(next, mu)
					continue
				}
				if existing, ok := mu[el.variable]; ok {
					// Pre-bound from outside: the BIND acts as a join.
					if graph.Equal(existing, v) {
						next = append(next, mu)
					}
					continue
				}
				ext := mu.clone()
				ext[el.variable] = v
				next = append(next, ext)
			}
		}
		cur = next
		if len(cur) == 0 {
			return nil, nil
		}
	}

	if len(g.filters) == 0 {
		return cur, nil
	}
	out := cur[:0:0]
	for _, mu := range cur {
		if passes(g.filters, mu) {
			out = append(out, mu)
		}
	}
	return out, nil
}

func passes(filters []expr, mu Solution) bool {
	for _, f := range filters {
		ok, err := evalBool(f, mu)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

// matchBGP extends mu with every combination of triples matching patterns
// and appends the results to out.
func (e *evaluator) matchBGP(patterns []triplePattern, mu Solution, out []Solution) ([]Solution, error) {
	if len(patterns) == 0 {
		return append(out, mu), nil
	}
	if err := e.ctx.Err(); err != nil {
		return nil, err
	}

	i := mostBound(patterns, mu)
	tp := patterns[i]
	rest := make([]triplePattern, 0, len(patterns)-1)
	rest = append(rest, patterns[:i]...)
	rest = append(rest, patterns[i+1:]...)

	for _, t := range e.g.Match(resolve(tp.subj, mu), resolve(tp.pred, mu), resolve(tp.obj, mu)) {
		next, ok := extend(mu, tp, t)
		if !ok {
			continue
		}
		var err error
		if out, err = e.matchBGP(rest, next, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// mostBound picks the pattern with the most positions fixed under mu,
// preferring the earliest on ties.
func mostBound(patterns []triplePattern, mu Solution) int {
	best, bestScore := 0, -1
	for i, tp := range patterns {
		score := 0
		for _, n := range []node{tp.subj, tp.pred, tp.obj} {
			if resolve(n, mu) != nil {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func resolve(n node, mu Solution) rdf.Term {
	if !n.isVar() {
		return n.term
	}
	return mu[n.variable]
}

func extend(mu Solution, tp triplePattern, t rdf.Triple) (Solution, bool) {
	var ext Solution
	for _, pair := range [3]struct {
		n node
		t rdf.Term
	}{{tp.subj, t.Subj}, {tp.pred, t.Pred}, {tp.obj, t.Obj}} {
		if !pair.n.isVar() {
			continue
		}
		if ext == nil {
			ext = mu.clone()
		}
		if bound, ok := ext[pair.n.variable]; ok {
			if !graph.Equal(bound, pair.t) {
				return nil, false
			}
			continue
		}
		ext[pair.n.variable] = pair.t
	}
	if ext == nil {
		return mu, true
	}
	return ext, true
}

func sortSolutions(sols []Solution, order []orderCondition) {
	keys := make([][]rdf.Term, len(sols))
	for i, s := range sols {
		keys[i] = make([]rdf.Term, len(order))
		for j, c := range order {
			if v, err := c.expr.eval(s); err == nil {
				keys[i][j] = v
			}
		}
	}
	idx := make([]int, len(sols))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		for j, c := range order {
			cmp := orderTerms(keys[idx[a]][j], keys[idx[b]][j])
			if cmp == 0 {
				continue
			}
			if c.descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	sorted := make([]Solution, len(sols))
	for i, k := range idx {
		sorted[i] = sols[k]
	}
	copy(sols, sorted)
}

func termRank(t rdf.Term) int {
	if t == nil {
		return 0
	}
	switch t.Type() {
	case rdf.TermBlank:
		return 1
	case rdf.TermIRI:
		return 2
	default:
		return 3
	}
}

// orderTerms orders unbound < blank < IRI < literal. Literals compare
// numerically when both are numeric, otherwise by lexical form.
func orderTerms(a, b rdf.Term) int {
	ra, rb := termRank(a), termRank(b)
	if ra != rb {
		return ra - rb
	}
	if a == nil {
		return 0
	}
	if x, _, ok := numericValue(a); ok {
		if y, _, ok := numericValue(b); ok {
			return compareFloat(x, y)
		}
	}
	return strings.Compare(a.String(), b.String())
}

func distinct(sols []Solution, vars []string) []Solution {
	seen := make(map[string]struct{}, len(sols))
	out := sols[:0:0]
	var sb strings.Builder
	for _, s := range sols {
		sb.Reset()
		for _, v := range vars {
			sb.WriteString(graph.TermKey(s[v]))
			sb.WriteByte(0)
		}
		k := sb.String()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
