package sparql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/knakk/rdf"

	"github.com/xe-labs/ontoview/pkg/graph"
)

// defaultPrefixes are available to every query without a PREFIX declaration.
var defaultPrefixes = map[string]string{
	"rdf":  "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
	"rdfs": "http://www.w3.org/2000/01/rdf-schema#",
	"xsd":  xsdNS,
	"owl":  "http://www.w3.org/2002/07/owl#",
}

type parser struct {
	toks     []token
	pos      int
	base     string
	prefixes map[string]string
	seen     map[string]bool
	visible  []string
}

// Parse parses a SPARQL SELECT query. Malformed input yields a *SyntaxError;
// well-formed SPARQL outside the supported subset yields an error wrapping
// ErrUnsupported.
func Parse(src string) (*Query, error) {
	toks, err := newLexer(src).tokens()
	if err != nil {
		return nil, err
	}
	p := &parser{
		toks:     toks,
		prefixes: make(map[string]string, len(defaultPrefixes)),
		seen:     map[string]bool{},
	}
	for k, v := range defaultPrefixes {
		p.prefixes[k] = v
	}
	return p.parseQuery()
}

// MustParse is like Parse but panics on error. Intended for queries compiled
// into the binary.
func MustParse(src string) *Query {
	q, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return q
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) peekAt(offset int) token {
	if p.pos+offset >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+offset]
}

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &SyntaxError{Line: t.line, Col: t.col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) unsupported(t token) error {
	return errors.Wrapf(ErrUnsupported, "%s at %d:%d", strings.ToUpper(t.text), t.line, t.col)
}

func isKeyword(t token, kw string) bool {
	return t.kind == tokIdent && strings.EqualFold(t.text, kw)
}

func isPunct(t token, s string) bool {
	return t.kind == tokPunct && t.text == s
}

func (p *parser) expectPunct(s string) error {
	t := p.advance()
	if !isPunct(t, s) {
		return p.errorf(t, "expected %q, found %s %q", s, t.kind, t.text)
	}
	return nil
}

func (p *parser) expectKeyword(kw string) error {
	t := p.advance()
	if !isKeyword(t, kw) {
		return p.errorf(t, "expected %s, found %s %q", kw, t.kind, t.text)
	}
	return nil
}

func (p *parser) noteVar(name string) {
	if !p.seen[name] {
		p.seen[name] = true
		p.visible = append(p.visible, name)
	}
}

func (p *parser) parseQuery() (*Query, error) {
	if err := p.parsePrologue(); err != nil {
		return nil, err
	}
	t := p.peek()
	if isKeyword(t, "CONSTRUCT") || isKeyword(t, "ASK") || isKeyword(t, "DESCRIBE") {
		return nil, p.unsupported(t)
	}
	if err := p.expectKeyword("SELECT"); err != nil {
		return nil, err
	}

	q := &Query{prefixes: p.prefixes, limit: -1}
	switch t := p.peek(); {
	case isKeyword(t, "DISTINCT"):
		p.advance()
		q.distinct = true
	case isKeyword(t, "REDUCED"):
		p.advance()
	}

	if isPunct(p.peek(), "*") {
		p.advance()
	} else {
		q.project = []string{}
		for p.peek().kind == tokVar {
			q.project = append(q.project, p.advance().text)
		}
		if len(q.project) == 0 {
			if isPunct(p.peek(), "(") {
				return nil, p.unsupported(p.peek())
			}
			return nil, p.errorf(p.peek(), "SELECT needs '*' or at least one variable")
		}
	}

	if isKeyword(p.peek(), "FROM") {
		return nil, p.unsupported(p.peek())
	}
	if isKeyword(p.peek(), "WHERE") {
		p.advance()
	}
	where, _, err := p.parseGroup()
	if err != nil {
		return nil, err
	}
	q.where = where

	if err := p.parseModifiers(q); err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t, "unexpected %s %q after query", t.kind, t.text)
	}
	q.visible = p.visible
	return q, nil
}

func (p *parser) parsePrologue() error {
	for {
		t := p.peek()
		switch {
		case isKeyword(t, "PREFIX"):
			p.advance()
			name := p.advance()
			if name.kind != tokPName || !strings.HasSuffix(name.text, ":") || strings.Count(name.text, ":") != 1 {
				return p.errorf(name, "expected prefix name ending in ':', found %q", name.text)
			}
			iri := p.advance()
			if iri.kind != tokIRI {
				return p.errorf(iri, "expected IRI for prefix %s", name.text)
			}
			p.prefixes[strings.TrimSuffix(name.text, ":")] = p.resolve(iri.text)
		case isKeyword(t, "BASE"):
			p.advance()
			iri := p.advance()
			if iri.kind != tokIRI {
				return p.errorf(iri, "expected IRI after BASE")
			}
			p.base = iri.text
		default:
			return nil
		}
	}
}

func (p *parser) resolve(iri string) string {
	if p.base == "" || strings.Contains(iri, ":") {
		return iri
	}
	return p.base + iri
}

func (p *parser) parseModifiers(q *Query) error {
	if isKeyword(p.peek(), "GROUP") || isKeyword(p.peek(), "HAVING") {
		return p.unsupported(p.peek())
	}
	if isKeyword(p.peek(), "ORDER") {
		p.advance()
		if err := p.expectKeyword("BY"); err != nil {
			return err
		}
		for {
			t := p.peek()
			var cond orderCondition
			switch {
			case isKeyword(t, "ASC") || isKeyword(t, "DESC"):
				p.advance()
				if err := p.expectPunct("("); err != nil {
					return err
				}
				e, err := p.parseExpr()
				if err != nil {
					return err
				}
				if err := p.expectPunct(")"); err != nil {
					return err
				}
				cond = orderCondition{expr: e, descending: isKeyword(t, "DESC")}
			case t.kind == tokVar:
				p.advance()
				cond = orderCondition{expr: &varExpr{name: t.text}}
			case isPunct(t, "("):
				e, err := p.parsePrimary()
				if err != nil {
					return err
				}
				cond = orderCondition{expr: e}
			case t.kind == tokIdent && isPunct(p.peekAt(1), "("):
				e, err := p.parsePrimary()
				if err != nil {
					return err
				}
				cond = orderCondition{expr: e}
			}
			if cond.expr == nil {
				break
			}
			q.order = append(q.order, cond)
		}
		if len(q.order) == 0 {
			return p.errorf(p.peek(), "ORDER BY needs at least one condition")
		}
	}
	for {
		t := p.peek()
		if !isKeyword(t, "LIMIT") && !isKeyword(t, "OFFSET") {
			return nil
		}
		p.advance()
		n := p.advance()
		if n.kind != tokNumber || strings.Contains(n.text, ".") {
			return p.errorf(n, "%s needs a non-negative integer", strings.ToUpper(t.text))
		}
		v, err := strconv.Atoi(n.text)
		if err != nil {
			return p.errorf(n, "invalid %s %q", strings.ToUpper(t.text), n.text)
		}
		if isKeyword(t, "LIMIT") {
			q.limit = v
		} else {
			q.offset = v
		}
	}
}

// parseGroup parses a { ... } group graph pattern and returns it together
// with the variables it binds.
func (p *parser) parseGroup() (*group, map[string]bool, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, nil, err
	}
	g := &group{}
	scope := map[string]bool{}
	addScope := func(vars map[string]bool) {
		for v := range vars {
			scope[v] = true
		}
	}

	for {
		t := p.peek()
		switch {
		case t.kind == tokEOF:
			return nil, nil, p.errorf(t, "unterminated group, expected '}'")
		case isPunct(t, "}"):
			p.advance()
			return g, scope, nil
		case isPunct(t, "."):
			p.advance()
		case isKeyword(t, "OPTIONAL"):
			p.advance()
			sub, vars, err := p.parseGroup()
			if err != nil {
				return nil, nil, err
			}
			g.elements = append(g.elements, &optionalElement{group: sub})
			addScope(vars)
		case isKeyword(t, "BIND"):
			p.advance()
			if err := p.expectPunct("("); err != nil {
				return nil, nil, err
			}
			e, err := p.parseExpr()
			if err != nil {
				return nil, nil, err
			}
			if err := p.expectKeyword("AS"); err != nil {
				return nil, nil, err
			}
			v := p.advance()
			if v.kind != tokVar {
				return nil, nil, p.errorf(v, "expected variable after AS")
			}
			if scope[v.text] {
				return nil, nil, p.errorf(v, "BIND target ?%s is already in scope", v.text)
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, nil, err
			}
			scope[v.text] = true
			p.noteVar(v.text)
			g.elements = append(g.elements, &bindElement{expr: e, variable: v.text})
		case isKeyword(t, "FILTER"):
			p.advance()
			var (
				e   expr
				err error
			)
			if isPunct(p.peek(), "(") {
				p.advance()
				if e, err = p.parseExpr(); err == nil {
					err = p.expectPunct(")")
				}
			} else {
				e, err = p.parsePrimary()
			}
			if err != nil {
				return nil, nil, err
			}
			g.filters = append(g.filters, e)
		case isPunct(t, "{"):
			first, vars, err := p.parseGroup()
			if err != nil {
				return nil, nil, err
			}
			addScope(vars)
			u := &unionElement{branches: []*group{first}}
			for isKeyword(p.peek(), "UNION") {
				p.advance()
				next, vars, err := p.parseGroup()
				if err != nil {
					return nil, nil, err
				}
				addScope(vars)
				u.branches = append(u.branches, next)
			}
			g.elements = append(g.elements, u)
		case isKeyword(t, "MINUS"), isKeyword(t, "VALUES"), isKeyword(t, "GRAPH"),
			isKeyword(t, "SERVICE"), isKeyword(t, "SELECT"):
			return nil, nil, p.unsupported(t)
		default:
			var block *triplesBlock
			if n := len(g.elements); n > 0 {
				block, _ = g.elements[n-1].(*triplesBlock)
			}
			if block == nil {
				block = &triplesBlock{}
				g.elements = append(g.elements, block)
			}
			if err := p.parseTriples(block, scope); err != nil {
				return nil, nil, err
			}
		}
	}
}

// parseTriples reads one subject with its predicate-object list.
func (p *parser) parseTriples(block *triplesBlock, scope map[string]bool) error {
	subj, err := p.parseNode(false)
	if err != nil {
		return err
	}
	for {
		var pred node
		if t := p.peek(); t.kind == tokIdent && t.text == "a" {
			p.advance()
			pred = node{term: rdfType}
		} else if pred, err = p.parseNode(false); err != nil {
			return err
		}
		for {
			obj, err := p.parseNode(true)
			if err != nil {
				return err
			}
			tp := triplePattern{subj: subj, pred: pred, obj: obj}
			for _, n := range []node{subj, pred, obj} {
				if n.isVar() {
					scope[n.variable] = true
					p.noteVar(n.variable)
				}
			}
			block.patterns = append(block.patterns, tp)
			if !isPunct(p.peek(), ",") {
				break
			}
			p.advance()
		}
		if !isPunct(p.peek(), ";") {
			return nil
		}
		for isPunct(p.peek(), ";") {
			p.advance()
		}
		if t := p.peek(); isPunct(t, ".") || isPunct(t, "}") {
			return nil
		}
	}
}

func (p *parser) parseNode(allowLiteral bool) (node, error) {
	t := p.peek()
	switch t.kind {
	case tokVar:
		p.advance()
		return node{variable: t.text}, nil
	case tokIRI, tokPName:
		term, err := p.parseIRI()
		if err != nil {
			return node{}, err
		}
		return node{term: term}, nil
	case tokString, tokNumber, tokIdent:
		if t.kind == tokIdent && !isKeyword(t, "true") && !isKeyword(t, "false") {
			break
		}
		if !allowLiteral {
			return node{}, p.errorf(t, "literal %q not allowed here", t.text)
		}
		term, err := p.parseLiteral()
		if err != nil {
			return node{}, err
		}
		return node{term: term}, nil
	}
	if isPunct(t, "[") || isPunct(t, "(") {
		return node{}, p.unsupported(t)
	}
	return node{}, p.errorf(t, "expected term, found %s %q", t.kind, t.text)
}

func (p *parser) parseIRI() (rdf.IRI, error) {
	t := p.advance()
	var s string
	switch t.kind {
	case tokIRI:
		s = p.resolve(t.text)
	case tokPName:
		i := strings.IndexByte(t.text, ':')
		ns, ok := p.prefixes[t.text[:i]]
		if !ok {
			return rdf.IRI{}, p.errorf(t, "undeclared prefix %q", t.text[:i])
		}
		s = ns + t.text[i+1:]
	default:
		return rdf.IRI{}, p.errorf(t, "expected IRI, found %s %q", t.kind, t.text)
	}
	iri, err := rdf.NewIRI(s)
	if err != nil {
		return rdf.IRI{}, p.errorf(t, "invalid IRI %q", s)
	}
	return iri, nil
}

func (p *parser) parseLiteral() (rdf.Term, error) {
	t := p.advance()
	switch t.kind {
	case tokNumber:
		if strings.Contains(t.text, ".") {
			return rdf.NewTypedLiteral(t.text, xsdDecimal), nil
		}
		return rdf.NewTypedLiteral(t.text, xsdInteger), nil
	case tokIdent:
		return boolTerm(strings.EqualFold(t.text, "true")), nil
	}
	switch next := p.peek(); {
	case next.kind == tokLang:
		p.advance()
		lit, err := rdf.NewLangLiteral(t.text, next.text)
		if err != nil {
			return nil, p.errorf(next, "invalid language tag %q", next.text)
		}
		return lit, nil
	case isPunct(next, "^^"):
		p.advance()
		dt, err := p.parseIRI()
		if err != nil {
			return nil, err
		}
		return rdf.NewTypedLiteral(t.text, dt), nil
	}
	return graph.StringLiteral(t.text), nil
}

func (p *parser) parseExpr() (expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for isPunct(p.peek(), "||") {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &logicalExpr{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (expr, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for isPunct(p.peek(), "&&") {
		p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &logicalExpr{and: true, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseRelational() (expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	if t.kind == tokPunct {
		switch t.text {
		case "=", "!=", "<", ">", "<=", ">=":
			p.advance()
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			return &compareExpr{op: t.text, left: left, right: right}, nil
		}
	}
	if isKeyword(t, "IN") || isKeyword(t, "NOT") {
		return nil, p.unsupported(t)
	}
	return left, nil
}

func (p *parser) parseAdditive() (expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if !isPunct(t, "+") && !isPunct(t, "-") {
			return left, nil
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &arithExpr{op: t.text, left: left, right: right}
	}
}

func (p *parser) parseMultiplicative() (expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if !isPunct(t, "*") && !isPunct(t, "/") {
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &arithExpr{op: t.text, left: left, right: right}
	}
}

func (p *parser) parseUnary() (expr, error) {
	switch t := p.peek(); {
	case isPunct(t, "!"):
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &notExpr{x: x}, nil
	case isPunct(t, "-"):
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &negExpr{x: x}, nil
	case isPunct(t, "+"):
		p.advance()
		return p.parseUnary()
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (expr, error) {
	t := p.peek()
	switch {
	case isPunct(t, "("):
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return e, nil
	case t.kind == tokVar:
		p.advance()
		return &varExpr{name: t.text}, nil
	case t.kind == tokIRI || t.kind == tokPName:
		iri, err := p.parseIRI()
		if err != nil {
			return nil, err
		}
		if isPunct(p.peek(), "(") {
			return nil, p.unsupported(t)
		}
		return &constExpr{term: iri}, nil
	case t.kind == tokString || t.kind == tokNumber || isKeyword(t, "true") || isKeyword(t, "false"):
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return &constExpr{term: lit}, nil
	case t.kind == tokIdent && isPunct(p.peekAt(1), "("):
		return p.parseCall()
	}
	return nil, p.errorf(t, "expected expression, found %s %q", t.kind, t.text)
}

func (p *parser) parseCall() (expr, error) {
	t := p.advance()
	name := strings.ToUpper(t.text)
	arity, ok := builtins[name]
	if !ok {
		return nil, p.unsupported(t)
	}
	p.advance() // (

	if name == "BOUND" {
		v := p.advance()
		if v.kind != tokVar {
			return nil, p.errorf(v, "BOUND needs a variable")
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return &boundExpr{name: v.text}, nil
	}

	var args []expr
	if !isPunct(p.peek(), ")") {
		for {
			a, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if !isPunct(p.peek(), ",") {
				break
			}
			p.advance()
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	if len(args) < arity.min || (arity.max >= 0 && len(args) > arity.max) {
		return nil, p.errorf(t, "%s called with %d arguments", name, len(args))
	}
	return &callExpr{name: name, args: args}, nil
}
