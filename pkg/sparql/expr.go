package sparql

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/knakk/rdf"

	"github.com/xe-labs/ontoview/pkg/graph"
)

const xsdNS = "http://www.w3.org/2001/XMLSchema#"

var (
	xsdString  = graph.MustIRI(xsdNS + "string")
	xsdBoolean = graph.MustIRI(xsdNS + "boolean")
	xsdInteger = graph.MustIRI(xsdNS + "integer")
	xsdDecimal = graph.MustIRI(xsdNS + "decimal")
	rdfType    = graph.MustIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")
)

var numericTypes = map[string]bool{
	xsdNS + "integer":            true,
	xsdNS + "decimal":            true,
	xsdNS + "double":             true,
	xsdNS + "float":              true,
	xsdNS + "int":                true,
	xsdNS + "long":               true,
	xsdNS + "short":              true,
	xsdNS + "byte":               true,
	xsdNS + "nonNegativeInteger": true,
	xsdNS + "positiveInteger":    true,
	xsdNS + "negativeInteger":    true,
	xsdNS + "nonPositiveInteger": true,
	xsdNS + "unsignedInt":        true,
	xsdNS + "unsignedLong":       true,
}

type expr interface {
	eval(sol Solution) (rdf.Term, error)
}

type varExpr struct {
	name string
}

func (e *varExpr) eval(sol Solution) (rdf.Term, error) {
	if t, ok := sol[e.name]; ok {
		return t, nil
	}
	return nil, errUnbound
}

type constExpr struct {
	term rdf.Term
}

func (e *constExpr) eval(Solution) (rdf.Term, error) {
	return e.term, nil
}

type notExpr struct {
	x expr
}

func (e *notExpr) eval(sol Solution) (rdf.Term, error) {
	v, err := e.x.eval(sol)
	if err != nil {
		return nil, err
	}
	b, err := effectiveBool(v)
	if err != nil {
		return nil, err
	}
	return boolTerm(!b), nil
}

type negExpr struct {
	x expr
}

func (e *negExpr) eval(sol Solution) (rdf.Term, error) {
	v, err := e.x.eval(sol)
	if err != nil {
		return nil, err
	}
	n, integer, ok := numericValue(v)
	if !ok {
		return nil, errTypeMismatch
	}
	return numberTerm(-n, integer), nil
}

// logicalExpr implements the SPARQL three-valued && and ||: an error on one
// side is masked when the other side alone decides the result.
type logicalExpr struct {
	and         bool
	left, right expr
}

func (e *logicalExpr) eval(sol Solution) (rdf.Term, error) {
	l, lerr := evalBool(e.left, sol)
	r, rerr := evalBool(e.right, sol)
	if e.and {
		switch {
		case lerr == nil && rerr == nil:
			return boolTerm(l && r), nil
		case lerr == nil && !l, rerr == nil && !r:
			return boolTerm(false), nil
		}
	} else {
		switch {
		case lerr == nil && rerr == nil:
			return boolTerm(l || r), nil
		case lerr == nil && l, rerr == nil && r:
			return boolTerm(true), nil
		}
	}
	if lerr != nil {
		return nil, lerr
	}
	return nil, rerr
}

type compareExpr struct {
	op          string
	left, right expr
}

func (e *compareExpr) eval(sol Solution) (rdf.Term, error) {
	l, err := e.left.eval(sol)
	if err != nil {
		return nil, err
	}
	r, err := e.right.eval(sol)
	if err != nil {
		return nil, err
	}
	switch e.op {
	case "=":
		eq, err := termsEqual(l, r)
		if err != nil {
			return nil, err
		}
		return boolTerm(eq), nil
	case "!=":
		eq, err := termsEqual(l, r)
		if err != nil {
			return nil, err
		}
		return boolTerm(!eq), nil
	}
	c, err := compareValues(l, r)
	if err != nil {
		return nil, err
	}
	switch e.op {
	case "<":
		return boolTerm(c < 0), nil
	case "<=":
		return boolTerm(c <= 0), nil
	case ">":
		return boolTerm(c > 0), nil
	default:
		return boolTerm(c >= 0), nil
	}
}

type arithExpr struct {
	op          string
	left, right expr
}

func (e *arithExpr) eval(sol Solution) (rdf.Term, error) {
	l, err := e.left.eval(sol)
	if err != nil {
		return nil, err
	}
	r, err := e.right.eval(sol)
	if err != nil {
		return nil, err
	}
	a, aInt, ok := numericValue(l)
	if !ok {
		return nil, errTypeMismatch
	}
	b, bInt, ok := numericValue(r)
	if !ok {
		return nil, errTypeMismatch
	}
	integer := aInt && bInt
	switch e.op {
	case "+":
		return numberTerm(a+b, integer), nil
	case "-":
		return numberTerm(a-b, integer), nil
	case "*":
		return numberTerm(a*b, integer), nil
	default:
		if b == 0 {
			return nil, errTypeMismatch
		}
		return numberTerm(a/b, false), nil
	}
}

type boundExpr struct {
	name string
}

func (e *boundExpr) eval(sol Solution) (rdf.Term, error) {
	_, ok := sol[e.name]
	return boolTerm(ok), nil
}

type callExpr struct {
	name string
	args []expr
}

// builtins lists supported functions with their arity; max < 0 means variadic.
var builtins = map[string]struct{ min, max int }{
	"STR":       {1, 1},
	"LANG":      {1, 1},
	"STRAFTER":  {2, 2},
	"STRBEFORE": {2, 2},
	"COALESCE":  {0, -1},
	"CONCAT":    {0, -1},
	"LCASE":     {1, 1},
	"UCASE":     {1, 1},
	"STRLEN":    {1, 1},
	"CONTAINS":  {2, 2},
	"STRSTARTS": {2, 2},
	"STRENDS":   {2, 2},
	"IF":        {3, 3},
	"ISIRI":     {1, 1},
	"ISURI":     {1, 1},
	"ISLITERAL": {1, 1},
	"ISBLANK":   {1, 1},
	"BOUND":     {1, 1},
}

func (e *callExpr) eval(sol Solution) (rdf.Term, error) {
	switch e.name {
	case "COALESCE":
		for _, a := range e.args {
			if v, err := a.eval(sol); err == nil && v != nil {
				return v, nil
			}
		}
		return nil, errUnbound
	case "IF":
		c, err := evalBool(e.args[0], sol)
		if err != nil {
			return nil, err
		}
		if c {
			return e.args[1].eval(sol)
		}
		return e.args[2].eval(sol)
	}

	args := make([]rdf.Term, len(e.args))
	for i, a := range e.args {
		v, err := a.eval(sol)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch e.name {
	case "STR":
		if args[0].Type() == rdf.TermBlank {
			return nil, errTypeMismatch
		}
		return graph.StringLiteral(args[0].String()), nil
	case "LANG":
		lit, ok := args[0].(rdf.Literal)
		if !ok {
			return nil, errTypeMismatch
		}
		return graph.StringLiteral(lit.Lang()), nil
	case "STRAFTER", "STRBEFORE":
		s, lang, err := stringArg(args[0])
		if err != nil {
			return nil, err
		}
		sep, _, err := stringArg(args[1])
		if err != nil {
			return nil, err
		}
		i := strings.Index(s, sep)
		if i < 0 {
			return graph.StringLiteral(""), nil
		}
		if e.name == "STRAFTER" {
			return stringTerm(s[i+len(sep):], lang), nil
		}
		return stringTerm(s[:i], lang), nil
	case "CONCAT":
		var sb strings.Builder
		for _, a := range args {
			s, _, err := stringArg(a)
			if err != nil {
				return nil, err
			}
			sb.WriteString(s)
		}
		return graph.StringLiteral(sb.String()), nil
	case "LCASE", "UCASE":
		s, lang, err := stringArg(args[0])
		if err != nil {
			return nil, err
		}
		if e.name == "LCASE" {
			return stringTerm(strings.ToLower(s), lang), nil
		}
		return stringTerm(strings.ToUpper(s), lang), nil
	case "STRLEN":
		s, _, err := stringArg(args[0])
		if err != nil {
			return nil, err
		}
		return numberTerm(float64(utf8.RuneCountInString(s)), true), nil
	case "CONTAINS", "STRSTARTS", "STRENDS":
		s, _, err := stringArg(args[0])
		if err != nil {
			return nil, err
		}
		sub, _, err := stringArg(args[1])
		if err != nil {
			return nil, err
		}
		switch e.name {
		case "CONTAINS":
			return boolTerm(strings.Contains(s, sub)), nil
		case "STRSTARTS":
			return boolTerm(strings.HasPrefix(s, sub)), nil
		default:
			return boolTerm(strings.HasSuffix(s, sub)), nil
		}
	case "ISIRI", "ISURI":
		return boolTerm(args[0].Type() == rdf.TermIRI), nil
	case "ISLITERAL":
		return boolTerm(args[0].Type() == rdf.TermLiteral), nil
	case "ISBLANK":
		return boolTerm(args[0].Type() == rdf.TermBlank), nil
	}
	return nil, ErrUnsupported
}

func evalBool(e expr, sol Solution) (bool, error) {
	v, err := e.eval(sol)
	if err != nil {
		return false, err
	}
	return effectiveBool(v)
}

// effectiveBool computes the SPARQL effective boolean value of a term.
func effectiveBool(t rdf.Term) (bool, error) {
	lit, ok := t.(rdf.Literal)
	if !ok {
		return false, errTypeMismatch
	}
	dt := datatypeOf(lit)
	switch {
	case dt == xsdBoolean.String():
		return lit.String() == "true" || lit.String() == "1", nil
	case numericTypes[dt]:
		n, err := strconv.ParseFloat(lit.String(), 64)
		if err != nil {
			return false, nil
		}
		return n != 0, nil
	default:
		return lit.String() != "", nil
	}
}

func datatypeOf(lit rdf.Literal) string {
	if lit.Lang() != "" {
		return "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
	}
	if dt := lit.DataType.String(); dt != "" {
		return dt
	}
	return xsdString.String()
}

func numericValue(t rdf.Term) (float64, bool, bool) {
	lit, ok := t.(rdf.Literal)
	if !ok {
		return 0, false, false
	}
	dt := datatypeOf(lit)
	if !numericTypes[dt] {
		return 0, false, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(lit.String()), 64)
	if err != nil {
		return 0, false, false
	}
	integer := dt != xsdNS+"decimal" && dt != xsdNS+"double" && dt != xsdNS+"float"
	return n, integer, true
}

func stringArg(t rdf.Term) (string, string, error) {
	lit, ok := t.(rdf.Literal)
	if !ok {
		return "", "", errTypeMismatch
	}
	return lit.String(), lit.Lang(), nil
}

func stringTerm(s, lang string) rdf.Term {
	if lang != "" && s != "" {
		if lit, err := rdf.NewLangLiteral(s, lang); err == nil {
			return lit
		}
	}
	return graph.StringLiteral(s)
}

func boolTerm(b bool) rdf.Term {
	return rdf.NewTypedLiteral(strconv.FormatBool(b), xsdBoolean)
}

func numberTerm(n float64, integer bool) rdf.Term {
	if integer {
		return rdf.NewTypedLiteral(strconv.FormatInt(int64(n), 10), xsdInteger)
	}
	return rdf.NewTypedLiteral(strconv.FormatFloat(n, 'f', -1, 64), xsdDecimal)
}

func termsEqual(a, b rdf.Term) (bool, error) {
	if x, _, ok := numericValue(a); ok {
		if y, _, ok := numericValue(b); ok {
			return x == y, nil
		}
	}
	return graph.Equal(a, b), nil
}

// compareValues orders two literals: numerically when both are numeric,
// otherwise by lexical form. IRIs and blank nodes are not comparable with
// relational operators.
func compareValues(a, b rdf.Term) (int, error) {
	if x, _, ok := numericValue(a); ok {
		if y, _, ok := numericValue(b); ok {
			return compareFloat(x, y), nil
		}
	}
	la, ok := a.(rdf.Literal)
	if !ok {
		return 0, errTypeMismatch
	}
	lb, ok := b.(rdf.Literal)
	if !ok {
		return 0, errTypeMismatch
	}
	return strings.Compare(la.String(), lb.String()), nil
}

func compareFloat(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}
