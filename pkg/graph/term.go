package graph

import (
	"strings"

	"github.com/knakk/rdf"
)

const xsdString = "http://www.w3.org/2001/XMLSchema#string"

// TermKey returns a canonical N-Triples-like key for a term. Two terms are the
// same RDF term if and only if their keys are equal.
func TermKey(t rdf.Term) string {
	if t == nil {
		return ""
	}
	switch t.Type() {
	case rdf.TermIRI:
		return "<" + t.String() + ">"
	case rdf.TermBlank:
		s := t.String()
		if strings.HasPrefix(s, "_:") {
			return s
		}
		return "_:" + s
	case rdf.TermLiteral:
		lit, ok := t.(rdf.Literal)
		if !ok {
			return `"` + t.String() + `"`
		}
		if lang := lit.Lang(); lang != "" {
			return `"` + lit.String() + `"@` + strings.ToLower(lang)
		}
		dt := lit.DataType.String()
		if dt == "" {
			dt = xsdString
		}
		return `"` + lit.String() + `"^^<` + dt + ">"
	default:
		return t.String()
	}
}

// Equal reports whether two terms denote the same RDF term.
func Equal(a, b rdf.Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return TermKey(a) == TermKey(b)
}

// Fragment returns the substring after the last '#' of an IRI, or the whole
// string when it has no '#'.
func Fragment(iri string) string {
	if i := strings.LastIndexByte(iri, '#'); i >= 0 {
		return iri[i+1:]
	}
	return iri
}

// MustIRI builds an IRI term and panics on an invalid input. Intended for
// vocabulary constants.
func MustIRI(s string) rdf.IRI {
	iri, err := rdf.NewIRI(s)
	if err != nil {
		panic(err)
	}
	return iri
}

// StringLiteral builds an xsd:string literal.
func StringLiteral(s string) rdf.Literal {
	lit, err := rdf.NewLiteral(s)
	if err != nil {
		// NewLiteral only fails for unsupported Go types.
		panic(err)
	}
	return lit
}
