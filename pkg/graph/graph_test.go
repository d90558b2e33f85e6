package graph_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/knakk/rdf"
	"github.com/stretchr/testify/require"

	"github.com/xe-labs/ontoview/pkg/graph"
)

const ex = "http://example.org/#"

func loadTiny(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Load("testdata/tiny.nt")
	require.NoError(t, err)
	return g
}

func TestLoad_DeduplicatesStatements(t *testing.T) {
	g := loadTiny(t)
	require.Equal(t, 4, g.Len())
}

func TestMatch_Wildcards(t *testing.T) {
	g := loadTiny(t)

	typ := graph.MustIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")
	person := graph.MustIRI(ex + "Person")

	people := g.Match(nil, typ, person)
	require.Len(t, people, 2)
	require.Equal(t, ex+"alice", people[0].Subj.String())
	require.Equal(t, ex+"bob", people[1].Subj.String())

	all := g.Match(nil, nil, nil)
	require.Len(t, all, 4)

	require.Empty(t, g.Match(graph.MustIRI(ex+"carol"), nil, nil))
	require.True(t, g.Has(graph.MustIRI(ex+"bob"), graph.MustIRI(ex+"knows"), graph.MustIRI(ex+"alice")))
	require.False(t, g.Has(graph.MustIRI(ex+"alice"), graph.MustIRI(ex+"knows"), graph.MustIRI(ex+"bob")))
}

func TestMatch_LiteralObject(t *testing.T) {
	g := loadTiny(t)

	name := graph.MustIRI(ex + "name")
	got := g.Match(nil, name, graph.StringLiteral("Alice"))
	require.Len(t, got, 1)
	require.Equal(t, ex+"alice", got[0].Subj.String())

	require.Empty(t, g.Match(nil, name, graph.StringLiteral("alice")))
}

func TestParse_Turtle(t *testing.T) {
	src := `@prefix ex: <http://example.org/#> .
ex:alice ex:name "Alice" ;
         ex:knows ex:bob .
`
	g, err := graph.Parse(strings.NewReader(src), rdf.Turtle)
	require.NoError(t, err)
	require.Equal(t, 2, g.Len())
}

func TestParse_RDFXML(t *testing.T) {
	src := `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/#">
  <rdf:Description rdf:about="http://example.org/#alice">
    <ex:name>Alice</ex:name>
    <ex:knows rdf:resource="http://example.org/#bob"/>
  </rdf:Description>
</rdf:RDF>`
	g, err := graph.Parse(strings.NewReader(src), rdf.RDFXML)
	require.NoError(t, err)
	require.Equal(t, 2, g.Len())
	require.True(t, g.Has(graph.MustIRI(ex+"alice"), graph.MustIRI(ex+"knows"), graph.MustIRI(ex+"bob")))
}

func TestLoad_Errors(t *testing.T) {
	_, err := graph.Load("testdata/ontology.json")
	require.ErrorIs(t, err, graph.ErrUnsupportedFormat)

	_, err = graph.Load("testdata/missing.rdf")
	require.Error(t, err)
}

func TestLoad_SniffsFormatWithoutExtension(t *testing.T) {
	dir := t.TempDir()

	nt, err := os.ReadFile("testdata/tiny.nt")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "triples"), nt, 0o644))
	g, err := graph.Load(filepath.Join(dir, "triples"))
	require.NoError(t, err)
	require.Equal(t, loadTiny(t).Len(), g.Len())

	xml := `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/#">
  <rdf:Description rdf:about="http://example.org/#alice">
    <ex:name>Alice</ex:name>
  </rdf:Description>
</rdf:RDF>
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ontology"), []byte(xml), 0o644))
	g, err = graph.Load(filepath.Join(dir, "ontology"))
	require.NoError(t, err)
	require.Len(t, g.Match(graph.MustIRI(ex+"alice"), graph.MustIRI(ex+"name"), nil), 1)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "blob"), []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0}, 0o644))
	_, err = graph.Load(filepath.Join(dir, "blob"))
	require.ErrorIs(t, err, graph.ErrUnsupportedFormat)
}

func TestFragment(t *testing.T) {
	require.Equal(t, "Task_7", graph.Fragment(ex+"Task_7"))
	require.Equal(t, "c", graph.Fragment("http://a#b#c"))
	require.Equal(t, "", graph.Fragment("http://a#"))
	require.Equal(t, "plain", graph.Fragment("plain"))
}

func TestTermKey_DistinguishesKinds(t *testing.T) {
	iri := graph.MustIRI(ex + "x")
	lit := graph.StringLiteral(ex + "x")
	require.NotEqual(t, graph.TermKey(iri), graph.TermKey(lit))
	require.True(t, graph.Equal(iri, graph.MustIRI(ex+"x")))
	require.False(t, graph.Equal(iri, nil))
	require.True(t, graph.Equal(nil, nil))
}

func TestMatch_KeepsBlankAndIRISubjectsApart(t *testing.T) {
	blank, err := rdf.NewBlank("n1")
	require.NoError(t, err)
	iri := graph.MustIRI("n1")
	name := graph.MustIRI(ex + "name")

	g := graph.New([]rdf.Triple{
		{Subj: blank, Pred: name, Obj: graph.StringLiteral("anonymous")},
		{Subj: iri, Pred: name, Obj: graph.StringLiteral("named")},
	})
	require.Equal(t, 2, g.Len())

	got := g.Match(blank, nil, nil)
	require.Len(t, got, 1)
	require.Equal(t, rdf.TermBlank, got[0].Subj.Type())
	require.Equal(t, "anonymous", got[0].Obj.String())

	got = g.Match(iri, nil, nil)
	require.Len(t, got, 1)
	require.Equal(t, rdf.TermIRI, got[0].Subj.Type())
}
