package graph

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-faster/errors"
	"github.com/knakk/rdf"
)

var ErrUnsupportedFormat = errors.New("unsupported RDF format")

// FormatFromPath picks a decoder format from the file extension.
func FormatFromPath(path string) (rdf.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".rdf", ".owl", ".xml":
		return rdf.RDFXML, nil
	case ".ttl":
		return rdf.Turtle, nil
	case ".nt":
		return rdf.NTriples, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedFormat, "file %q", path)
	}
}

// SniffFormat guesses the format of an RDF document from its content. XML
// documents are read as RDF/XML and plain text as Turtle, which also covers
// N-Triples.
func SniffFormat(data []byte) (rdf.Format, error) {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		switch {
		case m.Is("text/xml"), m.Is("application/xml"):
			return rdf.RDFXML, nil
		case m.Is("text/plain"):
			return rdf.Turtle, nil
		}
	}
	return 0, ErrUnsupportedFormat
}

// Parse decodes every triple from r and returns the indexed graph.
func Parse(r io.Reader, format rdf.Format) (*Graph, error) {
	switch format {
	case rdf.RDFXML, rdf.Turtle, rdf.NTriples:
	default:
		return nil, ErrUnsupportedFormat
	}
	dec := rdf.NewTripleDecoder(r, format)
	var triples []rdf.Triple
	for {
		t, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "decode triple #%d", len(triples)+1)
		}
		triples = append(triples, t)
	}
	return New(triples), nil
}

// Load reads an RDF file from disk. The format is derived from its extension,
// or sniffed from the content when the file has none.
func Load(path string) (*Graph, error) {
	if filepath.Ext(path) == "" {
		return loadSniffed(path)
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open ontology file")
	}
	defer f.Close()

	g, err := Parse(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return g, nil
}

func loadSniffed(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "open ontology file")
	}
	format, err := SniffFormat(data)
	if err != nil {
		return nil, errors.Wrapf(err, "file %q", path)
	}
	g, err := Parse(bytes.NewReader(data), format)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return g, nil
}
