package itf

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/xe-labs/ontoview/pkg/application"
	"github.com/xe-labs/ontoview/pkg/composables"
	"github.com/xe-labs/ontoview/pkg/graph"
)

func DefaultParams() *composables.Params {
	return &composables.Params{
		IP:        "127.0.0.1",
		UserAgent: "itf",
		Request:   nil,
		Writer:    nil,
	}
}

// SetupApplication builds an application over g and registers mods on it.
func SetupApplication(g *graph.Graph, mods ...application.Module) (application.Application, error) {
	app := application.New(&application.ApplicationOptions{
		Graph:  g,
		Bundle: application.LoadBundle(),
	})
	for _, m := range mods {
		if err := m.Register(app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// RequestOption customizes a test request
type RequestOption func(r *http.Request)

func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

func AcceptJSON() RequestOption {
	return WithHeader("Accept", "application/json")
}

func HxRequest() RequestOption {
	return WithHeader("Hx-Request", "true")
}

// Request sends a request through the environment router
func (te *TestEnvironment) Request(tb testing.TB, method, target string, body io.Reader, opts ...RequestOption) *Response {
	tb.Helper()
	r := httptest.NewRequest(method, target, body)
	for _, opt := range opts {
		opt(r)
	}
	w := httptest.NewRecorder()
	te.Server.Router().ServeHTTP(w, r)
	return &Response{ResponseRecorder: w, tb: tb}
}

func (te *TestEnvironment) GET(tb testing.TB, target string, opts ...RequestOption) *Response {
	tb.Helper()
	return te.Request(tb, http.MethodGet, target, nil, opts...)
}

func (te *TestEnvironment) POST(tb testing.TB, target string, form string, opts ...RequestOption) *Response {
	tb.Helper()
	opts = append([]RequestOption{WithHeader("Content-Type", "application/x-www-form-urlencoded")}, opts...)
	return te.Request(tb, http.MethodPost, target, strings.NewReader(form), opts...)
}

// Response wraps the recorded response with assertion helpers
type Response struct {
	*httptest.ResponseRecorder
	tb testing.TB
}

// Document parses the body as HTML
func (r *Response) Document() *goquery.Document {
	r.tb.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(r.Body.String()))
	if err != nil {
		r.tb.Fatalf("parse html: %v", err)
	}
	return doc
}

// DecodeJSON unmarshals the body into v
func (r *Response) DecodeJSON(v any) {
	r.tb.Helper()
	if err := json.Unmarshal(r.Body.Bytes(), v); err != nil {
		r.tb.Fatalf("decode json: %v\nbody: %s", err, r.Body.String())
	}
}

// TableRows returns the trimmed cell texts of every body row of the first table
func (r *Response) TableRows() [][]string {
	r.tb.Helper()
	var out [][]string
	r.Document().Find("table").First().Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			row = append(row, strings.TrimSpace(td.Text()))
		})
		out = append(out, row)
	})
	return out
}
