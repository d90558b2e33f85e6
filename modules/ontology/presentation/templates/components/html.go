// Package components holds the small HTML building blocks shared by the
// ontology pages.
package components

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Writer accumulates markup and remembers the first write error.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup as-is.
func (w *Writer) Raw(parts ...string) *Writer {
	for _, p := range parts {
		if w.err != nil {
			return w
		}
		_, w.err = io.WriteString(w.w, p)
	}
	return w
}

// Text writes s HTML-escaped.
func (w *Writer) Text(s string) *Writer {
	return w.Raw(templ.EscapeString(s))
}

// Render writes a nested component.
func (w *Writer) Render(ctx context.Context, c templ.Component) *Writer {
	if w.err == nil && c != nil {
		w.err = c.Render(ctx, w.w)
	}
	return w
}

func (w *Writer) Err() error {
	return w.err
}

// Cell is one table cell. A cell with Href renders as a link.
type Cell struct {
	Text string
	Href string
}

func Table(headers []string, rows [][]Cell, empty string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := NewWriter(out)
		if len(rows) == 0 {
			return w.Raw(`<p class="empty">`).Text(empty).Raw("</p>").Err()
		}
		w.Raw(`<table class="table"><thead><tr>`)
		for _, h := range headers {
			w.Raw("<th>").Text(h).Raw("</th>")
		}
		w.Raw("</tr></thead><tbody>")
		for _, row := range rows {
			w.Raw("<tr>")
			for _, c := range row {
				w.Raw("<td>")
				if c.Href != "" {
					w.Raw(`<a href="`, templ.EscapeString(c.Href), `">`).Text(c.Text).Raw("</a>")
				} else {
					w.Text(c.Text)
				}
				w.Raw("</td>")
			}
			w.Raw("</tr>")
		}
		return w.Raw("</tbody></table>").Err()
	})
}

// Attr joins class names, skipping empty ones.
func Attr(classes ...string) string {
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		if c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, " ")
}
