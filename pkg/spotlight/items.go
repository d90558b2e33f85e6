package spotlight

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/xe-labs/ontoview/pkg/intl"
)

// Item represents a renderable spotlight entry.
type Item interface {
	templ.Component
	Label() string
	Link() string
}

// NewItem creates a simple Item with a static label and link.
func NewItem(label, link string) Item {
	return &item{label: label, link: link}
}

type item struct {
	label string
	link  string
}

func (i *item) Label() string { return i.label }

func (i *item) Link() string { return i.link }

func (i *item) Render(ctx context.Context, w io.Writer) error {
	return linkItem(i.label, i.link).Render(ctx, w)
}

func linkItem(label, link string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<li class="spotlight-item"><a href="`+
			templ.EscapeString(link)+`">`+templ.EscapeString(label)+"</a></li>")
		return err
	})
}

func NewQuickLink(trKey, link string) *QuickLink {
	return &QuickLink{trKey: trKey, link: link}
}

// QuickLink is a navigation shortcut whose label is a translation key.
type QuickLink struct {
	trKey string
	link  string
	ctx   context.Context
}

func (i *QuickLink) Label() string {
	if i.ctx == nil {
		return i.trKey
	}
	return intl.T(i.ctx, i.trKey)
}

func (i *QuickLink) Link() string { return i.link }

func (i *QuickLink) Render(ctx context.Context, w io.Writer) error {
	return linkItem(intl.T(ctx, i.trKey), i.link).Render(ctx, w)
}

type QuickLinks struct {
	items []*QuickLink
}

func (ql *QuickLinks) Find(ctx context.Context, q string) []Item {
	if len(ql.items) == 0 {
		return nil
	}
	words := make([]string, len(ql.items))
	for i, it := range ql.items {
		words[i] = intl.T(ctx, it.trKey)
	}

	idx := Rank(q, words)
	result := make([]Item, 0, len(idx))
	for _, i := range idx {
		link := *ql.items[i]
		link.ctx = ctx
		result = append(result, &link)
	}
	return result
}

func (ql *QuickLinks) Add(links ...*QuickLink) {
	ql.items = append(ql.items, links...)
}
