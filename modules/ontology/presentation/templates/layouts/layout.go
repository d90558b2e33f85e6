package layouts

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/xe-labs/ontoview/modules/ontology/presentation/templates/components"
	"github.com/xe-labs/ontoview/pkg/composables"
	"github.com/xe-labs/ontoview/pkg/intl"
)

const styles = `body{font-family:system-ui,sans-serif;margin:0;color:#1f2933}
header{background:#243b53;color:#fff;padding:.75rem 1.5rem;display:flex;gap:1.5rem;align-items:center;flex-wrap:wrap}
header a{color:#d9e2ec;text-decoration:none}header a.active{color:#fff;font-weight:600}
main{padding:1.5rem;max-width:72rem}
.table{border-collapse:collapse;width:100%}.table th,.table td{border:1px solid #d9e2ec;padding:.4rem .6rem;text-align:left}
.table th{background:#f0f4f8}.empty{color:#627d98}
.tree li{margin:.2rem 0}.spotlight-item{list-style:none}
.langs{margin-left:auto}`

// Base wraps content in the page chrome: navigation, search and language
// switcher. It expects the page context set by WithPageContext.
func Base(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		pageCtx := composables.UsePageCtx(ctx)
		current := pageCtx.GetURL()
		locale, _ := pageCtx.GetLocale().Base()

		w := components.NewWriter(out)
		w.Raw(`<!DOCTYPE html><html lang="`, templ.EscapeString(locale.String()), `"><head><meta charset="utf-8">`)
		w.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.Raw("<title>").Text(title).Raw(" · ").Text(pageCtx.T("Common.AppName")).Raw("</title>")
		w.Raw("<style>", styles, "</style></head><body><header>")
		w.Raw(`<strong>`).Text(pageCtx.T("Common.AppName")).Raw("</strong><nav>")
		for _, item := range composables.UseNavItems(ctx) {
			class := ""
			if current != nil && isActive(current.Path, item.Href) {
				class = "active"
			}
			w.Raw(`<a class="`, components.Attr("nav-link", class), `" href="`, templ.EscapeString(item.Href), `">`).
				Text(item.Name).Raw("</a> ")
		}
		w.Raw("</nav>")
		w.Raw(`<form method="get" action="/spotlight/search"><input type="search" name="q" placeholder="`).
			Text(pageCtx.T("Common.SearchPlaceholder")).Raw(`" aria-label="`).Text(pageCtx.T("Common.Search")).Raw(`"></form>`)
		w.Raw(`<span class="langs">`)
		for _, lang := range intl.SupportedLanguages {
			w.Raw(`<a href="`, templ.EscapeString(withLang(current, lang.Code)), `">`).Text(lang.VerboseName).Raw("</a> ")
		}
		w.Raw("</span></header><main><h1>").Text(title).Raw("</h1>")
		w.Render(ctx, content)
		return w.Raw("</main></body></html>").Err()
	})
}

func isActive(path, href string) bool {
	if href == "/" {
		return path == "/"
	}
	return path == href || strings.HasPrefix(path, href+"/")
}

func withLang(u *url.URL, code string) string {
	if u == nil {
		return "?lang=" + code
	}
	q := u.Query()
	q.Set("lang", code)
	return u.Path + "?" + q.Encode()
}
