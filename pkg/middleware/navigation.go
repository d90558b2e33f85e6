package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/xe-labs/ontoview/pkg/composables"
	"github.com/xe-labs/ontoview/pkg/intl"
	"github.com/xe-labs/ontoview/pkg/types"
)

type NavProvider interface {
	NavItems(localizer *i18n.Localizer) []types.NavigationItem
}

func getEnabledNavItems(items []types.NavigationItem) []types.NavigationItem {
	var out []types.NavigationItem
	for _, item := range items {
		if len(item.Children) > 0 {
			children := getEnabledNavItems(item.Children)
			switch len(children) {
			case 0:
				continue
			case 1:
				out = append(out, children[0])
			default:
				item.Children = children
				out = append(out, item)
			}
		} else {
			out = append(out, item)
		}
	}
	return out
}

// NavItems stores the translated navigation in the request context.
// It must run after ProvideLocalizer.
func NavItems(app NavProvider) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				localizer, _ := intl.UseLocalizer(r.Context())
				items := getEnabledNavItems(app.NavItems(localizer))
				next.ServeHTTP(w, r.WithContext(composables.WithNavItems(r.Context(), items)))
			},
		)
	}
}
