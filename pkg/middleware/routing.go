package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/xe-labs/ontoview/pkg/composables"
	"github.com/xe-labs/ontoview/pkg/routing"
)

// ClassifyRoute stores the route class of the request path in the context.
func ClassifyRoute(classifier *routing.Classifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			class := classifier.ClassifyPath(r.URL.Path)
			next.ServeHTTP(w, r.WithContext(composables.WithRouteClass(r.Context(), class)))
		})
	}
}

// SkipOps is a RateLimitConfig.Skip that exempts ops routes such as health checks.
func SkipOps(r *http.Request) bool {
	return composables.UseRouteClass(r.Context()) == routing.RouteClassOps
}
