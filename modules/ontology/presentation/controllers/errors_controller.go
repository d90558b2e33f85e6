package controllers

import (
	"net/http"

	"github.com/xe-labs/ontoview/pkg/application"
	"github.com/xe-labs/ontoview/pkg/httpapi"
	"github.com/xe-labs/ontoview/pkg/intl"
	"github.com/xe-labs/ontoview/pkg/middleware"
)

func NotFound(app application.Application) http.Handler {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		msg := intl.T(r.Context(), "Errors.NotFound")
		renderError(w, r, http.StatusNotFound, httpapi.CodeNotFound, msg, msg, map[string]string{"path": r.URL.Path})
	})
	return withPage(app, handler)
}

func MethodNotAllowed(app application.Application) http.Handler {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		msg := intl.T(r.Context(), "Errors.MethodNotAllowed")
		renderError(w, r, http.StatusMethodNotAllowed, httpapi.CodeMethodNotAllowed, msg, msg, map[string]string{"method": r.Method})
	})
	return withPage(app, handler)
}

func withPage(app application.Application, h http.Handler) http.Handler {
	h = middleware.WithPageContext()(h)
	h = middleware.NavItems(app)(h)
	return middleware.ProvideLocalizer(app)(h)
}
