package controllers

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/xe-labs/ontoview/modules/ontology/presentation/templates/pages"
	"github.com/xe-labs/ontoview/pkg/composables"
	"github.com/xe-labs/ontoview/pkg/httpapi"
	"github.com/xe-labs/ontoview/pkg/intl"
)

func isHxRequest(r *http.Request) bool {
	return len(r.Header.Get("Hx-Request")) > 0
}

func writeList[T any](w http.ResponseWriter, r *http.Request, items []T) {
	if err := httpapi.WriteList(w, items); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to write response")
	}
}

func renderError(w http.ResponseWriter, r *http.Request, status int, code, title, message string, meta map[string]string) {
	if composables.WantsJSON(r) || composables.UseRouteClass(r.Context()).IsMachine() {
		if err := httpapi.WriteError(w, status, code, message, meta); err != nil {
			composables.UseLogger(r.Context()).WithError(err).Warn("failed to write error response")
		}
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templ.Handler(pages.Error(title, message), templ.WithStatus(status)).ServeHTTP(w, r)
}

func renderBadRequest(w http.ResponseWriter, r *http.Request, message, projectID string) {
	renderError(w, r, http.StatusBadRequest, httpapi.CodeInvalidArgument,
		intl.T(r.Context(), "ProjectTree.Title"), message, map[string]string{"project_id": projectID})
}

func renderInternalError(w http.ResponseWriter, r *http.Request, err error) {
	composables.UseLogger(r.Context()).WithError(err).Error("request failed")
	msg := intl.T(r.Context(), "Errors.Internal")
	renderError(w, r, http.StatusInternalServerError, httpapi.CodeInternal, msg, msg, nil)
}
