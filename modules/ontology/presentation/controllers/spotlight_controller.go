package controllers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/xe-labs/ontoview/modules/ontology/presentation/templates/pages"
	"github.com/xe-labs/ontoview/pkg/application"
	"github.com/xe-labs/ontoview/pkg/composables"
	"github.com/xe-labs/ontoview/pkg/httpapi"
	"github.com/xe-labs/ontoview/pkg/intl"
	"github.com/xe-labs/ontoview/pkg/middleware"
	"github.com/xe-labs/ontoview/pkg/spotlight"
)

type SpotlightController struct {
	app      application.Application
	basePath string
}

func NewSpotlightController(app application.Application) application.Controller {
	return &SpotlightController{
		app:      app,
		basePath: "/spotlight",
	}
}

func (c *SpotlightController) Key() string {
	return c.basePath
}

func (c *SpotlightController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(
		middleware.ProvideLocalizer(c.app),
		middleware.NavItems(c.app),
		middleware.WithPageContext(),
	)
	router.HandleFunc("/search", c.Search).Methods(http.MethodGet)
}

type searchHit struct {
	Label string `json:"label"`
	Link  string `json:"link"`
}

func (c *SpotlightController) Search(w http.ResponseWriter, r *http.Request) {
	dto, err := composables.UseQuery(&SearchDTO{}, r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, httpapi.CodeInvalidArgument,
			intl.T(r.Context(), "Common.Search"), err.Error(), nil)
		return
	}
	q := strings.TrimSpace(dto.Query)
	var items []spotlight.Item
	if q != "" {
		items = c.app.Spotlight().Find(r.Context(), q)
	}
	props := &pages.SpotlightPageProps{Query: q, Items: items}

	switch {
	case composables.WantsJSON(r):
		hits := make([]searchHit, 0, len(items))
		for _, it := range items {
			hits = append(hits, searchHit{Label: it.Label(), Link: it.Link()})
		}
		if err := httpapi.WriteList(w, hits); err != nil {
			composables.UseLogger(r.Context()).WithError(err).Warn("failed to write response")
		}
	case isHxRequest(r):
		templ.Handler(pages.SpotlightResults(props), templ.WithStreaming()).ServeHTTP(w, r)
	default:
		templ.Handler(pages.Spotlight(props), templ.WithStreaming()).ServeHTTP(w, r)
	}
}
