package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/xe-labs/ontoview/modules/ontology/services"
	"github.com/xe-labs/ontoview/pkg/application"
	"github.com/xe-labs/ontoview/pkg/composables"
	"github.com/xe-labs/ontoview/pkg/httpapi"
)

type HealthController struct {
	ontologyService *services.OntologyService
}

func NewHealthController(app application.Application) application.Controller {
	return &HealthController{
		ontologyService: app.Service(services.OntologyService{}).(*services.OntologyService),
	}
}

func (c *HealthController) Key() string {
	return "/health"
}

func (c *HealthController) Register(r *mux.Router) {
	r.HandleFunc("/health", c.Get).Methods(http.MethodGet)
}

type healthResponse struct {
	Status  string `json:"status"`
	Triples int    `json:"triples"`
}

func (c *HealthController) Get(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Triples: c.ontologyService.TripleCount()}
	if err := httpapi.WriteJSON(w, http.StatusOK, resp); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("failed to write response")
	}
}
