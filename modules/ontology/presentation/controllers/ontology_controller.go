package controllers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/xe-labs/ontoview/modules/ontology/presentation/exports"
	"github.com/xe-labs/ontoview/modules/ontology/presentation/mappers"
	"github.com/xe-labs/ontoview/modules/ontology/presentation/templates/pages"
	"github.com/xe-labs/ontoview/modules/ontology/services"
	"github.com/xe-labs/ontoview/pkg/application"
	"github.com/xe-labs/ontoview/pkg/composables"
	"github.com/xe-labs/ontoview/pkg/httpapi"
	"github.com/xe-labs/ontoview/pkg/intl"
	"github.com/xe-labs/ontoview/pkg/middleware"
)

type OntologyController struct {
	app             application.Application
	ontologyService *services.OntologyService
}

func NewOntologyController(app application.Application) application.Controller {
	return &OntologyController{
		app:             app,
		ontologyService: app.Service(services.OntologyService{}).(*services.OntologyService),
	}
}

func (c *OntologyController) Key() string {
	return "/"
}

func (c *OntologyController) Register(r *mux.Router) {
	router := r.NewRoute().Subrouter()
	router.Use(
		middleware.ProvideLocalizer(c.app),
		middleware.NavItems(c.app),
		middleware.WithPageContext(),
	)
	readMethods := []string{http.MethodGet, http.MethodPost}
	router.HandleFunc("/", c.Index).Methods(http.MethodGet)
	router.HandleFunc("/projects", c.Projects).Methods(readMethods...)
	router.HandleFunc("/employees", c.Employees).Methods(readMethods...)
	router.HandleFunc("/workload", c.Workload).Methods(readMethods...)
	router.HandleFunc("/workload.xlsx", c.WorkloadXLSX).Methods(http.MethodGet)
	router.HandleFunc("/project_tree/{project_id}", c.ProjectTree).Methods(http.MethodGet)
}

func (c *OntologyController) Index(w http.ResponseWriter, r *http.Request) {
	templ.Handler(pages.Index(), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *OntologyController) Projects(w http.ResponseWriter, r *http.Request) {
	entities, err := c.ontologyService.Projects(r.Context())
	if err != nil {
		renderInternalError(w, r, err)
		return
	}
	props := &pages.ProjectsPageProps{
		Projects: mappers.ProjectsToViewModels(entities, mappers.LabelsFromContext(r.Context())),
	}
	switch {
	case composables.WantsJSON(r):
		writeList(w, r, props.Projects)
	case isHxRequest(r):
		templ.Handler(pages.ProjectsTable(props), templ.WithStreaming()).ServeHTTP(w, r)
	default:
		templ.Handler(pages.Projects(props), templ.WithStreaming()).ServeHTTP(w, r)
	}
}

func (c *OntologyController) Employees(w http.ResponseWriter, r *http.Request) {
	entities, err := c.ontologyService.Employees(r.Context())
	if err != nil {
		renderInternalError(w, r, err)
		return
	}
	props := &pages.EmployeesPageProps{
		Employees: mappers.EmployeesToViewModels(entities, mappers.LabelsFromContext(r.Context())),
	}
	switch {
	case composables.WantsJSON(r):
		writeList(w, r, props.Employees)
	case isHxRequest(r):
		templ.Handler(pages.EmployeesTable(props), templ.WithStreaming()).ServeHTTP(w, r)
	default:
		templ.Handler(pages.Employees(props), templ.WithStreaming()).ServeHTTP(w, r)
	}
}

func (c *OntologyController) Workload(w http.ResponseWriter, r *http.Request) {
	entities, err := c.ontologyService.Workload(r.Context())
	if err != nil {
		renderInternalError(w, r, err)
		return
	}
	props := &pages.WorkloadPageProps{
		Workload:  mappers.WorkloadToViewModels(entities),
		ExportURL: "/workload.xlsx",
	}
	switch {
	case composables.WantsJSON(r):
		writeList(w, r, props.Workload)
	case isHxRequest(r):
		templ.Handler(pages.WorkloadTable(props), templ.WithStreaming()).ServeHTTP(w, r)
	default:
		templ.Handler(pages.Workload(props), templ.WithStreaming()).ServeHTTP(w, r)
	}
}

func (c *OntologyController) WorkloadXLSX(w http.ResponseWriter, r *http.Request) {
	entities, err := c.ontologyService.Workload(r.Context())
	if err != nil {
		renderInternalError(w, r, err)
		return
	}
	ctx := r.Context()
	headers := [3]string{
		intl.T(ctx, "Workload.Employee"),
		intl.T(ctx, "Workload.Project"),
		intl.T(ctx, "Workload.Task"),
	}
	var buf bytes.Buffer
	if err := exports.WriteWorkloadXLSX(&buf, headers, mappers.WorkloadToViewModels(entities)); err != nil {
		renderInternalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", exports.XLSXContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="workload.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		composables.UseLogger(ctx).WithError(err).Warn("failed to write workload workbook")
	}
}

// ProjectTree answers 400 for an identifier that is not a plain local name.
// A well-formed identifier that matches nothing renders an empty tree.
func (c *OntologyController) ProjectTree(w http.ResponseWriter, r *http.Request) {
	dto := &ProjectTreeDTO{ProjectID: mux.Vars(r)["project_id"]}
	if !dto.Ok() {
		renderBadRequest(w, r, intl.T(r.Context(), "Errors.InvalidProjectID"), dto.ProjectID)
		return
	}

	entities, err := c.ontologyService.ProjectTree(r.Context(), dto.ProjectID)
	if err != nil {
		if services.IsInvalidProjectID(err) {
			renderBadRequest(w, r, intl.T(r.Context(), "Errors.InvalidProjectID"), dto.ProjectID)
			return
		}
		renderInternalError(w, r, err)
		return
	}
	props := &pages.ProjectTreePageProps{
		Tree:    mappers.ProjectTreeToViewModel(dto.ProjectID, entities, mappers.LabelsFromContext(r.Context())),
		BackURL: "/projects",
	}
	switch {
	case composables.WantsJSON(r):
		if err := httpapi.WriteJSON(w, http.StatusOK, props.Tree); err != nil {
			composables.UseLogger(r.Context()).WithError(err).Warn("failed to write response")
		}
	case isHxRequest(r):
		templ.Handler(pages.ProjectTreeContent(props), templ.WithStreaming()).ServeHTTP(w, r)
	default:
		templ.Handler(pages.ProjectTree(props), templ.WithStreaming()).ServeHTTP(w, r)
	}
}
