package routinggates

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	internalserver "github.com/xe-labs/ontoview/internal/server"
	"github.com/xe-labs/ontoview/modules"
	"github.com/xe-labs/ontoview/pkg/application"
	"github.com/xe-labs/ontoview/pkg/configuration"
	"github.com/xe-labs/ontoview/pkg/graph"
	"github.com/xe-labs/ontoview/pkg/httpapi"
	"github.com/xe-labs/ontoview/pkg/routing"
)

const fixture = "../../modules/ontology/testdata/staff.rdf"

func buildRouter(t *testing.T, rps int) *mux.Router {
	t.Helper()
	conf := *configuration.Use()
	conf.RateLimit.Enabled = rps > 0
	conf.RateLimit.GlobalRPS = rps
	conf.RateLimit.Storage = "memory"

	g, err := graph.Load(fixture)
	require.NoError(t, err)
	app := application.New(&application.ApplicationOptions{
		Graph:  g,
		Logger: conf.Logger(),
		Bundle: application.LoadBundle(),
	})
	require.NoError(t, modules.Load(app, modules.BuiltInModules(&conf)...))
	app.RegisterNavItems(modules.NavLinks...)

	srv, err := internalserver.Default(&internalserver.DefaultOptions{
		Logger:        conf.Logger(),
		Configuration: &conf,
		Application:   app,
	})
	require.NoError(t, err)
	return srv.Router()
}

func collectRoutePaths(t *testing.T, router *mux.Router) []string {
	t.Helper()
	seen := map[string]struct{}{}
	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		if _, err := route.GetMethods(); err != nil {
			return nil
		}
		tpl, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		seen[tpl] = struct{}{}
		return nil
	})
	require.NoError(t, err)

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func TestExposureBaseline_RoutesAreClassified(t *testing.T) {
	router := buildRouter(t, 0)
	rules, err := routing.LoadAllowlist("", "server")
	require.NoError(t, err)
	classifier := routing.NewClassifier(rules)

	classes := map[string]routing.RouteClass{}
	for _, p := range collectRoutePaths(t, router) {
		classes[p] = classifier.ClassifyPath(p)
	}
	require.Equal(t, map[string]routing.RouteClass{
		"/":                          routing.RouteClassUI,
		"/projects":                  routing.RouteClassUI,
		"/employees":                 routing.RouteClassUI,
		"/workload":                  routing.RouteClassUI,
		"/workload.xlsx":             routing.RouteClassExport,
		"/project_tree/{project_id}": routing.RouteClassUI,
		"/spotlight/search":          routing.RouteClassUI,
		"/health":                    routing.RouteClassOps,
	}, classes)
}

func TestAPIErrorContract_OpsNotFoundIsJSON(t *testing.T) {
	router := buildRouter(t, 0)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health/__nonexistent__", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var payload httpapi.ErrorEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))
	require.Equal(t, httpapi.CodeNotFound, payload.Code)
	require.Equal(t, "/health/__nonexistent__", payload.Meta["path"])

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/health", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	require.Contains(t, rr.Header().Get("Content-Type"), "application/json")
}

func TestExposureBaseline_UI404_NotForcedJSON(t *testing.T) {
	router := buildRouter(t, 0)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/__nonexistent_ui__", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Contains(t, rr.Header().Get("Content-Type"), "text/html")
}

func TestRateLimit_ExemptsOpsRoutes(t *testing.T) {
	router := buildRouter(t, 1)

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, rr.Code)
	}

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/projects", nil))
		codes = append(codes, rr.Code)
	}
	require.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
