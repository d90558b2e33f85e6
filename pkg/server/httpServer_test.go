package server_test

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/xe-labs/ontoview/pkg/application"
	"github.com/xe-labs/ontoview/pkg/server"
)

type helloController struct{}

func (helloController) Key() string { return "/hello" }

func (helloController) Register(r *mux.Router) {
	r.HandleFunc("/hello", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, strings.Repeat("hello ", 400))
	}).Methods(http.MethodGet)
}

func newServer() *server.HTTPServer {
	app := application.New(&application.ApplicationOptions{})
	app.RegisterControllers(helloController{})
	app.RegisterMiddleware(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Test", "1")
			next.ServeHTTP(w, r)
		})
	})
	return server.NewHTTPServer(app, nil, nil)
}

func TestHTTPServer_RoutesAndCompresses(t *testing.T) {
	h := newServer().Handler()

	r := httptest.NewRequest(http.MethodGet, "/hello", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	gz, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(gz)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(body), "hello hello"))
}

func TestHTTPServer_FallbackHandlersRunMiddleware(t *testing.T) {
	h := newServer().Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "1", w.Header().Get("X-Test"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/hello", nil))
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
