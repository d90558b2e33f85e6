package routinggates

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFullStack_ReadOnlyPostIgnoresBody(t *testing.T) {
	router := buildRouter(t, 0)

	for _, target := range []string{"/projects", "/employees", "/workload"} {
		for _, body := range []string{"", "{", "<x"} {
			r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
			r.Header.Set("Content-Type", "application/json")
			r.Header.Set("Accept", "application/json")
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, r)
			require.Equal(t, http.StatusOK, rr.Code, "%s %q", target, body)

			var list struct {
				Count int `json:"count"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
			require.Positive(t, list.Count, target)
		}
	}
}

func TestFullStack_DefaultLocaleFromConfiguration(t *testing.T) {
	router := buildRouter(t, 0)

	r := httptest.NewRequest(http.MethodGet, "/project_tree/Project_Unknown", nil)
	r.Header.Set("Accept", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, r)
	require.Equal(t, http.StatusOK, rr.Code)

	var tree struct {
		ProjectName string `json:"project_name"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tree))
	require.Equal(t, "Проект", tree.ProjectName)

	r = httptest.NewRequest(http.MethodGet, "/employees", nil)
	r.Header.Set("Accept", "application/json")
	r.Header.Set("Accept-Language", "en")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, r)
	require.Contains(t, rr.Body.String(), "Position not specified")
}
