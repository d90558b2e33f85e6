package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xe-labs/ontoview/pkg/httpapi"
)

func TestWriteList_EmptyIsArray(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, httpapi.WriteList[string](w, nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"data":[],"count":0}`, w.Body.String())
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, httpapi.WriteError(w, http.StatusBadRequest, httpapi.CodeInvalidArgument, "bad <id>", map[string]string{"field": "project_id"}))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var env httpapi.ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, "bad <id>", env.Message)
	require.Equal(t, "project_id", env.Meta["field"])
	require.Contains(t, w.Body.String(), "<id>")
}
