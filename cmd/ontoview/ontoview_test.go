package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixture = "../../modules/ontology/testdata/staff.rdf"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append(args, "--file", fixture))
	err := cmd.Execute()
	return out.String(), err
}

func TestQueryProjects_JSON(t *testing.T) {
	out, err := run(t, "query", "projects", "--format", "json")
	require.NoError(t, err)

	var records []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 3)
	for _, r := range records {
		if r["id"] == "Project_Beta" {
			require.Equal(t, "Untitled project", r["name"])
		}
	}
}

func TestQueryEmployees_RussianTable(t *testing.T) {
	out, err := run(t, "query", "employees", "--lang", "ru")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[0], "NAME"))
	require.Contains(t, out, "Должность не указана")
}

func TestQueryTree(t *testing.T) {
	out, err := run(t, "query", "tree", "Project_Alpha")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Alpha\n  Build\n    - Task_Backend\n  Design\n"))

	out, err = run(t, "query", "tree", "Project_Unknown", "-o", "json")
	require.NoError(t, err)
	require.Contains(t, out, `"project_name": "Project"`)
	require.Contains(t, out, `"tree": []`)
}

func TestQueryTree_InvalidID(t *testing.T) {
	_, err := run(t, "query", "tree", "x } UNION {")
	require.Error(t, err)
	require.Equal(t, exitInvalidID, exitCode(err))
}

func TestStats(t *testing.T) {
	out, err := run(t, "stats", "--format", "json")
	require.NoError(t, err)
	var stats statsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	require.Positive(t, stats.Triples)
	require.Positive(t, stats.Subjects)
}

func TestErrors(t *testing.T) {
	_, err := run(t, "query", "workload", "--format", "yaml")
	require.Equal(t, exitUsage, exitCode(err))

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs([]string{"stats", "--file", "missing.rdf"})
	require.Equal(t, exitLoad, exitCode(cmd.Execute()))
}

func TestTranslationChecks(t *testing.T) {
	_, err := run(t, "check-tr-keys")
	require.NoError(t, err)

	_, err = run(t, "check-tr-usage", "--root", "../../modules/ontology")
	require.NoError(t, err)
}

func TestSource(t *testing.T) {
	out, err := run(t, "source", "project_tree")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "PREFIX ns: <"+defaultNamespace+">"))
	require.Contains(t, out, "?project")

	colored, err := run(t, "source", "workload", "--color")
	require.NoError(t, err)
	require.Contains(t, colored, "\x1b[")

	_, err = run(t, "source", "salaries")
	require.Equal(t, exitUsage, exitCode(err))
}
