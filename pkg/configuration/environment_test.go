package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEnv_FallsBackToGoModRoot(t *testing.T) {
	tmp := t.TempDir()

	requireWriteFile(t, filepath.Join(tmp, "go.mod"), "module example.com/test\n\ngo 1.22\n")
	requireWriteFile(t, filepath.Join(tmp, ".env.local"), "ONTOVIEW_TEST_ENV_LOAD=ok\n")

	sub := filepath.Join(tmp, "pkg", "graph")
	requireMkdirAll(t, sub)

	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(sub); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	_ = os.Unsetenv("ONTOVIEW_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{".env", ".env.local"})
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 env file loaded, got %d", n)
	}
	if got := os.Getenv("ONTOVIEW_TEST_ENV_LOAD"); got != "ok" {
		t.Fatalf("expected env var loaded from repo root, got %q", got)
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("ONTOLOGY_FILE", "testdata/staff.rdf")
	t.Setenv("LOG_PATH", filepath.Join(tmp, "logs", "app.log"))
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "8081")
	t.Setenv("SUPPORTED_LANGUAGES", "ru")
	t.Setenv("ORIGIN", "")

	c := &Configuration{}
	require.NoError(t, c.load(nil))
	t.Cleanup(c.Unload)

	require.Equal(t, "testdata/staff.rdf", c.Ontology.File)
	require.Equal(t, DefaultNamespace, c.Ontology.Namespace)
	require.Equal(t, "localhost:8081", c.SocketAddress)
	require.Equal(t, "http://localhost:8081", c.Origin)
	require.Equal(t, []string{"ru"}, c.SupportedLanguages)
	require.NotNil(t, c.Logger())
	require.Equal(t, "debug", c.Logger().GetLevel().String())
}

func TestLoad_RejectsInvalidOptions(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("LOG_PATH", filepath.Join(tmp, "app.log"))

	t.Setenv("ONTOLOGY_NAMESPACE", "http://example.org/onto")
	require.Error(t, (&Configuration{}).load(nil))

	t.Setenv("ONTOLOGY_NAMESPACE", DefaultNamespace)
	t.Setenv("RATE_LIMIT_STORAGE", "redis")
	t.Setenv("RATE_LIMIT_REDIS_URL", "")
	require.Error(t, (&Configuration{}).load(nil))
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func requireMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}
