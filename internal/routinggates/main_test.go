package routinggates

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "routinggates")
	if err != nil {
		panic(err)
	}
	_ = os.Setenv("GO_APP_ENV", "production")
	_ = os.Setenv("LOG_PATH", filepath.Join(dir, "app.log"))
	_ = os.Setenv("PROMETHEUS_METRICS_ENABLED", "false")
	_ = os.Setenv("DEFAULT_LOCALE", "ru")

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}
