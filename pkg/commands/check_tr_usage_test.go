package commands

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const sampleSource = `package sample

import "github.com/xe-labs/ontoview/pkg/types"

var Home = types.NavigationItem{Name: "Nav.Home", Href: "/"}

func render(ctx any, pageCtx interface{ T(string) string }) {
	_ = pageCtx.T("Page.Title")
	_ = intl.T(ctx, "Errors.NotFound")
	_ = intl.MustT(ctx, "Errors.Internal")
}
`

func newBundle(t *testing.T, files map[string]string) *i18n.Bundle {
	t.Helper()
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for name, content := range files {
		_, err := bundle.ParseMessageFileBytes([]byte(content), name)
		require.NoError(t, err)
	}
	return bundle
}

func silentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func writeSample(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "sample.go"), []byte(sampleSource), 0o644))
	return root
}

func TestCollectTrUsages(t *testing.T) {
	usages, err := collectTrUsages(writeSample(t))
	require.NoError(t, err)

	keys := make([]string, 0, len(usages))
	for _, u := range usages {
		keys = append(keys, u.Key)
		require.Equal(t, "sample.go", u.File)
	}
	require.ElementsMatch(t, []string{"Nav.Home", "Page.Title", "Errors.NotFound", "Errors.Internal"}, keys)
}

func TestCheckTrUsage(t *testing.T) {
	root := writeSample(t)
	complete := `
[Nav]
Home = "Home"
[Page]
Title = "Title"
[Errors]
NotFound = "Not found"
Internal = "Internal"
`
	bundle := newBundle(t, map[string]string{"en.toml": complete, "ru.toml": complete})
	require.NoError(t, CheckTrUsage(root, bundle, []string{"en", "ru"}, silentLogger()))

	partial := newBundle(t, map[string]string{
		"en.toml": complete,
		"ru.toml": "[Nav]\nHome = \"Главная\"\n",
	})
	require.Error(t, CheckTrUsage(root, partial, []string{"en", "ru"}, silentLogger()))
	require.Error(t, CheckTrUsage(root, partial, []string{"de"}, silentLogger()))
}

func TestCheckTrKeys(t *testing.T) {
	bundle := newBundle(t, map[string]string{
		"en.toml": "[Nav]\nHome = \"Home\"\nAbout = \"About\"\n",
		"ru.toml": "[Nav]\nHome = \"Главная\"\n",
	})
	require.Error(t, CheckTrKeys(bundle, []string{"en", "ru"}, silentLogger()))
	require.NoError(t, CheckTrKeys(bundle, []string{"en"}, silentLogger()))
}
