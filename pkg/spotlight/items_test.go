package spotlight

import (
	"bytes"
	"context"
	"testing"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/xe-labs/ontoview/pkg/intl"
)

func TestQuickLinks_FindTranslatedLabel(t *testing.T) {
	t.Parallel()

	ctx := withLocalizer(t, context.Background(), "ru")

	links := QuickLinks{}
	links.Add(
		NewQuickLink("NavigationLinks.Projects", "/projects"),
		NewQuickLink("NavigationLinks.Workload", "/workload"),
	)

	found := links.Find(ctx, "прое")
	require.Len(t, found, 1)
	require.Equal(t, "/projects", found[0].Link())
	require.Equal(t, "Проекты", found[0].Label())

	var buf bytes.Buffer
	require.NoError(t, found[0].Render(ctx, &buf))
	require.Contains(t, buf.String(), `href="/projects"`)
}

func TestQuickLinks_NoMatch(t *testing.T) {
	t.Parallel()

	links := QuickLinks{}
	links.Add(NewQuickLink("NavigationLinks.Projects", "/projects"))
	require.Empty(t, links.Find(withLocalizer(t, context.Background(), "en"), "zzz"))
}

func TestSpotlight_MergesSources(t *testing.T) {
	t.Parallel()

	links := &QuickLinks{}
	links.Add(NewQuickLink("NavigationLinks.Projects", "/projects"))

	sl := New()
	sl.Register(links, staticSource{NewItem("Project Alpha", "/project_tree/Project_Alpha")})

	found := sl.Find(withLocalizer(t, context.Background(), "en"), "pro")
	require.Len(t, found, 2)
	require.Equal(t, "/project_tree/Project_Alpha", found[1].Link())
}

func TestItem_EscapesLabel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewItem("<b>x</b>", "/a?b=1&c=2").Render(context.Background(), &buf))
	require.NotContains(t, buf.String(), "<b>")
	require.Contains(t, buf.String(), "&lt;b&gt;")
}

func TestRank(t *testing.T) {
	t.Parallel()

	require.Equal(t, []int{1}, Rank("beta", []string{"Alpha", "Beta", "Gamma"}))
	require.Empty(t, Rank("delta", []string{"Alpha", "Beta"}))
}

type staticSource []Item

func (s staticSource) Find(context.Context, string) []Item { return s }

func withLocalizer(t *testing.T, ctx context.Context, lang string) context.Context {
	t.Helper()
	bundle := i18n.NewBundle(language.English)
	require.NoError(t, bundle.AddMessages(language.English, &i18n.Message{
		ID:    "NavigationLinks.Projects",
		Other: "Projects",
	}))
	err := bundle.AddMessages(language.Russian, &i18n.Message{
		ID:    "NavigationLinks.Projects",
		Other: "Проекты",
	}, &i18n.Message{
		ID:    "NavigationLinks.Workload",
		Other: "Нагрузка",
	})
	require.NoError(t, err)
	return intl.WithLocalizer(ctx, i18n.NewLocalizer(bundle, lang))
}
