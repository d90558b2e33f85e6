package intl_test

import (
	"context"
	"testing"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/xe-labs/ontoview/pkg/intl"
)

func TestGetSupportedLanguages(t *testing.T) {
	require.Len(t, intl.GetSupportedLanguages(nil), 2)

	ru := intl.GetSupportedLanguages([]string{"ru", "de"})
	require.Len(t, ru, 1)
	require.Equal(t, language.Russian, ru[0].Tag)
}

func TestTranslate(t *testing.T) {
	bundle := i18n.NewBundle(language.English)
	require.NoError(t, bundle.AddMessages(language.Russian, &i18n.Message{ID: "Nav.Projects", Other: "Проекты"}))

	ctx := context.Background()
	require.Equal(t, "Nav.Projects", intl.T(ctx, "Nav.Projects"))
	require.Panics(t, func() { intl.MustT(ctx, "Nav.Projects") })

	ctx = intl.WithLocalizer(ctx, i18n.NewLocalizer(bundle, "ru"))
	ctx = intl.WithLocale(ctx, language.Russian)
	require.Equal(t, "Проекты", intl.MustT(ctx, "Nav.Projects"))
	require.Equal(t, "Missing", intl.T(ctx, "Missing"))
	require.Equal(t, language.Russian, intl.UseLocale(ctx))
	require.Equal(t, language.English, intl.UseLocale(context.Background()))
}
