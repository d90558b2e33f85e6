package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/xe-labs/ontoview/pkg/composables"
	"github.com/xe-labs/ontoview/pkg/configuration"
	"github.com/xe-labs/ontoview/pkg/intl"
)

// Application interface for accessing app config needed by localizer
type Application interface {
	Bundle() *i18n.Bundle
	GetSupportedLanguages() []string
}

// languageTagsFromCodes converts language codes to language.Tag slice
func languageTagsFromCodes(codes []string) []language.Tag {
	supported := intl.GetSupportedLanguages(codes)
	tags := make([]language.Tag, len(supported))
	for i, lang := range supported {
		tags[i] = lang.Tag
	}
	return tags
}

func matchSupported(defaultLocale language.Tag, supported []language.Tag, candidates []language.Tag) language.Tag {
	if len(supported) == 0 {
		return defaultLocale
	}
	if len(candidates) == 0 {
		candidates = []language.Tag{defaultLocale}
	}
	matcher := language.NewMatcher(supported)
	_, idx, conf := matcher.Match(candidates...)
	if conf == language.No {
		_, idx, _ = matcher.Match(defaultLocale)
	}
	return supported[idx]
}

// useLocale picks the locale from the "lang" query parameter, then from
// Accept-Language, then the default.
func useLocale(r *http.Request, defaultLocale language.Tag, supported []language.Tag) language.Tag {
	if lang := composables.GetLastQueryParam(r, "lang"); lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			return matchSupported(defaultLocale, supported, []language.Tag{tag})
		}
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return matchSupported(defaultLocale, supported, nil)
	}
	return matchSupported(defaultLocale, supported, tags)
}

// ProvideLocalizer negotiates the request locale, falling back to
// DEFAULT_LOCALE when nothing the client asks for is supported.
func ProvideLocalizer(app Application) mux.MiddlewareFunc {
	return ProvideLocalizerWithDefault(app, DefaultLocale(configuration.Use().DefaultLocale))
}

// DefaultLocale parses a configured locale code, English when it is empty or malformed.
func DefaultLocale(code string) language.Tag {
	tag, err := language.Parse(code)
	if err != nil || tag == language.Und {
		return language.English
	}
	return tag
}

func ProvideLocalizerWithDefault(app Application, defaultLocale language.Tag) mux.MiddlewareFunc {
	bundle := app.Bundle()
	supportedLanguages := languageTagsFromCodes(app.GetSupportedLanguages())
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				locale := useLocale(r, defaultLocale, supportedLanguages)
				base, _ := locale.Base()
				ctx := intl.WithLocalizer(
					r.Context(),
					i18n.NewLocalizer(bundle, base.String()),
				)
				ctx = intl.WithLocale(ctx, locale)
				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}
