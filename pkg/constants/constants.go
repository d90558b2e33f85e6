package constants

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	AppKey        ContextKey = "app"
	LoggerKey     ContextKey = "logger"
	ParamsKey     ContextKey = "params"
	LocalizerKey  ContextKey = "localizer"
	LocaleKey     ContextKey = "locale"
	PageContext   ContextKey = "pageContext"
	NavItemsKey   ContextKey = "navItems"
	RequestStart  ContextKey = "requestStart"
	RouteClassKey ContextKey = "routeClass"
)

// localNamePattern matches the fragment of an ontology IRI: letters, digits,
// underscore, with '.' and '-' allowed inside.
var localNamePattern = regexp.MustCompile(`^[\p{L}\p{N}_]([\p{L}\p{N}_.\-]*[\p{L}\p{N}_\-])?$`)

// IsLocalName reports whether s can be appended to a namespace IRI as-is.
func IsLocalName(s string) bool {
	return localNamePattern.MatchString(s)
}

var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("localname", func(fl validator.FieldLevel) bool {
		return IsLocalName(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}
