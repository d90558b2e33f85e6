package composables

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-playground/form"
)

var decoder = form.NewDecoder()

// UseQuery decodes the URL query of r into v using `form` struct tags.
func UseQuery[T any](v *T, r *http.Request) (*T, error) {
	if err := decoder.Decode(v, r.URL.Query()); err != nil {
		return nil, errors.Wrap(err, "decode query")
	}
	return v, nil
}

// UseForm decodes the parsed form of r (query and urlencoded body) into v.
func UseForm[T any](v *T, r *http.Request) (*T, error) {
	if err := r.ParseForm(); err != nil {
		return nil, errors.Wrap(err, "parse form")
	}
	if err := decoder.Decode(v, r.Form); err != nil {
		return nil, errors.Wrap(err, "decode form")
	}
	return v, nil
}
