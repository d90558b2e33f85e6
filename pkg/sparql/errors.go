package sparql

import (
	"fmt"

	"github.com/go-faster/errors"
)

var (
	// ErrUnsupported is returned for valid SPARQL that this engine does not implement.
	ErrUnsupported = errors.New("sparql: unsupported construct")
	// ErrUnboundVariable is returned when an initial binding names a variable
	// the query never mentions.
	ErrUnboundVariable = errors.New("sparql: binding for unknown variable")

	errTypeMismatch = errors.New("type error")
	errUnbound      = errors.New("unbound variable")
)

// SyntaxError reports a malformed query with the position of the offending token.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("sparql: syntax error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

var (
	errUnterminated = errors.New("unterminated string")
	errBadEscape    = errors.New("invalid escape sequence")
)
