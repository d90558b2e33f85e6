package sparql

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIRI
	tokPName
	tokIdent
	tokVar
	tokString
	tokNumber
	tokLang
	tokPunct
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of query"
	case tokIRI:
		return "IRI"
	case tokPName:
		return "prefixed name"
	case tokIdent:
		return "keyword"
	case tokVar:
		return "variable"
	case tokString:
		return "string"
	case tokNumber:
		return "number"
	case tokLang:
		return "language tag"
	default:
		return "punctuation"
	}
}

type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) errorf(line, col int, msg string) *SyntaxError {
	return &SyntaxError{Line: line, Col: col, Msg: msg}
}

func (l *lexer) peekRune(offset int) rune {
	p := l.pos
	for i := 0; i < offset; i++ {
		if p >= len(l.src) {
			return 0
		}
		_, w := utf8.DecodeRuneInString(l.src[p:])
		p += w
	}
	if p >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[p:])
	return r
}

func (l *lexer) advance() rune {
	r, w := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		r := l.peekRune(0)
		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == '#':
			for l.pos < len(l.src) && l.peekRune(0) != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func isNameStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isNameChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.'
}

func (l *lexer) tokens() ([]token, error) {
	var out []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.kind == tokEOF {
			return out, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()
	line, col := l.line, l.col
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: line, col: col}, nil
	}
	r := l.peekRune(0)

	switch {
	case r == '<':
		if iri, ok := l.scanIRI(); ok {
			return token{kind: tokIRI, text: iri, line: line, col: col}, nil
		}
		l.advance()
		if l.peekRune(0) == '=' {
			l.advance()
			return token{kind: tokPunct, text: "<=", line: line, col: col}, nil
		}
		return token{kind: tokPunct, text: "<", line: line, col: col}, nil

	case r == '?' || r == '$':
		l.advance()
		start := l.pos
		for l.pos < len(l.src) {
			c := l.peekRune(0)
			if !(unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_') {
				break
			}
			l.advance()
		}
		if l.pos == start {
			return token{}, l.errorf(line, col, "empty variable name")
		}
		return token{kind: tokVar, text: l.src[start:l.pos], line: line, col: col}, nil

	case r == '"' || r == '\'':
		s, err := l.scanString(r)
		if err != nil {
			return token{}, l.errorf(line, col, err.Error())
		}
		return token{kind: tokString, text: s, line: line, col: col}, nil

	case r == '@':
		l.advance()
		start := l.pos
		for l.pos < len(l.src) {
			c := l.peekRune(0)
			if !(unicode.IsLetter(c) || unicode.IsDigit(c) || c == '-') {
				break
			}
			l.advance()
		}
		if l.pos == start {
			return token{}, l.errorf(line, col, "empty language tag")
		}
		return token{kind: tokLang, text: l.src[start:l.pos], line: line, col: col}, nil

	case unicode.IsDigit(r):
		start := l.pos
		for l.pos < len(l.src) && unicode.IsDigit(l.peekRune(0)) {
			l.advance()
		}
		if l.peekRune(0) == '.' && unicode.IsDigit(l.peekRune(1)) {
			l.advance()
			for l.pos < len(l.src) && unicode.IsDigit(l.peekRune(0)) {
				l.advance()
			}
		}
		return token{kind: tokNumber, text: l.src[start:l.pos], line: line, col: col}, nil

	case isNameStart(r) || r == ':':
		return l.scanName(line, col), nil
	}

	two := ""
	if l.pos+1 < len(l.src) {
		two = l.src[l.pos : l.pos+2]
	}
	switch two {
	case "&&", "||", "!=", ">=", "^^":
		l.advance()
		l.advance()
		return token{kind: tokPunct, text: two, line: line, col: col}, nil
	}
	switch r {
	case '{', '}', '(', ')', '.', ';', ',', '*', '=', '!', '>', '+', '-', '/':
		l.advance()
		return token{kind: tokPunct, text: string(r), line: line, col: col}, nil
	}
	return token{}, l.errorf(line, col, "unexpected character "+string(r))
}

// scanIRI consumes <...> when the brackets enclose a valid IRI reference;
// otherwise it leaves the input untouched so '<' can be read as an operator.
func (l *lexer) scanIRI() (string, bool) {
	end := -1
	for i := l.pos + 1; i < len(l.src); i++ {
		c := l.src[i]
		if c == '>' {
			end = i
			break
		}
		if c <= ' ' || strings.IndexByte("<\"{}|^`\\", c) >= 0 {
			return "", false
		}
	}
	if end < 0 {
		return "", false
	}
	iri := l.src[l.pos+1 : end]
	for l.pos <= end {
		l.advance()
	}
	return iri, true
}

func (l *lexer) scanString(quote rune) (string, error) {
	l.advance()
	var sb strings.Builder
	for {
		if l.pos >= len(l.src) {
			return "", errUnterminated
		}
		c := l.advance()
		switch c {
		case quote:
			return sb.String(), nil
		case '\n':
			return "", errUnterminated
		case '\\':
			if l.pos >= len(l.src) {
				return "", errUnterminated
			}
			e := l.advance()
			switch e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			case '"', '\'', '\\':
				sb.WriteRune(e)
			default:
				return "", errBadEscape
			}
		default:
			sb.WriteRune(c)
		}
	}
}

func (l *lexer) scanName(line, col int) token {
	start := l.pos
	hasColon := false
	for l.pos < len(l.src) {
		c := l.peekRune(0)
		if c == ':' {
			hasColon = true
			l.advance()
			continue
		}
		if !isNameChar(c) {
			break
		}
		l.advance()
	}
	// A trailing '.' ends the triple, it is not part of the name.
	for l.pos > start && l.src[l.pos-1] == '.' {
		l.pos--
		l.col--
	}
	text := l.src[start:l.pos]
	if hasColon {
		return token{kind: tokPName, text: text, line: line, col: col}
	}
	return token{kind: tokIdent, text: text, line: line, col: col}
}
