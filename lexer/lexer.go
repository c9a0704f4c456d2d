// Copyright 2025 Binaek Sarkar
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lexer turns expression source text into a token stream. It is a
// single-pass, linear scanner; it never looks more than a few runes ahead.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/decisimo/decisimo/tokens"
	"github.com/decisimo/decisimo/xerr"
)

// Lexer tokenizes a single expression. It is not safe for concurrent use,
// but is cheap to construct — callers reusing an Isolate get a fresh Lexer
// per compile.
type Lexer struct {
	src  []rune
	pos  int // rune index of the next unread rune
	line int
	col  int

	hasInterval bool // set once a ".." has been produced; see HasIntervalMarker
}

// NewLexer builds a lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1}
}

// HasIntervalMarker reports whether this lexer has emitted a Range operator
// so far. The parser in this module does not call it; it recognizes
// interval literals from the `..` token itself.
func (l *Lexer) HasIntervalMarker() bool { return l.hasInterval }

func (l *Lexer) current() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(offset int) rune {
	idx := l.pos + offset
	if idx < 0 || idx >= len(l.src) {
		return 0
	}
	return l.src[idx]
}

func (l *Lexer) advance() rune {
	r := l.current()
	if r == 0 {
		return 0
	}
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) here() tokens.Position {
	return tokens.Position{Offset: l.pos, Line: l.line, Column: l.col}
}

func (l *Lexer) span(start tokens.Position) tokens.Span {
	return tokens.Span{Start: start, End: l.here()}
}

func (l *Lexer) skipWhitespace() {
	for unicode.IsSpace(l.current()) {
		l.advance()
	}
}

// NextToken returns the next token, or an EOF token once the source is
// exhausted. On a lexical error it returns a zero Instance and a non-nil
// error; the caller (typically the parser) decides whether to abort or
// recover.
func (l *Lexer) NextToken() (tokens.Instance, error) {
	l.skipWhitespace()
	start := l.here()

	if l.current() == 0 {
		return tokens.New(tokens.EOF, "", l.span(start)), nil
	}

	r := l.current()

	switch {
	case r == '\'' || r == '"':
		return l.readString(start, r)
	case r == '`':
		return l.readTemplate(start)
	case unicode.IsDigit(r):
		return l.readNumber(start)
	case isIdentStart(r):
		return l.readIdentifier(start)
	default:
		return l.readOperator(start)
	}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '$' || r == '_' || r == '#'
}

func isIdentContinue(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '$' || r == '_' || r == '#'
}

func (l *Lexer) readIdentifier(start tokens.Position) (tokens.Instance, error) {
	var sb strings.Builder
	for isIdentContinue(l.current()) {
		sb.WriteRune(l.advance())
	}
	value := sb.String()

	switch value {
	case "true", "false":
		return tokens.New(tokens.Boolean, value, l.span(start)), nil
	case "null":
		return tokens.New(tokens.Operator, "null", l.span(start)), nil
	case "and", "or", "in":
		return tokens.New(tokens.Operator, value, l.span(start)), nil
	case "not":
		// Look ahead for " in " (whitespace-delimited "in") to disambiguate
		// a bare `not` from the compound `not in` operator.
		save := l.pos
		saveLine, saveCol := l.line, l.col
		l.skipWhitespace()
		if l.current() == 'i' && l.peekAt(1) == 'n' && !isIdentContinue(l.peekAt(2)) {
			l.advance()
			l.advance()
			return tokens.New(tokens.Operator, "not in", l.span(start)), nil
		}
		l.pos, l.line, l.col = save, saveLine, saveCol
		return tokens.New(tokens.Operator, "not", l.span(start)), nil
	default:
		return tokens.New(tokens.Identifier, value, l.span(start)), nil
	}
}

func (l *Lexer) readNumber(start tokens.Position) (tokens.Instance, error) {
	var sb strings.Builder
	for unicode.IsDigit(l.current()) {
		sb.WriteRune(l.advance())
	}

	if l.current() == '.' {
		if l.peekAt(1) == '.' {
			// A second '.' means this is a Range operator, not a decimal
			// point. Unconditionally back off and let the caller lex the
			// range separately.
		} else if unicode.IsDigit(l.peekAt(1)) {
			sb.WriteRune(l.advance()) // consume '.'
			for unicode.IsDigit(l.current()) {
				sb.WriteRune(l.advance())
			}
		}
	}

	return tokens.New(tokens.Number, sb.String(), l.span(start)), nil
}

func (l *Lexer) readString(start tokens.Position, quote rune) (tokens.Instance, error) {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		r := l.current()
		if r == 0 {
			return tokens.Instance{}, xerr.ErrUnmatchedQuote(start.Offset)
		}
		if r == '\\' && l.peekAt(1) == quote {
			l.advance()
			sb.WriteRune(l.advance())
			continue
		}
		if r == '\\' {
			l.advance()
			switch l.current() {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '\\':
				sb.WriteRune('\\')
			default:
				sb.WriteRune(l.current())
			}
			l.advance()
			continue
		}
		if r == quote {
			l.advance()
			break
		}
		sb.WriteRune(l.advance())
	}
	return tokens.New(tokens.String, sb.String(), l.span(start)), nil
}

// readTemplate captures the raw contents of a backtick template literal,
// tracking brace depth so that a `}` closing a `${ ... }` hole does not
// prematurely end the scan, and an unescaped backtick inside a hole (e.g.
// nested string literal) does not end the template either.
func (l *Lexer) readTemplate(start tokens.Position) (tokens.Instance, error) {
	l.advance() // opening backtick
	var sb strings.Builder
	depth := 0
	for {
		r := l.current()
		if r == 0 {
			return tokens.Instance{}, xerr.ErrUnmatchedQuote(start.Offset)
		}
		if r == '`' && depth == 0 {
			l.advance()
			break
		}
		if r == '$' && l.peekAt(1) == '{' {
			depth++
			sb.WriteRune(l.advance())
			sb.WriteRune(l.advance())
			continue
		}
		if r == '{' && depth > 0 {
			depth++
		}
		if r == '}' && depth > 0 {
			depth--
		}
		sb.WriteRune(l.advance())
	}
	return tokens.New(tokens.Template, sb.String(), l.span(start)), nil
}

var twoCharOps = []string{"==", "!=", "<=", ">=", "??", ".."}

func (l *Lexer) readOperator(start tokens.Position) (tokens.Instance, error) {
	two := string(l.current()) + string(l.peekAt(1))
	for _, op := range twoCharOps {
		if two == op {
			l.advance()
			l.advance()
			if op == ".." {
				l.hasInterval = true
			}
			return tokens.New(tokens.Operator, op, l.span(start)), nil
		}
	}

	r := l.advance()
	switch r {
	case '(', ')', '[', ']', '{', '}':
		return tokens.New(tokens.Bracket, string(r), l.span(start)), nil
	case '+', '-', '*', '/', '%', '^', '<', '>', '!', '?', ':', '.', ',', '=', '&', '|':
		return tokens.New(tokens.Operator, string(r), l.span(start)), nil
	default:
		if r >= utf8.RuneSelf {
			return tokens.Instance{}, xerr.ErrUnknownSymbol(start.Offset, string(r))
		}
		return tokens.Instance{}, xerr.ErrUnknownSymbol(start.Offset, string(r))
	}
}
