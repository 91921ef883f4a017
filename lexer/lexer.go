// Package lexer defines lexical analyzer.
package lexer

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/ava12/ebnf"
	"github.com/ava12/ebnf/source"
)

const (
	// ErrorTokenType is the type for fake tokens capturing broken lexemes (e.g. unterminated string literals).
	// The purpose of these tokens is to generate more informative error messages.
	// Lexer will never return a token of this type, an error with message containing token text will be returned instead.
	ErrorTokenType = -1

	// ErrorTokenName is the type name for ErrorTokenType.
	ErrorTokenName = "-error-"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	// Error message contains the rune at current source position.
	WrongCharError = ebnf.LexicalErrors + iota

	// BadTokenError indicates that lexer has fetched a token of ErrorTokenType.
	BadTokenError
)

// TokenType describes token type for specific capturing group of regular expression.
type TokenType struct {
	// Type contains token type, any non-negative value. ErrorTokenType is treated specially.
	Type int

	// TypeName contains token type name.
	TypeName string
}

// Lexer performs lexical analysis of a source using regexp.Regexp.
// Lexer itself is immutable, stateless, and safe for concurrent use.
// Each token type maps to its own regexp capturing group index.
// A match containing no captured groups is treated as insignificant lexeme (e.g. whitespace or comment),
// in this case lexer tries to fetch a token again at new position.
// Every byte of source must belong to some lexeme.
type Lexer struct {
	types []TokenType
	re    *regexp.Regexp
}

// New creates new Lexer.
// Each n-th element of types describes token type for (n+1)-th regexp capturing group.
// A group that has no description or that has negative token type is treated as ErrorTokenType.
// re should be anchored (start with ^).
func New(re *regexp.Regexp, types []TokenType) *Lexer {
	ts := make([]TokenType, len(types))
	for i, t := range types {
		ts[i].TypeName = t.TypeName
		if t.Type >= 0 {
			ts[i].Type = t.Type
		} else {
			ts[i].Type = ErrorTokenType
			ts[i].TypeName = ErrorTokenName
		}
	}
	return &Lexer{types: ts, re: re}
}

func wrongCharError(src *source.Source, pos int) *ebnf.Error {
	r, _ := utf8.DecodeRune(src.Content()[pos:])
	msg := fmt.Sprintf("wrong char \"%c\" (u+%x)", r, r)
	return ebnf.FormatErrorPos(source.NewPos(src, pos), WrongCharError, "%s", msg)
}

func badTokenError(t *Token) *ebnf.Error {
	return ebnf.FormatErrorPos(t, BadTokenError, "bad token %q", t.Text())
}

// Next fetches token starting at byte offset pos of src.
// Returns the token and the offset following it.
// Returns EoF token if there are no more tokens.
// Returns nil token and ebnf.Error if there is a lexical error.
func (l *Lexer) Next(src *source.Source, pos int) (*Token, int, error) {
	content := src.Content()
	for {
		if pos >= len(content) {
			return EofToken(src), len(content), nil
		}

		match := l.re.FindSubmatchIndex(content[pos:])
		if len(match) == 0 || match[0] != 0 || match[1] <= match[0] {
			return nil, pos, wrongCharError(src, pos)
		}

		for i := 2; i < len(match); i += 2 {
			if match[i] < 0 || match[i+1] < 0 {
				continue
			}

			tokenType := ErrorTokenType
			typeName := ErrorTokenName
			if len(l.types) >= (i >> 1) {
				tokenType = l.types[(i>>1)-1].Type
				typeName = l.types[(i>>1)-1].TypeName
			}

			start := pos + match[i]
			token := NewToken(tokenType, typeName, src.Slice(start, pos+match[i+1]), source.NewPos(src, start))
			if tokenType == ErrorTokenType {
				return nil, pos, badTokenError(token)
			}

			return token, pos + match[1], nil
		}

		pos += match[1]
	}
}
