package langdef

import (
	"errors"

	"github.com/ava12/ebnf"
	"github.com/ava12/ebnf/lexer"
)

// Error codes used by langdef:
const (
	UnexpectedEofError = ebnf.DefinitionErrors + iota
	UnexpectedTokenError
	InvalidEscapeError
	InvalidRuneError
	RangeError
)

func eofError(token *lexer.Token) *ebnf.Error {
	return ebnf.FormatErrorPos(token, UnexpectedEofError, "unexpected EoF")
}

func unexpectedTokenError(token *lexer.Token) *ebnf.Error {
	return ebnf.FormatErrorPos(token, UnexpectedTokenError, "unexpected %s token %q", token.TypeName(), token.Text())
}

func invalidEscapeError(token *lexer.Token, seq string) *ebnf.Error {
	return ebnf.FormatErrorPos(token, InvalidEscapeError, "invalid escape sequence %q", seq)
}

func invalidRuneError(token *lexer.Token, code string) *ebnf.Error {
	return ebnf.FormatErrorPos(token, InvalidRuneError, "invalid code point %s", code)
}

func rangeError(token *lexer.Token, e error) *ebnf.Error {
	var ee *ebnf.Error
	msg := e.Error()
	if errors.As(e, &ee) {
		msg = ee.Message
	}
	return ebnf.FormatErrorPos(token, RangeError, "%s", msg)
}
