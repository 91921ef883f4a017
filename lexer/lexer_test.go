package lexer

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/ebnf/internal/test"
	"github.com/ava12/ebnf/source"
)

var (
	tokenRe    = regexp.MustCompile(`^(?s:\s+|(\d+)|([a-z_][a-z0-9_]*)|('.*?')|('.{0,10}))`)
	tokenTypes = []TokenType{{1, "number"}, {2, "name"}, {3, "string"}}
)

func newLexer() *Lexer {
	return New(tokenRe, tokenTypes)
}

func TestEmpty(t *testing.T) {
	sources := []string{"", " ", "  ", " \t\r\n "}
	for _, src := range sources {
		tok, _, e := newLexer().Next(source.NewString("", src), 0)
		require.NoError(t, e, "source %q", src)
		assert.True(t, tok.IsEof(), "source %q", src)
		assert.Equal(t, EofTokenName, tok.TypeName())
	}
}

func TestTokenSamples(t *testing.T) {
	l := newLexer()
	src := source.NewString("", "123 foo\n'bar'")
	pos := 0
	for _, tokType := range tokenTypes {
		var (
			tok *Token
			e   error
		)
		tok, pos, e = l.Next(src, pos)
		require.NoError(t, e)
		assert.Equal(t, tokType.TypeName, tok.TypeName())
		assert.Equal(t, tokType.Type, tok.Type())
	}

	tok, _, e := l.Next(src, pos)
	require.NoError(t, e)
	assert.True(t, tok.IsEof())
	assert.Equal(t, 2, tok.Line())
	assert.Equal(t, 6, tok.Col())
}

func TestTokenPositions(t *testing.T) {
	src := source.NewString("src", "  foo\n 42")
	l := newLexer()

	tok, pos, e := l.Next(src, 0)
	require.NoError(t, e)
	assert.Equal(t, "foo", tok.Text())
	assert.Equal(t, 2, tok.Offset())
	assert.Equal(t, 5, tok.End())
	assert.Equal(t, 5, pos)
	assert.Equal(t, "src", tok.SourceName())

	tok, _, e = l.Next(src, pos)
	require.NoError(t, e)
	assert.Equal(t, "42", tok.Text())
	assert.Equal(t, 2, tok.Line())
	assert.Equal(t, 2, tok.Col())
}

func TestWrongChar(t *testing.T) {
	_, _, e := newLexer().Next(source.NewString("", "foo ?"), 3)
	test.ExpectErrorCode(t, WrongCharError, e)
}

func TestBadToken(t *testing.T) {
	_, _, e := newLexer().Next(source.NewString("", "'unterminated"), 0)
	test.ExpectErrorCode(t, BadTokenError, e)
}
