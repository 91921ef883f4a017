package langdef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/ebnf/ast"
	"github.com/ava12/ebnf/internal/test"
	"github.com/ava12/ebnf/lexer"
)

const greetingGrammar = `
(* classic greeting *)
greeting := 'hello' , ws , name ;
ws := ' ' ;
name := letter , { letter } ;   # at least one letter
letter := 'a'..'z';
`

func checkErrorCode(t *testing.T, samples []string, code int) {
	t.Helper()

	for _, src := range samples {
		_, e := ParseString("sample", src)
		if code == 0 {
			require.NoError(t, e, "sample %q", src)
			continue
		}

		test.ExpectErrorCode(t, code, e)
	}
}

func TestValidSamples(t *testing.T) {
	samples := []string{
		"a = b;",
		"a := b;",
		"a = 'x' | \"y\" | ('z');",
		"a = [b], {c}, (d | e) - f;",
		"a = 'a'..'z' - 'q';",
		"# comment only line\na = b; (* multi\nline *) b = 'b';",
		"a = '';",
	}
	checkErrorCode(t, samples, 0)
}

func TestUnexpectedEof(t *testing.T) {
	samples := []string{
		"foo",
		"foo = ",
		"foo = 'bar'",
		"foo = ('bar'",
		"foo = 'bar';  baz",
	}
	checkErrorCode(t, samples, UnexpectedEofError)
}

func TestEmptyGrammar(t *testing.T) {
	for _, src := range []string{"", " ", "\n", "(* nothing *)", "# nothing\n"} {
		g, e := ParseString("sample", src)
		require.NoError(t, e, "sample %q", src)
		assert.Empty(t, g.Rules(), "sample %q", src)
		assert.Equal(t, src, g.Text())
	}
}

func TestParseBytes(t *testing.T) {
	g, e := ParseBytes("sample", []byte(greetingGrammar))
	require.NoError(t, e)
	g2, e := ParseString("sample", greetingGrammar)
	require.NoError(t, e)
	assert.True(t, ast.Equal(g, g2))

	_, e = ParseBytes("sample", []byte("a = b"))
	test.ExpectErrorCode(t, UnexpectedEofError, e)
}

func TestUnexpectedToken(t *testing.T) {
	samples := []string{
		"= foo;",
		"foo bar;",
		"foo = ;",
		"foo = bar baz;",
		"foo = (bar];",
		"foo = bar;;",
		"'foo' = bar;",
		"foo = 'a'..bar;",
		"foo = a - - b;",
	}
	checkErrorCode(t, samples, UnexpectedTokenError)
}

func TestLexicalErrors(t *testing.T) {
	checkErrorCode(t, []string{"foo = 'bar;", "foo = \"bar;", "foo = (* bar;"}, lexer.BadTokenError)
	checkErrorCode(t, []string{"foo = @;", "foo = bar!;"}, lexer.WrongCharError)
}

func TestInvalidEscapes(t *testing.T) {
	checkErrorCode(t, []string{`a = "\q";`, `a = "\x4";`, `a = "\u12g4";`}, InvalidEscapeError)
	checkErrorCode(t, []string{`a = "\UFFFFFFFF";`, `a = "\ud800";`}, InvalidRuneError)
}

func TestRangeErrors(t *testing.T) {
	checkErrorCode(t, []string{"a = 'ab'..'z';", "a = 'z'..'a';", "a = ''..'a';"}, RangeError)
}

func TestErrorPosition(t *testing.T) {
	_, e := ParseString("sample", "a = b;\nc = d e;")
	test.ExpectErrorCode(t, UnexpectedTokenError, e)
	test.ExpectErrorPos(t, 2, 7, e)
	assert.Contains(t, e.Error(), "in sample at line 2 col 7")
}

func TestGreetingTree(t *testing.T) {
	g, e := ParseString("greeting", greetingGrammar)
	require.NoError(t, e)

	rules := g.Rules()
	require.Len(t, rules, 4)
	assert.Equal(t, greetingGrammar, g.Text())

	greeting := rules[0]
	assert.Equal(t, "greeting", greeting.Name())
	assert.Equal(t, "greeting := 'hello' , ws , name ;", greeting.Text())

	seq, is := greeting.Expr().(*ast.Concatenation)
	require.True(t, is)
	assert.Equal(t, "'hello' , ws , name", seq.Text())
	require.Len(t, seq.Children(), 3)

	hello := seq.Children()[0].(*ast.Terminal)
	assert.Equal(t, "hello", hello.Value())
	assert.Equal(t, "'hello'", hello.Text())

	name := rules[2].Expr().(*ast.Concatenation)
	assert.Equal(t, "{ letter }", name.Children()[1].Text())
	assert.Equal(t, ast.RepeatedKind, name.Children()[1].Kind())

	letter := rules[3].Expr().(*ast.Range)
	low, high := letter.Bounds()
	assert.Equal(t, 'a', low)
	assert.Equal(t, 'z', high)
	assert.Equal(t, "'a'..'z'", letter.Text())

	assert.Equal(t,
		"greeting = 'hello', ws, name;\nws = ' ';\nname = letter, { letter };\nletter = 'a'..'z';",
		ast.Format(g))
}

func TestPrecedence(t *testing.T) {
	g, e := ParseString("", "r = a | b, c - d | [e];")
	require.NoError(t, e)

	alt := g.Rules()[0].Expr().(*ast.Alternative)
	children := alt.Children()
	require.Len(t, children, 3)
	assert.Equal(t, ast.IdentifierKind, children[0].Kind())
	assert.Equal(t, "b, c - d", children[1].Text())
	assert.Equal(t, ast.ExceptionKind, children[1].Children()[1].Kind())
	assert.Equal(t, "c - d", children[1].Children()[1].Text())
	assert.Equal(t, ast.OptionalKind, children[2].Kind())
}

func TestEscapes(t *testing.T) {
	g, e := ParseString("", `r = "a\tb\\c\"d\x41Ж\U0001F600" | 'raw\n';`)
	require.NoError(t, e)

	children := g.Rules()[0].Expr().Children()
	assert.Equal(t, "a\tb\\c\"dAЖ😀", children[0].(*ast.Terminal).Value())
	assert.Equal(t, `raw\n`, children[1].(*ast.Terminal).Value())
}

func TestFormatRoundTrip(t *testing.T) {
	g, e := ParseString("", greetingGrammar)
	require.NoError(t, e)

	formatted := ast.Format(g)
	g2, e := ParseString("", formatted)
	require.NoError(t, e)
	assert.Equal(t, formatted, ast.Format(g2))
}
