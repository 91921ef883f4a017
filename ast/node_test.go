package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/ebnf/internal/test"
)

func id(name string) *Identifier {
	return Must(NewIdentifier("", name))
}

func lit(value string) *Terminal {
	return NewTerminal("", value)
}

func TestArity(t *testing.T) {
	a := id("a")

	_, e := NewConcatenation("", a)
	test.ExpectErrorCode(t, ArityError, e)

	_, e = NewAlternative("")
	test.ExpectErrorCode(t, ArityError, e)

	_, e = NewConcatenation("", a, nil)
	test.ExpectErrorCode(t, NilChildError, e)

	_, e = NewOptional("", nil)
	test.ExpectErrorCode(t, NilChildError, e)

	_, e = NewException("", a, nil)
	test.ExpectErrorCode(t, NilChildError, e)

	_, e = NewRule("", nil, a)
	test.ExpectErrorCode(t, NilChildError, e)

	_, e = NewGrammar("", nil)
	test.ExpectErrorCode(t, NilChildError, e)

	_, e = NewIdentifier("", "")
	test.ExpectErrorCode(t, EmptyNameError, e)
}

func TestTypedNilChild(t *testing.T) {
	var (
		term  *Terminal
		ident *Identifier
		group *Group
	)

	_, e := NewConcatenation("", term, lit("x"))
	test.ExpectErrorCode(t, NilChildError, e)

	_, e = NewAlternative("", lit("x"), ident)
	test.ExpectErrorCode(t, NilChildError, e)

	_, e = NewOptional("", ident)
	test.ExpectErrorCode(t, NilChildError, e)

	_, e = NewRepeated("", group)
	test.ExpectErrorCode(t, NilChildError, e)

	_, e = NewException("", id("a"), term)
	test.ExpectErrorCode(t, NilChildError, e)

	_, e = NewRule("", id("a"), group)
	test.ExpectErrorCode(t, NilChildError, e)
}

func TestRangeErrors(t *testing.T) {
	samples := []struct {
		begin, end string
		code       int
	}{
		{"ab", "z", RangeBoundError},
		{"a", "", RangeBoundError},
		{"z", "a", ReversedRangeError},
	}

	for _, s := range samples {
		_, e := NewRange("", lit(s.begin), lit(s.end))
		test.ExpectErrorCode(t, s.code, e)
	}

	r := Must(NewRange("", lit("а"), lit("я")))
	low, high := r.Bounds()
	assert.Equal(t, 'а', low)
	assert.Equal(t, 'я', high)
}

func TestMustPanics(t *testing.T) {
	assert.Panics(t, func() {
		Must(NewAlternative("", id("a")))
	})
}

func TestChildrenAreCopies(t *testing.T) {
	a, b := id("a"), id("b")
	c := Must(NewConcatenation("", a, b))

	children := c.Children()
	children[0] = b
	assert.Same(t, a, c.Children()[0])

	g := Must(NewGrammar("", Must(NewRule("", id("r"), c))))
	rules := g.Rules()
	rules[0] = nil
	assert.NotNil(t, g.Rules()[0])
}

func TestGeneratedText(t *testing.T) {
	alt := Must(NewAlternative("", id("a"), Must(NewConcatenation("", lit("x"), id("b")))))
	assert.Equal(t, "a | 'x', b", alt.Text())

	src := "a|'x' ,b"
	alt = Must(NewAlternative(src, id("a"), Must(NewConcatenation("", lit("x"), id("b")))))
	assert.Equal(t, src, alt.Text())
}

func TestAccessors(t *testing.T) {
	base, excluded := id("letter"), lit("x")
	x := Must(NewException("", base, excluded))
	assert.Same(t, base, x.Base())
	assert.Same(t, excluded, x.Excluded())
	assert.Equal(t, ExceptionKind, x.Kind())

	r := Must(NewRule("", id("name"), x))
	assert.Equal(t, "name", r.Name())
	require.NotNil(t, r.NameNode())
	assert.Equal(t, r.Name(), r.NameNode().Name())
	assert.Equal(t, IdentifierKind, r.NameNode().Kind())
	assert.Same(t, Node(x), r.Expr())
	require.Len(t, r.Children(), 1)

	assert.Equal(t, "repeated", RepeatedKind.String())
	assert.Equal(t, "unknown", Kind(100).String())
}
