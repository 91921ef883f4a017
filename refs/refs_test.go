package refs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/ebnf/ast"
	"github.com/ava12/ebnf/internal/test"
	"github.com/ava12/ebnf/langdef"
)

func parse(t *testing.T, src string) *ast.Grammar {
	t.Helper()

	g, e := langdef.ParseString("", src)
	require.NoError(t, e)
	return g
}

func TestCollectNested(t *testing.T) {
	g := parse(t, "a = b, [c | {d - (e)}];\nb = 'b';\nc = a;")
	table := Collect(g)

	assert.Equal(t, "a", table.Root())
	assert.Equal(t, []string{"a", "b", "c"}, table.Names())
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, table.References())
	assert.Equal(t, []string{"b", "c", "d", "e"}, table.DependsOn("a"))
	assert.Empty(t, table.DependsOn("b"))
	assert.Equal(t, []string{"a"}, table.DependsOn("c"))
	assert.Equal(t, []string{"d", "e"}, table.Undefined())
	assert.True(t, table.IsDefined("c"))
	assert.False(t, table.IsDefined("d"))
	assert.Nil(t, table.Rule("d"))
}

func TestCollectorSkipsRuleName(t *testing.T) {
	table := Collect(parse(t, "a = 'x';"))
	assert.Empty(t, table.References())
}

func TestReferenceCompleteness(t *testing.T) {
	g := parse(t, "s = x, (y | [z]), {w - v};\nx = 'x';")
	table := Collect(g)

	var ids []string
	ast.Walk(g, func(n ast.Node) bool {
		if id, is := n.(*ast.Identifier); is {
			ids = append(ids, id.Name())
		}
		return true
	})

	for _, name := range table.References() {
		assert.Contains(t, ids, name)
	}
	assert.Equal(t, []string{"v", "w", "x", "y", "z"}, table.References())
}

func TestMissingReference(t *testing.T) {
	g := parse(t, "a = b, c;\nb = 'x';")
	_, _, e := Check(g)
	test.ExpectErrorCode(t, UndefinedRuleError, e)

	var ue *UndefinedError
	require.True(t, errors.As(e, &ue))
	assert.Equal(t, []string{"c"}, ue.Names())
	assert.Equal(t, "undefined rules: c", e.Error())

	names := ue.Names()
	names[0] = "changed"
	assert.Equal(t, []string{"c"}, ue.Names())
}

func TestAllUndefinedReported(t *testing.T) {
	_, _, e := Check(parse(t, "a = z, y | x;"))

	var ue *UndefinedError
	require.True(t, errors.As(e, &ue))
	assert.Equal(t, []string{"x", "y", "z"}, ue.Names())
}

func TestDuplicates(t *testing.T) {
	g := parse(t, "a = b | 'a';\nb = 'x';\nb = 'y';\na = 'z';")
	table, warnings, e := Check(g)
	require.NoError(t, e)

	assert.Equal(t, []string{"a", "b"}, table.Duplicates())
	assert.Equal(t, []string{"a", "b"}, table.Names())
	assert.Len(t, table.Definitions("b"), 2)
	assert.Equal(t, "b = 'x';", table.Rule("b").Text())

	require.NotEmpty(t, warnings)
	assert.Equal(t, Warning{Code: DuplicateRuleWarning, Names: []string{"a", "b"}}, warnings[0])
	assert.Equal(t, "duplicate rules (first definition used): a, b", warnings[0].String())

	e = ValidateUnique(table)
	test.ExpectErrorCode(t, DuplicateRuleError, e)
	var de *DuplicateError
	require.True(t, errors.As(e, &de))
	assert.Equal(t, []string{"a", "b"}, de.Names())
}

func TestDuplicateDefinitionsAddNoDependencies(t *testing.T) {
	g := parse(t, "a = b;\nb = 'x';\nb = c;\nc = 'y';\nd = d, 'z';\nd = 'w';")
	table, warnings, e := Check(g)
	require.NoError(t, e)

	assert.Equal(t, []string{"b", "c", "d"}, table.References())
	assert.Empty(t, table.DependsOn("b"))
	assert.Equal(t, []Warning{
		{Code: DuplicateRuleWarning, Names: []string{"b", "d"}},
		{Code: UnusedRuleWarning, Names: []string{"c", "d"}},
		{Code: LeftRecursionWarning, Names: []string{"d"}},
	}, warnings)

	g = parse(t, "a = b;\nb = 'x';\nb = a, 'y';")
	_, warnings, e = Check(g)
	require.NoError(t, e)
	assert.Equal(t, []Warning{{Code: DuplicateRuleWarning, Names: []string{"b"}}}, warnings)
}

func TestUnused(t *testing.T) {
	g := parse(t, "root = a;\na = 'a' | b;\nb = 'b';\nc = 'c', d;\nd = c;")
	_, warnings, e := Check(g)
	require.NoError(t, e)
	assert.Equal(t, []Warning{{Code: UnusedRuleWarning, Names: []string{"c", "d"}}}, warnings)
}

func TestLeftRecursion(t *testing.T) {
	samples := []struct {
		src      string
		expected []string
	}{
		{"r = 'x' | r, 'y';", []string{"r"}},
		{"r = [s], r;\ns = 'q';", []string{"r"}},
		{"r = 'x', r | 'y';", nil},
		{"a = b, 'x';\nb = {'y'}, c;\nc = a | 'z';", []string{"a", "b", "c"}},
		{"a = e, a | 'x';\ne = '';", []string{"a"}},
		{"a = b - a;\nb = 'b';", []string{"a"}},
	}

	for _, s := range samples {
		_, warnings, e := Check(parse(t, s.src))
		require.NoError(t, e, s.src)

		var found []string
		for _, w := range warnings {
			if w.Code == LeftRecursionWarning {
				found = w.Names
			}
		}
		assert.Equal(t, s.expected, found, s.src)
	}
}

func TestEmptyAnalysis(t *testing.T) {
	g := ast.Must(ast.NewGrammar(""))
	table, warnings, e := Check(g)
	require.NoError(t, e)
	assert.Empty(t, warnings)
	assert.Equal(t, "", table.Root())
	assert.Empty(t, table.Names())
}
