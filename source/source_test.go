package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{9, 4, 4},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{5, 3, 2},
		},
		"é\né": {
			{2, 1, 2},
			{3, 2, 1},
			{5, 2, 2},
		},
	}

	for text, results := range samples {
		s := NewString("", text)
		for _, res := range results {
			l, c := s.LineCol(res.pos)
			assert.Equal(t, res.line, l, "sample %q pos %d", text, res.pos)
			assert.Equal(t, res.col, c, "sample %q pos %d", text, res.pos)
		}
	}
}

func TestSourcePos(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{0, 1, 2},
			{0, 2, 1},
		},
		"ab\ncd": {
			{0, 1, 1},
			{1, 1, 2},
			{2, 1, 5},
			{3, 2, 1},
			{4, 2, 2},
			{5, 3, 1},
		},
	}

	for text, results := range samples {
		s := NewString("", text)
		for _, res := range results {
			assert.Equal(t, res.pos, s.Pos(res.line, res.col), "sample %q line %d col %d", text, res.line, res.col)
		}
	}
}

func TestSlice(t *testing.T) {
	s := NewString("name", "hello world")
	assert.Equal(t, "hello", s.Slice(0, 5))
	assert.Equal(t, "world", s.Slice(6, 100))
	assert.Equal(t, "", s.Slice(5, 2))
	assert.Equal(t, "name", s.Name())
	assert.Equal(t, 11, s.Len())
}

func TestNewPos(t *testing.T) {
	s := NewString("src", "a\nbc")
	p := NewPos(s, 3)
	assert.Equal(t, "src", p.SourceName())
	assert.Equal(t, 3, p.Offset())
	assert.Equal(t, 2, p.Line())
	assert.Equal(t, 2, p.Col())
	assert.Same(t, s, p.Source())

	var zero Pos
	assert.Equal(t, "", zero.SourceName())
	assert.Equal(t, 0, zero.Line())
}
