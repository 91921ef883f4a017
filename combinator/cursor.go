// Package combinator implements input cursor and parser combinators
// used as building blocks of compiled grammars.
package combinator

import (
	"github.com/ava12/ebnf/source"
)

// Mark is a saved cursor position.
type Mark int

type guardKey struct {
	ref *Ref
	pos int
}

// Cursor is a read position in a source. Cursor holds all per-parse state,
// so it must not be shared between concurrent parses.
type Cursor struct {
	src   *source.Source
	pos   int
	guard map[guardKey]bool
}

// NewCursor creates a cursor at the beginning of src.
func NewCursor(src *source.Source) *Cursor {
	return &Cursor{src: src, guard: make(map[guardKey]bool)}
}

// NewStringCursor creates a cursor over named text.
func NewStringCursor(name, text string) *Cursor {
	return NewCursor(source.NewString(name, text))
}

// Source returns the source being read.
func (c *Cursor) Source() *source.Source {
	return c.src
}

// Pos returns current byte offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Mark saves current position.
func (c *Cursor) Mark() Mark {
	return Mark(c.pos)
}

// Reset restores position saved by Mark.
func (c *Cursor) Reset(m Mark) {
	c.pos = int(m)
}

// AtEnd reports whether the whole source has been consumed.
func (c *Cursor) AtEnd() bool {
	return c.pos >= c.src.Len()
}

// Rest returns unread text.
func (c *Cursor) Rest() string {
	return c.src.Slice(c.pos, c.src.Len())
}

// LineCol returns 1-based line and column of current position.
func (c *Cursor) LineCol() (line, col int) {
	return c.src.LineCol(c.pos)
}

// SourcePos returns current position suitable for error reporting.
func (c *Cursor) SourcePos() source.Pos {
	return source.NewPos(c.src, c.pos)
}

func (c *Cursor) advance(size int) Span {
	start := c.pos
	c.pos += size
	return Span{Start: start, End: c.pos}
}

func (c *Cursor) match(span Span) Match {
	return Match{Span: span, Text: c.src.Slice(span.Start, span.End)}
}
