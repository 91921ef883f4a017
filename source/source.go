// Package source defines source text holder used by grammar reader and parsers.
package source

import (
	"bytes"
	"sort"
	"unicode/utf8"
)

// Source holds named text content and line start offsets.
// Source is immutable and safe for concurrent use.
type Source struct {
	name       string
	content    []byte
	text       string
	lineStarts []int
}

// New creates Source. content must not be modified afterwards.
func New(name string, content []byte) *Source {
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s := &Source{name: name, content: content, text: string(content), lineStarts: make([]int, 1, lineCnt)}
	for i, b := range content {
		if b == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

// NewString creates Source from string content.
func NewString(name, content string) *Source {
	return New(name, []byte(content))
}

// Name returns source name, may be empty.
func (s *Source) Name() string {
	return s.name
}

// Content returns source content.
func (s *Source) Content() []byte {
	return s.content
}

// Text returns source content as a string.
func (s *Source) Text() string {
	return s.text
}

// Len returns content length in bytes.
func (s *Source) Len() int {
	return len(s.content)
}

// Slice returns the text between byte offsets, clamped to content bounds.
func (s *Source) Slice(start, end int) string {
	start = s.clamp(start)
	end = s.clamp(end)
	if end < start {
		return ""
	}
	return s.text[start:end]
}

func (s *Source) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(s.content) {
		return len(s.content)
	}
	return pos
}

// LineCol returns 1-based line and column (in runes) of byte offset pos.
// Offsets beyond content bounds are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	pos = s.clamp(pos)
	lineIndex := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1
	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Pos returns byte offset of 1-based line and column.
// Returns 0 for non-positive line or column, content length for positions beyond the end.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.content)
	if line > len(s.lineStarts) {
		return l
	}

	pos := s.lineStarts[line-1]
	for col > 1 && pos < l && s.content[pos] != '\n' {
		_, size := utf8.DecodeRune(s.content[pos:])
		pos += size
		col--
	}
	return pos
}

// Pos is a position in source, implements ebnf.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

// NewPos creates Pos for byte offset pos of src.
func NewPos(src *Source, pos int) Pos {
	line, col := src.LineCol(pos)
	return Pos{src, src.clamp(pos), line, col}
}

// Source returns source, may be nil for zero Pos.
func (p Pos) Source() *Source {
	return p.src
}

// SourceName returns source name or empty string.
func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

// Offset returns byte offset.
func (p Pos) Offset() int {
	return p.pos
}

// Line returns 1-based line number or 0.
func (p Pos) Line() int {
	return p.line
}

// Col returns 1-based column number or 0.
func (p Pos) Col() int {
	return p.col
}
