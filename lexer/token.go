package lexer

import (
	"github.com/ava12/ebnf/source"
)

const (
	EofTokenType = -2
	EofTokenName = "-end-of-file-"
)

// Token is a lexeme fetched by Lexer. Implements ebnf.SourcePos.
type Token struct {
	tokenType int
	typeName  string
	text      string
	pos       source.Pos
}

// NewToken creates a token.
func NewToken(tokenType int, typeName, text string, pos source.Pos) *Token {
	return &Token{tokenType, typeName, text, pos}
}

// EofToken creates end-of-file token positioned after the last byte of s.
func EofToken(s *source.Source) *Token {
	return &Token{tokenType: EofTokenType, typeName: EofTokenName, pos: source.NewPos(s, s.Len())}
}

func (t *Token) Type() int {
	return t.tokenType
}

func (t *Token) TypeName() string {
	return t.typeName
}

func (t *Token) Text() string {
	return t.text
}

func (t *Token) Pos() source.Pos {
	return t.pos
}

// Offset returns byte offset of the first token byte.
func (t *Token) Offset() int {
	return t.pos.Offset()
}

// End returns byte offset following the last token byte.
func (t *Token) End() int {
	return t.pos.Offset() + len(t.text)
}

func (t *Token) IsEof() bool {
	return t.tokenType == EofTokenType
}

func (t *Token) SourceName() string {
	return t.pos.SourceName()
}

func (t *Token) Line() int {
	return t.pos.Line()
}

func (t *Token) Col() int {
	return t.pos.Col()
}
