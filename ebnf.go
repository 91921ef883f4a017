/*
Package ebnf compiles grammars written in an EBNF-like notation into recursive-descent parsers.

Consists of subpackages:
  - ast: immutable grammar tree nodes, visitor traversal, structural equality and printing;
  - langdef: converts grammar description text to ast.Grammar;
  - lexer: regexp-driven lexical analyzer used by langdef;
  - source: source text with line and column lookup;
  - refs: collects rule definitions and references and validates them;
  - combinator: input cursor and parser combinators;
  - compiler: turns a validated grammar into a table of named parsers;
  - cmd/ebnfc: console utility to check, print, and run grammars.

Typical usage is:

1. Describe grammar in EBNF-like notation, e.g.

	greeting = 'hello', ws, name;
	ws = ' ';
	name = letter, {letter};
	letter = 'a'..'z';

2. Compile it with compiler.CompileString, supplying a compiler.Context that builds result values.

3. Run any rule of the resulting table against input text.
*/
package ebnf

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	TreeErrors       = 1   // used by ast
	LexicalErrors    = 101 // used by lexer
	DefinitionErrors = 201 // used by langdef
	ReferenceErrors  = 301 // used by refs
	CompileErrors    = 401 // used by compiler
	CombinatorErrors = 501 // used by combinator
)

// Error is the error type used by ebnf subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
