package compiler

import (
	"github.com/ava12/ebnf"
	"github.com/ava12/ebnf/ast"
	"github.com/ava12/ebnf/combinator"
)

// Error codes used by compiler:
const (
	UnsupportedError = ebnf.CompileErrors + iota
	UnknownRuleError
	NoMatchError
	IncompleteError
)

func unsupportedError(n ast.Node) *ebnf.Error {
	return ebnf.FormatError(UnsupportedError, "unsupported %s %q", n.Kind(), n.Text())
}

func unknownRuleError(name string) *ebnf.Error {
	return ebnf.FormatError(UnknownRuleError, "unknown rule %q", name)
}

func noMatchError(cur *combinator.Cursor, name string) *ebnf.Error {
	return ebnf.FormatErrorPos(cur.SourcePos(), NoMatchError, "rule %q does not match", name)
}

func incompleteError(cur *combinator.Cursor, name string) *ebnf.Error {
	rest := []rune(cur.Rest())
	if len(rest) > 10 {
		rest = rest[:10]
	}
	return ebnf.FormatErrorPos(cur.SourcePos(), IncompleteError, "rule %q stopped before %q", name, string(rest))
}
