package compiler

import (
	"context"
	"slices"

	"github.com/ava12/ebnf/combinator"
	"github.com/ava12/ebnf/refs"
	"github.com/ava12/ebnf/source"
)

// Table maps rule names to compiled parsers.
// Table is immutable and may be used by concurrent parses with separate cursors.
type Table struct {
	parsers  map[string]*combinator.Ref
	names    []string
	root     string
	warnings []refs.Warning
}

// Parser returns compiled parser for the named rule or nil if there is no such rule.
func (t *Table) Parser(name string) combinator.Parser {
	p, has := t.parsers[name]
	if !has {
		return nil
	}
	return p
}

// Names returns rule names in order of first definition.
func (t *Table) Names() []string {
	return slices.Clone(t.names)
}

// Root returns the default rule name, empty for empty grammar.
func (t *Table) Root() string {
	return t.root
}

// Warnings returns grammar diagnostics found during compilation.
func (t *Table) Warnings() []refs.Warning {
	return slices.Clone(t.warnings)
}

func (t *Table) resolve(name string) (combinator.Parser, string, error) {
	if name == "" {
		name = t.root
	}
	p := t.Parser(name)
	if p == nil {
		return nil, name, unknownRuleError(name)
	}
	return p, name, nil
}

// Parse runs the named rule (the root rule if name is empty) at the cursor position.
// The input need not be consumed entirely.
// Returns an error if the rule is unknown, does not match, or ctx is done.
func (t *Table) Parse(ctx context.Context, name string, cur *combinator.Cursor) (combinator.Result, error) {
	p, name, e := t.resolve(name)
	if e != nil {
		return combinator.Result{}, e
	}

	r, ok := p.Parse(ctx, cur)
	if !ok {
		if ctx.Err() != nil {
			return combinator.Result{}, ctx.Err()
		}
		return combinator.Result{}, noMatchError(cur, name)
	}

	return r, nil
}

// Match runs the named rule (the root rule if name is empty) against the whole source.
// Returns an error if the rule does not match or does not consume all input.
func (t *Table) Match(ctx context.Context, name string, src *source.Source) (combinator.Result, error) {
	cur := combinator.NewCursor(src)
	r, e := t.Parse(ctx, name, cur)
	if e != nil {
		return r, e
	}

	if !cur.AtEnd() {
		if name == "" {
			name = t.root
		}
		return combinator.Result{}, incompleteError(cur, name)
	}

	return r, nil
}
