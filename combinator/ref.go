package combinator

import (
	"context"

	"github.com/ava12/ebnf"
)

// Error codes used by combinator:
const (
	RefAssignedError = ebnf.CombinatorErrors + iota
	NilParserError
)

// Ref is a named placeholder parser filled exactly once.
// It allows building mutually recursive parsers before their bodies exist.
//
// Entering the same Ref again at the same cursor position within one parse fails,
// so left-recursive rules terminate instead of looping.
type Ref struct {
	name   string
	parser Parser
}

// NewRef creates an empty placeholder.
func NewRef(name string) *Ref {
	return &Ref{name: name}
}

// Name returns placeholder name.
func (r *Ref) Name() string {
	return r.name
}

// Set fills the placeholder. Returns an error if p is nil or the placeholder is already filled.
func (r *Ref) Set(p Parser) error {
	if p == nil {
		return ebnf.FormatError(NilParserError, "cannot assign nil parser to %q", r.name)
	}
	if r.parser != nil {
		return ebnf.FormatError(RefAssignedError, "parser %q is already assigned", r.name)
	}

	r.parser = p
	return nil
}

// Filled reports whether Set has been called successfully.
func (r *Ref) Filled() bool {
	return r.parser != nil
}

// Parse delegates to the assigned parser. Panics if the placeholder is empty.
// Fails if ctx is done.
func (r *Ref) Parse(ctx context.Context, cur *Cursor) (Result, bool) {
	checkArgs(ctx, cur)
	if r.parser == nil {
		panic("combinator: parser " + r.name + " is not assigned")
	}
	if ctx.Err() != nil {
		return Result{}, false
	}

	key := guardKey{r, cur.pos}
	if cur.guard[key] {
		return Result{}, false
	}

	cur.guard[key] = true
	defer delete(cur.guard, key)
	return r.parser.Parse(ctx, cur)
}
