package compiler

import (
	"context"
	"slices"

	"github.com/ava12/ebnf/ast"
	"github.com/ava12/ebnf/combinator"
	"github.com/ava12/ebnf/tree"
)

// Context is a policy consulted by the compiler and by compiled parsers.
//
// Accept is called at compile time for every node, a non-nil error aborts compilation.
// Token builds values for Terminal and Range matches, Compose builds values for composite
// nodes from child results, Rule builds the value of a whole rule.
// Returning false from a builder fails the match.
type Context interface {
	Accept(n ast.Node) error
	Token(ctx context.Context, n ast.Node, m combinator.Match) (any, bool)
	Compose(ctx context.Context, n ast.Node, m combinator.Match, children []combinator.Result) (any, bool)
	Rule(ctx context.Context, name string, m combinator.Match, value any) (any, bool)
}

// Basic is the identity context. It accepts every node, uses matched text as token value,
// a slice of child values for Concatenation and Repeated, the only child value otherwise.
type Basic struct{}

func (Basic) Accept(ast.Node) error {
	return nil
}

func (Basic) Token(_ context.Context, _ ast.Node, m combinator.Match) (any, bool) {
	return m.Text, true
}

func (Basic) Compose(_ context.Context, n ast.Node, _ combinator.Match, children []combinator.Result) (any, bool) {
	switch n.Kind() {
	case ast.ConcatenationKind, ast.RepeatedKind:
		values := make([]any, len(children))
		for i, c := range children {
			values[i] = c.Value
		}
		return values, true
	}

	if len(children) == 0 {
		return combinator.None, true
	}
	return children[0].Value, true
}

func (Basic) Rule(_ context.Context, _ string, _ combinator.Match, value any) (any, bool) {
	return value, true
}

// Tree is a context building *tree.Node parse trees.
// Optional, Alternative, Group, and Exception nodes are transparent.
// Rule nodes take over children of their Concatenation or Repeated body.
type Tree struct {
	Basic
}

func (Tree) Token(_ context.Context, n ast.Node, m combinator.Match) (any, bool) {
	return tree.New("", n.Kind(), m), true
}

func (Tree) Compose(_ context.Context, n ast.Node, m combinator.Match, children []combinator.Result) (any, bool) {
	nodes := make([]*tree.Node, 0, len(children))
	for _, c := range children {
		if cn, is := c.Value.(*tree.Node); is {
			nodes = append(nodes, cn)
		}
	}

	switch n.Kind() {
	case ast.ConcatenationKind, ast.RepeatedKind:
		return tree.New("", n.Kind(), m, nodes...), true
	}

	if len(nodes) == 0 {
		return combinator.None, true
	}
	return nodes[0], true
}

func (Tree) Rule(_ context.Context, name string, m combinator.Match, value any) (any, bool) {
	vn, is := value.(*tree.Node)
	if !is {
		return tree.New(name, ast.RuleKind, m), true
	}

	if vn.Rule() == "" && (vn.Kind() == ast.ConcatenationKind || vn.Kind() == ast.RepeatedKind) {
		return tree.New(name, ast.RuleKind, m, vn.Children()...), true
	}
	return tree.New(name, ast.RuleKind, m, vn), true
}

type restricted struct {
	Context
	kinds []ast.Kind
}

// Restrict returns a context rejecting listed node kinds at compile time and delegating everything else to base.
func Restrict(base Context, kinds ...ast.Kind) Context {
	return &restricted{base, slices.Clone(kinds)}
}

func (r *restricted) Accept(n ast.Node) error {
	if slices.Contains(r.kinds, n.Kind()) {
		return unsupportedError(n)
	}
	return r.Context.Accept(n)
}
