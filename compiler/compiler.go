// Package compiler turns a validated grammar tree into a table of named parsers.
//
// Compilation has two phases. First an empty placeholder is created for every rule name,
// then rule bodies are translated and placeholders are filled. Identifiers always resolve
// to placeholders, so recursive and mutually recursive rules never cause recursion
// during compilation.
package compiler

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ava12/ebnf/ast"
	"github.com/ava12/ebnf/combinator"
	"github.com/ava12/ebnf/langdef"
	"github.com/ava12/ebnf/refs"
	"github.com/ava12/ebnf/source"
)

// DuplicatePolicy defines how rules defined more than once are treated.
type DuplicatePolicy int

const (
	// WarnOnDuplicates uses the first definition and reports a warning.
	WarnOnDuplicates DuplicatePolicy = iota
	// FailOnDuplicates makes duplicate definitions a compilation error.
	FailOnDuplicates
)

// Options control compilation. Zero value is usable.
type Options struct {
	// Logger receives compilation progress and warnings, nil discards them.
	Logger *slog.Logger

	Duplicates DuplicatePolicy

	// Caseless makes terminals match letters regardless of case.
	Caseless bool

	// Root overrides the default rule used by Table.Parse when rule name is empty.
	// Defaults to the first rule.
	Root string
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CompileString parses grammar description and compiles it.
func CompileString(name, content string, pc Context, opts Options) (*Table, error) {
	return CompileSource(source.NewString(name, content), pc, opts)
}

// CompileBytes parses grammar description and compiles it.
func CompileBytes(name string, content []byte, pc Context, opts Options) (*Table, error) {
	return CompileSource(source.New(name, content), pc, opts)
}

// CompileSource parses grammar description and compiles it.
func CompileSource(s *source.Source, pc Context, opts Options) (*Table, error) {
	g, e := langdef.Parse(s)
	if e != nil {
		return nil, e
	}

	return Compile(g, pc, opts)
}

type compiler struct {
	pc       Context
	caseless bool
	refs     map[string]*combinator.Ref
}

// Compile validates g and builds a parser for every rule.
// nil pc means Basic context.
// Returns *refs.UndefinedError if some referenced rules are not defined,
// *refs.DuplicateError if FailOnDuplicates is set and some rules are defined more than once,
// or the error returned by pc.Accept. No table is returned on error.
func Compile(g *ast.Grammar, pc Context, opts Options) (*Table, error) {
	if pc == nil {
		pc = Basic{}
	}
	log := opts.logger()

	rt, warnings, e := refs.Check(g)
	if e != nil {
		return nil, e
	}
	if opts.Duplicates == FailOnDuplicates {
		e = refs.ValidateUnique(rt)
		if e != nil {
			return nil, e
		}
	}
	for _, w := range warnings {
		log.Warn("grammar warning", "code", w.Code, "message", w.String())
	}

	names := rt.Names()
	root := rt.Root()
	if opts.Root != "" {
		if !rt.IsDefined(opts.Root) {
			return nil, unknownRuleError(opts.Root)
		}
		root = opts.Root
	}

	c := &compiler{pc: pc, caseless: opts.Caseless, refs: make(map[string]*combinator.Ref, len(names))}
	for _, name := range names {
		c.refs[name] = combinator.NewRef(name)
	}
	log.Debug("placeholders created", "rules", len(names))

	for _, name := range names {
		r := rt.Rule(name)
		e = pc.Accept(r)
		if e != nil {
			return nil, e
		}

		p, e := c.compile(r.Expr())
		if e != nil {
			return nil, fmt.Errorf("rule %q: %w", name, e)
		}

		e = c.refs[name].Set(c.rule(name, p))
		if e != nil {
			return nil, e
		}
		log.Debug("rule compiled", "rule", name, "kind", r.Expr().Kind().String())
	}

	return &Table{
		parsers:  c.refs,
		names:    names,
		root:     root,
		warnings: warnings,
	}, nil
}

func (c *compiler) compile(n ast.Node) (combinator.Parser, error) {
	e := c.pc.Accept(n)
	if e != nil {
		return nil, e
	}

	switch n := n.(type) {
	case *ast.Identifier:
		return c.refs[n.Name()], nil

	case *ast.Terminal:
		return combinator.Literal(n.Value(), c.caseless, c.token(n)), nil

	case *ast.Range:
		low, high := n.Bounds()
		return combinator.Range(low, high, c.token(n)), nil

	case *ast.Concatenation:
		ps, e := c.compileAll(n.Children())
		if e != nil {
			return nil, e
		}
		return combinator.Sequence(c.compose(n), ps...), nil

	case *ast.Alternative:
		ps, e := c.compileAll(n.Children())
		if e != nil {
			return nil, e
		}
		return combinator.Choice(c.compose(n), ps...), nil

	case *ast.Optional:
		p, e := c.compile(n.Child())
		if e != nil {
			return nil, e
		}
		return combinator.Optional(c.compose(n), p), nil

	case *ast.Repeated:
		p, e := c.compile(n.Child())
		if e != nil {
			return nil, e
		}
		return combinator.Repeat(c.compose(n), p), nil

	case *ast.Group:
		p, e := c.compile(n.Child())
		if e != nil {
			return nil, e
		}
		return combinator.Map(c.compose(n), p), nil

	case *ast.Exception:
		base, e := c.compile(n.Base())
		if e != nil {
			return nil, e
		}
		excluded, e := c.compile(n.Excluded())
		if e != nil {
			return nil, e
		}
		return combinator.Except(c.compose(n), base, excluded), nil

	case *ast.Grammar, *ast.Rule:
		return nil, unsupportedError(n)
	}

	panic(fmt.Sprintf("compiler: unknown node type %T", n))
}

func (c *compiler) compileAll(ns []ast.Node) ([]combinator.Parser, error) {
	result := make([]combinator.Parser, len(ns))
	for i, n := range ns {
		p, e := c.compile(n)
		if e != nil {
			return nil, e
		}
		result[i] = p
	}
	return result, nil
}

func (c *compiler) token(n ast.Node) combinator.TokenFunc {
	return func(ctx context.Context, m combinator.Match) (any, bool) {
		return c.pc.Token(ctx, n, m)
	}
}

func (c *compiler) compose(n ast.Node) combinator.ComposeFunc {
	return func(ctx context.Context, m combinator.Match, children []combinator.Result) (any, bool) {
		return c.pc.Compose(ctx, n, m, children)
	}
}

func (c *compiler) rule(name string, p combinator.Parser) combinator.Parser {
	return combinator.Map(func(ctx context.Context, m combinator.Match, children []combinator.Result) (any, bool) {
		return c.pc.Rule(ctx, name, m, children[0].Value)
	}, p)
}
