package combinator

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) of the source.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Match is a span together with the text it covers.
type Match struct {
	Span
	Text string
}

// Result is a successful parse result.
type Result struct {
	Span
	Value any
}

// NoneValue is the type of None.
type NoneValue struct{}

// None is the value of an optional construct that matched nothing.
var None = NoneValue{}

// MarshalJSON encodes None as null.
func (NoneValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// MarshalYAML encodes None as null.
func (NoneValue) MarshalYAML() (any, error) {
	return nil, nil
}

// Parser is a parsing function.
// On success it returns a result and advances the cursor past the matched span,
// on failure it returns false and leaves the cursor unchanged.
// Parser panics if ctx or cur is nil.
type Parser interface {
	Parse(ctx context.Context, cur *Cursor) (Result, bool)
}

// Func adapts a plain function to Parser.
type Func func(ctx context.Context, cur *Cursor) (Result, bool)

func (f Func) Parse(ctx context.Context, cur *Cursor) (Result, bool) {
	checkArgs(ctx, cur)
	return f(ctx, cur)
}

func checkArgs(ctx context.Context, cur *Cursor) {
	if ctx == nil {
		panic("combinator: nil context")
	}
	if cur == nil {
		panic("combinator: nil cursor")
	}
}

// TokenFunc builds a value for matched terminal text. Returning false fails the match.
type TokenFunc func(ctx context.Context, m Match) (any, bool)

// ComposeFunc builds a value from child results. Returning false fails the match.
type ComposeFunc func(ctx context.Context, m Match, children []Result) (any, bool)

func token(ctx context.Context, cur *Cursor, start Mark, size int, build TokenFunc) (Result, bool) {
	span := cur.advance(size)
	if build == nil {
		return Result{Span: span, Value: cur.match(span).Text}, true
	}

	value, ok := build(ctx, cur.match(span))
	if !ok {
		cur.Reset(start)
		return Result{}, false
	}
	return Result{Span: span, Value: value}, true
}

func compose(ctx context.Context, cur *Cursor, start Mark, children []Result, build ComposeFunc) (Result, bool) {
	span := Span{Start: int(start), End: cur.Pos()}
	if build == nil {
		values := make([]any, len(children))
		for i, c := range children {
			values[i] = c.Value
		}
		return Result{Span: span, Value: values}, true
	}

	value, ok := build(ctx, cur.match(span), children)
	if !ok {
		cur.Reset(start)
		return Result{}, false
	}
	return Result{Span: span, Value: value}, true
}

// Literal matches exact text. If caseless is set, letters are compared with Unicode case folding.
func Literal(text string, caseless bool, build TokenFunc) Parser {
	return Func(func(ctx context.Context, cur *Cursor) (Result, bool) {
		rest := cur.Rest()
		size := len(text)
		if caseless {
			var ok bool
			size, ok = foldPrefix(rest, text)
			if !ok {
				return Result{}, false
			}
		} else if !strings.HasPrefix(rest, text) {
			return Result{}, false
		}

		return token(ctx, cur, cur.Mark(), size, build)
	})
}

// foldPrefix returns length of the prefix of s equal to prefix under case folding.
func foldPrefix(s, prefix string) (int, bool) {
	size := 0
	for _, pr := range prefix {
		r, n := utf8.DecodeRuneInString(s[size:])
		if n == 0 || !strings.EqualFold(string(r), string(pr)) {
			return 0, false
		}
		size += n
	}
	return size, true
}

// Range matches a single rune within inclusive bounds.
func Range(low, high rune, build TokenFunc) Parser {
	return Func(func(ctx context.Context, cur *Cursor) (Result, bool) {
		r, size := utf8.DecodeRuneInString(cur.Rest())
		if size == 0 || r < low || r > high {
			return Result{}, false
		}

		return token(ctx, cur, cur.Mark(), size, build)
	})
}

// Sequence matches all parsers in order. Value is built from all child results.
func Sequence(build ComposeFunc, ps ...Parser) Parser {
	return Func(func(ctx context.Context, cur *Cursor) (Result, bool) {
		start := cur.Mark()
		children := make([]Result, 0, len(ps))
		for _, p := range ps {
			r, ok := p.Parse(ctx, cur)
			if !ok {
				cur.Reset(start)
				return Result{}, false
			}
			children = append(children, r)
		}

		return compose(ctx, cur, start, children, build)
	})
}

// Choice tries parsers in order from the same position, the first success wins.
// Value is built from the single winning result.
func Choice(build ComposeFunc, ps ...Parser) Parser {
	return Func(func(ctx context.Context, cur *Cursor) (Result, bool) {
		start := cur.Mark()
		for _, p := range ps {
			r, ok := p.Parse(ctx, cur)
			if !ok {
				continue
			}

			if build == nil {
				return r, true
			}
			if res, ok := compose(ctx, cur, start, []Result{r}, build); ok {
				return res, true
			}
		}
		return Result{}, false
	})
}

// Optional never fails. If p fails, result is empty span with None value
// and build is not called.
func Optional(build ComposeFunc, p Parser) Parser {
	return Func(func(ctx context.Context, cur *Cursor) (Result, bool) {
		start := cur.Mark()
		r, ok := p.Parse(ctx, cur)
		if ok {
			if build == nil {
				return r, true
			}
			if res, ok := compose(ctx, cur, start, []Result{r}, build); ok {
				return res, true
			}
		}

		return Result{Span: Span{Start: int(start), End: int(start)}, Value: None}, true
	})
}

// Repeat matches p greedily zero or more times and never fails unless build rejects the result.
// Repetition stops when p fails or succeeds without consuming input.
func Repeat(build ComposeFunc, p Parser) Parser {
	return Func(func(ctx context.Context, cur *Cursor) (Result, bool) {
		start := cur.Mark()
		var children []Result
		for {
			before := cur.Mark()
			r, ok := p.Parse(ctx, cur)
			if !ok {
				break
			}
			if cur.Mark() == before {
				break
			}
			children = append(children, r)
		}

		return compose(ctx, cur, start, children, build)
	})
}

// Except matches base unless excluded matches at the same position.
func Except(build ComposeFunc, base, excluded Parser) Parser {
	return Func(func(ctx context.Context, cur *Cursor) (Result, bool) {
		start := cur.Mark()
		r, ok := base.Parse(ctx, cur)
		if !ok {
			return Result{}, false
		}

		end := cur.Mark()
		cur.Reset(start)
		if _, ok := excluded.Parse(ctx, cur); ok {
			cur.Reset(start)
			return Result{}, false
		}

		cur.Reset(end)
		if build == nil {
			return r, true
		}
		return compose(ctx, cur, start, []Result{r}, build)
	})
}

// Map matches p and rebuilds its value.
func Map(build ComposeFunc, p Parser) Parser {
	return Func(func(ctx context.Context, cur *Cursor) (Result, bool) {
		start := cur.Mark()
		r, ok := p.Parse(ctx, cur)
		if !ok || build == nil {
			return r, ok
		}
		return compose(ctx, cur, start, []Result{r}, build)
	})
}
