// Package ast defines immutable grammar tree nodes.
//
// Node is a closed set of variants: Grammar, Rule, Identifier, Terminal, Range,
// Concatenation, Alternative, Optional, Repeated, Group, and Exception.
// Every node carries the exact source text it was parsed from.
// Nodes are never modified after construction, transformations build new trees.
package ast

import (
	"slices"
	"unicode/utf8"
)

// Kind identifies node variant.
type Kind int

const (
	GrammarKind Kind = iota
	RuleKind
	IdentifierKind
	TerminalKind
	RangeKind
	ConcatenationKind
	AlternativeKind
	OptionalKind
	RepeatedKind
	GroupKind
	ExceptionKind
)

var kindNames = [...]string{
	GrammarKind:       "grammar",
	RuleKind:          "rule",
	IdentifierKind:    "identifier",
	TerminalKind:      "terminal",
	RangeKind:         "range",
	ConcatenationKind: "concatenation",
	AlternativeKind:   "alternative",
	OptionalKind:      "optional",
	RepeatedKind:      "repeated",
	GroupKind:         "group",
	ExceptionKind:     "exception",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Node is a grammar tree node. Implementations are defined in this package only.
type Node interface {
	// Kind returns node variant.
	Kind() Kind
	// Text returns the source text node was parsed from.
	Text() string
	// Children returns a copy of child nodes list, nil for leaves.
	Children() []Node
	// Accept traverses the node and its descendants with v.
	Accept(v Visitor)

	sealed()
	isNil() bool
}

type base struct {
	text string
}

func (b base) Text() string {
	return b.text
}

func (base) sealed() {}

type composite struct {
	base
	children []Node
}

func (c composite) Children() []Node {
	return slices.Clone(c.children)
}

// Grammar is the root node containing rules in source order.
type Grammar struct {
	base
	rules []*Rule
}

// NewGrammar creates a grammar. text may be empty, in this case formatted rules are used.
func NewGrammar(text string, rules ...*Rule) (*Grammar, error) {
	for i, r := range rules {
		if r == nil {
			return nil, nilChildError(GrammarKind, i)
		}
	}

	g := &Grammar{rules: slices.Clone(rules)}
	g.text = textOr(text, g)
	return g, nil
}

func (g *Grammar) Kind() Kind {
	return GrammarKind
}

func (g *Grammar) Children() []Node {
	result := make([]Node, len(g.rules))
	for i, r := range g.rules {
		result[i] = r
	}
	return result
}

// Rules returns a copy of grammar rules.
func (g *Grammar) Rules() []*Rule {
	return slices.Clone(g.rules)
}

// Rule is a named production.
type Rule struct {
	base
	name *Identifier
	expr Node
}

// NewRule creates a rule named by identifier name with right-hand side expr.
func NewRule(text string, name *Identifier, expr Node) (*Rule, error) {
	if name == nil {
		return nil, nilChildError(RuleKind, 0)
	}
	if isNil(expr) {
		return nil, nilChildError(RuleKind, 1)
	}

	r := &Rule{name: name, expr: expr}
	r.text = textOr(text, r)
	return r, nil
}

func (r *Rule) Kind() Kind {
	return RuleKind
}

// Children returns the right-hand side expression only, the rule name is not a reference.
func (r *Rule) Children() []Node {
	return []Node{r.expr}
}

// Name returns rule name.
func (r *Rule) Name() string {
	return r.name.name
}

// NameNode returns the identifier naming the rule.
func (r *Rule) NameNode() *Identifier {
	return r.name
}

// Expr returns the right-hand side expression.
func (r *Rule) Expr() Node {
	return r.expr
}

// Identifier is a reference to a rule by name.
type Identifier struct {
	base
	name string
}

// NewIdentifier creates an identifier; name must not be empty.
func NewIdentifier(text, name string) (*Identifier, error) {
	if name == "" {
		return nil, emptyNameError()
	}

	id := &Identifier{name: name}
	id.text = textOr(text, id)
	return id, nil
}

func (id *Identifier) Kind() Kind {
	return IdentifierKind
}

func (id *Identifier) Children() []Node {
	return nil
}

// Name returns referenced rule name.
func (id *Identifier) Name() string {
	return id.name
}

// Terminal is a literal string.
type Terminal struct {
	base
	value string
}

// NewTerminal creates a literal; value is the unquoted literal content, text is its quoted source form.
func NewTerminal(text, value string) *Terminal {
	t := &Terminal{value: value}
	t.text = textOr(text, t)
	return t
}

func (t *Terminal) Kind() Kind {
	return TerminalKind
}

func (t *Terminal) Children() []Node {
	return nil
}

// Value returns literal content.
func (t *Terminal) Value() string {
	return t.value
}

// Range is an inclusive character range bounded by two single-character terminals.
type Range struct {
	base
	begin, end *Terminal
	low, high  rune
}

// NewRange creates a range; both bounds must contain exactly one character and begin must not exceed end.
func NewRange(text string, begin, end *Terminal) (*Range, error) {
	if begin == nil {
		return nil, nilChildError(RangeKind, 0)
	}
	if end == nil {
		return nil, nilChildError(RangeKind, 1)
	}

	low, valid := singleRune(begin.value)
	if !valid {
		return nil, rangeBoundError(begin.value)
	}
	high, valid := singleRune(end.value)
	if !valid {
		return nil, rangeBoundError(end.value)
	}
	if low > high {
		return nil, reversedRangeError(begin.value, end.value)
	}

	r := &Range{begin: begin, end: end, low: low, high: high}
	r.text = textOr(text, r)
	return r, nil
}

func singleRune(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	return r, size > 0 && size == len(s) && r != utf8.RuneError
}

func (r *Range) Kind() Kind {
	return RangeKind
}

func (r *Range) Children() []Node {
	return nil
}

// Begin returns the lower bound terminal.
func (r *Range) Begin() *Terminal {
	return r.begin
}

// End returns the upper bound terminal.
func (r *Range) End() *Terminal {
	return r.end
}

// Bounds returns inclusive lower and upper bound characters.
func (r *Range) Bounds() (low, high rune) {
	return r.low, r.high
}

// Concatenation matches all children in order.
type Concatenation struct {
	composite
}

// NewConcatenation creates a concatenation of at least two children.
func NewConcatenation(text string, children ...Node) (*Concatenation, error) {
	e := checkChildren(ConcatenationKind, children, 2, -1)
	if e != nil {
		return nil, e
	}

	c := &Concatenation{composite{children: slices.Clone(children)}}
	c.text = textOr(text, c)
	return c, nil
}

func (c *Concatenation) Kind() Kind {
	return ConcatenationKind
}

// Alternative matches the first matching child.
type Alternative struct {
	composite
}

// NewAlternative creates an ordered choice of at least two children.
func NewAlternative(text string, children ...Node) (*Alternative, error) {
	e := checkChildren(AlternativeKind, children, 2, -1)
	if e != nil {
		return nil, e
	}

	a := &Alternative{composite{children: slices.Clone(children)}}
	a.text = textOr(text, a)
	return a, nil
}

func (a *Alternative) Kind() Kind {
	return AlternativeKind
}

// Optional matches its child zero or one time.
type Optional struct {
	composite
}

// NewOptional creates an optional construct.
func NewOptional(text string, child Node) (*Optional, error) {
	e := checkChildren(OptionalKind, []Node{child}, 1, 1)
	if e != nil {
		return nil, e
	}

	o := &Optional{composite{children: []Node{child}}}
	o.text = textOr(text, o)
	return o, nil
}

func (o *Optional) Kind() Kind {
	return OptionalKind
}

// Child returns the optional expression.
func (o *Optional) Child() Node {
	return o.children[0]
}

// Repeated matches its child zero or more times.
type Repeated struct {
	composite
}

// NewRepeated creates a repetition.
func NewRepeated(text string, child Node) (*Repeated, error) {
	e := checkChildren(RepeatedKind, []Node{child}, 1, 1)
	if e != nil {
		return nil, e
	}

	r := &Repeated{composite{children: []Node{child}}}
	r.text = textOr(text, r)
	return r, nil
}

func (r *Repeated) Kind() Kind {
	return RepeatedKind
}

// Child returns the repeated expression.
func (r *Repeated) Child() Node {
	return r.children[0]
}

// Group is a parenthesized expression, it does not affect matching.
type Group struct {
	composite
}

// NewGroup creates a group.
func NewGroup(text string, child Node) (*Group, error) {
	e := checkChildren(GroupKind, []Node{child}, 1, 1)
	if e != nil {
		return nil, e
	}

	g := &Group{composite{children: []Node{child}}}
	g.text = textOr(text, g)
	return g, nil
}

func (g *Group) Kind() Kind {
	return GroupKind
}

// Child returns the grouped expression.
func (g *Group) Child() Node {
	return g.children[0]
}

// Exception matches base unless excluded matches at the same position.
type Exception struct {
	composite
}

// NewException creates an exception.
func NewException(text string, base, excluded Node) (*Exception, error) {
	e := checkChildren(ExceptionKind, []Node{base, excluded}, 2, 2)
	if e != nil {
		return nil, e
	}

	x := &Exception{composite{children: []Node{base, excluded}}}
	x.text = textOr(text, x)
	return x, nil
}

func (x *Exception) Kind() Kind {
	return ExceptionKind
}

// Base returns the matched expression.
func (x *Exception) Base() Node {
	return x.children[0]
}

// Excluded returns the expression that must not match.
func (x *Exception) Excluded() Node {
	return x.children[1]
}

func checkChildren(kind Kind, children []Node, minCount, maxCount int) error {
	if len(children) < minCount || (maxCount >= 0 && len(children) > maxCount) {
		return arityError(kind, len(children))
	}

	for i, c := range children {
		if isNil(c) {
			return nilChildError(kind, i)
		}
	}

	return nil
}

// isNil also detects typed nil pointers stored in Node.
func isNil(n Node) bool {
	return n == nil || n.isNil()
}

func (g *Grammar) isNil() bool       { return g == nil }
func (r *Rule) isNil() bool          { return r == nil }
func (id *Identifier) isNil() bool   { return id == nil }
func (t *Terminal) isNil() bool      { return t == nil }
func (r *Range) isNil() bool         { return r == nil }
func (c *Concatenation) isNil() bool { return c == nil }
func (a *Alternative) isNil() bool   { return a == nil }
func (o *Optional) isNil() bool      { return o == nil }
func (r *Repeated) isNil() bool      { return r == nil }
func (g *Group) isNil() bool         { return g == nil }
func (x *Exception) isNil() bool     { return x == nil }

func textOr(text string, n Node) string {
	if text != "" {
		return text
	}
	return Format(n)
}
