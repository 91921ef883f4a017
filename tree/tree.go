// Package tree contains parse tree nodes built by compiler.Tree context,
// functions for tree navigation and traversal, and node selectors.
package tree

import (
	"slices"

	"github.com/ava12/ebnf/ast"
	"github.com/ava12/ebnf/combinator"
)

// Node is a parse tree node. A node is never changed after construction except that
// its parent is set when the node is passed to New as a child.
type Node struct {
	rule     string
	kind     ast.Kind
	span     combinator.Span
	text     string
	parent   *Node
	index    int
	children []*Node
}

// New creates a node for match m and adopts children.
// rule is empty for nodes that are not rule results.
func New(rule string, kind ast.Kind, m combinator.Match, children ...*Node) *Node {
	n := &Node{rule: rule, kind: kind, span: m.Span, text: m.Text}
	for _, c := range children {
		if c == nil {
			continue
		}
		c.parent = n
		c.index = len(n.children)
		n.children = append(n.children, c)
	}
	return n
}

func (n *Node) Rule() string {
	return n.rule
}

func (n *Node) Kind() ast.Kind {
	return n.kind
}

// TypeName returns rule name for rule nodes and kind name for others.
func (n *Node) TypeName() string {
	if n.rule != "" {
		return n.rule
	}
	return n.kind.String()
}

func (n *Node) Span() combinator.Span {
	return n.span
}

func (n *Node) Text() string {
	return n.text
}

// IsToken returns true for Terminal and Range matches.
func (n *Node) IsToken() bool {
	return n.kind == ast.TerminalKind || n.kind == ast.RangeKind
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Prev() *Node {
	if n.parent == nil || n.index == 0 {
		return nil
	}
	return n.parent.children[n.index-1]
}

func (n *Node) Next() *Node {
	if n.parent == nil || n.index+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[n.index+1]
}

func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// Children returns a copy of child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Ancestor returns parent of n for level 0, grandparent for level 1, and so on.
func Ancestor(n *Node, level int) *Node {
	for n != nil && level >= 0 {
		n = n.Parent()
		level--
	}
	return n
}

// NodeLevel returns the number of ancestors.
func NodeLevel(n *Node) (l int) {
	if n == nil {
		return
	}

	for p := n.Parent(); p != nil; p = p.Parent() {
		l++
	}
	return
}

func SiblingIndex(n *Node) int {
	if n == nil || n.parent == nil {
		return 0
	}
	return n.index
}

// NthChild returns i-th child, negative i counts from the end (-1 is the last child).
func NthChild(n *Node, i int) *Node {
	if n == nil {
		return nil
	}

	if i < 0 {
		i += len(n.children)
	}
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// NthSibling returns i-th sibling following n, negative i means preceding siblings.
func NthSibling(n *Node, i int) *Node {
	if n == nil {
		return nil
	}
	if i == 0 {
		return n
	}
	if n.parent == nil {
		return nil
	}
	return NthChild(n.parent, n.index+i)
}

const AllLevels = -1

// NumOfChildren counts descendants down to levels below children, AllLevels means no limit.
func NumOfChildren(parent *Node, levels int) int {
	if parent == nil {
		return 0
	}

	i := 0
	for _, c := range parent.children {
		i++
		if levels != 0 {
			i += NumOfChildren(c, levels-1)
		}
	}
	return i
}

// FirstTokenNode returns the first token node of n subtree.
func FirstTokenNode(n *Node) *Node {
	if n == nil || n.IsToken() {
		return n
	}

	for _, c := range n.children {
		if t := FirstTokenNode(c); t != nil {
			return t
		}
	}
	return nil
}

// LastTokenNode returns the last token node of n subtree.
func LastTokenNode(n *Node) *Node {
	if n == nil || n.IsToken() {
		return n
	}

	for i := len(n.children) - 1; i >= 0; i-- {
		if t := LastTokenNode(n.children[i]); t != nil {
			return t
		}
	}
	return nil
}

// NextTokenNode returns the first token node following n subtree.
func NextTokenNode(n *Node) *Node {
	for ; n != nil; n = n.Parent() {
		for s := n.Next(); s != nil; s = s.Next() {
			if t := FirstTokenNode(s); t != nil {
				return t
			}
		}
	}
	return nil
}

// PrevTokenNode returns the last token node preceding n subtree.
func PrevTokenNode(n *Node) *Node {
	for ; n != nil; n = n.Parent() {
		for s := n.Prev(); s != nil; s = s.Prev() {
			if t := LastTokenNode(s); t != nil {
				return t
			}
		}
	}
	return nil
}

// Children returns a copy of n child list, nil for nil node.
func Children(n *Node) []*Node {
	if n == nil {
		return nil
	}
	return n.Children()
}

// NodeVisitor is called by Walk for each node.
// walkChildren = false skips node children, walkSiblings = false skips the rest of node siblings.
type NodeVisitor func(n *Node) (walkChildren, walkSiblings bool)

type WalkMode int

const (
	WalkLtr WalkMode = 0
	WalkRtl WalkMode = 1
)

// Walk visits n subtree in pre-order.
func Walk(n *Node, mode WalkMode, visitor NodeVisitor) {
	if n != nil {
		visitNode(n, visitor, (mode&WalkRtl) != 0)
	}
}

func visitNode(n *Node, v NodeVisitor, rtl bool) (visitSiblings bool) {
	vc, vs := v(n)
	if !vc {
		return vs
	}

	count := len(n.children)
	for i := 0; i < count; i++ {
		c := n.children[i]
		if rtl {
			c = n.children[count-1-i]
		}
		if !visitNode(c, v, rtl) {
			break
		}
	}
	return vs
}
