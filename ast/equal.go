package ast

// Equal reports whether a and b are structurally equal:
// same kinds, same source texts, same names or values, and equal children in the same order.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.Kind() != b.Kind() || a.Text() != b.Text() {
		return false
	}

	switch a := a.(type) {
	case *Identifier:
		return a.name == b.(*Identifier).name
	case *Terminal:
		return a.value == b.(*Terminal).value
	case *Range:
		br := b.(*Range)
		return Equal(a.begin, br.begin) && Equal(a.end, br.end)
	case *Rule:
		br := b.(*Rule)
		return Equal(a.name, br.name) && Equal(a.expr, br.expr)
	}

	ac := a.Children()
	bc := b.Children()
	if len(ac) != len(bc) {
		return false
	}

	for i := range ac {
		if !Equal(ac[i], bc[i]) {
			return false
		}
	}

	return true
}

// WithoutGroups returns a tree equal to n with every Group replaced by its child.
// Source texts of rebuilt nodes are kept. Subtrees without groups are shared, not copied.
func WithoutGroups(n Node) Node {
	result, _ := stripGroups(n)
	return result
}

func stripGroups(n Node) (Node, bool) {
	switch n := n.(type) {
	case *Group:
		child, _ := stripGroups(n.children[0])
		return child, true

	case *Grammar:
		rules := make([]*Rule, len(n.rules))
		changed := false
		for i, r := range n.rules {
			nr, c := stripGroups(r)
			rules[i] = nr.(*Rule)
			changed = changed || c
		}
		if !changed {
			return n, false
		}
		return &Grammar{base: n.base, rules: rules}, true

	case *Rule:
		expr, changed := stripGroups(n.expr)
		if !changed {
			return n, false
		}
		return &Rule{base: n.base, name: n.name, expr: expr}, true

	case *Concatenation:
		children, changed := stripChildren(n.children)
		if !changed {
			return n, false
		}
		return &Concatenation{composite{n.base, children}}, true

	case *Alternative:
		children, changed := stripChildren(n.children)
		if !changed {
			return n, false
		}
		return &Alternative{composite{n.base, children}}, true

	case *Optional:
		children, changed := stripChildren(n.children)
		if !changed {
			return n, false
		}
		return &Optional{composite{n.base, children}}, true

	case *Repeated:
		children, changed := stripChildren(n.children)
		if !changed {
			return n, false
		}
		return &Repeated{composite{n.base, children}}, true

	case *Exception:
		children, changed := stripChildren(n.children)
		if !changed {
			return n, false
		}
		return &Exception{composite{n.base, children}}, true

	default:
		return n, false
	}
}

func stripChildren(children []Node) ([]Node, bool) {
	result := make([]Node, len(children))
	changed := false
	for i, c := range children {
		var cc bool
		result[i], cc = stripGroups(c)
		changed = changed || cc
	}
	return result, changed
}
