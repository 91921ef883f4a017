package tree

type NodeFilter func(n *Node) bool
type NodeExtractor func(n *Node) []*Node

// NodeSelector converts a node into a list of nodes.
type NodeSelector func(n *Node) []*Node

// Selector is a chain of node selectors, each one applied to every result of the previous one.
type Selector struct {
	selectors []NodeSelector
}

func NewSelector() *Selector {
	return &Selector{}
}

// Apply runs selector chain for each input node and returns distinct results in order found.
func (s *Selector) Apply(input ...*Node) []*Node {
	res := make([]*Node, 0)
	index := make(map[*Node]bool)

	for i, n := range input {
		if n == nil {
			continue
		}

		ns := input[i : i+1]
		if len(s.selectors) > 0 {
			ns = selectNodes(ns, s.selectors)
		}

		for _, tn := range ns {
			if !index[tn] {
				index[tn] = true
				res = append(res, tn)
			}
		}
	}

	return res
}

func selectNodes(ns []*Node, nss []NodeSelector) []*Node {
	res := make([]*Node, 0)
	s := nss[0]
	nss = nss[1:]
	for _, n := range ns {
		if len(nss) > 0 {
			res = append(res, selectNodes(s(n), nss)...)
		} else {
			res = append(res, s(n)...)
		}
	}
	return res
}

func (s *Selector) Use(ns NodeSelector) *Selector {
	if ns != nil {
		s.selectors = append(s.selectors, ns)
	}
	return s
}

func (s *Selector) Filter(nf NodeFilter) *Selector {
	return s.Use(func(n *Node) []*Node {
		if nf(n) {
			return []*Node{n}
		}
		return nil
	})
}

func (s *Selector) Extract(ne NodeExtractor) *Selector {
	return s.Use(NodeSelector(ne))
}

// Search adds a selector returning matching nodes of the subtree, including the root.
// Descendants of matching nodes are searched only if deepSearch is true.
func (s *Selector) Search(nf NodeFilter, deepSearch bool) *Selector {
	return s.Use(func(n *Node) []*Node {
		res := make([]*Node, 0)
		visitNode(n, func(nn *Node) (vc, vs bool) {
			if nf(nn) {
				res = append(res, nn)
				return deepSearch, true
			}
			return true, true
		}, false)
		return res
	})
}

func IsNot(f NodeFilter) NodeFilter {
	return func(n *Node) bool {
		return !f(n)
	}
}

func IsAny(fs ...NodeFilter) NodeFilter {
	return func(n *Node) bool {
		for _, f := range fs {
			if f(n) {
				return true
			}
		}
		return false
	}
}

func IsAll(fs ...NodeFilter) NodeFilter {
	return func(n *Node) bool {
		for _, f := range fs {
			if !f(n) {
				return false
			}
		}
		return true
	}
}

// IsA matches nodes by type name, i.e. rule name or node kind name.
func IsA(names ...string) NodeFilter {
	return func(n *Node) bool {
		tn := n.TypeName()
		for _, name := range names {
			if tn == name {
				return true
			}
		}
		return false
	}
}

// IsALiteral matches token nodes by text.
func IsALiteral(texts ...string) NodeFilter {
	return func(n *Node) bool {
		if !n.IsToken() {
			return false
		}

		for _, text := range texts {
			if text == n.text {
				return true
			}
		}
		return false
	}
}

// Any returns results of the first extractor returning non-empty list.
func Any(nss ...NodeExtractor) NodeExtractor {
	return func(n *Node) (res []*Node) {
		for _, ns := range nss {
			res = ns(n)
			if len(res) > 0 {
				break
			}
		}
		return
	}
}

func All(nss ...NodeExtractor) NodeExtractor {
	return func(n *Node) (res []*Node) {
		for _, ns := range nss {
			res = append(res, ns(n)...)
		}
		return
	}
}

func Ancestors(levels ...int) NodeExtractor {
	return func(n *Node) []*Node {
		res := make([]*Node, 0)
		for _, i := range levels {
			if nn := Ancestor(n, i); nn != nil {
				res = append(res, nn)
			}
		}
		return res
	}
}

func NthChildren(indexes ...int) NodeExtractor {
	return func(n *Node) []*Node {
		res := make([]*Node, 0)
		for _, i := range indexes {
			if nn := NthChild(n, i); nn != nil {
				res = append(res, nn)
			}
		}
		return res
	}
}

func NthSiblings(indexes ...int) NodeExtractor {
	return func(n *Node) []*Node {
		res := make([]*Node, 0)
		for _, i := range indexes {
			if nn := NthSibling(n, i); nn != nil {
				res = append(res, nn)
			}
		}
		return res
	}
}
