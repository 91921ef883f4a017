package ast

// Visiting is returned by visitor start methods.
type Visiting int

const (
	// Continue descends into node children.
	Continue Visiting = iota
	// Skip does not descend into node children, matching end methods are still called.
	Skip
)

// Visitor is a grammar tree traversal.
//
// For each node Accept calls StartVisit, then the kind-specific start method,
// visits children in source order if both returned Continue, then calls
// the kind-specific end method and EndVisit.
// If StartVisit returns Skip the kind-specific methods are not called.
// Leaves get a single kind-specific Visit method between StartVisit and EndVisit.
//
// Embed BaseVisitor to get Continue/no-op defaults for methods not overridden.
type Visitor interface {
	StartVisit(n Node) Visiting
	EndVisit(n Node)

	StartGrammar(n *Grammar) Visiting
	EndGrammar(n *Grammar)
	StartRule(n *Rule) Visiting
	EndRule(n *Rule)
	StartConcatenation(n *Concatenation) Visiting
	EndConcatenation(n *Concatenation)
	StartAlternative(n *Alternative) Visiting
	EndAlternative(n *Alternative)
	StartOptional(n *Optional) Visiting
	EndOptional(n *Optional)
	StartRepeated(n *Repeated) Visiting
	EndRepeated(n *Repeated)
	StartGroup(n *Group) Visiting
	EndGroup(n *Group)
	StartException(n *Exception) Visiting
	EndException(n *Exception)

	VisitIdentifier(n *Identifier)
	VisitTerminal(n *Terminal)
	VisitRange(n *Range)
}

// BaseVisitor implements Visitor doing nothing and continuing everywhere.
type BaseVisitor struct{}

func (BaseVisitor) StartVisit(Node) Visiting                   { return Continue }
func (BaseVisitor) EndVisit(Node)                              {}
func (BaseVisitor) StartGrammar(*Grammar) Visiting             { return Continue }
func (BaseVisitor) EndGrammar(*Grammar)                        {}
func (BaseVisitor) StartRule(*Rule) Visiting                   { return Continue }
func (BaseVisitor) EndRule(*Rule)                              {}
func (BaseVisitor) StartConcatenation(*Concatenation) Visiting { return Continue }
func (BaseVisitor) EndConcatenation(*Concatenation)            {}
func (BaseVisitor) StartAlternative(*Alternative) Visiting     { return Continue }
func (BaseVisitor) EndAlternative(*Alternative)                {}
func (BaseVisitor) StartOptional(*Optional) Visiting           { return Continue }
func (BaseVisitor) EndOptional(*Optional)                      {}
func (BaseVisitor) StartRepeated(*Repeated) Visiting           { return Continue }
func (BaseVisitor) EndRepeated(*Repeated)                      {}
func (BaseVisitor) StartGroup(*Group) Visiting                 { return Continue }
func (BaseVisitor) EndGroup(*Group)                            {}
func (BaseVisitor) StartException(*Exception) Visiting         { return Continue }
func (BaseVisitor) EndException(*Exception)                    {}
func (BaseVisitor) VisitIdentifier(*Identifier)                {}
func (BaseVisitor) VisitTerminal(*Terminal)                    {}
func (BaseVisitor) VisitRange(*Range)                          {}

func acceptComposite(v Visitor, n Node, children []Node, start func() Visiting, end func()) {
	if v.StartVisit(n) == Continue {
		if start() == Continue {
			for _, c := range children {
				c.Accept(v)
			}
		}
		end()
	}
	v.EndVisit(n)
}

func acceptLeaf(v Visitor, n Node, visit func()) {
	if v.StartVisit(n) == Continue {
		visit()
	}
	v.EndVisit(n)
}

func (g *Grammar) Accept(v Visitor) {
	acceptComposite(v, g, g.Children(),
		func() Visiting { return v.StartGrammar(g) },
		func() { v.EndGrammar(g) })
}

func (r *Rule) Accept(v Visitor) {
	acceptComposite(v, r, r.Children(),
		func() Visiting { return v.StartRule(r) },
		func() { v.EndRule(r) })
}

func (c *Concatenation) Accept(v Visitor) {
	acceptComposite(v, c, c.children,
		func() Visiting { return v.StartConcatenation(c) },
		func() { v.EndConcatenation(c) })
}

func (a *Alternative) Accept(v Visitor) {
	acceptComposite(v, a, a.children,
		func() Visiting { return v.StartAlternative(a) },
		func() { v.EndAlternative(a) })
}

func (o *Optional) Accept(v Visitor) {
	acceptComposite(v, o, o.children,
		func() Visiting { return v.StartOptional(o) },
		func() { v.EndOptional(o) })
}

func (r *Repeated) Accept(v Visitor) {
	acceptComposite(v, r, r.children,
		func() Visiting { return v.StartRepeated(r) },
		func() { v.EndRepeated(r) })
}

func (g *Group) Accept(v Visitor) {
	acceptComposite(v, g, g.children,
		func() Visiting { return v.StartGroup(g) },
		func() { v.EndGroup(g) })
}

func (x *Exception) Accept(v Visitor) {
	acceptComposite(v, x, x.children,
		func() Visiting { return v.StartException(x) },
		func() { v.EndException(x) })
}

func (id *Identifier) Accept(v Visitor) {
	acceptLeaf(v, id, func() { v.VisitIdentifier(id) })
}

func (t *Terminal) Accept(v Visitor) {
	acceptLeaf(v, t, func() { v.VisitTerminal(t) })
}

func (r *Range) Accept(v Visitor) {
	acceptLeaf(v, r, func() { v.VisitRange(r) })
}

// NodeVisitor is called by Walk for each node, returns false to skip node children.
type NodeVisitor func(n Node) (walkChildren bool)

// Walk visits n and its descendants in pre-order, source order.
func Walk(n Node, visitor NodeVisitor) {
	if n != nil {
		n.Accept(&walker{visitor: visitor})
	}
}

type walker struct {
	BaseVisitor
	visitor NodeVisitor
}

func (w *walker) StartVisit(n Node) Visiting {
	if w.visitor(n) {
		return Continue
	}
	return Skip
}
