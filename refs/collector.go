// Package refs collects rule definitions and identifier references of a grammar and validates them.
package refs

import (
	"slices"

	"github.com/ava12/ebnf/ast"
)

// Table holds rule definitions and references collected from a grammar.
type Table struct {
	root        string
	names       []string
	definitions map[string][]*ast.Rule
	references  map[string]bool
	dependsOn   map[string][]string
}

// Root returns the name of the first defined rule or empty string for empty grammar.
func (t *Table) Root() string {
	return t.root
}

// Names returns defined rule names in order of first definition.
func (t *Table) Names() []string {
	return slices.Clone(t.names)
}

// Definitions returns all rules defining name in source order.
func (t *Table) Definitions(name string) []*ast.Rule {
	return slices.Clone(t.definitions[name])
}

// Rule returns the first rule defining name or nil.
func (t *Table) Rule(name string) *ast.Rule {
	rs := t.definitions[name]
	if len(rs) == 0 {
		return nil
	}
	return rs[0]
}

// IsDefined reports whether name has at least one definition.
func (t *Table) IsDefined(name string) bool {
	return len(t.definitions[name]) > 0
}

// References returns sorted distinct names referenced anywhere in rule bodies.
func (t *Table) References() []string {
	return sortedKeys(t.references)
}

// DependsOn returns distinct names referenced by the first definition of name, in source order.
// Later duplicate definitions are never compiled, so they add no dependencies.
func (t *Table) DependsOn(name string) []string {
	return slices.Clone(t.dependsOn[name])
}

// Duplicates returns sorted names having more than one definition.
func (t *Table) Duplicates() []string {
	var result []string
	for name, rs := range t.definitions {
		if len(rs) > 1 {
			result = append(result, name)
		}
	}
	slices.Sort(result)
	return result
}

// Undefined returns sorted referenced names that have no definition.
func (t *Table) Undefined() []string {
	var result []string
	for name := range t.references {
		if !t.IsDefined(name) {
			result = append(result, name)
		}
	}
	slices.Sort(result)
	return result
}

// Collect traverses the grammar and records every rule definition and every identifier reference.
func Collect(g *ast.Grammar) *Table {
	c := &collector{table: &Table{
		definitions: make(map[string][]*ast.Rule),
		references:  make(map[string]bool),
		dependsOn:   make(map[string][]string),
	}}
	g.Accept(c)
	return c.table
}

type collector struct {
	ast.BaseVisitor
	table   *Table
	current string
}

func (c *collector) StartRule(r *ast.Rule) ast.Visiting {
	name := r.Name()
	t := c.table
	if len(t.definitions[name]) == 0 {
		t.names = append(t.names, name)
		if t.root == "" {
			t.root = name
		}
	}
	t.definitions[name] = append(t.definitions[name], r)

	c.current = ""
	if len(t.definitions[name]) == 1 {
		c.current = name
	}
	r.Expr().Accept(c)
	c.current = ""
	return ast.Skip
}

func (c *collector) VisitIdentifier(id *ast.Identifier) {
	name := id.Name()
	t := c.table
	t.references[name] = true
	if c.current != "" && !slices.Contains(t.dependsOn[c.current], name) {
		t.dependsOn[c.current] = append(t.dependsOn[c.current], name)
	}
}

func sortedKeys(m map[string]bool) []string {
	result := make([]string, 0, len(m))
	for k := range m {
		result = append(result, k)
	}
	slices.Sort(result)
	return result
}
