package refs

import (
	"slices"

	"github.com/ava12/ebnf/ast"
	"github.com/ava12/ebnf/internal/queue"
)

// Check collects references of g, validates them, and analyzes the grammar for warnings.
// The table is returned even if validation fails.
func Check(g *ast.Grammar) (*Table, []Warning, error) {
	t := Collect(g)
	return t, Analyze(t), Validate(t)
}

// Validate returns *UndefinedError listing all referenced but undefined names, or nil.
func Validate(t *Table) error {
	names := t.Undefined()
	if len(names) > 0 {
		return newUndefinedError(names)
	}

	return nil
}

// ValidateUnique returns *DuplicateError listing all names defined more than once, or nil.
func ValidateUnique(t *Table) error {
	names := t.Duplicates()
	if len(names) > 0 {
		return newDuplicateError(names)
	}

	return nil
}

// Analyze returns warnings for duplicate, unused, and left-recursive rules, in this order.
// Warnings with no names are omitted.
func Analyze(t *Table) []Warning {
	var result []Warning
	add := func(code int, names []string) {
		if len(names) > 0 {
			result = append(result, Warning{Code: code, Names: names})
		}
	}

	add(DuplicateRuleWarning, t.Duplicates())
	add(UnusedRuleWarning, findUnused(t))
	add(LeftRecursionWarning, findLeftRecursions(t))
	return result
}

func findUnused(t *Table) []string {
	if t.root == "" {
		return nil
	}

	unreached := make(map[string]bool, len(t.names))
	for _, name := range t.names {
		unreached[name] = true
	}

	searchQueue := queue.New(t.root)
	for !searchQueue.IsEmpty() {
		name, _ := searchQueue.First()
		if !unreached[name] {
			continue
		}

		delete(unreached, name)
		for _, dep := range t.dependsOn[name] {
			searchQueue.Append(dep)
		}
	}

	return sortedKeys(unreached)
}

// findLeftRecursions returns sorted names of rules that can reach themselves without consuming input.
func findLeftRecursions(t *Table) []string {
	nullable := nullableRules(t)
	leftDeps := make(map[string][]string, len(t.names))
	for _, name := range t.names {
		for _, dep := range leftRefs(t.Rule(name).Expr(), nullable) {
			if !slices.Contains(leftDeps[name], dep) {
				leftDeps[name] = append(leftDeps[name], dep)
			}
		}
	}

	var result []string
	for _, name := range t.names {
		if reaches(leftDeps, name, name, make(map[string]bool)) {
			result = append(result, name)
		}
	}
	slices.Sort(result)
	return result
}

func reaches(deps map[string][]string, from, target string, visited map[string]bool) bool {
	visited[from] = true
	for _, dep := range deps[from] {
		if dep == target {
			return true
		}
		if !visited[dep] && reaches(deps, dep, target, visited) {
			return true
		}
	}
	return false
}

// nullableRules returns the set of rules able to match empty input.
func nullableRules(t *Table) map[string]bool {
	result := make(map[string]bool)
	added := true
	for added {
		added = false
		for _, name := range t.names {
			if result[name] {
				continue
			}

			if isNullable(t.Rule(name).Expr(), result) {
				result[name] = true
				added = true
			}
		}
	}
	return result
}

func isNullable(n ast.Node, nullable map[string]bool) bool {
	switch n := n.(type) {
	case *ast.Identifier:
		return nullable[n.Name()]
	case *ast.Terminal:
		return n.Value() == ""
	case *ast.Range:
		return false
	case *ast.Concatenation:
		for _, c := range n.Children() {
			if !isNullable(c, nullable) {
				return false
			}
		}
		return true
	case *ast.Alternative:
		return slices.ContainsFunc(n.Children(), func(c ast.Node) bool {
			return isNullable(c, nullable)
		})
	case *ast.Optional, *ast.Repeated:
		return true
	case *ast.Group:
		return isNullable(n.Child(), nullable)
	case *ast.Exception:
		return isNullable(n.Base(), nullable)
	}
	return false
}

// leftRefs returns names that can be invoked by n at its starting position.
func leftRefs(n ast.Node, nullable map[string]bool) []string {
	switch n := n.(type) {
	case *ast.Identifier:
		return []string{n.Name()}
	case *ast.Concatenation:
		var result []string
		for _, c := range n.Children() {
			result = append(result, leftRefs(c, nullable)...)
			if !isNullable(c, nullable) {
				break
			}
		}
		return result
	case *ast.Alternative:
		var result []string
		for _, c := range n.Children() {
			result = append(result, leftRefs(c, nullable)...)
		}
		return result
	case *ast.Optional:
		return leftRefs(n.Child(), nullable)
	case *ast.Repeated:
		return leftRefs(n.Child(), nullable)
	case *ast.Group:
		return leftRefs(n.Child(), nullable)
	case *ast.Exception:
		return append(leftRefs(n.Base(), nullable), leftRefs(n.Excluded(), nullable)...)
	}
	return nil
}
