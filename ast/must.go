package ast

// Must returns n or panics if e is not nil. Used to build trees known to be well-formed, e.g.
//
//	seq := ast.Must(ast.NewConcatenation("", a, b))
func Must[T Node](n T, e error) T {
	if e != nil {
		panic(e)
	}
	return n
}
