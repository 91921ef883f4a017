package ast

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	alternativePrec = iota + 1
	concatenationPrec
	exceptionPrec
	primaryPrec
)

// Format returns canonical grammar notation for n.
// Format uses node structure only, source text of nodes is ignored.
// Parentheses are added where nesting could not be expressed otherwise.
func Format(n Node) string {
	b := &strings.Builder{}
	format(b, n, 0)
	return b.String()
}

func precedence(n Node) int {
	switch n.(type) {
	case *Alternative:
		return alternativePrec
	case *Concatenation:
		return concatenationPrec
	case *Exception:
		return exceptionPrec
	default:
		return primaryPrec
	}
}

func format(b *strings.Builder, n Node, minPrec int) {
	if precedence(n) < minPrec {
		b.WriteString("(")
		format(b, n, 0)
		b.WriteString(")")
		return
	}

	switch n := n.(type) {
	case *Grammar:
		for i, r := range n.rules {
			if i > 0 {
				b.WriteString("\n")
			}
			format(b, r, 0)
		}

	case *Rule:
		b.WriteString(n.Name())
		b.WriteString(" = ")
		format(b, n.expr, 0)
		b.WriteString(";")

	case *Identifier:
		b.WriteString(n.name)

	case *Terminal:
		b.WriteString(Quote(n.value))

	case *Range:
		b.WriteString(Quote(n.begin.value))
		b.WriteString("..")
		b.WriteString(Quote(n.end.value))

	case *Concatenation:
		formatList(b, n.children, ", ", exceptionPrec)

	case *Alternative:
		formatList(b, n.children, " | ", concatenationPrec)

	case *Exception:
		format(b, n.children[0], primaryPrec)
		b.WriteString(" - ")
		format(b, n.children[1], primaryPrec)

	case *Optional:
		formatEnclosed(b, "[", n.children[0], "]")

	case *Repeated:
		formatEnclosed(b, "{", n.children[0], "}")

	case *Group:
		formatEnclosed(b, "(", n.children[0], ")")
	}
}

func formatList(b *strings.Builder, children []Node, sep string, minPrec int) {
	for i, c := range children {
		if i > 0 {
			b.WriteString(sep)
		}
		format(b, c, minPrec)
	}
}

func formatEnclosed(b *strings.Builder, open string, n Node, closing string) {
	b.WriteString(open)
	b.WriteString(" ")
	format(b, n, 0)
	b.WriteString(" ")
	b.WriteString(closing)
}

// Quote returns terminal notation for literal value.
// Values without apostrophes and control characters are enclosed in apostrophes as is,
// other values are enclosed in double quotes with escape sequences.
func Quote(value string) string {
	if !strings.ContainsRune(value, '\'') && !hasControl(value) && utf8.ValidString(value) {
		return "'" + value + "'"
	}

	b := &strings.Builder{}
	b.WriteString(`"`)
	for i := 0; i < len(value); {
		r, size := utf8.DecodeRuneInString(value[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(b, `\x%02x`, value[i])
		case r == '\\':
			b.WriteString(`\\`)
		case r == '"':
			b.WriteString(`\"`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
		i += size
	}
	b.WriteString(`"`)
	return b.String()
}

func hasControl(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return true
		}
	}
	return false
}
