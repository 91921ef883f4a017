package ebnf_test

import (
	"context"
	"fmt"

	"github.com/ava12/ebnf/combinator"
	"github.com/ava12/ebnf/compiler"
	"github.com/ava12/ebnf/source"
)

type configBuilder struct {
	compiler.Basic
	prefix string
	result map[string]string
}

func (b *configBuilder) Rule(_ context.Context, name string, m combinator.Match, value any) (any, bool) {
	switch name {
	case "name", "text":
		return m.Text, true
	case "secname":
		b.prefix = m.Text + "."
	case "value":
		parts := value.([]any)
		b.result[b.prefix+parts[0].(string)] = parts[4].(string)
	}
	return value, true
}

func Example() {
	input := `
foo = hello
bar = world
[sec]
baz =
[sec.subsec]
qux = !
`
	grammar := `
config  = { section | value | nl };
section = '[', secname, ']', nl;
secname = name, { '.', name };
value   = name, sp, '=', sp, text, nl;

name    = letter, { letter };
letter  = 'a'..'z';
text    = { ' '..'~' };
sp      = { ' ' };
nl      = "\n";
`
	builder := &configBuilder{result: make(map[string]string)}
	configParser, e := compiler.CompileString("example grammar", grammar, builder, compiler.Options{})
	if e != nil {
		fmt.Println(e)
		return
	}

	_, e = configParser.Match(context.Background(), "", source.NewString("input", input))
	if e == nil {
		fmt.Println(builder.result)
	} else {
		fmt.Println(e)
	}

	// Output: map[bar:world foo:hello sec.baz: sec.subsec.qux:!]
}
