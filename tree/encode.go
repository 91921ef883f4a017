package tree

import (
	"encoding/json"

	"github.com/ava12/ebnf/combinator"
)

// Data is a plain copy of a subtree used for serialization.
type Data struct {
	Rule     string          `json:"rule,omitempty" yaml:"rule,omitempty"`
	Kind     string          `json:"kind" yaml:"kind"`
	Span     combinator.Span `json:"span" yaml:"span"`
	Text     string          `json:"text" yaml:"text"`
	Children []Data          `json:"children,omitempty" yaml:"children,omitempty"`
}

// Data returns a plain copy of n subtree.
func (n *Node) Data() Data {
	d := Data{Rule: n.rule, Kind: n.kind.String(), Span: n.span, Text: n.text}
	for _, c := range n.children {
		d.Children = append(d.Children, c.Data())
	}
	return d
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Data())
}

func (n *Node) MarshalYAML() (any, error) {
	return n.Data(), nil
}
