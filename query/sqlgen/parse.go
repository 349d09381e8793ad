package sqlgen

import (
	"github.com/satishbabariya/sqltree/internal/debug"
	"github.com/satishbabariya/sqltree/node"
)

// Parse builds a statement of the given kind over root.
//
// When root asks for generation only, root itself is rewritten: its value
// becomes the SQL and its children the parameters. Parse then returns a nil
// node and a nil error, meaning there is nothing to execute. Otherwise the
// result node is returned for execution.
func Parse(kind Kind, root *node.Node, escape string, opts ...Option) (*node.Node, error) {
	b, err := New(kind, root, escape, opts...)
	if err != nil {
		return nil, err
	}
	result, err := b.Build()
	if err != nil {
		return nil, err
	}

	generateOnly := b.IsGenerateOnly()
	debug.Debug("generated sql",
		"kind", kind.String(),
		"params", len(result.Children),
		"generate_only", generateOnly)

	if generateOnly {
		root.Value = result.Value
		root.Clear()
		root.Add(result.Children...)
		return nil, nil
	}
	return result, nil
}
