// Package treefile reads query trees from YAML or JSON documents.
//
// A mapping key names a node. A scalar becomes the node's value and a
// mapping its children, where the reserved key "_" holds the node's own
// value. A sequence lists unnamed children, such as the candidates of an
// "in" comparison:
//
//	table:
//	  _: users
//	  join:
//	    _: orders
//	    on:
//	      and:
//	        id: user_id
//	where:
//	  and:
//	    id.in: [1, 2, 3]
//
// Keys may repeat; repeated keys become sibling nodes in document order.
package treefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/satishbabariya/sqltree/node"
)

// ValueKey is the mapping key holding a node's own value.
const ValueKey = "_"

// ErrEmpty is returned for a document without content.
var ErrEmpty = errors.New("treefile: empty document")

// ReadFile decodes the tree stored at path on fs. Files ending in .json
// are decoded with ParseJSON, anything else with Parse.
func ReadFile(fs afero.Fs, path string) (*node.Node, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file: %w", err)
	}
	parse := Parse
	if strings.EqualFold(filepath.Ext(path), ".json") {
		parse = ParseJSON
	}
	root, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// Decode reads and decodes a tree from r.
func Decode(r io.Reader) (*node.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a tree document. The result is an unnamed root.
func Parse(data []byte) (*node.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmpty
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("treefile: %w", err)
	}
	top := resolve(&doc)
	if top.Kind == yaml.DocumentNode {
		if len(top.Content) == 0 {
			return nil, ErrEmpty
		}
		top = resolve(top.Content[0])
	}
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("treefile: line %d: document must be a mapping", top.Line)
	}

	root := node.New("", nil)
	if err := decodeMapping(root, top); err != nil {
		return nil, err
	}
	return root, nil
}

func resolve(y *yaml.Node) *yaml.Node {
	for y.Kind == yaml.AliasNode && y.Alias != nil {
		y = y.Alias
	}
	return y
}

func decodeMapping(parent *node.Node, m *yaml.Node) error {
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, value := resolve(m.Content[i]), resolve(m.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("treefile: line %d: keys must be scalars", key.Line)
		}

		if key.Value == ValueKey {
			if value.Kind != yaml.ScalarNode {
				return fmt.Errorf("treefile: line %d: [%s] of [%s] must be a scalar", value.Line, ValueKey, parent.Name)
			}
			v, err := scalar(value)
			if err != nil {
				return err
			}
			parent.Value = v
			continue
		}

		child, err := decode(key.Value, value)
		if err != nil {
			return err
		}
		parent.Add(child)
	}
	return nil
}

func decode(name string, y *yaml.Node) (*node.Node, error) {
	n := node.New(name, nil)
	switch y.Kind {
	case yaml.ScalarNode:
		v, err := scalar(y)
		if err != nil {
			return nil, err
		}
		n.Value = v
	case yaml.MappingNode:
		if err := decodeMapping(n, y); err != nil {
			return nil, err
		}
	case yaml.SequenceNode:
		for _, item := range y.Content {
			child, err := decode("", resolve(item))
			if err != nil {
				return nil, err
			}
			n.Add(child)
		}
	default:
		return nil, fmt.Errorf("treefile: line %d: unsupported value for [%s]", y.Line, name)
	}
	return n, nil
}

// scalar decodes a scalar into nil, bool, int, float64 or string.
func scalar(y *yaml.Node) (any, error) {
	var v any
	if err := y.Decode(&v); err != nil {
		return nil, fmt.Errorf("treefile: line %d: %w", y.Line, err)
	}
	return v, nil
}
