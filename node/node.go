// Package node provides the generic named/valued tree used to describe
// statements declaratively and to carry generated SQL with its parameters.
package node

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Node is one element of a query tree. Names are not required to be unique
// among siblings, and children keep their declaration order.
type Node struct {
	Name     string
	Value    any
	Children []*Node
}

// New creates a node with the given name, value and children.
func New(name string, value any, children ...*Node) *Node {
	return &Node{Name: name, Value: value, Children: children}
}

// Add appends children to n and returns n.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Clear removes all children.
func (n *Node) Clear() {
	n.Children = nil
}

// Named returns every direct child with the given name, in order.
func (n *Node) Named(name string) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Name == name {
			result = append(result, child)
		}
	}
	return result
}

// First returns the first direct child with the given name, or nil.
func (n *Node) First(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Count returns the number of direct children with the given name.
func (n *Node) Count(name string) int {
	count := 0
	for _, child := range n.Children {
		if child.Name == name {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of n. Values are copied as-is.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{Name: n.Name, Value: n.Value}
	if len(n.Children) > 0 {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone()
		}
	}
	return clone
}

// AsString converts the node's value to a string.
// A nil value yields an empty string.
func (n *Node) AsString() (string, error) {
	if n.Value == nil {
		return "", nil
	}
	s, err := cast.ToStringE(n.Value)
	if err != nil {
		return "", fmt.Errorf("node [%s]: %w", n.Name, err)
	}
	return s, nil
}

// AsInt64 converts the node's value to an int64.
func (n *Node) AsInt64() (int64, error) {
	if n.Value == nil {
		return 0, fmt.Errorf("node [%s]: value is null", n.Name)
	}
	i, err := cast.ToInt64E(n.Value)
	if err != nil {
		return 0, fmt.Errorf("node [%s]: %w", n.Name, err)
	}
	return i, nil
}

// AsBool converts the node's value to a bool. A nil value is false.
func (n *Node) AsBool() (bool, error) {
	if n.Value == nil {
		return false, nil
	}
	b, err := cast.ToBoolE(n.Value)
	if err != nil {
		return false, fmt.Errorf("node [%s]: %w", n.Name, err)
	}
	return b, nil
}

// String renders the tree as indented name:value lines.
func (n *Node) String() string {
	var sb strings.Builder
	n.render(&sb, 0)
	return sb.String()
}

func (n *Node) render(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("   ", depth))
	sb.WriteString(n.Name)
	if n.Value != nil {
		fmt.Fprintf(sb, ":%v", n.Value)
	}
	sb.WriteString("\n")
	for _, child := range n.Children {
		child.render(sb, depth+1)
	}
}
