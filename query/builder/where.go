package builder

import (
	"github.com/satishbabariya/sqltree/node"
)

// WhereBuilder builds one connective group of conditions. The same
// builder serves where clauses and join predicates; in a join predicate a
// condition's value names a column of the joined table.
type WhereBuilder struct {
	group *node.Node
}

// And starts a group whose conditions must all hold.
func And() *WhereBuilder {
	return &WhereBuilder{group: node.New("and", nil)}
}

// Or starts a group of which at least one condition must hold.
func Or() *WhereBuilder {
	return &WhereBuilder{group: node.New("or", nil)}
}

func (w *WhereBuilder) add(field, keyword string, value any) *WhereBuilder {
	name := field
	if keyword != "" {
		name += "." + keyword
	}
	w.group.Add(node.New(name, value))
	return w
}

// Equals adds an equality condition
func (w *WhereBuilder) Equals(field string, value any) *WhereBuilder {
	return w.add(field, "", value)
}

// NotEquals adds a not-equals condition
func (w *WhereBuilder) NotEquals(field string, value any) *WhereBuilder {
	return w.add(field, "neq", value)
}

// GreaterThan adds a greater-than condition
func (w *WhereBuilder) GreaterThan(field string, value any) *WhereBuilder {
	return w.add(field, "mt", value)
}

// GreaterOrEqual adds a greater-or-equal condition
func (w *WhereBuilder) GreaterOrEqual(field string, value any) *WhereBuilder {
	return w.add(field, "mteq", value)
}

// LessThan adds a less-than condition
func (w *WhereBuilder) LessThan(field string, value any) *WhereBuilder {
	return w.add(field, "lt", value)
}

// LessOrEqual adds a less-or-equal condition
func (w *WhereBuilder) LessOrEqual(field string, value any) *WhereBuilder {
	return w.add(field, "lteq", value)
}

// Like adds a LIKE condition
func (w *WhereBuilder) Like(field string, pattern string) *WhereBuilder {
	return w.add(field, "like", pattern)
}

// In adds a membership condition. Each value binds its own parameter.
func (w *WhereBuilder) In(field string, values ...any) *WhereBuilder {
	leaf := node.New(field+".in", nil)
	for _, v := range values {
		leaf.Add(node.New("", v))
	}
	w.group.Add(leaf)
	return w
}

// Op adds a condition using a registered operator keyword.
func (w *WhereBuilder) Op(field, keyword string, value any) *WhereBuilder {
	return w.add(field, keyword, value)
}

// Group nests other inside this group. The nested group is
// parenthesized in the generated SQL.
func (w *WhereBuilder) Group(other *WhereBuilder) *WhereBuilder {
	w.group.Add(other.Node())
	return w
}

// Node returns a copy of the group node.
func (w *WhereBuilder) Node() *node.Node {
	return w.group.Clone()
}
