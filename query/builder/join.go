package builder

import (
	"github.com/satishbabariya/sqltree/node"
)

// JoinBuilder builds a join of a secondary table.
type JoinBuilder struct {
	join *node.Node
}

// Join starts a join of table. Without a type the join is inner.
func Join(table string) *JoinBuilder {
	return &JoinBuilder{join: node.New("join", table)}
}

// InnerJoin starts an inner join of table.
func InnerJoin(table string) *JoinBuilder { return Join(table).Type("inner") }

// LeftJoin starts a left join of table.
func LeftJoin(table string) *JoinBuilder { return Join(table).Type("left") }

// RightJoin starts a right join of table.
func RightJoin(table string) *JoinBuilder { return Join(table).Type("right") }

// FullJoin starts a full join of table.
func FullJoin(table string) *JoinBuilder { return Join(table).Type("full") }

// Type sets the join type.
func (j *JoinBuilder) Type(joinType string) *JoinBuilder {
	j.join.Add(node.New("type", joinType))
	return j
}

// On sets the join predicate. Bare columns on the left belong to the
// table joined so far, the values name columns of this table.
func (j *JoinBuilder) On(groups ...*WhereBuilder) *JoinBuilder {
	on := node.New("on", nil)
	for _, g := range groups {
		on.Add(g.Node())
	}
	j.join.Add(on)
	return j
}

// Then chains a join whose predicate refers to this join's table.
func (j *JoinBuilder) Then(next *JoinBuilder) *JoinBuilder {
	j.join.Add(next.Node())
	return j
}

// Node returns a copy of the join node.
func (j *JoinBuilder) Node() *node.Node {
	return j.join.Clone()
}
