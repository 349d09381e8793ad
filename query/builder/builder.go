// Package builder provides a fluent API for building query trees.
//
//	tree := builder.From("users").
//		Columns("id", "name").
//		Where(builder.And().Equals("active", true).GreaterThan("age", 18)).
//		OrderBy("name").
//		Limit(10)
//	result, err := tree.Build(sqlgen.Read, `"`)
package builder

import (
	"strings"

	"github.com/satishbabariya/sqltree/node"
	"github.com/satishbabariya/sqltree/query/sqlgen"
)

// QueryBuilder assembles the root of a query tree. A builder is not safe
// for concurrent use; the trees it returns are independent copies.
type QueryBuilder struct {
	table   *node.Node
	columns *node.Node
	values  *node.Node
	where   *node.Node
	singles []*node.Node
}

// From starts a query on table. The name may be schema qualified.
func From(table string) *QueryBuilder {
	return &QueryBuilder{table: node.New("table", table)}
}

// Columns selects columns by name. Aggregates such as "count(*)" are
// emitted verbatim.
func (q *QueryBuilder) Columns(names ...string) *QueryBuilder {
	for _, name := range names {
		q.column(name)
	}
	return q
}

// ColumnAs selects a column under an alias.
func (q *QueryBuilder) ColumnAs(name, alias string) *QueryBuilder {
	q.column(name).Add(node.New("as", alias))
	return q
}

func (q *QueryBuilder) column(name string) *node.Node {
	if q.columns == nil {
		q.columns = node.New("columns", nil)
	}
	c := node.New(name, nil)
	q.columns.Add(c)
	return c
}

// Set assigns value to a column for inserts and updates. A nil value
// writes null.
func (q *QueryBuilder) Set(column string, value any) *QueryBuilder {
	if q.values == nil {
		q.values = node.New("values", nil)
	}
	q.values.Add(node.New(column, value))
	return q
}

// Where adds top-level condition groups. Several groups must all hold.
func (q *QueryBuilder) Where(groups ...*WhereBuilder) *QueryBuilder {
	if q.where == nil {
		q.where = node.New("where", nil)
	}
	for _, g := range groups {
		q.where.Add(g.Node())
	}
	return q
}

// Join joins secondary tables to the query table.
func (q *QueryBuilder) Join(joins ...*JoinBuilder) *QueryBuilder {
	for _, j := range joins {
		q.table.Add(j.Node())
	}
	return q
}

func (q *QueryBuilder) single(name string, value any) *QueryBuilder {
	for _, s := range q.singles {
		if s.Name == name {
			s.Value = value
			return q
		}
	}
	q.singles = append(q.singles, node.New(name, value))
	return q
}

// GroupBy groups a read by the given columns.
func (q *QueryBuilder) GroupBy(columns ...string) *QueryBuilder {
	group := node.New("group", nil)
	for _, c := range columns {
		group.Add(node.New(c, nil))
	}
	for i, s := range q.singles {
		if s.Name == "group" {
			q.singles[i] = group
			return q
		}
	}
	q.singles = append(q.singles, group)
	return q
}

// OrderBy sorts a read by the given columns.
func (q *QueryBuilder) OrderBy(columns ...string) *QueryBuilder {
	return q.single("order", strings.Join(columns, ","))
}

// Desc sorts in descending order.
func (q *QueryBuilder) Desc() *QueryBuilder { return q.single("direction", "desc") }

// Asc sorts in ascending order.
func (q *QueryBuilder) Asc() *QueryBuilder { return q.single("direction", "asc") }

// Limit caps the number of rows read. A negative limit reads all rows.
func (q *QueryBuilder) Limit(n int) *QueryBuilder { return q.single("limit", n) }

// Offset skips rows of a read.
func (q *QueryBuilder) Offset(n int) *QueryBuilder { return q.single("offset", n) }

// GenerateOnly marks the tree as not to be executed.
func (q *QueryBuilder) GenerateOnly() *QueryBuilder { return q.single("generate", true) }

// Tree returns a copy of the query tree built so far.
func (q *QueryBuilder) Tree() *node.Node {
	root := node.New("", nil, q.table.Clone())
	for _, n := range []*node.Node{q.columns, q.values, q.where} {
		if n != nil {
			root.Add(n.Clone())
		}
	}
	for _, s := range q.singles {
		root.Add(s.Clone())
	}
	return root
}

// Build compiles the tree as a statement of kind.
func (q *QueryBuilder) Build(kind sqlgen.Kind, escape string, opts ...sqlgen.Option) (*node.Node, error) {
	b, err := sqlgen.New(kind, q.Tree(), escape, opts...)
	if err != nil {
		return nil, err
	}
	return b.Build()
}
