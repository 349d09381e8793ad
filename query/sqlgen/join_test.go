package sqlgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/sqltree/node"
	"github.com/satishbabariya/sqltree/query/sqlgen"
)

func on(conditions ...*node.Node) *node.Node {
	return n("on", nil, n("and", nil, conditions...))
}

func joined(joins ...*node.Node) *node.Node {
	return n("", nil, n("table", "table1", joins...), n("limit", -1))
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name string
		root *node.Node
		sql  string
	}{
		{
			name: "inner by default",
			root: joined(n("join", "table2", on(n("field1", "field2")))),
			sql:  "select * from 'table1' inner join 'table2' on 'table1'.'field1' = 'table2'.'field2'",
		},
		{
			name: "explicit types",
			root: joined(
				n("join", "table2", n("type", "left"), on(n("id", "table1_id"))),
				n("join", "table3", n("type", "full"), on(n("id", "table1_id")))),
			sql: "select * from 'table1' left join 'table2' on 'table1'.'id' = 'table2'.'table1_id'" +
				" full join 'table3' on 'table1'.'id' = 'table3'.'table1_id'",
		},
		{
			name: "chained joins qualify adjacent tables",
			root: joined(n("join", "table2",
				on(n("field1", "field2")),
				n("join", "table3",
					n("type", "outer"),
					on(n("field2", "field3"))))),
			sql: "select * from 'table1' inner join 'table2' on 'table1'.'field1' = 'table2'.'field2'" +
				" outer join 'table3' on 'table2'.'field2' = 'table3'.'field3'",
		},
		{
			name: "operator keyword",
			root: joined(n("join", "table2", on(n("field1.mteq", "field2")))),
			sql:  "select * from 'table1' inner join 'table2' on 'table1'.'field1' >= 'table2'.'field2'",
		},
		{
			name: "operator child",
			root: joined(n("join", "table2", on(n("field1", "field2", n("operator", "neq"))))),
			sql:  "select * from 'table1' inner join 'table2' on 'table1'.'field1' != 'table2'.'field2'",
		},
		{
			name: "dotted references are kept",
			root: joined(n("join", "table2", on(n("other.field1", "table3.field2")))),
			sql:  "select * from 'table1' inner join 'table2' on 'other'.'field1' = 'table3'.'field2'",
		},
		{
			name: "boolean predicate",
			root: joined(n("join", "table2", n("on", nil,
				n("and", nil,
					n("a", "b"),
					n("or", nil, n("c", "d"), n("e.lt", "f")))))),
			sql: "select * from 'table1' inner join 'table2' on 'table1'.'a' = 'table2'.'b'" +
				" and ('table1'.'c' = 'table2'.'d' or 'table1'.'e' < 'table2'.'f')",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := build(t, sqlgen.Read, tt.root)
			assert.Equal(t, tt.sql, result.Value)
			assert.Empty(t, result.Children)
		})
	}
}

func TestJoinWithWhere(t *testing.T) {
	root := n("", nil,
		n("table", "table1", n("join", "table2", on(n("id", "table1_id")))),
		n("columns", nil, n("table1.name", nil), n("table2.total", nil, n("as", "amount"))),
		n("where", nil, n("and", nil, n("table2.total.mt", 100))))

	result := build(t, sqlgen.Read, root)
	assert.Equal(t,
		"select 'table1'.'name','table2'.'total' as 'amount' from 'table1'"+
			" inner join 'table2' on 'table1'.'id' = 'table2'.'table1_id'"+
			" where 'table2'.'total' > @0 limit 25",
		result.Value)
	assert.Equal(t, []param{{"@0", 100}}, params(result))
}

func TestJoinErrors(t *testing.T) {
	tests := []struct {
		name string
		root *node.Node
		slot string
	}{
		{"missing on", joined(n("join", "table2")), "on"},
		{"two on nodes", joined(n("join", "table2", on(n("a", "b")), on(n("c", "d")))), "on"},
		{"empty on", joined(n("join", "table2", n("on", nil))), "on"},
		{"unknown type", joined(n("join", "table2", n("type", "cross"), on(n("a", "b")))), "type"},
		{"two types", joined(n("join", "table2", n("type", "left"), n("type", "inner"), on(n("a", "b")))), "type"},
		{"unnamed join", joined(n("join", nil, on(n("a", "b")))), "join"},
		{"unknown child", joined(n("join", "table2", on(n("a", "b")), n("where", nil))), "join"},
		{"missing rhs", joined(n("join", "table2", on(n("a", nil)))), "on"},
		{"unknown operator", joined(n("join", "table2", on(n("a", "b", n("operator", "approx"))))), "operator"},
		{"two operators", joined(n("join", "table2", on(n("a", "b", n("operator", "eq"), n("operator", "neq"))))), "operator"},
		{"membership", joined(n("join", "table2", on(n("a.in", nil, n("", 1))))), "in"},
		{"bad nested join", joined(n("join", "table2", on(n("a", "b")), n("join", "table3"))), "on"},
		{"non boolean below on", joined(n("join", "table2", n("on", nil, n("a", "b")))), "on"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := buildErr(t, sqlgen.Read, tt.root)
			var structErr *sqlgen.StructureError
			require.ErrorAs(t, err, &structErr)
			assert.Equal(t, tt.slot, structErr.Slot)
		})
	}
}

func TestJoinOnlyForRead(t *testing.T) {
	root := n("", nil,
		n("table", "table1", n("join", "table2", on(n("a", "b")))),
		n("values", nil, n("a", 1)))

	for _, kind := range []sqlgen.Kind{sqlgen.Create, sqlgen.Update, sqlgen.Delete} {
		t.Run(kind.String(), func(t *testing.T) {
			err := buildErr(t, kind, root)
			assert.True(t, sqlgen.IsStructure(err))
		})
	}
}
