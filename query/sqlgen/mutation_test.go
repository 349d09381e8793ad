package sqlgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/sqltree/node"
	"github.com/satishbabariya/sqltree/query/sqlgen"
)

func TestCreate(t *testing.T) {
	t.Run("single value", func(t *testing.T) {
		result := build(t, sqlgen.Create, n("", nil,
			n("table", "foo"),
			n("values", nil, n("field1", "howdy"))))

		assert.Equal(t, "insert into 'foo' ('field1') values (@0)", result.Value)
		assert.Equal(t, []param{{"@0", "howdy"}}, params(result))
	})

	t.Run("null values bind nothing", func(t *testing.T) {
		result := build(t, sqlgen.Create, n("", nil,
			n("table", "dbo.foo"),
			n("values", nil, n("field1", "a"), n("field2", nil), n("field3", 3))))

		assert.Equal(t, "insert into 'dbo'.'foo' ('field1', 'field2', 'field3') values (@0, null, @1)", result.Value)
		assert.Equal(t, []param{{"@0", "a"}, {"@1", 3}}, params(result))
	})

	t.Run("column names are single identifiers", func(t *testing.T) {
		result := build(t, sqlgen.Create, n("", nil,
			n("table", "foo"),
			n("values", nil, n("it's.here", 1))))

		assert.Equal(t, "insert into 'foo' ('it''s.here') values (@0)", result.Value)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("independent parameter namespaces", func(t *testing.T) {
		result := build(t, sqlgen.Update, n("", nil,
			n("table", "foo"),
			n("values", nil, n("field1", "howdy")),
			n("where", nil, n("and", nil, n("field2", "value2")))))

		assert.Equal(t, "update 'foo' set 'field1' = @v0 where 'field2' = @0", result.Value)
		assert.Equal(t, []param{{"@v0", "howdy"}, {"@0", "value2"}}, params(result))
	})

	t.Run("null assignment", func(t *testing.T) {
		result := build(t, sqlgen.Update, n("", nil,
			n("table", "foo"),
			n("values", nil, n("field1", nil), n("field2", 2), n("field3", 3)),
			n("where", nil, n("or", nil, n("id", 1), n("id", 2)))))

		assert.Equal(t, "update 'foo' set 'field1' = null, 'field2' = @v0, 'field3' = @v1 where 'id' = @0 or 'id' = @1", result.Value)
		assert.Equal(t, []param{{"@v0", 2}, {"@v1", 3}, {"@0", 1}, {"@1", 2}}, params(result))
	})

	t.Run("without where", func(t *testing.T) {
		result := build(t, sqlgen.Update, n("", nil,
			n("table", "foo"),
			n("values", nil, n("field1", true))))

		assert.Equal(t, "update 'foo' set 'field1' = @v0", result.Value)
	})
}

func TestDelete(t *testing.T) {
	result := build(t, sqlgen.Delete, n("", nil, n("table", "foo")))
	assert.Equal(t, "delete from 'foo'", result.Value)
	assert.Empty(t, result.Children)

	result = build(t, sqlgen.Delete, n("", nil,
		n("table", "foo"),
		n("where", nil, n("and", nil, n("id.in", nil, n("", 4), n("", 5))))))
	assert.Equal(t, "delete from 'foo' where 'id' in (@0,@1)", result.Value)
	assert.Equal(t, []param{{"@0", 4}, {"@1", 5}}, params(result))
}

func TestMutationErrors(t *testing.T) {
	tests := []struct {
		name string
		kind sqlgen.Kind
		root *node.Node
		slot string
	}{
		{"create without values", sqlgen.Create, n("", nil, n("table", "foo")), "values"},
		{"create with empty values", sqlgen.Create, n("", nil, n("table", "foo"), n("values", nil)), "values"},
		{"create with two values", sqlgen.Create, n("", nil, n("table", "foo"), n("values", nil, n("a", 1)), n("values", nil, n("b", 2))), "values"},
		{"create without table", sqlgen.Create, n("", nil, n("values", nil, n("a", 1))), "table"},
		{"update without values", sqlgen.Update, n("", nil, n("table", "foo")), "values"},
		{"update with empty values", sqlgen.Update, n("", nil, n("table", "foo"), n("values", nil)), "values"},
		{"update with two where", sqlgen.Update, n("", nil, n("table", "foo"), n("values", nil, n("a", 1)), n("where", nil), n("where", nil)), "where"},
		{"update with bad connective", sqlgen.Update, n("", nil, n("table", "foo"), n("values", nil, n("a", 1)), n("where", nil, n("not", nil))), "where"},
		{"delete with values", sqlgen.Delete, n("", nil, n("table", "foo"), n("values", nil, n("a", 1))), "values"},
		{"delete without table", sqlgen.Delete, n("", nil, n("where", nil)), "table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := buildErr(t, tt.kind, tt.root)
			var structErr *sqlgen.StructureError
			require.ErrorAs(t, err, &structErr)
			assert.Equal(t, tt.kind, structErr.Kind)
			assert.Equal(t, tt.slot, structErr.Slot)
		})
	}
}

func TestTableEscaping(t *testing.T) {
	values := func() *node.Node { return n("values", nil, n("a", 1)) }
	for _, table := range []string{"foo", "db.foo", "a.b.c"} {
		quoted := map[string]string{
			"foo":    "'foo'",
			"db.foo": "'db'.'foo'",
			"a.b.c":  "'a'.'b'.'c'",
		}[table]

		t.Run(table, func(t *testing.T) {
			assert.Contains(t, build(t, sqlgen.Create, n("", nil, n("table", table), values())).Value, "insert into "+quoted+" (")
			assert.Contains(t, build(t, sqlgen.Read, n("", nil, n("table", table))).Value, " from "+quoted+" ")
			assert.Contains(t, build(t, sqlgen.Update, n("", nil, n("table", table), values())).Value, "update "+quoted+" set")
			assert.Equal(t, "delete from "+quoted, build(t, sqlgen.Delete, n("", nil, n("table", table))).Value)
		})
	}
}
