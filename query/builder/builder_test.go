package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/sqltree/node"
	"github.com/satishbabariya/sqltree/query/builder"
	"github.com/satishbabariya/sqltree/query/sqlgen"
)

type param struct {
	name  string
	value any
}

func params(result *node.Node) []param {
	var out []param
	for _, p := range result.Children {
		out = append(out, param{p.Name, p.Value})
	}
	return out
}

func TestRead(t *testing.T) {
	result, err := builder.From("users").
		Columns("id", "name").
		ColumnAs("email", "mail").
		Where(builder.And().Equals("active", true).GreaterThan("age", 18)).
		OrderBy("name").
		Desc().
		Limit(10).
		Offset(20).
		Build(sqlgen.Read, "'")
	require.NoError(t, err)

	assert.Equal(t, "select 'id','name','email' as 'mail' from 'users'"+
		" where 'active' = @0 and 'age' > @1 order by 'name' desc limit 10 offset 20", result.Value)
	assert.Equal(t, []param{{"@0", true}, {"@1", 18}}, params(result))
}

func TestConditions(t *testing.T) {
	where := builder.Or().
		NotEquals("a", 1).
		GreaterOrEqual("b", 2).
		LessThan("c", 3).
		LessOrEqual("d", 4).
		Like("e", "x%").
		In("f", 5, 6).
		Group(builder.And().Equals("g", 7).Equals("h", 8))

	result, err := builder.From("t").Where(where).Limit(-1).Build(sqlgen.Read, "'")
	require.NoError(t, err)

	assert.Equal(t, "select * from 't' where 'a' != @0 or 'b' >= @1 or 'c' < @2 or 'd' <= @3"+
		" or 'e' like @4 or 'f' in (@5,@6) or ('g' = @7 and 'h' = @8)", result.Value)
	assert.Len(t, result.Children, 9)
}

func TestCustomOperator(t *testing.T) {
	result, err := builder.From("t").
		Where(builder.And().Op("name", "ne", "x")).
		Limit(-1).
		Build(sqlgen.Read, "'", sqlgen.WithOperator("ne", sqlgen.Binary("<>")))
	require.NoError(t, err)
	assert.Equal(t, "select * from 't' where 'name' <> @0", result.Value)
}

func TestJoins(t *testing.T) {
	result, err := builder.From("users").
		Join(builder.LeftJoin("orders").
			On(builder.And().Equals("id", "user_id")).
			Then(builder.Join("items").On(builder.And().Equals("id", "order_id")))).
		Join(builder.FullJoin("notes").On(builder.And().Equals("id", "user_id"))).
		Limit(-1).
		Build(sqlgen.Read, "'")
	require.NoError(t, err)

	assert.Equal(t, "select * from 'users'"+
		" left join 'orders' on 'users'.'id' = 'orders'.'user_id'"+
		" inner join 'items' on 'orders'.'id' = 'items'.'order_id'"+
		" full join 'notes' on 'users'.'id' = 'notes'.'user_id'", result.Value)
	assert.Empty(t, result.Children)
}

func TestGroupBy(t *testing.T) {
	result, err := builder.From("t").
		Columns("kind", "count(*)").
		GroupBy("other").
		GroupBy("kind").
		OrderBy("kind", "t.id").
		Asc().
		Build(sqlgen.Read, "'")
	require.NoError(t, err)
	assert.Equal(t, "select 'kind',count(*) from 't' group by 'kind' order by 'kind','t'.'id' asc limit 25", result.Value)
}

func TestMutations(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		result, err := builder.From("users").Set("name", "ada").Set("email", nil).Build(sqlgen.Create, "`")
		require.NoError(t, err)
		assert.Equal(t, "insert into `users` (`name`, `email`) values (@0, null)", result.Value)
		assert.Equal(t, []param{{"@0", "ada"}}, params(result))
	})

	t.Run("update", func(t *testing.T) {
		result, err := builder.From("users").
			Set("name", "ada").
			Where(builder.And().Equals("id", 1)).
			Build(sqlgen.Update, "'")
		require.NoError(t, err)
		assert.Equal(t, "update 'users' set 'name' = @v0 where 'id' = @0", result.Value)
		assert.Equal(t, []param{{"@v0", "ada"}, {"@0", 1}}, params(result))
	})

	t.Run("delete", func(t *testing.T) {
		result, err := builder.From("users").Where(builder.And().LessThan("age", 3)).Build(sqlgen.Delete, "'")
		require.NoError(t, err)
		assert.Equal(t, "delete from 'users' where 'age' < @0", result.Value)
	})

	t.Run("create without values", func(t *testing.T) {
		_, err := builder.From("users").Build(sqlgen.Create, "'")
		assert.True(t, sqlgen.IsStructure(err))
	})
}

func TestTree(t *testing.T) {
	q := builder.From("users").Limit(5).Limit(10).GenerateOnly()

	tree := q.Tree()
	want := node.New("", nil,
		node.New("table", "users"),
		node.New("limit", 10),
		node.New("generate", true))
	assert.Equal(t, want, tree)

	tree.Add(node.New("offset", 1))
	assert.Equal(t, want, q.Tree())

	b, err := sqlgen.NewRead(q.Tree(), "'")
	require.NoError(t, err)
	assert.True(t, b.IsGenerateOnly())
}
