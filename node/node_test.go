package node_test

import (
	"testing"

	"github.com/satishbabariya/sqltree/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_Lookup(t *testing.T) {
	root := node.New("", nil,
		node.New("table", "foo"),
		node.New("limit", 10),
		node.New("limit", 20),
	)

	assert.Equal(t, 2, root.Count("limit"))
	assert.Len(t, root.Named("limit"), 2)
	assert.Equal(t, 10, root.First("limit").Value)
	assert.Nil(t, root.First("offset"))
	assert.Empty(t, root.Named("offset"))
}

func TestNode_Clone(t *testing.T) {
	root := node.New("where", nil, node.New("and", nil, node.New("field1", "value1")))

	clone := root.Clone()
	clone.Children[0].Children[0].Value = "changed"

	assert.Equal(t, "value1", root.Children[0].Children[0].Value)
	assert.Equal(t, "changed", clone.Children[0].Children[0].Value)
}

func TestNode_Conversions(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int64
		wantErr bool
	}{
		{name: "int", value: 10, want: 10},
		{name: "int64", value: int64(-1), want: -1},
		{name: "numeric string", value: "25", want: 25},
		{name: "garbage string", value: "ten", wantErr: true},
		{name: "null", value: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := node.New("limit", tt.value).AsInt64()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	b, err := node.New("generate", "true").AsBool()
	require.NoError(t, err)
	assert.True(t, b)

	b, err = node.New("generate", nil).AsBool()
	require.NoError(t, err)
	assert.False(t, b)

	s, err := node.New("table", nil).AsString()
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestNode_String(t *testing.T) {
	root := node.New("sql", "select 1", node.New("@0", "howdy"))
	assert.Equal(t, "sql:select 1\n   @0:howdy\n", root.String())
}
