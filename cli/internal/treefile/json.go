package treefile

import (
	"bytes"
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/satishbabariya/sqltree/node"
)

// ParseJSON decodes a JSON tree document. Object keys keep their order
// and repeated keys become siblings, as with Parse.
func ParseJSON(data []byte) (*node.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmpty
	}

	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("treefile: %w", err)
	}
	obj, err := v.Object()
	if err != nil {
		return nil, fmt.Errorf("treefile: document must be an object")
	}

	root := node.New("", nil)
	if err := decodeObject(root, obj); err != nil {
		return nil, err
	}
	return root, nil
}

func decodeObject(parent *node.Node, obj *fastjson.Object) error {
	var err error
	obj.Visit(func(key []byte, v *fastjson.Value) {
		if err != nil {
			return
		}
		name := string(key)
		if name == ValueKey {
			if t := v.Type(); t == fastjson.TypeObject || t == fastjson.TypeArray {
				err = fmt.Errorf("treefile: [%s] of [%s] must be a scalar", ValueKey, parent.Name)
				return
			}
			parent.Value, err = jsonScalar(v)
			return
		}
		var child *node.Node
		if child, err = decodeJSON(name, v); err == nil {
			parent.Add(child)
		}
	})
	return err
}

func decodeJSON(name string, v *fastjson.Value) (*node.Node, error) {
	n := node.New(name, nil)
	switch v.Type() {
	case fastjson.TypeObject:
		obj, _ := v.Object()
		if err := decodeObject(n, obj); err != nil {
			return nil, err
		}
	case fastjson.TypeArray:
		items, _ := v.Array()
		for _, item := range items {
			child, err := decodeJSON("", item)
			if err != nil {
				return nil, err
			}
			n.Add(child)
		}
	default:
		value, err := jsonScalar(v)
		if err != nil {
			return nil, err
		}
		n.Value = value
	}
	return n, nil
}

// jsonScalar decodes a scalar into nil, bool, int, float64 or string.
func jsonScalar(v *fastjson.Value) (any, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return nil, nil
	case fastjson.TypeTrue:
		return true, nil
	case fastjson.TypeFalse:
		return false, nil
	case fastjson.TypeString:
		return string(v.GetStringBytes()), nil
	case fastjson.TypeNumber:
		if i, err := v.Int(); err == nil {
			return i, nil
		}
		return v.Float64()
	default:
		return nil, fmt.Errorf("treefile: unsupported JSON value %s", v.Type())
	}
}
