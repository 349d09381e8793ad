// Package sqlgen generates parametrized SQL from declarative query trees.
//
// A statement is described by a node.Node whose children are directives
// such as [table], [values], [where], [columns] or [limit]. A Builder turns
// such a tree into a result node whose value is the SQL text and whose
// children are the ordered bind parameters:
//
//	root := node.New("", nil,
//		node.New("table", "foo"),
//		node.New("where", nil,
//			node.New("and", nil, node.New("field1.lteq", 5))))
//
//	b, _ := sqlgen.NewRead(root, "'")
//	result, _ := b.Build()
//	// result.Value: select * from 'foo' where 'field1' <= @0 limit 25
//	// result.Children: [@0:5]
//
// Predicate parameters are named @0, @1, ...; values assigned by an update
// are named @v0, @v1, ... and numbered independently.
package sqlgen

import (
	"strconv"
	"strings"

	"github.com/satishbabariya/sqltree/node"
)

// Kind selects the statement a Builder generates.
type Kind int

const (
	// Create generates an insert statement.
	Create Kind = iota
	// Read generates a select statement.
	Read
	// Update generates an update statement.
	Update
	// Delete generates a delete statement.
	Delete
)

var kindNames = [...]string{Create: "create", Read: "read", Update: "update", Delete: "delete"}

func (k Kind) String() string {
	if k < Create || k > Delete {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// ParseKind parses "create", "read", "update" or "delete".
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, invalidArg("unknown statement kind %q", s)
}

// Option configures a Builder.
type Option func(*options)

type options struct {
	operators    *Operators
	defaultOrder DefaultOrderFunc
	escape       string
	err          error
}

// WithOperators replaces the operator registry used to resolve keywords.
func WithOperators(ops *Operators) Option {
	return func(o *options) {
		if ops == nil {
			o.err = invalidArg("nil operator registry")
			return
		}
		o.operators = ops
	}
}

// WithOperator registers an extra operator keyword for this builder only.
func WithOperator(keyword string, fn OperatorFunc) Option {
	return func(o *options) {
		if keyword == "" || strings.Contains(keyword, ".") || fn == nil {
			o.err = invalidArg("invalid operator %q", keyword)
			return
		}
		o.operators = o.operators.With(keyword, fn)
	}
}

// WithDefaultOrder sets the hook producing a default order by clause for
// paged reads that declare no [order].
func WithDefaultOrder(fn DefaultOrderFunc) Option {
	return func(o *options) {
		o.defaultOrder = fn
	}
}

// WithDialect applies a dialect preset: its default-order hook, and its
// escape character when New is given an empty one.
func WithDialect(d Dialect) Option {
	return func(o *options) {
		o.escape = d.Escape
		if d.DefaultOrder != nil {
			o.defaultOrder = d.DefaultOrder
		}
	}
}

// Builder generates one statement from a query tree.
type Builder struct {
	kind   Kind
	root   *node.Node
	escape string
	opts   options
}

// New creates a Builder of the given kind over root. The escape string
// quotes identifiers, e.g. "'", `"` or "`". It may only be empty when a
// WithDialect option supplies one.
func New(kind Kind, root *node.Node, escape string, opts ...Option) (*Builder, error) {
	if kind < Create || kind > Delete {
		return nil, invalidArg("unknown statement kind %d", int(kind))
	}
	if root == nil {
		return nil, invalidArg("nil query tree")
	}
	if len(root.Children) == 0 {
		return nil, invalidArg("empty query tree")
	}

	o := options{operators: DefaultOperators()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if escape == "" {
		escape = o.escape
	}
	if escape == "" {
		return nil, invalidArg("empty escape character")
	}

	return &Builder{kind: kind, root: root, escape: escape, opts: o}, nil
}

// NewCreate creates an insert statement builder.
func NewCreate(root *node.Node, escape string, opts ...Option) (*Builder, error) {
	return New(Create, root, escape, opts...)
}

// NewRead creates a select statement builder.
func NewRead(root *node.Node, escape string, opts ...Option) (*Builder, error) {
	return New(Read, root, escape, opts...)
}

// NewUpdate creates an update statement builder.
func NewUpdate(root *node.Node, escape string, opts ...Option) (*Builder, error) {
	return New(Update, root, escape, opts...)
}

// NewDelete creates a delete statement builder.
func NewDelete(root *node.Node, escape string, opts ...Option) (*Builder, error) {
	return New(Delete, root, escape, opts...)
}

// Kind returns the statement kind.
func (b *Builder) Kind() Kind {
	return b.kind
}

// IsGenerateOnly reports whether the tree asks for SQL generation only,
// through a [generate] node with a true value.
func (b *Builder) IsGenerateOnly() bool {
	generate := b.root.First("generate")
	if generate == nil {
		return false
	}
	v, err := generate.AsBool()
	return err == nil && v
}

// Build generates the statement. The returned node is named "sql"; its
// value is the SQL text and its children the bind parameters in order.
func (b *Builder) Build() (*node.Node, error) {
	c := &buildContext{
		kind:         b.kind,
		root:         b.root,
		escape:       b.escape,
		operators:    b.opts.operators,
		defaultOrder: b.opts.defaultOrder,
		result:       node.New("sql", nil),
	}
	if _, err := c.single("generate"); err != nil {
		return nil, err
	}

	var sql string
	var err error
	switch b.kind {
	case Create:
		sql, err = c.buildCreate()
	case Read:
		sql, err = c.buildRead()
	case Update:
		sql, err = c.buildUpdate()
	case Delete:
		sql, err = c.buildDelete()
	}
	if err != nil {
		return nil, err
	}

	c.result.Value = sql
	return c.result, nil
}

// buildContext is the state of a single Build call.
type buildContext struct {
	kind         Kind
	root         *node.Node
	escape       string
	operators    *Operators
	defaultOrder DefaultOrderFunc
	result       *node.Node

	argNo   int // next @N
	valueNo int // next @vN
}

// bind appends v as the next predicate parameter.
func (c *buildContext) bind(v any) string {
	name := "@" + strconv.Itoa(c.argNo)
	c.argNo++
	c.result.Add(node.New(name, v))
	return name
}

// bindValue appends v as the next assignment parameter.
func (c *buildContext) bindValue(v any) string {
	name := "@v" + strconv.Itoa(c.valueNo)
	c.valueNo++
	c.result.Add(node.New(name, v))
	return name
}

// single returns the only root child named name, nil if there is none, or
// an error if there are several.
func (c *buildContext) single(name string) (*node.Node, error) {
	nodes := c.root.Named(name)
	if len(nodes) > 1 {
		return nil, structureErr(c.kind, name, "too many [%s] nodes", name)
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	return nodes[0], nil
}

// checkSingles verifies none of the named directives is repeated.
func (c *buildContext) checkSingles(names ...string) error {
	for _, name := range names {
		if _, err := c.single(name); err != nil {
			return err
		}
	}
	return nil
}

// tableName returns the [table] node and its quoted name.
func (c *buildContext) tableName() (*node.Node, string, error) {
	tables := c.root.Named("table")
	switch len(tables) {
	case 0:
		return nil, "", structureErr(c.kind, "table", "no [table] supplied")
	case 1:
	default:
		return nil, "", structureErr(c.kind, "table", "too many [table] nodes")
	}

	table := tables[0]
	name, err := table.AsString()
	if err != nil {
		return nil, "", structureErr(c.kind, "table", "%v", err)
	}
	if name == "" {
		return nil, "", structureErr(c.kind, "table", "[table] has no name")
	}
	if c.kind != Read && len(table.Children) > 0 {
		return nil, "", structureErr(c.kind, "table", "[table] cannot have children for %s", c.kind)
	}
	return table, c.quotePath(name), nil
}

// values returns the single, non-empty [values] node.
func (c *buildContext) values() (*node.Node, error) {
	values, err := c.single("values")
	if err != nil {
		return nil, err
	}
	if values == nil {
		return nil, structureErr(c.kind, "values", "missing [values] node")
	}
	if len(values.Children) == 0 {
		return nil, structureErr(c.kind, "values", "no actual [values] provided")
	}
	return values, nil
}
