// Package sqlgen provides the comparison operator registry.
package sqlgen

import (
	"maps"
	"slices"
	"strings"

	"github.com/satishbabariya/sqltree/node"
)

// OperatorFunc appends the right-hand side of a comparison to e, starting
// with the operator itself. The column has already been written.
type OperatorFunc func(e *Emitter, leaf *node.Node) error

// Operators maps operator keywords to comparison strategies.
// A registry is never modified after construction; With returns a copy.
type Operators struct {
	ops map[string]OperatorFunc
}

// builtinSymbols lists the plain comparison keywords.
var builtinSymbols = map[string]string{
	"eq":   "=",
	"neq":  "!=",
	"mt":   ">",
	"mteq": ">=",
	"lt":   "<",
	"lteq": "<=",
	"like": "like",
}

var (
	equals           = Binary("=")
	defaultOperators = newDefaultOperators()
)

func newDefaultOperators() *Operators {
	ops := make(map[string]OperatorFunc, len(builtinSymbols)+1)
	for keyword, symbol := range builtinSymbols {
		ops[keyword] = Binary(symbol)
	}
	ops["in"] = in
	return &Operators{ops: ops}
}

// DefaultOperators returns the built-in registry:
// eq, neq, mt, mteq, lt, lteq, like and in.
func DefaultOperators() *Operators {
	return defaultOperators
}

// With returns a new registry holding o's operators plus keyword mapped to
// fn, replacing any existing mapping for keyword.
func (o *Operators) With(keyword string, fn OperatorFunc) *Operators {
	next := &Operators{ops: make(map[string]OperatorFunc, len(o.ops)+1)}
	maps.Copy(next.ops, o.ops)
	next.ops[keyword] = fn
	return next
}

// Lookup returns the strategy registered for keyword.
func (o *Operators) Lookup(keyword string) (OperatorFunc, bool) {
	fn, ok := o.ops[keyword]
	return fn, ok
}

// Keywords returns the registered keywords in sorted order.
func (o *Operators) Keywords() []string {
	return slices.Sorted(maps.Keys(o.ops))
}

// Symbol returns the SQL symbol of a built-in plain comparison keyword.
func Symbol(keyword string) (string, bool) {
	symbol, ok := builtinSymbols[keyword]
	return symbol, ok
}

// Binary returns a strategy emitting "<column> <symbol> <operand>".
func Binary(symbol string) OperatorFunc {
	return func(e *Emitter, leaf *node.Node) error {
		e.WriteString(" " + symbol + " ")
		return e.Operand(leaf)
	}
}

// in emits a membership test, binding one parameter per child of leaf.
func in(e *Emitter, leaf *node.Node) error {
	if !e.Binding() {
		return structureErr(e.ctx.kind, "in", "membership test [%s] is not allowed in a join predicate", leaf.Name)
	}
	placeholders := make([]string, 0, len(leaf.Children))
	for _, candidate := range leaf.Children {
		// [operator] is a directive of the leaf, not a candidate.
		if candidate.Name == "operator" {
			continue
		}
		placeholder, err := e.Bind(candidate.Value)
		if err != nil {
			return err
		}
		placeholders = append(placeholders, placeholder)
	}
	if len(placeholders) == 0 {
		return structureErr(e.ctx.kind, "in", "membership test [%s] has no candidate values", leaf.Name)
	}
	e.WriteString(" in (" + strings.Join(placeholders, ",") + ")")
	return nil
}

// Emitter is the view of an ongoing compilation handed to an OperatorFunc.
type Emitter struct {
	ctx *buildContext
	sb  *strings.Builder
	// binding is false inside join predicates, where both sides are columns.
	binding bool
	// lhsTable and rhsTable qualify bare columns of a join predicate.
	lhsTable string
	rhsTable string
}

// WriteString appends raw SQL.
func (e *Emitter) WriteString(s string) {
	e.sb.WriteString(s)
}

// Binding reports whether values are bound as parameters. It is false for
// join predicates.
func (e *Emitter) Binding() bool {
	return e.binding
}

// Bind adds v as the next positional parameter and returns its placeholder.
func (e *Emitter) Bind(v any) (string, error) {
	if !e.binding {
		return "", structureErr(e.ctx.kind, "on", "join predicates cannot bind parameters")
	}
	return e.ctx.bind(v), nil
}

// Operand appends the right-hand side of leaf: a bound parameter, or a
// column reference when parameters are not bound.
func (e *Emitter) Operand(leaf *node.Node) error {
	if e.binding {
		e.WriteString(e.ctx.bind(leaf.Value))
		return nil
	}
	name, err := leaf.AsString()
	if err != nil {
		return structureErr(e.ctx.kind, "on", "%v", err)
	}
	if name == "" {
		return structureErr(e.ctx.kind, "on", "join predicate [%s] has no right-hand column", leaf.Name)
	}
	e.WriteString(qualify(e.ctx.resolveReference(name), e.rhsTable))
	return nil
}
