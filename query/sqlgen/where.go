// Package sqlgen provides the boolean condition compiler shared by where
// clauses and join predicates.
package sqlgen

import (
	"strings"

	"github.com/satishbabariya/sqltree/node"
)

// appendWhere appends " where <conditions>" if the root holds a non-empty
// [where] node.
func (c *buildContext) appendWhere(sb *strings.Builder) error {
	where, err := c.single("where")
	if err != nil || where == nil {
		return err
	}
	conditions, err := c.compileConditions(where, &Emitter{ctx: c, binding: true})
	if err != nil {
		return err
	}
	if conditions != "" {
		sb.WriteString(" where ")
		sb.WriteString(conditions)
	}
	return nil
}

// compileConditions compiles the boolean groups below a [where] or [on]
// node. A single group at this level is not parenthesized; several of them
// are parenthesized each and joined with "and".
func (c *buildContext) compileConditions(parent *node.Node, e *Emitter) (string, error) {
	for _, group := range parent.Children {
		if !isConnective(group.Name) {
			return "", structureErr(c.kind, parent.Name,
				"[%s] is not a boolean operator, only [and] and [or] are allowed below [%s]", group.Name, parent.Name)
		}
	}

	var parts []string
	for _, group := range parent.Children {
		compiled, err := c.compileGroup(group, e)
		if err != nil {
			return "", err
		}
		if compiled != "" {
			parts = append(parts, compiled)
		}
	}
	if len(parts) > 1 {
		for i, part := range parts {
			parts[i] = "(" + part + ")"
		}
	}
	return strings.Join(parts, " and "), nil
}

// compileGroup compiles the children of one [and]/[or] group joined by the
// group's connective. Nested groups are parenthesized; empty ones vanish.
func (c *buildContext) compileGroup(group *node.Node, e *Emitter) (string, error) {
	var parts []string
	for _, child := range group.Children {
		if isConnective(child.Name) {
			nested, err := c.compileGroup(child, e)
			if err != nil {
				return "", err
			}
			if nested != "" {
				parts = append(parts, "("+nested+")")
			}
			continue
		}

		condition, err := c.compileCondition(child, e)
		if err != nil {
			return "", err
		}
		parts = append(parts, condition)
	}
	return strings.Join(parts, " "+group.Name+" "), nil
}

// compileCondition compiles a single comparison leaf.
func (c *buildContext) compileCondition(leaf *node.Node, e *Emitter) (string, error) {
	ref, op := c.resolveCondition(leaf.Name)

	if !e.binding {
		override, err := c.operatorOverride(leaf)
		if err != nil {
			return "", err
		}
		if override != nil {
			op = override
		}
	}

	var sb strings.Builder
	sb.WriteString(qualify(ref, e.lhsTable))

	leafEmitter := *e
	leafEmitter.sb = &sb
	if err := op(&leafEmitter, leaf); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// operatorOverride returns the operator named by a join leaf's [operator]
// child, or nil if it has none.
func (c *buildContext) operatorOverride(leaf *node.Node) (OperatorFunc, error) {
	overrides := leaf.Named("operator")
	switch len(overrides) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, structureErr(c.kind, "operator", "too many [operator] nodes for [%s]", leaf.Name)
	}

	keyword, err := overrides[0].AsString()
	if err != nil {
		return nil, structureErr(c.kind, "operator", "%v", err)
	}
	fn, ok := c.operators.Lookup(keyword)
	if !ok {
		return nil, structureErr(c.kind, "operator", "unknown comparison operator '%s' in join predicate [%s]", keyword, leaf.Name)
	}
	return fn, nil
}

func isConnective(name string) bool {
	return name == "and" || name == "or"
}
