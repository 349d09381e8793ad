package sqlgen

import (
	"strings"
)

// literalMarker prefixes a name that must be quoted as one identifier,
// dots included, and never checked for an operator keyword.
const literalMarker = `\`

// reference is a resolved column reference.
type reference struct {
	sql string
	// bare is true for a single unqualified identifier, which joins
	// qualify with the table it belongs to.
	bare bool
}

// quote wraps a single identifier in the escape character, doubling any
// embedded escape character.
func (c *buildContext) quote(identifier string) string {
	return c.escape + strings.ReplaceAll(identifier, c.escape, c.escape+c.escape) + c.escape
}

// quotePath quotes every dot separated segment of name independently.
func (c *buildContext) quotePath(name string) string {
	return c.quoteSegments(strings.Split(name, "."))
}

func (c *buildContext) quoteSegments(segments []string) string {
	quoted := make([]string, len(segments))
	for i, segment := range segments {
		quoted[i] = c.quote(segment)
	}
	return strings.Join(quoted, ".")
}

func isAggregate(name string) bool {
	return strings.Contains(name, "(") && strings.Contains(name, ")")
}

// resolveCondition resolves the name of a condition leaf into a column
// reference and its comparison operator. Priority: literal marker,
// aggregate expression, trailing operator keyword, plain dotted path.
// Unregistered trailing segments are part of the column name.
func (c *buildContext) resolveCondition(name string) (reference, OperatorFunc) {
	if rest, ok := strings.CutPrefix(name, literalMarker); ok {
		return reference{sql: c.quote(rest), bare: true}, equals
	}
	if isAggregate(name) {
		return reference{sql: name}, equals
	}

	segments := strings.Split(name, ".")
	if len(segments) > 1 {
		last := segments[len(segments)-1]
		if fn, ok := c.operators.Lookup(last); ok {
			head := segments[:len(segments)-1]
			return reference{sql: c.quoteSegments(head), bare: len(head) == 1}, fn
		}
		if rest, ok := strings.CutPrefix(last, literalMarker); ok {
			segments[len(segments)-1] = rest
		}
	}
	return reference{sql: c.quoteSegments(segments), bare: len(segments) == 1}, equals
}

// resolveReference resolves a column reference that carries no operator,
// such as the right-hand side of a join predicate.
func (c *buildContext) resolveReference(name string) reference {
	if rest, ok := strings.CutPrefix(name, literalMarker); ok {
		return reference{sql: c.quote(rest), bare: true}
	}
	if isAggregate(name) {
		return reference{sql: name}
	}
	segments := strings.Split(name, ".")
	return reference{sql: c.quoteSegments(segments), bare: len(segments) == 1}
}

// resolveColumn resolves a select or group by column, which may reference
// at most table.column.
func (c *buildContext) resolveColumn(name, slot string) (string, error) {
	if rest, ok := strings.CutPrefix(name, literalMarker); ok {
		return c.quote(rest), nil
	}
	if isAggregate(name) {
		return name, nil
	}
	segments := strings.Split(name, ".")
	if len(segments) > 2 {
		return "", structureErr(c.kind, slot,
			"cannot create a query traversing more than two entities for [%s]", name)
	}
	return c.quoteSegments(segments), nil
}

// qualify prefixes a bare reference with table.
func qualify(ref reference, table string) string {
	if ref.bare && table != "" {
		return table + "." + ref.sql
	}
	return ref.sql
}
