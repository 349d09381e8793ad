package sqlgen

import "strings"

func (c *buildContext) buildDelete() (string, error) {
	_, table, err := c.tableName()
	if err != nil {
		return "", err
	}
	if c.root.First("values") != nil {
		return "", structureErr(c.kind, "values", "[values] is not allowed in a delete statement")
	}

	var sb strings.Builder
	sb.WriteString("delete from ")
	sb.WriteString(table)
	if err := c.appendWhere(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
