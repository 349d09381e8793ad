package sqlgen

import "strings"

// buildUpdate generates "update <table> set <assignments>[ where ...]".
// Assignments bind @vN parameters, numbered apart from the where clause.
func (c *buildContext) buildUpdate() (string, error) {
	_, table, err := c.tableName()
	if err != nil {
		return "", err
	}
	values, err := c.values()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("update ")
	sb.WriteString(table)
	sb.WriteString(" set ")
	for i, value := range values.Children {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.quote(value.Name))
		if value.Value == nil {
			sb.WriteString(" = null")
			continue
		}
		sb.WriteString(" = ")
		sb.WriteString(c.bindValue(value.Value))
	}

	if err := c.appendWhere(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
