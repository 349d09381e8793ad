package sqlgen

import "strings"

// buildCreate generates
//
//	insert into <table> (<columns>) values (<values>)
//
// A null value is written as the literal null and binds no parameter.
func (c *buildContext) buildCreate() (string, error) {
	_, table, err := c.tableName()
	if err != nil {
		return "", err
	}
	values, err := c.values()
	if err != nil {
		return "", err
	}

	columns := make([]string, 0, len(values.Children))
	placeholders := make([]string, 0, len(values.Children))
	for _, value := range values.Children {
		columns = append(columns, c.quote(value.Name))
		if value.Value == nil {
			placeholders = append(placeholders, "null")
			continue
		}
		placeholders = append(placeholders, c.bind(value.Value))
	}

	var sb strings.Builder
	sb.WriteString("insert into ")
	sb.WriteString(table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString(") values (")
	sb.WriteString(strings.Join(placeholders, ", "))
	sb.WriteString(")")
	return sb.String(), nil
}
