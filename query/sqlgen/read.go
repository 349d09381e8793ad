package sqlgen

import (
	"strconv"
	"strings"

	"github.com/satishbabariya/sqltree/node"
)

// defaultLimit applies to reads without a [limit] node.
const defaultLimit = 25

var joinTypes = map[string]bool{
	"inner": true,
	"outer": true,
	"left":  true,
	"right": true,
	"full":  true,
}

// buildRead generates
//
//	select <columns> from <table>[ <joins>][ where ...][ group by ...][ order by ...][ limit n][ offset n]
func (c *buildContext) buildRead() (string, error) {
	if err := c.checkSingles("columns", "group", "order", "direction", "limit", "offset"); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("select ")
	if err := c.appendColumns(&sb); err != nil {
		return "", err
	}

	sb.WriteString(" from ")
	tableNode, table, err := c.tableName()
	if err != nil {
		return "", err
	}
	sb.WriteString(table)
	for _, join := range tableNode.Children {
		if join.Name != "join" {
			return "", structureErr(c.kind, "table", "[%s] is not allowed below [table], only [join]", join.Name)
		}
		if err := c.appendJoin(&sb, join, table); err != nil {
			return "", err
		}
	}

	if err := c.appendWhere(&sb); err != nil {
		return "", err
	}
	if err := c.appendGroupBy(&sb); err != nil {
		return "", err
	}

	order, err := c.orderBy()
	if err != nil {
		return "", err
	}
	paging, err := c.paging()
	if err != nil {
		return "", err
	}
	if order == "" && paging != "" && c.defaultOrder != nil {
		order = c.defaultOrder(table)
	}
	if order != "" {
		sb.WriteString(" ")
		sb.WriteString(order)
	}
	sb.WriteString(paging)

	return sb.String(), nil
}

func (c *buildContext) appendColumns(sb *strings.Builder) error {
	columns := c.root.First("columns")
	if columns == nil || len(columns.Children) == 0 {
		sb.WriteString("*")
		return nil
	}

	for i, column := range columns.Children {
		if i > 0 {
			sb.WriteString(",")
		}
		resolved, err := c.resolveColumn(column.Name, "columns")
		if err != nil {
			return err
		}
		sb.WriteString(resolved)

		if as := column.First("as"); as != nil {
			alias, err := as.AsString()
			if err != nil {
				return structureErr(c.kind, "columns", "%v", err)
			}
			if alias != "" {
				sb.WriteString(" as ")
				sb.WriteString(c.quote(alias))
			}
		}
	}
	return nil
}

// appendJoin appends one join of the chain. primary is the quoted table the
// join attaches to; nested joins attach to this join's table.
func (c *buildContext) appendJoin(sb *strings.Builder, join *node.Node, primary string) error {
	name, err := join.AsString()
	if err != nil {
		return structureErr(c.kind, "join", "%v", err)
	}
	if name == "" {
		return structureErr(c.kind, "join", "[join] has no table name")
	}
	secondary := c.quotePath(name)

	var on *node.Node
	joinType := "inner"
	explicitType := false
	for _, child := range join.Children {
		switch child.Name {
		case "type":
			if explicitType {
				return structureErr(c.kind, "type", "too many [type] nodes in [join] %s", name)
			}
			explicitType = true
			if joinType, err = child.AsString(); err != nil {
				return structureErr(c.kind, "type", "%v", err)
			}
			if !joinTypes[joinType] {
				return structureErr(c.kind, "type",
					"unknown join type '%s', only [inner], [outer], [left], [right] and [full] are allowed", joinType)
			}
		case "on":
			if on != nil {
				return structureErr(c.kind, "on", "too many [on] nodes in [join] %s", name)
			}
			on = child
		case "join":
		default:
			return structureErr(c.kind, "join", "[%s] is not allowed below [join]", child.Name)
		}
	}
	if on == nil {
		return structureErr(c.kind, "on", "no [on] supplied to [join] %s", name)
	}

	predicate, err := c.compileConditions(on, &Emitter{ctx: c, lhsTable: primary, rhsTable: secondary})
	if err != nil {
		return err
	}
	if predicate == "" {
		return structureErr(c.kind, "on", "[on] of [join] %s has no conditions", name)
	}

	sb.WriteString(" ")
	sb.WriteString(joinType)
	sb.WriteString(" join ")
	sb.WriteString(secondary)
	sb.WriteString(" on ")
	sb.WriteString(predicate)

	for _, nested := range join.Named("join") {
		if err := c.appendJoin(sb, nested, secondary); err != nil {
			return err
		}
	}
	return nil
}

func (c *buildContext) appendGroupBy(sb *strings.Builder) error {
	group := c.root.First("group")
	if group == nil || len(group.Children) == 0 {
		return nil
	}

	columns := make([]string, 0, len(group.Children))
	for _, column := range group.Children {
		resolved, err := c.resolveColumn(column.Name, "group")
		if err != nil {
			return err
		}
		columns = append(columns, resolved)
	}
	sb.WriteString(" group by ")
	sb.WriteString(strings.Join(columns, ","))
	return nil
}

// orderBy returns the "order by" clause, or "" without an [order] node.
// A [direction] is validated even when there is no [order] to apply it to.
func (c *buildContext) orderBy() (string, error) {
	var direction string
	if dir := c.root.First("direction"); dir != nil {
		var err error
		if direction, err = dir.AsString(); err != nil {
			return "", structureErr(c.kind, "direction", "%v", err)
		}
		if direction != "asc" && direction != "desc" {
			return "", structureErr(c.kind, "direction",
				"cannot sort according to the '%s' [direction], only 'asc' and 'desc'", direction)
		}
	}

	order := c.root.First("order")
	if order == nil {
		return "", nil
	}
	list, err := order.AsString()
	if err != nil {
		return "", structureErr(c.kind, "order", "%v", err)
	}

	var columns []string
	for _, column := range strings.Split(list, ",") {
		column = strings.TrimSpace(column)
		if column == "" {
			return "", structureErr(c.kind, "order", "empty column in [order] '%s'", list)
		}
		columns = append(columns, c.quotePath(column))
	}

	clause := "order by " + strings.Join(columns, ",")
	if direction != "" {
		clause += " " + direction
	}
	return clause, nil
}

// paging returns the " limit n offset m" tail.
func (c *buildContext) paging() (string, error) {
	var sb strings.Builder

	if limit := c.root.First("limit"); limit != nil {
		n, err := limit.AsInt64()
		if err != nil {
			return "", structureErr(c.kind, "limit", "%v", err)
		}
		if n >= 0 {
			sb.WriteString(" limit ")
			sb.WriteString(strconv.FormatInt(n, 10))
		}
	} else {
		sb.WriteString(" limit ")
		sb.WriteString(strconv.Itoa(defaultLimit))
	}

	if offset := c.root.First("offset"); offset != nil {
		n, err := offset.AsInt64()
		if err != nil {
			return "", structureErr(c.kind, "offset", "%v", err)
		}
		sb.WriteString(" offset ")
		sb.WriteString(strconv.FormatInt(n, 10))
	}

	return sb.String(), nil
}
