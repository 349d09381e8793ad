// Package executor runs generated statements against a database/sql handle.
package executor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/satishbabariya/sqltree/node"
)

// ErrNothingToExecute is returned for a nil result, which is what a
// generate-only statement yields.
var ErrNothingToExecute = errors.New("executor: nothing to execute")

// ExecQuerier is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Error wraps a driver error with the statement that caused it.
type Error struct {
	SQL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("executor: %v (sql: %s)", e.Err, e.SQL)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Style is the placeholder syntax a driver understands.
type Style int

const (
	// Named keeps the generated @N placeholders (sqlite).
	Named Style = iota
	// Question rewrites placeholders to ? (mysql).
	Question
	// Dollar rewrites placeholders to $1, $2, ... (postgres).
	Dollar
)

// StyleFor returns the placeholder style of a provider name.
func StyleFor(provider string) Style {
	switch strings.ToLower(provider) {
	case "mysql":
		return Question
	case "postgres", "postgresql":
		return Dollar
	default:
		return Named
	}
}

// Args returns the bound values of result in parameter order.
func Args(result *node.Node) []any {
	args := make([]any, len(result.Children))
	for i, p := range result.Children {
		args[i] = p.Value
	}
	return args
}

// Rebind returns the SQL of result with its placeholders rewritten to style,
// and the matching positional arguments. Quoted identifiers are left alone.
func Rebind(result *node.Node, style Style) (string, []any, error) {
	if result == nil {
		return "", nil, ErrNothingToExecute
	}
	query, ok := result.Value.(string)
	if !ok || query == "" {
		return "", nil, ErrNothingToExecute
	}
	args := Args(result)
	if style == Named {
		return query, args, nil
	}

	positions := make(map[string]int, len(result.Children))
	for i, p := range result.Children {
		positions[p.Name] = i
	}

	var sb strings.Builder
	sb.Grow(len(query))
	var quote byte
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"' || ch == '`':
			quote = ch
		case ch == '@':
			end := i + 1
			if end < len(query) && query[end] == 'v' {
				end++
			}
			for end < len(query) && query[end] >= '0' && query[end] <= '9' {
				end++
			}
			pos, known := positions[query[i:end]]
			if !known {
				break
			}
			if style == Question {
				sb.WriteByte('?')
			} else {
				sb.WriteString("$" + strconv.Itoa(pos+1))
			}
			i = end - 1
			continue
		}
		sb.WriteByte(ch)
	}
	return sb.String(), args, nil
}

// Executor runs results against one database handle.
type Executor struct {
	db    ExecQuerier
	style Style
}

// New creates an executor over db using the given placeholder style.
func New(db ExecQuerier, style Style) *Executor {
	return &Executor{db: db, style: style}
}

// Exec runs a statement that returns no rows.
func (e *Executor) Exec(ctx context.Context, result *node.Node) (sql.Result, error) {
	query, args, err := Rebind(result, e.style)
	if err != nil {
		return nil, err
	}
	res, err := e.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, &Error{SQL: query, Err: err}
	}
	return res, nil
}

// Query runs a statement returning rows. The caller closes them.
func (e *Executor) Query(ctx context.Context, result *node.Node) (*sql.Rows, error) {
	query, args, err := Rebind(result, e.style)
	if err != nil {
		return nil, err
	}
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &Error{SQL: query, Err: err}
	}
	return rows, nil
}

// Rows runs a select and returns at most max records as column name to
// value maps, together with the column names. A negative max reads all.
func (e *Executor) Rows(ctx context.Context, result *node.Node, max int) ([]string, []map[string]any, error) {
	rows, err := e.Query(ctx, result)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var records []map[string]any
	for rows.Next() {
		if max >= 0 && len(records) >= max {
			break
		}
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row: %w", err)
		}

		record := make(map[string]any, len(columns))
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				record[column] = string(b)
			} else {
				record[column] = values[i]
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return columns, records, nil
}
