package sqlgen

import "strings"

// DefaultOrderFunc returns the order by clause used for a paged read that
// declares no [order], e.g. "order by 1". It receives the quoted primary
// table. An empty result adds nothing.
type DefaultOrderFunc func(table string) string

// StaticOrder returns a DefaultOrderFunc that always yields clause.
func StaticOrder(clause string) DefaultOrderFunc {
	return func(string) string {
		return clause
	}
}

// Dialect bundles the per-database settings of the generator.
type Dialect struct {
	Name         string
	Escape       string
	DefaultOrder DefaultOrderFunc
}

var (
	// MySQL quotes identifiers with backticks.
	MySQL = Dialect{Name: "mysql", Escape: "`"}
	// PostgreSQL quotes identifiers with double quotes.
	PostgreSQL = Dialect{Name: "postgresql", Escape: `"`}
	// SQLite quotes identifiers with double quotes.
	SQLite = Dialect{Name: "sqlite", Escape: `"`}
)

// LookupDialect returns the preset for name.
func LookupDialect(name string) (Dialect, bool) {
	switch strings.ToLower(name) {
	case "mysql":
		return MySQL, true
	case "postgres", "postgresql":
		return PostgreSQL, true
	case "sqlite", "sqlite3":
		return SQLite, true
	default:
		return Dialect{}, false
	}
}
