package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/satishbabariya/sqltree/cli/internal/config"
	"github.com/satishbabariya/sqltree/cli/internal/treefile"
	"github.com/satishbabariya/sqltree/cli/internal/ui"
	"github.com/satishbabariya/sqltree/internal/debug"
	"github.com/satishbabariya/sqltree/node"
	"github.com/satishbabariya/sqltree/query/cache"
	"github.com/satishbabariya/sqltree/query/sqlgen"
)

// dialectFlags are shared by generate and exec.
type dialectFlags struct {
	dialect string
	escape  string
}

// statements caches generated statements across watch mode rebuilds.
var statements = cache.New(128, 0)

// options resolves the dialect, the escape character and the builder
// options from the flags, falling back to the configuration.
func (f dialectFlags) options() (sqlgen.Dialect, string, []sqlgen.Option, error) {
	name := f.dialect
	if name == "" {
		name = cfg.Dialect
	}
	d, ok := sqlgen.LookupDialect(name)
	if !ok {
		return sqlgen.Dialect{}, "", nil, fmt.Errorf("unknown dialect %q", name)
	}

	escape := f.escape
	if escape == "" {
		escape = cfg.Escape
	}

	opts := []sqlgen.Option{sqlgen.WithDialect(d)}
	if cfg.DefaultOrder != "" {
		opts = append(opts, sqlgen.WithDefaultOrder(sqlgen.StaticOrder(cfg.DefaultOrder)))
	}
	return d, escape, opts, nil
}

// statement is a generated statement ready for display.
type statement struct {
	Kind         string  `json:"kind" yaml:"kind"`
	SQL          string  `json:"sql" yaml:"sql"`
	Params       []param `json:"params" yaml:"params"`
	GenerateOnly bool    `json:"generateOnly" yaml:"generateOnly"`

	result *node.Node
}

type param struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// generate reads the tree at path and compiles it.
func generate(kindName, path string, flags dialectFlags) (*statement, error) {
	kind, err := sqlgen.ParseKind(kindName)
	if err != nil {
		return nil, err
	}
	root, err := treefile.ReadFile(config.AppFs, path)
	if err != nil {
		return nil, err
	}
	dialect, escape, opts, err := flags.options()
	if err != nil {
		return nil, err
	}

	key := cache.Key(root, kind.String(), dialect.Name, escape, cfg.DefaultOrder)
	result, ok := statements.Get(key)
	if ok {
		debug.Debug("statement cache hit", "kind", kind, "file", path)
	} else {
		result, err = sqlgen.Parse(kind, root, escape, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s statement: %w", kind, err)
		}
		// Generate-only trees carry the statement in root itself.
		if result != nil {
			statements.Set(key, result)
		}
	}

	st := &statement{Kind: kind.String(), result: result}
	source := result
	if result == nil {
		st.GenerateOnly = true
		source = root
	}
	st.SQL, _ = source.Value.(string)
	st.Params = make([]param, 0, len(source.Children))
	for _, p := range source.Children {
		st.Params = append(st.Params, param{Name: p.Name, Value: p.Value})
	}
	return st, nil
}

// render writes st to ui.Out in one of the supported formats.
func render(format string, st *statement) error {
	w := ui.Out
	switch format {
	case "", "text":
		ui.PrintSQL(st.SQL)
		if len(st.Params) == 0 {
			return nil
		}
		rows := make([][]string, 0, len(st.Params))
		for _, p := range st.Params {
			rows = append(rows, []string{p.Name, fmt.Sprint(p.Value), fmt.Sprintf("%T", p.Value)})
		}
		return ui.PrintTable([]string{"Param", "Value", "Type"}, rows)

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(st)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(st); err != nil {
			return err
		}
		return enc.Close()

	case "markdown":
		return ui.PrintMarkdown(markdown(st))

	default:
		return fmt.Errorf("unknown format %q, use text, json, yaml or markdown", format)
	}
}

func markdown(st *statement) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n```sql\n%s\n```\n", st.Kind, st.SQL)
	if len(st.Params) > 0 {
		sb.WriteString("\n| Param | Value |\n|---|---|\n")
		for _, p := range st.Params {
			fmt.Fprintf(&sb, "| `%s` | %v |\n", p.Name, p.Value)
		}
	}
	if st.GenerateOnly {
		sb.WriteString("\n_generate only_\n")
	}
	return sb.String()
}
