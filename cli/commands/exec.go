package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/sqltree/cli/internal/ui"
	"github.com/satishbabariya/sqltree/internal/debug"
	"github.com/satishbabariya/sqltree/query/executor"
)

var execCmd = &cobra.Command{
	Use:   "exec <create|read|update|delete> <tree-file>",
	Short: "Generate SQL from a query tree and run it",
	Long: `Generate the statement of a query tree and execute it against the
database named by DATABASE_URL (or --url). Reads print the returned rows,
other statements print the number of affected rows. Trees marked with
"generate: true" are only printed.`,
	Args: cobra.ExactArgs(2),
	RunE: runExec,
}

var (
	execFlags    dialectFlags
	execURL      string
	execProvider string
	execMax      int
	execTimeout  time.Duration
)

func init() {
	execCmd.Flags().StringVarP(&execFlags.dialect, "dialect", "d", "", "SQL dialect: sqlite, postgres or mysql (default: provider)")
	execCmd.Flags().StringVarP(&execFlags.escape, "escape", "e", "", "Identifier escape character, overriding the dialect")
	execCmd.Flags().StringVar(&execURL, "url", "", "Connection string (default: DATABASE_URL)")
	execCmd.Flags().StringVarP(&execProvider, "provider", "p", "", "Database provider: sqlite, postgres or mysql")
	execCmd.Flags().IntVar(&execMax, "max", -1, "Maximum number of rows to print, -1 for all")
	execCmd.Flags().DurationVar(&execTimeout, "timeout", 30*time.Second, "Statement timeout")

	rootCmd.AddCommand(execCmd)
}

// driverName maps a provider to its registered database/sql driver.
func driverName(provider string) (string, error) {
	switch strings.ToLower(provider) {
	case "sqlite", "sqlite3":
		return "sqlite3", nil
	case "postgres", "postgresql":
		return "postgres", nil
	case "mysql":
		return "mysql", nil
	default:
		return "", fmt.Errorf("unsupported provider %q", provider)
	}
}

func runExec(cmd *cobra.Command, args []string) error {
	provider := execProvider
	if provider == "" {
		provider = cfg.Provider
	}
	flags := execFlags
	if flags.dialect == "" {
		flags.dialect = provider
	}

	st, err := generate(args[0], args[1], flags)
	if err != nil {
		return err
	}
	if st.GenerateOnly {
		ui.PrintWarning("Generate only, nothing was executed")
		return render("text", st)
	}

	url := execURL
	if url == "" {
		url = cfg.DatabaseURL
	}
	if url == "" {
		return fmt.Errorf("no connection string, set DATABASE_URL or pass --url")
	}
	driver, err := driverName(provider)
	if err != nil {
		return err
	}

	db, err := sql.Open(driver, url)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, execTimeout)
	defer cancel()

	exec := executor.New(db, executor.StyleFor(provider))
	log := debug.With("run", uuid.NewString(), "provider", provider)
	log.Debug("executing statement", "kind", st.Kind, "sql", st.SQL)

	spinner := ui.Spinner("Executing " + st.Kind + " statement...")
	defer func() { _ = spinner.Stop() }()

	if st.Kind == "read" {
		columns, records, err := exec.Rows(ctx, st.result, execMax)
		_ = spinner.Stop()
		if err != nil {
			log.Debug("statement failed", "error", err)
			return err
		}
		log.Debug("statement done", "rows", len(records))
		if len(records) == 0 {
			ui.PrintInfo("No rows")
			return nil
		}
		rows := make([][]string, 0, len(records))
		for _, record := range records {
			row := make([]string, len(columns))
			for i, column := range columns {
				row[i] = fmt.Sprint(record[column])
			}
			rows = append(rows, row)
		}
		if err := ui.PrintTable(columns, rows); err != nil {
			return err
		}
		ui.PrintSuccess("%d row(s)", len(records))
		return nil
	}

	res, err := exec.Exec(ctx, st.result)
	_ = spinner.Stop()
	if err != nil {
		log.Debug("statement failed", "error", err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		ui.PrintSuccess("Statement executed")
		return nil
	}
	ui.PrintSuccess("%d row(s) affected", affected)
	return nil
}
