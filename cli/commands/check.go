package commands

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/satishbabariya/sqltree/cli/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check <create|read|update|delete> <tree-file>...",
	Short: "Check that query tree files compile",
	Long: `Compile every tree file as the given statement kind and report the
files that fail. Files are checked concurrently.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCheck,
}

var (
	checkFlags dialectFlags
	checkJobs  int
)

func init() {
	checkCmd.Flags().StringVarP(&checkFlags.dialect, "dialect", "d", "", "SQL dialect: sqlite, postgres or mysql")
	checkCmd.Flags().StringVarP(&checkFlags.escape, "escape", "e", "", "Identifier escape character, overriding the dialect")
	checkCmd.Flags().IntVarP(&checkJobs, "jobs", "j", 4, "Number of files compiled at once")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	kind, paths := args[0], args[1:]

	var (
		mu     sync.Mutex
		failed = make(map[string]error)
	)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(checkJobs, 1))
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := generate(kind, path, checkFlags); err != nil {
				mu.Lock()
				failed[path] = err
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	rows := make([][]string, 0, len(paths))
	for _, path := range paths {
		status := "ok"
		if err, ok := failed[path]; ok {
			status = err.Error()
		}
		rows = append(rows, []string{path, status})
	}
	if err := ui.PrintTable([]string{"File", "Result"}, rows); err != nil {
		return err
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d tree file(s) failed to compile", len(failed), len(paths))
	}
	ui.PrintSuccess("%d tree file(s) compile", len(paths))
	return nil
}
