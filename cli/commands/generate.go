package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/sqltree/cli/internal/ui"
	"github.com/satishbabariya/sqltree/cli/internal/watch"
)

var generateCmd = &cobra.Command{
	Use:   "generate <create|read|update|delete> <tree-file>",
	Short: "Generate SQL from a query tree file",
	Long: `Generate the parametrized SQL of a query tree without executing it.

The tree file is YAML or JSON. With --watch the statement is regenerated
every time the file is saved.`,
	Args: cobra.ExactArgs(2),
	RunE: runGenerate,
}

var (
	generateFlags  dialectFlags
	generateFormat string
	generateWatch  bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "text", "Output format: text, json, yaml or markdown")
	generateCmd.Flags().StringVarP(&generateFlags.dialect, "dialect", "d", "", "SQL dialect: sqlite, postgres or mysql")
	generateCmd.Flags().StringVarP(&generateFlags.escape, "escape", "e", "", "Identifier escape character, overriding the dialect")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Regenerate whenever the tree file changes")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	kind, path := args[0], args[1]

	if generateWatch {
		return runGenerateWatch(kind, path)
	}

	st, err := generate(kind, path, generateFlags)
	if err != nil {
		return err
	}
	return render(generateFormat, st)
}

func runGenerateWatch(kind, path string) error {
	ui.PrintHeader("sqltree", "Watch Mode")

	callback := func() error {
		st, err := generate(kind, path, generateFlags)
		if err != nil {
			return err
		}
		return render(generateFormat, st)
	}

	onError := func(err error) {
		ui.PrintError("%v", err)
	}

	watcher, err := watch.NewWatcher(path, callback, watch.WithErrorHandler(onError))
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(); err != nil {
		return err
	}

	ui.PrintSuccess("Watching %s for changes... (Press Ctrl+C to stop)", path)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	ui.PrintInfo("Stopping watch mode...")
	return nil
}
