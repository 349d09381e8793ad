package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/sqltree/cli/internal/config"
	"github.com/satishbabariya/sqltree/cli/internal/ui"
	"github.com/satishbabariya/sqltree/internal/debug"
)

var (
	cfg       *config.Config
	debugFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "sqltree",
	Short: "Generate parametrized SQL from declarative query trees",
	Long: `sqltree turns YAML or JSON query trees into parametrized SQL.

A tree names the table, the values to write, boolean where groups, joins
and paging directives. sqltree compiles it for insert, select, update or
delete, and can run the result against sqlite, postgres or mysql.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		debug.Init(debugFlag || cfg.Debug)
		if cfg.File != "" {
			debug.Debug("loaded config", "file", cfg.File)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}

// Execute is the main entry point for the CLI
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("%v", err)
		return err
	}
	return nil
}
