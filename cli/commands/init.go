package commands

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/sqltree/cli/internal/config"
	"github.com/satishbabariya/sqltree/cli/internal/ui"
	"github.com/satishbabariya/sqltree/query/sqlgen"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the sqltree configuration file",
	Long: `Ask for the SQL dialect and the database provider, then write them to
~/.config/sqltree/.sqltree.yaml. Pass --yes to accept the flag values
without prompting.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var (
	initDialect      string
	initProvider     string
	initDefaultOrder string
	initYes          bool
)

var providers = []string{"sqlite", "postgres", "mysql"}

func init() {
	initCmd.Flags().StringVar(&initDialect, "dialect", "", "SQL dialect")
	initCmd.Flags().StringVar(&initProvider, "provider", "", "Database provider")
	initCmd.Flags().StringVar(&initDefaultOrder, "default-order", "", "Order by clause for paged reads without [order]")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Do not prompt")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	answers := struct {
		Dialect      string
		Provider     string
		DefaultOrder string
	}{
		Dialect:      firstNonEmpty(initDialect, cfg.Dialect),
		Provider:     firstNonEmpty(initProvider, cfg.Provider),
		DefaultOrder: firstNonEmpty(initDefaultOrder, cfg.DefaultOrder),
	}

	if !initYes {
		questions := []*survey.Question{
			{
				Name: "dialect",
				Prompt: &survey.Select{
					Message: "SQL dialect:",
					Options: providers,
					Default: selectDefault(answers.Dialect),
				},
			},
			{
				Name: "provider",
				Prompt: &survey.Select{
					Message: "Database provider:",
					Options: providers,
					Default: selectDefault(answers.Provider),
				},
			},
			{
				Name: "defaultOrder",
				Prompt: &survey.Input{
					Message: "Order by clause for paged reads (optional):",
					Default: answers.DefaultOrder,
				},
			},
		}
		if err := survey.Ask(questions, &answers); err != nil {
			return err
		}
	}

	if _, ok := sqlgen.LookupDialect(answers.Dialect); !ok {
		ui.PrintWarning("Unknown dialect %q, generation will fail until it is changed", answers.Dialect)
	}
	if _, err := driverName(answers.Provider); err != nil {
		ui.PrintWarning("%v", err)
	}

	path, err := config.Save(&config.Config{
		Dialect:      answers.Dialect,
		Escape:       cfg.Escape,
		Provider:     answers.Provider,
		DefaultOrder: answers.DefaultOrder,
		Debug:        cfg.Debug,
	})
	if err != nil {
		return err
	}
	ui.PrintSuccess("Wrote %s", path)
	return nil
}

// selectDefault returns v when it is one of the offered providers.
// survey rejects a default missing from the options.
func selectDefault(v string) any {
	for _, p := range providers {
		if p == v {
			return v
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
