package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/sqltree/cli/internal/ui"
	"github.com/satishbabariya/sqltree/query/sqlgen"
)

var operatorsCmd = &cobra.Command{
	Use:   "operators",
	Short: "List the comparison operator keywords",
	Long: `List the keywords that may end a condition name, such as "age.mteq".
A condition without a keyword compares with "=".`,
	Args: cobra.NoArgs,
	RunE: runOperators,
}

func init() {
	rootCmd.AddCommand(operatorsCmd)
}

func runOperators(cmd *cobra.Command, args []string) error {
	var rows [][]string
	for _, keyword := range sqlgen.DefaultOperators().Keywords() {
		emits, ok := sqlgen.Symbol(keyword)
		if !ok {
			emits = keyword + " (@0,@1,...)"
		}
		rows = append(rows, []string{keyword, emits, "column." + keyword})
	}
	ui.PrintSection("Operators")
	return ui.PrintTable([]string{"Keyword", "Emits", "Example"}, rows)
}
