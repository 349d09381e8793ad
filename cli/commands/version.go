package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/sqltree/cli/internal/ui"
	"github.com/satishbabariya/sqltree/cli/internal/update"
	"github.com/satishbabariya/sqltree/cli/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

var (
	versionLatest string
	versionJSON   bool
)

func init() {
	versionCmd.Flags().StringVar(&versionLatest, "latest", "", "Compare against this released version")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build information as JSON")

	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Get()
	if versionJSON {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(ui.Out, string(data))
	} else {
		fmt.Fprintln(ui.Out, info.FullString())
	}

	if versionLatest == "" {
		return nil
	}
	notice, err := update.Check(info.Version, versionLatest)
	if err != nil {
		return err
	}
	if notice == nil {
		ui.PrintSuccess("sqltree is up to date")
		return nil
	}
	ui.PrintWarning("%s", notice)
	return nil
}
