// internal/cli/show.go
package gapview

import (
	"github.com/k0kubun/pp"
	"github.com/mwiater/gapview/internal/appconfig"
	"github.com/spf13/cobra"
)

var showConfigRaw bool

// showCmd represents the 'show' command group for displaying resources.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Group commands for displaying resources",
	Long:  `The 'show' command groups subcommands that display resources or information related to gapview.`,
}

// showConfigCmd implements 'show config', which prints the merged
// configuration after file, environment and flag overrides.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overridden by environment variables and flags accordingly.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		cfg := GetConfig()
		if cfg == nil {
			return errNotLoaded
		}
		if JSONModeEnabled() {
			return writeJSON(out, cfg)
		}
		if showConfigRaw {
			_, err := pp.Fprintln(out, cfg)
			return err
		}

		appconfig.ShowConfig(out, cfg.ConfigPath, cfg)
		return nil
	},
}

func init() {
	showConfigCmd.Flags().BoolVar(&showConfigRaw, "raw", false, "pretty-print the full config struct")

	showCmd.AddCommand(showConfigCmd)
	rootCmd.AddCommand(showCmd)
}
