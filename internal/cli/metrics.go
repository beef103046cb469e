// internal/cli/metrics.go
package gapview

import (
	"fmt"

	"github.com/spf13/cobra"
)

// metricsCmd implements 'metrics', which lists the known metrics in display
// order with the recorded score of each class.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "List metrics and their per-class scores",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := analyzerOrErr()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		entries := a.Table().Entries()

		if JSONModeEnabled() {
			return writeJSON(out, entries)
		}

		labels := a.Labels()
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{string(e.Name), percent(e.Scores.Normal), percent(e.Scores.Malicious)})
		}
		fmt.Fprintln(out, renderTable([]string{"Metric", labels.Normal, labels.Malicious}, rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}
