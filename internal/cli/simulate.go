// internal/cli/simulate.go
package gapview

import (
	"fmt"

	"github.com/mwiater/gapview/internal/gap"
	"github.com/spf13/cobra"
)

var (
	simulateMetric string
	simulateStep   float64
)

// simulateCmd implements 'simulate', which sweeps the simulated malicious
// score across its range and prints the verdict at every step.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Sweep simulated malicious scores for a metric",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := analyzerOrErr()
		if err != nil {
			return err
		}

		step := simulateStep
		if !cmd.Flags().Changed("step") {
			step = GetConfig().SimulationStep()
		}

		points, err := a.Sweep(gap.MetricName(simulateMetric), step)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if JSONModeEnabled() {
			return writeJSON(out, points)
		}

		labels := a.Labels()
		rows := make([][]string, 0, len(points))
		for _, p := range points {
			rows = append(rows, []string{
				percent(p.Override),
				percent(p.Verdict.Gap),
				tierColor(p.Verdict.Tier).Sprint(p.Verdict.Tier),
				labels.For(p.Verdict.Leading),
			})
		}
		fmt.Fprintf(out, "%s: %d simulated %s scores, step %.2f\n", simulateMetric, len(points), labels.Malicious, step)
		fmt.Fprintln(out, renderTable([]string{"Override", "Gap", "Tier", "Leading"}, rows))
		return nil
	},
}

func init() {
	simulateCmd.Flags().StringVarP(&simulateMetric, "metric", "m", "", "metric to simulate (see 'gapview metrics')")
	simulateCmd.Flags().Float64Var(&simulateStep, "step", 0, "increment between simulated scores (default from config)")
	_ = simulateCmd.MarkFlagRequired("metric")

	rootCmd.AddCommand(simulateCmd)
}
