// internal/cli/evaluate.go
package gapview

import (
	"fmt"

	"github.com/mwiater/gapview/internal/gap"
	"github.com/mwiater/gapview/internal/logging"
	"github.com/spf13/cobra"
)

var (
	evaluateMetric   string
	evaluateOverride float64
)

// evaluateCmd implements 'evaluate', which classifies the gap of one metric,
// optionally with a simulated malicious score.
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Classify the performance gap of a metric",
	Long: `Look up the per-class scores of a metric and classify the gap between them.
With --override the malicious score is replaced by a simulated value, which must
lie within the configured simulation range.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := analyzerOrErr()
		if err != nil {
			return err
		}

		var override *float64
		if cmd.Flags().Changed("override") {
			v := evaluateOverride
			override = &v
		}

		res, err := a.Analyze(gap.MetricName(evaluateMetric), override)
		if err != nil {
			return err
		}
		logging.LogEvaluation(res, override)

		out := cmd.OutOrStdout()
		if JSONModeEnabled() {
			return writeJSON(out, res)
		}

		labels := a.Labels()
		suffix := ""
		if res.Simulated {
			suffix = " (simulated)"
		}
		fmt.Fprintf(out, "%s: %s %.2f%% | %s %.2f%%%s\n", res.Metric, labels.Normal, res.Pair.Normal, labels.Malicious, res.Pair.Malicious, suffix)
		tierColor(res.Verdict.Tier).Fprintf(out, "[%s]", res.Verdict.Tier)
		fmt.Fprintf(out, " %s\n", res.Verdict.Message)
		return nil
	},
}

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateMetric, "metric", "m", "", "metric to evaluate (see 'gapview metrics')")
	evaluateCmd.Flags().Float64Var(&evaluateOverride, "override", 0, "simulated malicious score")
	_ = evaluateCmd.MarkFlagRequired("metric")

	rootCmd.AddCommand(evaluateCmd)
}
