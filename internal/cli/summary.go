// internal/cli/summary.go
package gapview

import (
	"fmt"

	"github.com/mwiater/gapview/internal/gap"
	"github.com/spf13/cobra"
)

// summaryCmd implements 'summary', which evaluates every metric and prints
// the cross-metric gap statistics.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the gaps across all metrics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := analyzerOrErr()
		if err != nil {
			return err
		}
		s, err := a.Summarize()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if JSONModeEnabled() {
			return writeJSON(out, s)
		}

		for _, res := range s.Results {
			fmt.Fprintf(out, "%-12s ", res.Metric)
			tierColor(res.Verdict.Tier).Fprintf(out, "%-13s", res.Verdict.Tier)
			fmt.Fprintf(out, " %s\n", res.Verdict.Message)
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Metrics:    %d\n", s.Metrics)
		fmt.Fprintf(out, "Mean gap:   %.2f%%\n", s.MeanGap)
		fmt.Fprintf(out, "Median gap: %.2f%%\n", s.MedianGap)
		fmt.Fprintf(out, "Widest gap: %s (%.2f%%)\n", s.WidestGap, s.MaxGap)
		fmt.Fprint(out, "Tiers:     ")
		for _, t := range []gap.Tier{gap.TierBalanced, gap.TierMild, gap.TierSignificant} {
			fmt.Fprint(out, " ")
			tierColor(t).Fprintf(out, "%s=%d", t, s.TierCounts[t.String()])
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
