// internal/cli/features.go
package gapview

import (
	"fmt"

	"github.com/mwiater/gapview/internal/features"
	"github.com/mwiater/gapview/internal/util"
	"github.com/spf13/cobra"
)

const maxFeatureRunes = 40

var (
	featuresSort   string
	featuresDesc   bool
	featuresFilter string
)

// featuresCmd implements 'features', which prints the feature-importance
// table, optionally filtered and sorted.
var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Show the feature-importance table",
	Long: `Show how each feature contributes to threat detection. Rows can be filtered
by feature name or level and sorted by any column.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if currentConfig == nil {
			return errNotLoaded
		}

		t, err := features.NewTable(currentFeatures).Filter(featuresFilter).Sort(featuresSort, featuresDesc)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if JSONModeEnabled() {
			return writeJSON(out, t.Rows())
		}

		rows := make([][]string, 0, t.Len())
		for _, r := range t.Rows() {
			rows = append(rows, []string{
				util.TruncateRunes(r.Feature, maxFeatureRunes),
				fmt.Sprintf("%.3f", r.ImportanceScore),
				fmt.Sprintf("%.1f", r.Contribution),
				r.Impact.String(),
				r.Relevance.String(),
			})
		}
		fmt.Fprintln(out, renderTable([]string{"Feature", "Importance Score", "Contribution (%)", "Impact Level", "Business Relevance"}, rows))
		fmt.Fprintf(out, "%d of %d features\n", t.Len(), len(currentFeatures))
		return nil
	},
}

func init() {
	featuresCmd.Flags().StringVar(&featuresSort, "sort", features.ColumnFeature, "sort column: feature, importance, contribution, impact, relevance")
	featuresCmd.Flags().BoolVar(&featuresDesc, "desc", false, "sort in descending order")
	featuresCmd.Flags().StringVar(&featuresFilter, "filter", "", "only rows whose name or level contains this text")

	rootCmd.AddCommand(featuresCmd)
}
