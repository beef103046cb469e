// internal/cli/report.go
package gapview

import (
	"fmt"

	"github.com/mwiater/gapview/internal/logging"
	"github.com/mwiater/gapview/internal/report"
	"github.com/mwiater/gapview/internal/util"
	"github.com/spf13/cobra"
)

var (
	reportHTMLPath     string
	reportMarkdownPath string
	reportSort         string
	reportDesc         bool
)

// reportCmd writes the class comparison, simulation sweeps and feature table
// as a self-contained HTML dashboard and, optionally, a markdown summary.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the HTML dashboard and markdown summary",
	Long: `Evaluate every metric, precompute the simulation sweep for the what-if slider,
and write a self-contained HTML dashboard. The markdown summary is written when
--markdown-output (or report.markdownOutput in the config) is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := analyzerOrErr()
		if err != nil {
			return err
		}
		cfg := GetConfig()

		htmlPath := reportHTMLPath
		if htmlPath == "" {
			htmlPath = cfg.ReportPath()
		}
		mdPath := reportMarkdownPath
		if mdPath == "" {
			mdPath = cfg.Report.MarkdownOutput
		}

		d, err := report.Build(a, currentFeatures, report.Options{
			Title:      cfg.ReportTitle(),
			Notes:      cfg.Report.Notes,
			Step:       cfg.SimulationStep(),
			SortBy:     reportSort,
			Descending: reportDesc,
		})
		if err != nil {
			return err
		}

		page, err := report.GenerateHTML(d)
		if err != nil {
			return fmt.Errorf("render html: %w", err)
		}
		if err := util.WriteFile(htmlPath, []byte(page)); err != nil {
			return fmt.Errorf("write %s: %w", htmlPath, err)
		}
		logging.LogEvent("[REPORT] html=%s metrics=%d features=%d", htmlPath, len(d.Metrics), len(d.Features))
		fmt.Fprintf(cmd.OutOrStdout(), "HTML dashboard written to %s\n", htmlPath)

		if mdPath != "" {
			if err := util.WriteFile(mdPath, []byte(report.GenerateMarkdown(d))); err != nil {
				return fmt.Errorf("write %s: %w", mdPath, err)
			}
			logging.LogEvent("[REPORT] markdown=%s", mdPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Markdown summary written to %s\n", mdPath)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportHTMLPath, "html-output", "", "destination HTML dashboard path (default from config)")
	reportCmd.Flags().StringVar(&reportMarkdownPath, "markdown-output", "", "optional markdown summary path")
	reportCmd.Flags().StringVar(&reportSort, "sort", "importance", "initial feature sort column")
	reportCmd.Flags().BoolVar(&reportDesc, "desc", true, "sort features in descending order")

	rootCmd.AddCommand(reportCmd)
}
