// internal/cli/serve.go
package gapview

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/gapview/internal/report"
	"github.com/mwiater/gapview/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd runs the HTTP API and browser dashboard until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API and browser dashboard",
	Long: `Serve the gap analyzer over HTTP. Every request is evaluated independently, so
any number of browser sessions can select metrics and simulate scores at once.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := analyzerOrErr()
		if err != nil {
			return err
		}
		cfg := GetConfig()

		addr := serveAddr
		if addr == "" {
			addr = cfg.ListenAddr()
		}

		srv, err := server.New(server.Config{
			Addr:     addr,
			Analyzer: a,
			Features: currentFeatures,
			Report: report.Options{
				Title:      cfg.ReportTitle(),
				Notes:      cfg.Report.Notes,
				Step:       cfg.SimulationStep(),
				SortBy:     "importance",
				Descending: true,
			},
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "Serving gapview on %s (Ctrl+C to stop)\n", addr)
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")

	rootCmd.AddCommand(serveCmd)
}
