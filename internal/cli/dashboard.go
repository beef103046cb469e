// internal/cli/dashboard.go
package gapview

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/gapview/internal/logging"
	"github.com/mwiater/gapview/internal/tui"
	"github.com/spf13/cobra"
)

// dashboardCmd starts the interactive terminal dashboard.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Explore gaps and simulated scores in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := analyzerOrErr()
		if err != nil {
			return err
		}
		cfg := GetConfig()

		// The UI owns the terminal, so logs go to the file only.
		if err := logging.InitFileOnly(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return tui.Run(ctx, a, cfg.SimulationStep())
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
