package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &Config{}
	}
	policy := cfg.Policy()
	labels := cfg.Labels()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:            %v\n", cfg.Debug)
	fmt.Fprintf(out, "  JSON Mode:        %v\n", cfg.JSONMode)
	fmt.Fprintf(out, "  Log File:         %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Thresholds:       balanced < %.2f, mild < %.2f\n", policy.BalancedBelow, policy.MildBelow)
	fmt.Fprintf(out, "  Simulation Range: [%.2f, %.2f] step %.2f\n", policy.OverrideMin, policy.OverrideMax, cfg.SimulationStep())
	fmt.Fprintf(out, "  Class Labels:     %q / %q\n", valueOr(labels.Normal, "Normal Users"), valueOr(labels.Malicious, "Malicious Users"))
	if len(cfg.Metrics) == 0 {
		fmt.Fprintln(out, "  Metrics:          built-in")
	} else {
		fmt.Fprintf(out, "  Metrics:          %d configured\n", len(cfg.Metrics))
	}
	if len(cfg.Features) == 0 {
		fmt.Fprintln(out, "  Features:         built-in")
	} else {
		fmt.Fprintf(out, "  Features:         %d configured\n", len(cfg.Features))
	}
	fmt.Fprintf(out, "  Report Output:    %s\n", cfg.ReportPath())
	fmt.Fprintf(out, "  Listen Address:   %s\n", cfg.ListenAddr())
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
