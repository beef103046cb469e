// internal/cli/root.go
package gapview

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mwiater/gapview/internal/appconfig"
	"github.com/mwiater/gapview/internal/features"
	"github.com/mwiater/gapview/internal/gap"
	"github.com/mwiater/gapview/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "GAPVIEW"

var (
	cfgFile         string
	currentConfig   *appconfig.Config
	currentAnalyzer *gap.Analyzer
	currentFeatures []features.Row
	appVersion      = "dev"
	appCommit       = "none"
	appDate         = "unknown"
)

// envKeys are the scalar config keys that can be set from GAPVIEW_* variables
// even when the config file does not mention them.
var envKeys = []string{
	"debug",
	"jsonMode",
	"logFile",
	"classLabels.normal",
	"classLabels.malicious",
	"thresholds.balanced",
	"thresholds.mild",
	"simulation.min",
	"simulation.max",
	"simulation.step",
	"report.title",
	"report.output",
	"report.markdownOutput",
	"report.notes",
	"server.addr",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gapview",
	Short: "gapview — compare per-class detector scores and simulate what-if gaps",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := ensureConfigLoaded()
		if err != nil {
			return err
		}

		for _, name := range []string{"debug", "jsonMode"} {
			if !cmd.Flags().Changed(name) {
				val := viper.GetBool(name)
				_ = cmd.Flags().Set(name, strconv.FormatBool(val))
			}
		}
		if !cmd.Flags().Changed("logFile") {
			_ = cmd.Flags().Set("logFile", viper.GetString("logFile"))
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		if loaded {
			cfg.ConfigPath = viper.ConfigFileUsed()
		}

		analyzer, err := cfg.Analyzer()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		rows, err := cfg.FeatureRows()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		currentConfig = &cfg
		currentAnalyzer = analyzer
		currentFeatures = rows

		initLog := logging.Init
		if cfg.JSONMode {
			initLog = logging.InitFileOnly
		}
		if err := initLog(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if DebugEnabled() {
			logging.LogEvent("[CONFIG] file=%q metrics=%d features=%d", cfg.ConfigPath, len(analyzer.ListMetrics()), len(rows))
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		_ = logging.Close()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("jsonMode", false, "enable JSON output mode")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("jsonMode", rootCmd.PersistentFlags().Lookup("jsonMode"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, key := range envKeys {
		_ = viper.BindEnv(key)
	}
}

// initConfig loads .env and points viper at the config file.
func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads and validates the config file. It reports whether
// a file was read; a missing file means defaults, flags and environment only.
func ensureConfigLoaded() (bool, error) {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			// Drop values from any earlier read.
			_ = viper.ReadConfig(strings.NewReader("{}"))
			return false, nil
		}
		return false, fmt.Errorf("failed to load config: %w", err)
	}

	// JSON files also go through schema and semantic validation.
	file := viper.ConfigFileUsed()
	if strings.EqualFold(filepath.Ext(file), ".json") {
		if _, err := appconfig.Load(file); err != nil {
			return false, err
		}
	}
	return true, nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// JSONModeEnabled returns true if JSON mode is enabled.
func JSONModeEnabled() bool { return viper.GetBool("jsonMode") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
