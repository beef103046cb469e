// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mwiater/gapview/internal/features"
	"github.com/mwiater/gapview/internal/gap"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path checked when the default path does not exist.
	legacyConfigPath = "config.json"
	// defaultLogFile is used when the config omits logFile.
	defaultLogFile = "gapview.log"
	// defaultReportPath is where the HTML dashboard is written when unset.
	defaultReportPath = "reports/gap-dashboard.html"
	// defaultReportTitle heads the HTML dashboard when unset.
	defaultReportTitle = "gapview: Class Performance Dashboard"
	// defaultSimulationStep is the slider increment for simulated scores.
	defaultSimulationStep = 0.1
	// defaultListenAddr is the HTTP API address when unset.
	defaultListenAddr = ":8080"
)

// Config represents the top-level application configuration.
type Config struct {
	Debug       bool            `json:"debug" mapstructure:"debug"`
	JSONMode    bool            `json:"jsonMode" mapstructure:"jsonMode"`
	LogFile     string          `json:"logFile,omitempty" mapstructure:"logFile"`
	Metrics     []MetricConfig  `json:"metrics,omitempty" mapstructure:"metrics"`
	ClassLabels ClassLabels     `json:"classLabels" mapstructure:"classLabels"`
	Thresholds  Thresholds      `json:"thresholds" mapstructure:"thresholds"`
	Simulation  Simulation      `json:"simulation" mapstructure:"simulation"`
	Features    []FeatureConfig `json:"features,omitempty" mapstructure:"features"`
	Report      Report          `json:"report" mapstructure:"report"`
	Server      Server          `json:"server" mapstructure:"server"`
	ConfigPath  string          `json:"-" mapstructure:"-"`
}

// MetricConfig is one metric row with the score of each class.
type MetricConfig struct {
	Name      string  `json:"name" mapstructure:"name"`
	Normal    float64 `json:"normal" mapstructure:"normal"`
	Malicious float64 `json:"malicious" mapstructure:"malicious"`
}

// ClassLabels are the display names used in verdict messages.
type ClassLabels struct {
	Normal    string `json:"normal,omitempty" mapstructure:"normal"`
	Malicious string `json:"malicious,omitempty" mapstructure:"malicious"`
}

// Thresholds are the gap cutoffs between tiers.
type Thresholds struct {
	Balanced float64 `json:"balanced,omitempty" mapstructure:"balanced"`
	Mild     float64 `json:"mild,omitempty" mapstructure:"mild"`
}

// Simulation bounds the simulated malicious score and sets the slider step.
type Simulation struct {
	Min  float64 `json:"min,omitempty" mapstructure:"min"`
	Max  float64 `json:"max,omitempty" mapstructure:"max"`
	Step float64 `json:"step,omitempty" mapstructure:"step"`
}

// FeatureConfig is one feature-importance row as written in the config file.
type FeatureConfig struct {
	Feature         string  `json:"feature" mapstructure:"feature"`
	ImportanceScore float64 `json:"importanceScore" mapstructure:"importanceScore"`
	Contribution    float64 `json:"contribution" mapstructure:"contribution"`
	Impact          string  `json:"impact" mapstructure:"impact"`
	Relevance       string  `json:"relevance" mapstructure:"relevance"`
}

// Report configures the generated dashboard files.
type Report struct {
	Title          string `json:"title,omitempty" mapstructure:"title"`
	Output         string `json:"output,omitempty" mapstructure:"output"`
	MarkdownOutput string `json:"markdownOutput,omitempty" mapstructure:"markdownOutput"`
	Notes          string `json:"notes,omitempty" mapstructure:"notes"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `json:"addr,omitempty" mapstructure:"addr"`
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// ReportPath returns the HTML dashboard destination.
func (c Config) ReportPath() string {
	if p := strings.TrimSpace(c.Report.Output); p != "" {
		return p
	}
	return defaultReportPath
}

// ReportTitle returns the dashboard heading.
func (c Config) ReportTitle() string {
	if t := strings.TrimSpace(c.Report.Title); t != "" {
		return t
	}
	return defaultReportTitle
}

// SimulationStep returns the slider increment for simulated scores.
func (c Config) SimulationStep() float64 {
	if c.Simulation.Step <= 0 {
		return defaultSimulationStep
	}
	return c.Simulation.Step
}

// ListenAddr returns the HTTP API listen address.
func (c Config) ListenAddr() string {
	if a := strings.TrimSpace(c.Server.Addr); a != "" {
		return a
	}
	return defaultListenAddr
}

// Policy returns the gap policy, filling unset values with the defaults.
func (c Config) Policy() gap.Policy {
	p := gap.DefaultPolicy()
	if c.Thresholds.Balanced > 0 {
		p.BalancedBelow = c.Thresholds.Balanced
	}
	if c.Thresholds.Mild > 0 {
		p.MildBelow = c.Thresholds.Mild
	}
	if c.Simulation.Min > 0 {
		p.OverrideMin = c.Simulation.Min
	}
	if c.Simulation.Max > 0 {
		p.OverrideMax = c.Simulation.Max
	}
	return p
}

// Labels returns the class display labels.
func (c Config) Labels() gap.Labels {
	return gap.Labels{Normal: c.ClassLabels.Normal, Malicious: c.ClassLabels.Malicious}
}

// MetricTable builds the metric table from config, or the built-in table when
// none is configured.
func (c Config) MetricTable() (*gap.MetricTable, error) {
	if len(c.Metrics) == 0 {
		return gap.DefaultMetricTable(), nil
	}
	entries := make([]gap.MetricEntry, 0, len(c.Metrics))
	for _, m := range c.Metrics {
		entries = append(entries, gap.MetricEntry{
			Name:   gap.MetricName(strings.TrimSpace(m.Name)),
			Scores: gap.ClassScorePair{Normal: m.Normal, Malicious: m.Malicious},
		})
	}
	return gap.NewMetricTable(entries)
}

// Analyzer builds the gap analyzer described by the config.
func (c Config) Analyzer() (*gap.Analyzer, error) {
	table, err := c.MetricTable()
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	a, err := gap.New(table, c.Policy(), c.Labels())
	if err != nil {
		return nil, fmt.Errorf("policy: %w", err)
	}
	return a, nil
}

// FeatureRows converts the configured feature rows, or returns the built-in
// rows when none are configured.
func (c Config) FeatureRows() ([]features.Row, error) {
	if len(c.Features) == 0 {
		return features.DefaultRows(), nil
	}
	rows := make([]features.Row, 0, len(c.Features))
	for i, f := range c.Features {
		impact, err := features.ParseImpact(f.Impact)
		if err != nil {
			return nil, fmt.Errorf("features[%d]: %w", i, err)
		}
		rel, err := features.ParseRelevance(f.Relevance)
		if err != nil {
			return nil, fmt.Errorf("features[%d]: %w", i, err)
		}
		rows = append(rows, features.Row{
			Feature:         f.Feature,
			ImportanceScore: f.ImportanceScore,
			Contribution:    f.Contribution,
			Impact:          impact,
			Relevance:       rel,
		})
	}
	return rows, nil
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q)", DefaultConfigPath, legacyConfigPath)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath validates and decodes a single config file.
func loadFromPath(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := Validate(raw); err != nil {
		return Config{}, err
	}

	var config Config
	if err := json.Unmarshal(raw, &config); err != nil {
		return Config{}, err
	}
	if _, err := config.Analyzer(); err != nil {
		return Config{}, err
	}
	if _, err := config.FeatureRows(); err != nil {
		return Config{}, err
	}
	return config, nil
}
