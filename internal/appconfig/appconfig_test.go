// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/mwiater/gapview/internal/features"
	"github.com/mwiater/gapview/internal/gap"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "config*.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpfile.Name()
}

// TestLoad checks that a complete config decodes and that its derived
// analyzer, policy and feature rows reflect the file.
func TestLoad(t *testing.T) {
	validConfig := `{
        "metrics": [
            {"name": "F1-Score", "normal": 93.68, "malicious": 92.40},
            {"name": "Recall", "normal": 90, "malicious": 99}
        ],
        "classLabels": {"normal": "Benign", "malicious": "Attack"},
        "thresholds": {"balanced": 0.5, "mild": 2},
        "simulation": {"min": 80, "max": 100, "step": 0.5},
        "features": [
            {"feature": "Port", "importanceScore": 0.4, "contribution": 40, "impact": "High", "relevance": "Very High"}
        ]
    }`
	cfg, err := Load(writeTemp(t, validConfig))
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if len(cfg.Metrics) != 2 {
		t.Fatalf("expected 2 metrics, got %d", len(cfg.Metrics))
	}

	p := cfg.Policy()
	if p.BalancedBelow != 0.5 || p.MildBelow != 2 || p.OverrideMin != 80 || p.OverrideMax != 100 {
		t.Fatalf("unexpected policy: %+v", p)
	}
	if cfg.SimulationStep() != 0.5 {
		t.Fatalf("expected step 0.5, got %v", cfg.SimulationStep())
	}

	a, err := cfg.Analyzer()
	if err != nil {
		t.Fatalf("Analyzer() error: %v", err)
	}
	res, err := a.Analyze("Recall", nil)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if res.Verdict.Message != "Significant gap — Attack dominates by 9.00%." {
		t.Fatalf("unexpected message: %s", res.Verdict.Message)
	}

	rows, err := cfg.FeatureRows()
	if err != nil {
		t.Fatalf("FeatureRows() error: %v", err)
	}
	if len(rows) != 1 || rows[0].Impact != features.ImpactHigh || rows[0].Relevance != features.RelevanceVeryHigh {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestLoadRejectsInvalidConfigs(t *testing.T) {
	cases := map[string]string{
		"invalid json":      `{ "metrics": [`,
		"score above 100":   `{ "metrics": [{"name": "F1", "normal": 101, "malicious": 90}] }`,
		"missing malicious": `{ "metrics": [{"name": "F1", "normal": 90}] }`,
		"duplicate metric":  `{ "metrics": [{"name": "F1", "normal": 90, "malicious": 90}, {"name": "F1", "normal": 1, "malicious": 2}] }`,
		"bad impact":        `{ "features": [{"feature": "x", "impact": "Extreme", "relevance": "Low"}] }`,
		"inverted policy":   `{ "thresholds": {"balanced": 3, "mild": 2} }`,
		"wrong type":        `{ "debug": "yes" }`,
		"zero sim min":      `{ "simulation": {"min": 0} }`,
		"zero step":         `{ "simulation": {"step": 0} }`,
		"zero balanced":     `{ "thresholds": {"balanced": 0, "mild": 2} }`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeTemp(t, body)); err == nil {
				t.Fatalf("Load() should have failed for %s", name)
			}
		})
	}

	if _, err := Load("nonexistent.json"); err == nil {
		t.Fatal("Load() with nonexistent file should have failed")
	}
}

func TestDefaults(t *testing.T) {
	var cfg Config

	if cfg.LogFilePath() != "gapview.log" {
		t.Fatalf("unexpected log path %s", cfg.LogFilePath())
	}
	if cfg.ReportPath() != "reports/gap-dashboard.html" {
		t.Fatalf("unexpected report path %s", cfg.ReportPath())
	}
	if cfg.ListenAddr() != ":8080" {
		t.Fatalf("unexpected addr %s", cfg.ListenAddr())
	}
	if cfg.SimulationStep() != 0.1 {
		t.Fatalf("unexpected step %v", cfg.SimulationStep())
	}
	if cfg.Policy() != gap.DefaultPolicy() {
		t.Fatalf("expected default policy, got %+v", cfg.Policy())
	}

	a, err := cfg.Analyzer()
	if err != nil {
		t.Fatalf("Analyzer() error: %v", err)
	}
	if len(a.ListMetrics()) != 4 {
		t.Fatalf("expected built-in metrics, got %v", a.ListMetrics())
	}
	rows, err := cfg.FeatureRows()
	if err != nil || len(rows) != len(features.DefaultRows()) {
		t.Fatalf("expected built-in features, got %d rows (err %v)", len(rows), err)
	}
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	ShowConfig(&buf, "", nil)
	out := buf.String()
	for _, want := range []string{"No config file loaded", "balanced < 1.00, mild < 2.00", "[85.00, 100.00]", "built-in"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	cfg := &Config{Metrics: []MetricConfig{{Name: "A", Normal: 1, Malicious: 2}}}
	ShowConfig(&buf, "config/config.json", cfg)
	if !strings.Contains(buf.String(), "Config file: config/config.json") || !strings.Contains(buf.String(), "1 configured") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}
