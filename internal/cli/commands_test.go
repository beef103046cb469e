// internal/cli/commands_test.go
package gapview

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/gapview/internal/gap"
)

func TestMetricsCommand(t *testing.T) {
	out, err := runCLI(t, "{}", "metrics")
	if err != nil {
		t.Fatalf("metrics error: %v", err)
	}
	for _, want := range []string{"Metric", "Normal Users", "F1-Score", "93.68", "Precision", "95.06", "Accuracy"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %s", want, out)
		}
	}
	if strings.Index(out, "F1-Score") > strings.Index(out, "Precision") {
		t.Fatalf("expected metrics in display order, got %s", out)
	}
}

func TestEvaluateCommand(t *testing.T) {
	out, err := runCLI(t, "{}", "evaluate", "--metric", "F1-Score")
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}
	if !strings.Contains(out, "F1-Score: Normal Users 93.68% | Malicious Users 92.40%") {
		t.Fatalf("unexpected pair line: %s", out)
	}
	if !strings.Contains(out, "[Mild] Mild difference — Normal Users leads by 1.28%.") {
		t.Fatalf("unexpected verdict line: %s", out)
	}
}

func TestEvaluateCommandOverride(t *testing.T) {
	out, err := runCLI(t, "{}", "evaluate", "--metric", "Precision", "--override", "91.55")
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}
	if !strings.Contains(out, "(simulated)") || !strings.Contains(out, "Balanced — minimal performance gap.") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestEvaluateCommandJSON(t *testing.T) {
	out, err := runCLI(t, "{}", "--jsonMode", "evaluate", "-m", "Recall", "--override", "100")
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	var res struct {
		Metric    string `json:"metric"`
		Simulated bool   `json:"simulated"`
		Verdict   struct {
			Gap          float64 `json:"gap"`
			LeadingClass string  `json:"leadingClass"`
			Tier         string  `json:"tier"`
			Message      string  `json:"message"`
		} `json:"verdict"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v (%s)", err, out)
	}
	if res.Metric != "Recall" || !res.Simulated || res.Verdict.Tier != "Significant" || res.Verdict.LeadingClass != "Malicious" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Verdict.Message != "Significant gap — Malicious Users dominates by 4.09%." {
		t.Fatalf("unexpected message: %s", res.Verdict.Message)
	}
}

func TestEvaluateCommandErrors(t *testing.T) {
	if _, err := runCLI(t, "{}", "evaluate", "--metric", "AUC"); !errors.Is(err, gap.ErrUnknownMetric) {
		t.Fatalf("expected ErrUnknownMetric, got %v", err)
	}
	if _, err := runCLI(t, "{}", "evaluate", "--metric", "Recall", "--override", "84.9"); !errors.Is(err, gap.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := runCLI(t, "{}", "evaluate"); err == nil || !strings.Contains(err.Error(), "metric") {
		t.Fatalf("expected missing metric flag error, got %v", err)
	}
}

func TestEvaluateCommandCustomConfig(t *testing.T) {
	config := `{
		"metrics": [{"name": "AUC", "normal": 90, "malicious": 97}],
		"classLabels": {"normal": "Benign", "malicious": "Attack"}
	}`
	out, err := runCLI(t, config, "evaluate", "--metric", "AUC")
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}
	if !strings.Contains(out, "Significant gap — Attack dominates by 7.00%.") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestSimulateCommand(t *testing.T) {
	out, err := runCLI(t, "{}", "simulate", "--metric", "F1-Score", "--step", "5")
	if err != nil {
		t.Fatalf("simulate error: %v", err)
	}
	if !strings.Contains(out, "F1-Score: 4 simulated Malicious Users scores, step 5.00") {
		t.Fatalf("unexpected header: %s", out)
	}
	for _, want := range []string{"85.00", "90.00", "95.00", "100.00", "Significant", "Mild"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %s", want, out)
		}
	}
}

func TestSimulateCommandJSONUsesConfigStep(t *testing.T) {
	out, err := runCLI(t, `{"simulation": {"step": 7.5}}`, "--jsonMode", "simulate", "--metric", "Accuracy")
	if err != nil {
		t.Fatalf("simulate error: %v", err)
	}
	var points []struct {
		Override float64 `json:"override"`
	}
	if err := json.Unmarshal([]byte(out), &points); err != nil {
		t.Fatalf("decode: %v (%s)", err, out)
	}
	got := make([]float64, 0, len(points))
	for _, p := range points {
		got = append(got, p.Override)
	}
	want := []float64{85, 92.5, 100}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSummaryCommand(t *testing.T) {
	out, err := runCLI(t, "{}", "summary")
	if err != nil {
		t.Fatalf("summary error: %v", err)
	}
	for _, want := range []string{
		"Metrics:    4",
		"Widest gap: Recall (6.03%)",
		"Balanced=1",
		"Mild=1",
		"Significant=2",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %s", want, out)
		}
	}
}

func TestFeaturesCommand(t *testing.T) {
	out, err := runCLI(t, "{}", "features", "--sort", "importance", "--desc", "--filter", "very high")
	if err != nil {
		t.Fatalf("features error: %v", err)
	}
	if !strings.Contains(out, "2 of 10 features") {
		t.Fatalf("expected two very-high rows, got %s", out)
	}
	if strings.Index(out, "Flow Duration") > strings.Index(out, "Failed Login Attempts") {
		t.Fatalf("expected descending importance order, got %s", out)
	}
	if strings.Contains(out, "Geo Distance") {
		t.Fatalf("expected filtered rows only, got %s", out)
	}

	if _, err := runCLI(t, "{}", "features", "--sort", "color"); err == nil {
		t.Fatal("expected error for unknown sort column")
	}
}

func TestFeaturesCommandConfiguredRows(t *testing.T) {
	config := `{"features": [
		{"feature": "Port", "importanceScore": 0.6, "contribution": 60, "impact": "High", "relevance": "Very High"},
		{"feature": "TTL", "importanceScore": 0.4, "contribution": 40, "impact": "Low", "relevance": "Low"}
	]}`
	out, err := runCLI(t, config, "--jsonMode", "features", "--sort", "contribution")
	if err != nil {
		t.Fatalf("features error: %v", err)
	}
	var rows []struct {
		Feature string `json:"feature"`
		Impact  string `json:"impact"`
	}
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode: %v (%s)", err, out)
	}
	if len(rows) != 2 || rows[0].Feature != "TTL" || rows[1].Impact != "High" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestReportCommand(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "out", "dashboard.html")
	mdPath := filepath.Join(dir, "out", "summary.md")

	config := `{"report": {"title": "Detector Review", "notes": "Recall needs **attention**."}}`
	out, err := runCLI(t, config, "report", "--html-output", htmlPath, "--markdown-output", mdPath)
	if err != nil {
		t.Fatalf("report error: %v", err)
	}
	if !strings.Contains(out, "HTML dashboard written to "+htmlPath) || !strings.Contains(out, "Markdown summary written to "+mdPath) {
		t.Fatalf("unexpected output: %s", out)
	}

	html, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatalf("read html: %v", err)
	}
	for _, want := range []string{"Detector Review", "<strong>attention</strong>", `id="overrideSlider"`} {
		if !strings.Contains(string(html), want) {
			t.Fatalf("expected %q in html", want)
		}
	}

	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("read markdown: %v", err)
	}
	if !strings.Contains(string(md), "# Detector Review") || !strings.Contains(string(md), "| F1-Score | 93.68 | 92.40 | 1.28 | Mild |") {
		t.Fatalf("unexpected markdown: %s", md)
	}
}

func TestListCommands(t *testing.T) {
	out, err := runCLI(t, "{}", "list", "commands")
	if err != nil {
		t.Fatalf("list commands error: %v", err)
	}
	for _, want := range []string{
		"Commands and Subcommands:",
		"  gapview ",
		"    gapview evaluate",
		"    gapview serve",
		"      gapview show config",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %s", want, out)
		}
	}
	if strings.Contains(out, "gapview help") {
		t.Fatalf("help command should be skipped, got %s", out)
	}
}
