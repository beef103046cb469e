package report

import (
	"strings"
	"testing"
	"time"

	"github.com/mwiater/gapview/internal/features"
	"github.com/mwiater/gapview/internal/gap"
)

func buildDefault(t *testing.T, opts Options) Dashboard {
	t.Helper()
	d, err := Build(gap.Default(), features.DefaultRows(), opts)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return d
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	d := buildDefault(t, Options{Step: 0.5, SortBy: "importance", Descending: true, Now: now})

	if len(d.Metrics) != 4 {
		t.Fatalf("expected 4 metrics, got %d", len(d.Metrics))
	}
	if d.Metrics[0].Name != "F1-Score" || d.Metrics[0].Verdict.Tier != gap.TierMild {
		t.Fatalf("unexpected first metric: %+v", d.Metrics[0])
	}
	if got := len(d.Metrics[0].Sweep); got != 31 {
		t.Fatalf("expected 31 sweep points, got %d", got)
	}
	if d.Features[0].Feature != "Flow Duration" || d.Features[0].ImpactBadge.Background != "#ff4d4f" {
		t.Fatalf("unexpected first feature: %+v", d.Features[0])
	}
	if !d.GeneratedAt.Equal(now) || d.Title == "" {
		t.Fatalf("expected defaults applied, got title=%q at=%v", d.Title, d.GeneratedAt)
	}
}

func TestBuildRejectsUnknownSortColumn(t *testing.T) {
	if _, err := Build(gap.Default(), features.DefaultRows(), Options{SortBy: "color"}); err == nil {
		t.Fatal("expected error for unknown sort column")
	}
}

func TestGenerateHTML(t *testing.T) {
	d := buildDefault(t, Options{Title: "Test <Dashboard>", Notes: "Model **v2** results"})

	html, err := GenerateHTML(d)
	if err != nil {
		t.Fatalf("GenerateHTML error: %v", err)
	}
	for _, want := range []string{
		"Test &lt;Dashboard&gt;",
		`"name":"F1-Score"`,
		"Mild difference — Normal Users leads by 1.28%.",
		`id="overrideSlider"`,
		`min="85"`,
		"<strong>v2</strong>",
		`"impactBadge":{"background":"#ff4d4f"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected HTML to contain %q", want)
		}
	}
}

func TestGenerateHTMLDropsRawHTMLInNotes(t *testing.T) {
	notes := "Model **v2** <script>alert(1)</script> <img src=x onerror=alert(2)>"
	html, err := GenerateHTML(buildDefault(t, Options{Notes: notes}))
	if err != nil {
		t.Fatalf("GenerateHTML error: %v", err)
	}
	if !strings.Contains(html, "<strong>v2</strong>") {
		t.Fatal("expected markdown in notes to render")
	}
	for _, bad := range []string{"<script>alert(1)", "<img src=x", "onerror="} {
		if strings.Contains(html, bad) {
			t.Fatalf("expected raw HTML %q to be dropped from notes", bad)
		}
	}
}

func TestGenerateHTMLWithoutNotes(t *testing.T) {
	html, err := GenerateHTML(buildDefault(t, Options{}))
	if err != nil {
		t.Fatalf("GenerateHTML error: %v", err)
	}
	if strings.Contains(html, `id="notes"`) {
		t.Fatal("expected no notes section")
	}
}

func TestGenerateMarkdown(t *testing.T) {
	md := GenerateMarkdown(buildDefault(t, Options{Title: "Gaps", Notes: "check recall"}))

	for _, want := range []string{
		"# Gaps",
		"| Metric | Normal Users | Malicious Users | Gap | Tier | Verdict |",
		"| F1-Score | 93.68 | 92.40 | 1.28 | Mild |",
		"| Accuracy | 93.10 | 93.10 | 0.00 | Balanced |",
		"widest Recall (6.03)",
		"| Flow Duration | 0.182 | 18.2 | High | Very High |",
		"## Notes",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected markdown to contain %q\n%s", want, md)
		}
	}
}
