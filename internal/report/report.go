// internal/report/report.go
// Package report renders the class comparison, the what-if simulation and the
// feature-importance table as a standalone HTML dashboard or a markdown summary.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/mwiater/gapview/internal/features"
	"github.com/mwiater/gapview/internal/gap"
)

// Options controls what Build puts into a Dashboard.
type Options struct {
	Title      string
	Notes      string
	Step       float64
	SortBy     string
	Descending bool
	Now        time.Time
}

// MetricView is one metric with its actual verdict and simulated sweep.
type MetricView struct {
	Name    gap.MetricName     `json:"name"`
	Pair    gap.ClassScorePair `json:"pair"`
	Verdict gap.Verdict        `json:"verdict"`
	Sweep   []gap.SweepPoint   `json:"sweep"`
}

// FeatureView is a feature row with the badge colors of its levels.
type FeatureView struct {
	features.Row
	ImpactBadge    features.Badge `json:"impactBadge"`
	RelevanceBadge features.Badge `json:"relevanceBadge"`
}

// Dashboard is everything the report templates need.
type Dashboard struct {
	Title       string        `json:"title"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Labels      gap.Labels    `json:"labels"`
	Policy      gap.Policy    `json:"policy"`
	Step        float64       `json:"step"`
	Metrics     []MetricView  `json:"metrics"`
	Summary     gap.Summary   `json:"summary"`
	Features    []FeatureView `json:"features"`
	Notes       string        `json:"-"`
}

// Build evaluates every metric of a, sweeps the simulation range and sorts
// the feature rows.
func Build(a *gap.Analyzer, rows []features.Row, opts Options) (Dashboard, error) {
	if opts.Step <= 0 {
		opts.Step = 0.1
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Title == "" {
		opts.Title = "gapview: Class Performance Dashboard"
	}

	summary, err := a.Summarize()
	if err != nil {
		return Dashboard{}, err
	}

	views := make([]MetricView, 0, len(summary.Results))
	for _, res := range summary.Results {
		sweep, err := a.Sweep(res.Metric, opts.Step)
		if err != nil {
			return Dashboard{}, fmt.Errorf("sweep %s: %w", res.Metric, err)
		}
		views = append(views, MetricView{Name: res.Metric, Pair: res.Pair, Verdict: res.Verdict, Sweep: sweep})
	}

	table, err := features.NewTable(rows).Sort(opts.SortBy, opts.Descending)
	if err != nil {
		return Dashboard{}, err
	}
	featureViews := make([]FeatureView, 0, table.Len())
	for _, r := range table.Rows() {
		featureViews = append(featureViews, FeatureView{Row: r, ImpactBadge: r.Impact.Badge(), RelevanceBadge: r.Relevance.Badge()})
	}

	return Dashboard{
		Title:       opts.Title,
		GeneratedAt: opts.Now,
		Labels:      a.Labels(),
		Policy:      a.Policy(),
		Step:        opts.Step,
		Metrics:     views,
		Summary:     summary,
		Features:    featureViews,
		Notes:       opts.Notes,
	}, nil
}

type dashboardData struct {
	Title     string
	Generated string
	Policy    gap.Policy
	Step      float64
	Labels    gap.Labels
	Notes     template.HTML
	DataJSON  template.JS
}

// GenerateHTML renders a standalone HTML dashboard.
func GenerateHTML(d Dashboard) (string, error) {
	payload, err := json.Marshal(d)
	if err != nil {
		return "", err
	}

	viewModel := dashboardData{
		Title:     d.Title,
		Generated: d.GeneratedAt.Format(time.RFC1123),
		Policy:    d.Policy,
		Step:      d.Step,
		Labels:    d.Labels,
		Notes:     renderNotes(d.Notes),
		DataJSON:  template.JS(payload),
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, viewModel); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderNotes converts operator-supplied markdown into HTML.
func renderNotes(md string) template.HTML {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank | mdhtml.SkipHTML})
	return template.HTML(markdown.ToHTML([]byte(md), p, r))
}

// GenerateMarkdown renders a plain markdown summary of the dashboard.
func GenerateMarkdown(d Dashboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Title)
	fmt.Fprintf(&b, "_Generated %s. Balanced below %.2f, mild below %.2f._\n\n", d.GeneratedAt.Format(time.RFC1123), d.Policy.BalancedBelow, d.Policy.MildBelow)

	b.WriteString("## Class comparison\n\n")
	fmt.Fprintf(&b, "| Metric | %s | %s | Gap | Tier | Verdict |\n", d.Labels.Normal, d.Labels.Malicious)
	b.WriteString("|---|---:|---:|---:|---|---|\n")
	for _, m := range d.Metrics {
		fmt.Fprintf(&b, "| %s | %.2f | %.2f | %.2f | %s | %s |\n", m.Name, m.Pair.Normal, m.Pair.Malicious, m.Verdict.Gap, m.Verdict.Tier, m.Verdict.Message)
	}

	fmt.Fprintf(&b, "\nMean gap %.2f, median %.2f, widest %s (%.2f).\n", d.Summary.MeanGap, d.Summary.MedianGap, d.Summary.WidestGap, d.Summary.MaxGap)

	if len(d.Features) > 0 {
		b.WriteString("\n## Feature importance\n\n")
		b.WriteString("| Feature | Importance | Contribution (%) | Impact | Business Relevance |\n")
		b.WriteString("|---|---:|---:|---|---|\n")
		for _, f := range d.Features {
			fmt.Fprintf(&b, "| %s | %.3f | %.1f | %s | %s |\n", f.Feature, f.ImportanceScore, f.Contribution, f.Impact, f.Relevance)
		}
	}

	if notes := strings.TrimSpace(d.Notes); notes != "" {
		b.WriteString("\n## Notes\n\n")
		b.WriteString(notes)
		b.WriteString("\n")
	}
	return b.String()
}
