// internal/tui/dashboard.go
// Package tui provides the interactive terminal dashboard for exploring class
// gaps and simulated scores.
package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/gapview/internal/gap"
	"github.com/mwiater/gapview/internal/logging"
	"github.com/mwiater/gapview/internal/util"
)

const barWidth = 40

// item represents a selectable metric in the Bubble Tea list.
type item struct {
	name gap.MetricName
	pair gap.ClassScorePair
}

// Title returns the metric name.
func (i item) Title() string { return string(i.name) }

// Description returns the recorded scores of the metric.
func (i item) Description() string {
	return fmt.Sprintf("%.2f / %.2f", i.pair.Normal, i.pair.Malicious)
}

// FilterValue returns the metric name, used for filtering.
func (i item) FilterValue() string { return string(i.name) }

// model is the Bubble Tea model of the dashboard. The selected metric, the
// simulation switch and the override value all live here; the analyzer is
// only ever called with them as arguments.
type model struct {
	analyzer     *gap.Analyzer
	step         float64
	metricList   list.Model
	normalBar    progress.Model
	maliciousBar progress.Model
	selected     gap.MetricName
	simulate     bool
	override     float64
	result       gap.Result
	err          error
	width        int
	height       int
}

// initialModel creates the dashboard model with the first metric selected
// and the override parked at the top of the simulation range.
func initialModel(a *gap.Analyzer, step float64) *model {
	if step <= 0 {
		step = 0.1
	}

	names := a.ListMetrics()
	items := make([]list.Item, 0, len(names))
	for _, name := range names {
		pair, _ := a.Table().Lookup(name)
		items = append(items, item{name: name, pair: pair})
	}
	metricList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	metricList.Title = "Select a Metric"
	metricList.SetFilteringEnabled(false)
	metricList.SetShowHelp(false)

	m := &model{
		analyzer:     a,
		step:         step,
		metricList:   metricList,
		normalBar:    progress.New(progress.WithSolidFill("#2563EB"), progress.WithWidth(barWidth)),
		maliciousBar: progress.New(progress.WithSolidFill("#DC2626"), progress.WithWidth(barWidth)),
		override:     a.Policy().OverrideMax,
	}
	if len(names) > 0 {
		m.selected = names[0]
	}
	m.evaluate()
	return m
}

// overridePtr returns the override to pass to the analyzer, or nil when
// simulation is off.
func (m *model) overridePtr() *float64 {
	if !m.simulate {
		return nil
	}
	v := m.override
	return &v
}

// evaluate recomputes the result for the current selection.
func (m *model) evaluate() {
	override := m.overridePtr()
	res, err := m.analyzer.Analyze(m.selected, override)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.result = res
	logging.LogEvaluation(res, override)
}

// nudge moves the override by delta, clamped to the policy range.
func (m *model) nudge(delta float64) {
	p := m.analyzer.Policy()
	v := math.Round((m.override+delta)*1e6) / 1e6
	m.override = util.Clamp(v, p.OverrideMin, p.OverrideMax)
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return nil
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "s":
			m.simulate = !m.simulate
			m.evaluate()
			return m, nil
		case "left", "h":
			if m.simulate {
				m.nudge(-m.step)
				m.evaluate()
			}
			return m, nil
		case "right", "l":
			if m.simulate {
				m.nudge(m.step)
				m.evaluate()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.metricList.SetSize(msg.Width/3, msg.Height-4)
		w := msg.Width - msg.Width/3 - 24
		if w > barWidth {
			w = barWidth
		}
		if w < 10 {
			w = 10
		}
		m.normalBar.Width = w
		m.maliciousBar.Width = w
		return m, nil
	}

	var cmd tea.Cmd
	m.metricList, cmd = m.metricList.Update(msg)
	if it, ok := m.metricList.SelectedItem().(item); ok && it.name != m.selected {
		m.selected = it.name
		m.evaluate()
	}
	return m, cmd
}

// View renders the metric list next to the comparison pane.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	left := lipgloss.NewStyle().Margin(1, 2).Render(m.metricList.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, m.detailView())
}

// detailView renders the bars, verdict and key help for the selected metric.
func (m *model) detailView() string {
	var b strings.Builder
	labels := m.analyzer.Labels()

	headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render(fmt.Sprintf("Metric: %s", m.selected)),
		renderSimulationBadge(m.simulate, m.override),
	))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Width(18)
	pair := m.result.Pair
	b.WriteString(labelStyle.Render(labels.Normal) + m.normalBar.ViewAs(pair.Normal/100) + fmt.Sprintf(" %6.2f%%\n", pair.Normal))
	b.WriteString(labelStyle.Render(labels.Malicious) + m.maliciousBar.ViewAs(pair.Malicious/100) + fmt.Sprintf(" %6.2f%%\n\n", pair.Malicious))

	msgWidth := m.width - m.width/3 - 24
	if msgWidth < 30 {
		msgWidth = 30
	}
	b.WriteString(renderTierBadge(m.result.Verdict.Tier) + " " + util.WrapToWidth(m.result.Verdict.Message, msgWidth) + "\n")

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).MarginTop(1)
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	}

	p := m.analyzer.Policy()
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).MarginTop(1).Render(
		fmt.Sprintf("↑/↓ metric • s simulate • ←/→ adjust by %.2f in [%.1f, %.1f] • q quit", m.step, p.OverrideMin, p.OverrideMax))
	b.WriteString(help)

	return lipgloss.NewStyle().Margin(1, 2).Render(b.String())
}

// Run starts the dashboard and blocks until the user quits or ctx is done.
func Run(ctx context.Context, a *gap.Analyzer, step float64) error {
	m := initialModel(a, step)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
