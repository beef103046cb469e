// internal/tui/badges.go
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/gapview/internal/gap"
)

// tierColor maps a tier to the badge background used in the terminal.
func tierColor(t gap.Tier) lipgloss.Color {
	switch t {
	case gap.TierMild:
		return lipgloss.Color("214")
	case gap.TierSignificant:
		return lipgloss.Color("196")
	default:
		return lipgloss.Color("42")
	}
}

// TierStyle returns the lipgloss style used to render a tier badge.
func TierStyle(t gap.Tier) lipgloss.Style {
	return lipgloss.NewStyle().Background(tierColor(t)).Foreground(lipgloss.Color("0")).Bold(true).Padding(0, 1)
}

// renderTierBadge returns a Lipgloss-styled badge for the verdict tier.
func renderTierBadge(t gap.Tier) string {
	return TierStyle(t).Render(t.String())
}

// renderSimulationBadge returns a Lipgloss-styled badge for the simulation state.
func renderSimulationBadge(enabled bool, override float64) string {
	label := "Simulation: off"
	if enabled {
		label = fmt.Sprintf("Simulation: on (%.2f%%)", override)
	}
	badgeStyle := lipgloss.NewStyle().Background(lipgloss.Color("229")).Foreground(lipgloss.Color("0")).Padding(0, 1).MarginLeft(1)
	return badgeStyle.Render(label)
}
