// internal/cli/output.go
package gapview

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/mwiater/gapview/internal/gap"
)

var errNotLoaded = errors.New("configuration not loaded")

// tierColors mirror the dashboard badge colors.
var tierColors = map[gap.Tier]*color.Color{
	gap.TierBalanced:    color.New(color.FgGreen, color.Bold),
	gap.TierMild:        color.New(color.FgYellow, color.Bold),
	gap.TierSignificant: color.New(color.FgRed, color.Bold),
}

func tierColor(t gap.Tier) *color.Color {
	if c, ok := tierColors[t]; ok {
		return c
	}
	return color.New(color.Reset)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderTable draws a bordered table with a bold header row.
func renderTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

// analyzerOrErr returns the analyzer built from the loaded configuration.
func analyzerOrErr() (*gap.Analyzer, error) {
	if currentAnalyzer == nil {
		return nil, errNotLoaded
	}
	return currentAnalyzer, nil
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
