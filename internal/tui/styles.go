package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/ui"
)

// Style variables of the calculator, rebuilt from the ui theme by
// initStyles.
var (
	panelStyle    lipgloss.Style
	titleStyle    lipgloss.Style
	dimStyle      lipgloss.Style
	exprStyle     lipgloss.Style
	valueStyle    lipgloss.Style
	errorStyle    lipgloss.Style
	warningStyle  lipgloss.Style
	engineStyle   lipgloss.Style
	sparkStyle    lipgloss.Style
	selectedStyle lipgloss.Style
)

func init() {
	initStyles()
}

// initStyles rebuilds all styles from the current ui palette. Run calls it
// again once the theme has been selected.
func initStyles() {
	p := ui.CurrentPalette()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Foreground(p.Text).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(p.Dim)
	exprStyle = lipgloss.NewStyle().Foreground(p.Text)
	valueStyle = lipgloss.NewStyle().Foreground(p.Success)
	errorStyle = lipgloss.NewStyle().Foreground(p.Error)
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Warning)
	engineStyle = lipgloss.NewStyle().Foreground(p.Accent)
	sparkStyle = lipgloss.NewStyle().Foreground(p.Accent)
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(p.Accent)
}
