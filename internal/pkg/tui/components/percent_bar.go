package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/feedwise/internal/pkg/tui/theme"
)

const defaultBarWidth = 30

// PercentBar renders a labelled horizontal bar filled to Percent.
type PercentBar struct {
	Label   string
	Percent int
	Width   int
	Fill    lipgloss.Style
	styles  *theme.Styles
}

// NewPercentBar creates a bar using fill for the filled part.
func NewPercentBar(label string, percent int, fill lipgloss.Style) PercentBar {
	return PercentBar{
		Label:   label,
		Percent: percent,
		Width:   defaultBarWidth,
		Fill:    fill,
		styles:  theme.Default(),
	}
}

// Filled returns how many cells of the bar are filled, clamped to [0, Width].
func (p PercentBar) Filled() int {
	pct := max(0, min(p.Percent, 100))
	return pct * p.Width / 100
}

// View renders the bar
func (p PercentBar) View() string {
	filled := p.Filled()

	var b strings.Builder
	b.WriteString(p.styles.Label.Render(fmt.Sprintf("%-9s", p.Label)))
	b.WriteString(" ")
	b.WriteString(p.Fill.Render(strings.Repeat("█", filled)))
	b.WriteString(p.styles.BarEmpty.Render(strings.Repeat("░", p.Width-filled)))
	b.WriteString(" ")
	b.WriteString(p.Fill.Render(fmt.Sprintf("%3d%%", p.Percent)))
	return b.String()
}
