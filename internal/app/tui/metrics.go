package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/feedwise/internal/pkg/tui/theme"
)

// MetricCard displays a single headline number
type MetricCard struct {
	Title    string
	Value    string
	Subtitle string
}

// View renders the metric card
func (m MetricCard) View(width int) string {
	styles := theme.Default()

	value := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.White).
		Render(m.Value)
	title := lipgloss.NewStyle().
		Foreground(theme.Gray500).
		Render(m.Title)
	subtitle := styles.Muted.Render(m.Subtitle)

	content := lipgloss.JoinVertical(lipgloss.Left, title, value, subtitle)
	return styles.Card.Width(width).Render(content)
}

// RenderMetricCards renders cards side by side
func RenderMetricCards(cards []MetricCard) string {
	if len(cards) == 0 {
		return ""
	}
	row := make([]string, len(cards))
	for i, c := range cards {
		row[i] = c.View(18)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, row...)
}
