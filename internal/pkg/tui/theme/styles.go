package theme

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains all shared TUI styles
type Styles struct {
	// Text styles
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Body        lipgloss.Style
	Muted       lipgloss.Style
	Bold        lipgloss.Style
	Highlighted lipgloss.Style
	Label       lipgloss.Style
	Required    lipgloss.Style

	// Interactive elements
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Active   lipgloss.Style
	Inactive lipgloss.Style
	Button   lipgloss.Style

	// Help and hints
	Help    lipgloss.Style
	HelpKey lipgloss.Style

	// Layout
	Container  lipgloss.Style
	Card       lipgloss.Style
	ActiveCard lipgloss.Style

	// Bars and ratings
	BarEmpty lipgloss.Style
	StarOn   lipgloss.Style
	StarOff  lipgloss.Style

	// Status indicators
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	// Sentiment badges
	Positive lipgloss.Style
	Neutral  lipgloss.Style
	Negative lipgloss.Style
}

var (
	defaultStyles *Styles
	once          sync.Once
)

// Default returns the singleton default Styles instance
func Default() *Styles {
	once.Do(func() {
		defaultStyles = newStyles()
	})
	return defaultStyles
}

// ForSentiment returns the badge style for a sentiment name. Unknown names render as neutral.
func (s *Styles) ForSentiment(name string) lipgloss.Style {
	switch strings.ToLower(name) {
	case "positive":
		return s.Positive
	case "negative":
		return s.Negative
	default:
		return s.Neutral
	}
}

func newStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(White).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(Indigo).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(Gray300),

		Muted: lipgloss.NewStyle().
			Foreground(Gray500),

		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(White),

		Highlighted: lipgloss.NewStyle().
			Foreground(BrightIndigo).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(Gray300).
			Bold(true),

		Required: lipgloss.NewStyle().
			Foreground(Error),

		Cursor: lipgloss.NewStyle().
			Foreground(BrightIndigo).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Foreground(Indigo),

		Active: lipgloss.NewStyle().
			Foreground(BrightIndigo).
			Bold(true),

		Inactive: lipgloss.NewStyle().
			Foreground(Gray500),

		Button: lipgloss.NewStyle().
			Foreground(White).
			Background(DeepIndigo).
			Padding(0, 2),

		Help: lipgloss.NewStyle().
			Foreground(Gray500).
			MarginTop(1),

		HelpKey: lipgloss.NewStyle().
			Foreground(Gray300).
			Bold(true),

		Container: lipgloss.NewStyle().
			Padding(1, 2),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray700).
			Padding(0, 1),

		ActiveCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Indigo).
			Padding(0, 1),

		BarEmpty: lipgloss.NewStyle().
			Foreground(Gray700),

		StarOn: lipgloss.NewStyle().
			Foreground(Star),

		StarOff: lipgloss.NewStyle().
			Foreground(Gray600),

		Success: lipgloss.NewStyle().
			Foreground(Success),

		Warning: lipgloss.NewStyle().
			Foreground(Warning),

		Error: lipgloss.NewStyle().
			Foreground(Error),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Positive: lipgloss.NewStyle().
			Foreground(Positive).
			Bold(true),

		Neutral: lipgloss.NewStyle().
			Foreground(Neutral).
			Bold(true),

		Negative: lipgloss.NewStyle().
			Foreground(Negative).
			Bold(true),
	}
}
