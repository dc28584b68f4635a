package theme

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	// Brand
	Indigo       = lipgloss.Color("#6366F1")
	BrightIndigo = lipgloss.Color("#818CF8")
	DeepIndigo   = lipgloss.Color("#4338CA")

	// Neutrals
	White    = lipgloss.Color("#FFFFFF")
	Gray300  = lipgloss.Color("#D1D5DB")
	Gray500  = lipgloss.Color("#6B7280")
	Gray600  = lipgloss.Color("#4B5563")
	Gray700  = lipgloss.Color("#374151")
	Charcoal = lipgloss.Color("#111827")

	// Semantic
	Success = lipgloss.Color("#22C55E")
	Warning = lipgloss.Color("#F59E0B")
	Error   = lipgloss.Color("#EF4444")
	Info    = lipgloss.Color("#3B82F6")

	// Sentiment, matching the dashboard badges
	Positive = lipgloss.Color("#16A34A")
	Neutral  = lipgloss.Color("#CA8A04")
	Negative = lipgloss.Color("#DC2626")

	// Rating stars
	Star = lipgloss.Color("#FACC15")
)
