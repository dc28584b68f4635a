package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/feedwise/internal/pkg/tui/theme"
)

// KeyBinding represents a key binding for the help bar
type KeyBinding struct {
	Key  string
	Desc string
}

// HelpBar renders a horizontal help bar with key bindings
type HelpBar struct {
	Bindings []KeyBinding
	// Width wraps the bar onto several lines when positive.
	Width  int
	styles *theme.Styles
}

// NewHelpBar creates a new help bar
func NewHelpBar(bindings ...KeyBinding) HelpBar {
	return HelpBar{
		Bindings: bindings,
		styles:   theme.Default(),
	}
}

// SetBindings updates the key bindings
func (h *HelpBar) SetBindings(bindings ...KeyBinding) {
	h.Bindings = bindings
}

// View renders the help bar
func (h HelpBar) View() string {
	sep := h.styles.Muted.Render(" • ")

	var lines []string
	var line string
	for _, kb := range h.Bindings {
		item := h.styles.HelpKey.Render(kb.Key) + " " + h.styles.Muted.Render(kb.Desc)
		switch {
		case line == "":
			line = item
		case h.Width > 0 && lipgloss.Width(line)+lipgloss.Width(sep)+lipgloss.Width(item) > h.Width:
			lines = append(lines, line)
			line = item
		default:
			line += sep + item
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return h.styles.Help.Render(strings.Join(lines, "\n"))
}
