package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/feedwise/internal/pkg/tui/theme"
)

// NavItem represents a navigation item
type NavItem struct {
	Key    string
	Label  string
	Active bool
}

// NavBar renders the screen tabs
type NavBar struct {
	Items  []NavItem
	styles *theme.Styles
}

// NewNavBar creates a new navigation bar
func NewNavBar(items []NavItem) *NavBar {
	return &NavBar{
		Items:  items,
		styles: theme.Default(),
	}
}

// View renders the navigation bar as tabs with their shortcut keys
func (n NavBar) View() string {
	var items []string
	for _, item := range n.Items {
		key := lipgloss.NewStyle().
			Foreground(theme.Gray600).
			Render(item.Key)
		label := n.styles.Inactive.Render(item.Label)
		if item.Active {
			label = n.styles.Active.Underline(true).Render(item.Label)
		}
		items = append(items, key+" "+label)
	}

	sep := lipgloss.NewStyle().
		Foreground(theme.Gray700).
		Render("  │  ")

	return strings.Join(items, sep)
}
