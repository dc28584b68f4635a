package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emiliopalmerini/feedwise/internal/pkg/tui/theme"
)

// Option represents a selectable option
type Option struct {
	Label string
	Value string
}

// Selector is a single-select list, used for dropdown fields and pickers.
type Selector struct {
	Label    string
	Options  []Option
	Selected int // -1 = nothing chosen
	Cursor   int
	Focused  bool
	styles   *theme.Styles
}

// NewSelector creates a new single-select selector
func NewSelector(label string, options []Option) Selector {
	return Selector{
		Label:    label,
		Options:  options,
		Selected: -1,
		styles:   theme.Default(),
	}
}

// OptionsFromStrings builds options whose label and value are the same.
func OptionsFromStrings(values []string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Label: v, Value: v}
	}
	return opts
}

// Focus sets the selector as focused
func (s *Selector) Focus() {
	s.Focused = true
}

// Blur removes focus from the selector
func (s *Selector) Blur() {
	s.Focused = false
}

// Value returns the chosen option value, or "" when nothing is chosen.
func (s Selector) Value() string {
	if s.Selected < 0 || s.Selected >= len(s.Options) {
		return ""
	}
	return s.Options[s.Selected].Value
}

// SetValue chooses the option with the given value, if present.
func (s *Selector) SetValue(value string) {
	for i, opt := range s.Options {
		if opt.Value == value {
			s.Selected = i
			s.Cursor = i
			return
		}
	}
}

// Update handles key events for the selector
func (s Selector) Update(msg tea.Msg) (Selector, tea.Cmd) {
	if !s.Focused || len(s.Options) == 0 {
		return s, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "k", "up":
			if s.Cursor > 0 {
				s.Cursor--
			}
		case "j", "down":
			if s.Cursor < len(s.Options)-1 {
				s.Cursor++
			}
		case " ", "enter":
			s.Selected = s.Cursor
		}
	}
	return s, nil
}

// View renders the selector
func (s Selector) View() string {
	var b strings.Builder

	if s.Label != "" {
		b.WriteString(s.styles.Subtitle.Render(s.Label))
		b.WriteString("\n")
	}
	if len(s.Options) == 0 {
		b.WriteString(s.styles.Muted.Render("  (no options)"))
		b.WriteString("\n")
		return b.String()
	}

	for i, opt := range s.Options {
		isCursor := s.Focused && i == s.Cursor

		indicator := " "
		if isCursor {
			indicator = s.styles.Active.Render(">")
		}

		bullet := s.styles.Muted.Render("( )")
		if i == s.Selected {
			bullet = s.styles.Selected.Render("(•)")
		}

		label := s.styles.Muted.Render(opt.Label)
		if isCursor {
			label = s.styles.Cursor.Render(opt.Label)
		} else if i == s.Selected {
			label = s.styles.Selected.Render(opt.Label)
		}

		b.WriteString(fmt.Sprintf("  %s %s %s\n", indicator, bullet, label))
	}
	return b.String()
}
