package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emiliopalmerini/feedwise/internal/pkg/tui/theme"
)

// Rating is a 1..Max scale input. Scales up to 5 render as stars, larger ones as numbers.
type Rating struct {
	Max     int
	Value   int // 0 = not set
	Cursor  int
	Focused bool
	styles  *theme.Styles
}

// NewRating creates a rating input with the given maximum.
func NewRating(maxValue int) Rating {
	if maxValue <= 0 {
		maxValue = 5
	}
	return Rating{
		Max:    maxValue,
		Cursor: 1,
		styles: theme.Default(),
	}
}

// Focus sets the rating as focused
func (r *Rating) Focus() {
	r.Focused = true
}

// Blur removes focus from the rating
func (r *Rating) Blur() {
	r.Focused = false
}

// SetValue sets the rating directly. Out of range values are ignored.
func (r *Rating) SetValue(v int) {
	if v >= 1 && v <= r.Max {
		r.Value = v
		r.Cursor = v
	}
}

// Update handles key events for the rating. Digit keys pick a value directly,
// with 0 meaning 10.
func (r Rating) Update(msg tea.Msg) (Rating, tea.Cmd) {
	if !r.Focused {
		return r, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	switch k := key.String(); k {
	case "h", "left":
		if r.Cursor > 1 {
			r.Cursor--
		}
	case "l", "right":
		if r.Cursor < r.Max {
			r.Cursor++
		}
	case " ", "enter":
		r.Value = r.Cursor
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n := int(k[0] - '0')
		if n == 0 {
			n = 10
		}
		r.SetValue(n)
	}
	return r, nil
}

// View renders the rating
func (r Rating) View() string {
	var b strings.Builder
	for i := 1; i <= r.Max; i++ {
		var cell string
		if r.Max <= 5 {
			cell = "★"
		} else {
			cell = fmt.Sprintf("%d", i)
		}

		switch {
		case r.Focused && i == r.Cursor:
			b.WriteString(r.styles.Cursor.Render("[" + cell + "]"))
		case i <= r.Value:
			b.WriteString(r.styles.StarOn.Render(" " + cell + " "))
		default:
			b.WriteString(r.styles.StarOff.Render(" " + cell + " "))
		}
	}
	if r.Value > 0 {
		b.WriteString(r.styles.Muted.Render(fmt.Sprintf("  %d/%d", r.Value, r.Max)))
	}
	return b.String()
}
