package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/feedwise/internal/domain"
	"github.com/emiliopalmerini/feedwise/internal/pkg/tui/components"
	"github.com/emiliopalmerini/feedwise/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/feedwise/internal/submission"
)

// SubmittedMsg reports the end of a submission attempt.
type SubmittedMsg struct {
	Result domain.AnalysisResult
	Err    error
}

// input is one rendered control. Exactly one of the widget members is set.
type input struct {
	field    domain.Field
	text     *textinput.Model
	area     *textarea.Model
	selector *components.Selector
	rating   *components.Rating
}

func newInput(f domain.Field) input {
	in := input{field: f}
	switch f.Type() {
	case domain.FieldTextarea:
		ta := textarea.New()
		ta.Placeholder = f.PlaceholderText()
		ta.ShowLineNumbers = false
		ta.SetHeight(4)
		ta.SetWidth(60)
		in.area = &ta
	case domain.FieldSelect:
		sel := components.NewSelector("", components.OptionsFromStrings(f.Choices()))
		in.selector = &sel
	case domain.FieldRating:
		r := components.NewRating(f.MaxRating())
		in.rating = &r
	default:
		ti := textinput.New()
		ti.Placeholder = f.PlaceholderText()
		if ti.Placeholder == "" {
			ti.Placeholder = placeholderFor(f.Type())
		}
		ti.Width = 50
		in.text = &ti
	}
	return in
}

func placeholderFor(t domain.FieldType) string {
	switch t {
	case domain.FieldEmail:
		return "name@example.com"
	case domain.FieldNumber:
		return "0"
	case domain.FieldTel:
		return "+1 555 0100"
	case domain.FieldDate:
		return "YYYY-MM-DD"
	default:
		return ""
	}
}

func (in *input) focus() tea.Cmd {
	switch {
	case in.text != nil:
		return in.text.Focus()
	case in.area != nil:
		return in.area.Focus()
	case in.selector != nil:
		in.selector.Focus()
	case in.rating != nil:
		in.rating.Focus()
	}
	return nil
}

func (in *input) blur() {
	switch {
	case in.text != nil:
		in.text.Blur()
	case in.area != nil:
		in.area.Blur()
	case in.selector != nil:
		in.selector.Blur()
	case in.rating != nil:
		in.rating.Blur()
	}
}

// update forwards msg to the widget and pushes the new value into flow.
func (in *input) update(msg tea.Msg, flow *submission.Flow) tea.Cmd {
	var cmd tea.Cmd
	name := in.field.Name
	switch {
	case in.text != nil:
		*in.text, cmd = in.text.Update(msg)
		flow.SetValue(name, in.text.Value())
	case in.area != nil:
		*in.area, cmd = in.area.Update(msg)
		flow.SetValue(name, in.area.Value())
	case in.selector != nil:
		*in.selector, cmd = in.selector.Update(msg)
		if v := in.selector.Value(); v != "" {
			flow.SetValue(name, v)
		}
	case in.rating != nil:
		*in.rating, cmd = in.rating.Update(msg)
		if in.rating.Value > 0 {
			flow.SetRating(name, in.rating.Value)
		}
	}
	return cmd
}

// restore puts a previously entered value back into the widget.
func (in *input) restore(values domain.FormValues) {
	name := in.field.Name
	switch {
	case in.text != nil:
		in.text.SetValue(values.Text(name))
	case in.area != nil:
		in.area.SetValue(values.Text(name))
	case in.selector != nil:
		in.selector.Selected = -1
		in.selector.SetValue(values.Text(name))
	case in.rating != nil:
		in.rating.Value = 0
		in.rating.SetValue(values.Rating(name))
	}
}

func (in input) view() string {
	switch {
	case in.text != nil:
		return in.text.View()
	case in.area != nil:
		return in.area.View()
	case in.selector != nil:
		return in.selector.View()
	case in.rating != nil:
		return in.rating.View()
	}
	return ""
}

// Form is the fill-and-submit screen.
type Form struct {
	ctx     context.Context
	flow    *submission.Flow
	inputs  []input
	focus   int // len(inputs) is the submit button
	spinner spinner.Model
	help    components.HelpBar
	styles  *theme.Styles
}

// NewForm creates the fill screen for fields.
func NewForm(ctx context.Context, flow *submission.Flow, fields []domain.Field) *Form {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	f := &Form{
		ctx:     ctx,
		flow:    flow,
		spinner: sp,
		styles:  theme.Default(),
		help: components.NewHelpBar(
			components.KeyBinding{Key: "tab", Desc: "next"},
			components.KeyBinding{Key: "shift+tab", Desc: "prev"},
			components.KeyBinding{Key: "ctrl+s", Desc: "submit"},
			components.KeyBinding{Key: "esc", Desc: "leave field"},
		),
	}
	f.SetFields(fields)
	return f
}

// SetFields rebuilds the controls for a new definition, keeping values whose names survive.
func (f *Form) SetFields(fields []domain.Field) {
	f.flow.SetFields(fields)
	values := f.flow.State().Values

	f.inputs = make([]input, len(fields))
	for i, field := range fields {
		f.inputs[i] = newInput(field)
		f.inputs[i].restore(values)
	}
	f.focus = -1
}

// Capturing reports whether a control owns the keyboard.
func (f *Form) Capturing() bool {
	return f.focus >= 0 && f.focus < len(f.inputs) && !f.flow.State().Submitted
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return nil
}

func (f *Form) submit() tea.Cmd {
	return tea.Batch(f.spinner.Tick, func() tea.Msg {
		result, err := f.flow.Submit(f.ctx)
		return SubmittedMsg{Result: result, Err: err}
	})
}

func (f *Form) setFocus(i int) tea.Cmd {
	if f.focus >= 0 && f.focus < len(f.inputs) {
		f.inputs[f.focus].blur()
	}
	f.focus = i
	if i >= 0 && i < len(f.inputs) {
		return f.inputs[i].focus()
	}
	return nil
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	state := f.flow.State()

	switch msg := msg.(type) {
	case SubmittedMsg:
		if msg.Err == nil {
			f.setFocus(-1)
			for i := range f.inputs {
				f.inputs[i].restore(domain.FormValues{})
			}
		}
		return f, nil

	case spinner.TickMsg:
		if !state.Loading {
			return f, nil
		}
		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(msg)
		return f, cmd

	case tea.KeyMsg:
		if state.Submitted {
			if msg.String() == "n" {
				f.flow.Resubmit()
			}
			return f, nil
		}
		if state.Loading {
			return f, nil
		}

		switch msg.String() {
		case "tab":
			return f, f.setFocus((f.focus + 1) % (len(f.inputs) + 1))
		case "shift+tab":
			next := f.focus - 1
			if next < 0 {
				next = len(f.inputs)
			}
			return f, f.setFocus(next)
		case "esc":
			f.setFocus(-1)
			return f, nil
		case "ctrl+s":
			return f, f.submit()
		case "enter":
			if f.focus == len(f.inputs) {
				return f, f.submit()
			}
		}

		if f.focus >= 0 && f.focus < len(f.inputs) {
			return f, f.inputs[f.focus].update(msg, f.flow)
		}
	}

	return f, nil
}

// View implements tea.Model
func (f *Form) View() string {
	state := f.flow.State()
	if state.Submitted && state.Analysis != nil {
		return RenderAnalysis(*state.Analysis)
	}

	var b strings.Builder
	b.WriteString(f.styles.Title.Render("Feedback Form"))
	b.WriteString("\n")

	for i, in := range f.inputs {
		label := f.styles.Label.Render(in.field.Label)
		if in.field.Required {
			label += f.styles.Required.Render(" *")
		}
		if i == f.focus {
			label = f.styles.Active.Render("> ") + label
		} else {
			label = "  " + label
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(in.view()))
		b.WriteString("\n\n")
	}

	button := f.styles.Button.Render("Submit Feedback")
	if state.Loading {
		button = f.spinner.View() + " " + f.styles.Muted.Render("Submitting...")
	} else if f.focus == len(f.inputs) {
		button = f.styles.Active.Render("> ") + button
	} else {
		button = "  " + button
	}
	b.WriteString(button)
	b.WriteString("\n")

	if state.Err != nil {
		b.WriteString("\n")
		b.WriteString(f.styles.Error.Render(state.ErrMessage()))
		b.WriteString("\n")
	}

	b.WriteString(f.help.View())
	return b.String()
}

// RenderAnalysis renders the result card shown after a successful submission.
func RenderAnalysis(a domain.AnalysisResult) string {
	styles := theme.Default()
	sentiment := a.Sentiment.Normalized()

	var b strings.Builder
	b.WriteString(styles.Success.Render("✓ Thank you for your feedback!"))
	b.WriteString("\n\n")
	b.WriteString(styles.Subtitle.Render("Sentiment Analysis"))
	b.WriteString("\n")
	b.WriteString(styles.ForSentiment(string(sentiment)).Render(strings.ToUpper(string(sentiment))))
	b.WriteString("\n")
	if a.SentimentAnalysis != "" {
		b.WriteString(styles.Body.Render(a.SentimentAnalysis))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(styles.Body.Render(a.Summary))
	b.WriteString("\n")
	if a.DetailedAnalysis != "" {
		b.WriteString("\n")
		b.WriteString(styles.Subtitle.Render("Detailed Analysis"))
		b.WriteString("\n")
		b.WriteString(styles.Body.Render(a.DetailedAnalysis))
		b.WriteString("\n")
	}
	if a.ID != "" {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render(fmt.Sprintf("Reference: %s", a.ID)))
		b.WriteString("\n")
	}

	card := styles.Card.Render(b.String())
	help := components.NewHelpBar(components.KeyBinding{Key: "n", Desc: "submit another response"})
	return lipgloss.JoinVertical(lipgloss.Left, card, help.View())
}
