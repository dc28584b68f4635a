package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/feedwise/internal/domain"
	"github.com/emiliopalmerini/feedwise/internal/pkg/tui/components"
	"github.com/emiliopalmerini/feedwise/internal/pkg/tui/theme"
)

type builderMode int

const (
	modeBrowse builderMode = iota
	modePickType
	modeEdit
	modeConfirmReset
)

// editor member indexes
const (
	editLabel = iota
	editName
	editPlaceholder
	editOptions
)

// Builder edits the ordered field definition of the form.
type Builder struct {
	fields  *domain.FieldList
	cursor  int
	mode    builderMode
	picker  components.Selector
	editors []textinput.Model
	editing []int // editor indexes shown for the current field
	focus   int
	help    components.HelpBar
	styles  *theme.Styles
}

// NewBuilder creates the builder over fields. Edits are made in place.
func NewBuilder(fields *domain.FieldList) *Builder {
	var opts []components.Option
	for _, t := range domain.AllFieldTypes {
		opts = append(opts, components.Option{Label: t.DisplayName(), Value: string(t)})
	}

	b := &Builder{
		fields: fields,
		picker: components.NewSelector("Add field", opts),
		styles: theme.Default(),
	}
	b.editors = make([]textinput.Model, 4)
	for i, prompt := range []string{"Label: ", "Name: ", "Placeholder: ", "Options: "} {
		ti := textinput.New()
		ti.Prompt = prompt
		ti.Width = 40
		b.editors[i] = ti
	}
	b.setHelp()
	b.syncActive()
	return b
}

// Capturing reports whether the builder is in a modal state that owns the keyboard.
func (b *Builder) Capturing() bool {
	return b.mode != modeBrowse
}

func (b *Builder) setHelp() {
	switch b.mode {
	case modePickType:
		b.help = components.NewHelpBar(
			components.KeyBinding{Key: "j/k", Desc: "choose"},
			components.KeyBinding{Key: "enter", Desc: "add"},
			components.KeyBinding{Key: "esc", Desc: "cancel"},
		)
	case modeEdit:
		b.help = components.NewHelpBar(
			components.KeyBinding{Key: "tab", Desc: "next"},
			components.KeyBinding{Key: "enter", Desc: "save"},
			components.KeyBinding{Key: "esc", Desc: "cancel"},
		)
	case modeConfirmReset:
		b.help = components.NewHelpBar(
			components.KeyBinding{Key: "y", Desc: "reset"},
			components.KeyBinding{Key: "n", Desc: "keep"},
		)
	default:
		b.help = components.NewHelpBar(
			components.KeyBinding{Key: "a", Desc: "add"},
			components.KeyBinding{Key: "e", Desc: "edit"},
			components.KeyBinding{Key: "t", Desc: "type"},
			components.KeyBinding{Key: "r", Desc: "required"},
			components.KeyBinding{Key: "p", Desc: "placeholder"},
			components.KeyBinding{Key: "m", Desc: "scale"},
			components.KeyBinding{Key: "J/K", Desc: "move"},
			components.KeyBinding{Key: "d", Desc: "remove"},
			components.KeyBinding{Key: "R", Desc: "reset"},
		)
	}
}

func (b *Builder) current() (domain.Field, bool) {
	return b.fields.At(b.cursor)
}

func (b *Builder) syncActive() {
	if f, ok := b.current(); ok {
		b.fields.SetActive(f.ID)
	}
}

func changed() tea.Msg {
	return FieldsChangedMsg{}
}

// Init implements tea.Model
func (b *Builder) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (b *Builder) Update(msg tea.Msg) (*Builder, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	var cmd tea.Cmd
	switch b.mode {
	case modePickType:
		cmd = b.updatePicker(key)
	case modeEdit:
		cmd = b.updateEditor(key)
	case modeConfirmReset:
		cmd = b.updateConfirm(key)
	default:
		cmd = b.updateBrowse(key)
	}
	b.setHelp()
	return b, cmd
}

func (b *Builder) updateBrowse(key tea.KeyMsg) tea.Cmd {
	f, hasField := b.current()

	switch key.String() {
	case "j", "down":
		if b.cursor < b.fields.Len()-1 {
			b.cursor++
			b.syncActive()
		}
	case "k", "up":
		if b.cursor > 0 {
			b.cursor--
			b.syncActive()
		}
	case "J", "shift+down":
		if b.fields.Move(b.cursor, b.cursor+1) == nil {
			b.cursor++
			return changed
		}
	case "K", "shift+up":
		if b.fields.Move(b.cursor, b.cursor-1) == nil {
			b.cursor--
			return changed
		}
	case "a":
		b.mode = modePickType
		b.picker.Cursor = 0
		b.picker.Focus()
	case "R":
		b.mode = modeConfirmReset
	}

	if !hasField {
		return nil
	}

	switch key.String() {
	case "e":
		return b.openEditor(f)
	case "t":
		next := nextType(f.Type())
		b.fields.Update(f.ID, domain.FieldPatch{Type: &next})
		return changed
	case "r":
		required := !f.Required
		b.fields.Update(f.ID, domain.FieldPatch{Required: &required})
		return changed
	case "p":
		if !f.Type().SupportsPlaceholder() {
			return nil
		}
		if f.Placeholder != nil {
			b.fields.Update(f.ID, domain.FieldPatch{ClearPlaceholder: true})
		} else {
			empty := ""
			b.fields.Update(f.ID, domain.FieldPatch{Placeholder: &empty})
		}
		return changed
	case "m":
		if f.Type() != domain.FieldRating {
			return nil
		}
		scale := 10
		if f.MaxRating() == 10 {
			scale = 5
		}
		b.fields.Update(f.ID, domain.FieldPatch{MaxRating: &scale})
		return changed
	case "d", "x":
		b.fields.Remove(f.ID)
		if b.cursor >= b.fields.Len() {
			b.cursor = max(0, b.fields.Len()-1)
		}
		b.syncActive()
		return changed
	}
	return nil
}

func nextType(t domain.FieldType) domain.FieldType {
	for i, known := range domain.AllFieldTypes {
		if known == t {
			return domain.AllFieldTypes[(i+1)%len(domain.AllFieldTypes)]
		}
	}
	return domain.FieldText
}

func (b *Builder) updatePicker(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "esc":
		b.mode = modeBrowse
		b.picker.Blur()
		return nil
	case "enter":
		t := domain.FieldType(b.picker.Options[b.picker.Cursor].Value)
		b.fields.Add(t)
		b.cursor = b.fields.Len() - 1
		b.mode = modeBrowse
		b.picker.Blur()
		return changed
	}
	b.picker, _ = b.picker.Update(key)
	return nil
}

func (b *Builder) openEditor(f domain.Field) tea.Cmd {
	b.editing = []int{editLabel, editName}
	b.editors[editLabel].SetValue(f.Label)
	b.editors[editLabel].CursorEnd()
	b.editors[editName].SetValue(f.Name)
	b.editors[editName].CursorEnd()
	if f.Placeholder != nil {
		b.editing = append(b.editing, editPlaceholder)
		b.editors[editPlaceholder].SetValue(f.PlaceholderText())
		b.editors[editPlaceholder].CursorEnd()
	}
	if sel, ok := f.Input.(domain.SelectInput); ok {
		b.editing = append(b.editing, editOptions)
		b.editors[editOptions].SetValue(sel.Options)
		b.editors[editOptions].CursorEnd()
	}
	b.mode = modeEdit
	b.focus = 0
	return b.focusEditor()
}

func (b *Builder) focusEditor() tea.Cmd {
	var cmd tea.Cmd
	for i, idx := range b.editing {
		if i == b.focus {
			cmd = b.editors[idx].Focus()
		} else {
			b.editors[idx].Blur()
		}
	}
	return cmd
}

func (b *Builder) updateEditor(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "esc":
		b.mode = modeBrowse
		return nil
	case "tab", "down":
		b.focus = (b.focus + 1) % len(b.editing)
		return b.focusEditor()
	case "shift+tab", "up":
		b.focus = (b.focus - 1 + len(b.editing)) % len(b.editing)
		return b.focusEditor()
	case "enter":
		b.saveEditor()
		b.mode = modeBrowse
		return changed
	}
	idx := b.editing[b.focus]
	var cmd tea.Cmd
	b.editors[idx], cmd = b.editors[idx].Update(key)
	return cmd
}

func (b *Builder) saveEditor() {
	f, ok := b.current()
	if !ok {
		return
	}
	var patch domain.FieldPatch
	for _, idx := range b.editing {
		v := b.editors[idx].Value()
		switch idx {
		case editLabel:
			patch.Label = &v
		case editName:
			patch.Name = &v
		case editPlaceholder:
			patch.Placeholder = &v
		case editOptions:
			patch.Options = &v
		}
	}
	b.fields.Update(f.ID, patch)
}

func (b *Builder) updateConfirm(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "y", "Y":
		b.fields.Reset()
		b.cursor = 0
		b.syncActive()
		b.mode = modeBrowse
		return changed
	case "n", "N", "esc":
		b.mode = modeBrowse
	}
	return nil
}

// View implements tea.Model
func (b *Builder) View() string {
	var s strings.Builder
	s.WriteString(b.styles.Title.Render("Form Builder"))
	s.WriteString("\n")

	for i, f := range b.fields.Fields() {
		cursor := "  "
		if i == b.cursor {
			cursor = b.styles.Active.Render("> ")
		}
		label := f.Label
		if f.Required {
			label += b.styles.Required.Render(" *")
		}
		line := fmt.Sprintf("%s%-28s %s %s", cursor, label,
			b.styles.Muted.Render(fmt.Sprintf("%-12s", f.Type().DisplayName())),
			b.styles.Muted.Render(f.Name))
		s.WriteString(line)
		if extra := describe(f); extra != "" {
			s.WriteString(" ")
			s.WriteString(b.styles.Info.Render(extra))
		}
		s.WriteString("\n")
	}

	if dups := b.fields.DuplicateNames(); len(dups) > 0 {
		s.WriteString("\n")
		s.WriteString(b.styles.Warning.Render("Field names must be unique: " + strings.Join(dups, ", ")))
		s.WriteString("\n")
	}

	switch b.mode {
	case modePickType:
		s.WriteString("\n")
		s.WriteString(b.picker.View())
	case modeEdit:
		var rows []string
		for _, idx := range b.editing {
			rows = append(rows, b.editors[idx].View())
		}
		s.WriteString("\n")
		s.WriteString(b.styles.ActiveCard.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
		s.WriteString("\n")
	case modeConfirmReset:
		s.WriteString("\n")
		s.WriteString(b.styles.Warning.Render("Reset the form to its default fields? All changes will be lost. (y/n)"))
		s.WriteString("\n")
	}

	s.WriteString(b.help.View())
	return s.String()
}

func describe(f domain.Field) string {
	switch in := f.Input.(type) {
	case domain.SelectInput:
		return "[" + in.Options + "]"
	case domain.RatingInput:
		return fmt.Sprintf("1-%d", in.Scale())
	}
	if f.Placeholder != nil {
		return fmt.Sprintf("placeholder %q", f.PlaceholderText())
	}
	return ""
}
