package domain

import (
	"encoding/json"
	"fmt"
)

// FieldPatch holds a partial update for a field. Nil members are left untouched.
type FieldPatch struct {
	Name      *string
	Label     *string
	Type      *FieldType
	Required  *bool
	Options   *string
	MaxRating *int
	// Placeholder sets the placeholder text and turns the control on.
	Placeholder *string
	// ClearPlaceholder turns the placeholder control off. It wins over Placeholder.
	ClearPlaceholder bool
}

// FieldList is the ordered, editable definition of a form.
// Order is significant: it drives both the builder and the fill view.
type FieldList struct {
	fields []Field
}

// NewFieldList returns a list seeded with the default name, email and feedback fields.
func NewFieldList() *FieldList {
	l := &FieldList{}
	l.Reset()
	return l
}

// FieldListFrom builds a list from existing field definitions.
func FieldListFrom(fields []Field) *FieldList {
	l := &FieldList{fields: make([]Field, 0, len(fields))}
	for _, f := range fields {
		l.fields = append(l.fields, f.clone())
	}
	return l
}

// SeedFields returns the definitions a new form starts with.
func SeedFields() []Field {
	return []Field{
		{ID: 1, Name: "name", Label: "Your Name", Required: true, Input: PlainInput{Kind: FieldText}},
		{ID: 2, Name: "email", Label: "Email Address", Required: false, Input: PlainInput{Kind: FieldEmail}},
		{ID: 3, Name: "feedback", Label: "Your Feedback", Required: true, Input: PlainInput{Kind: FieldTextarea}},
	}
}

// Reset discards every edit and restores the seeded fields.
func (l *FieldList) Reset() {
	l.fields = SeedFields()
}

// Len returns the number of fields.
func (l *FieldList) Len() int {
	return len(l.fields)
}

// Fields returns a copy of the fields in order.
func (l *FieldList) Fields() []Field {
	out := make([]Field, len(l.fields))
	for i, f := range l.fields {
		out[i] = f.clone()
	}
	return out
}

// At returns the field at index i.
func (l *FieldList) At(i int) (Field, bool) {
	if i < 0 || i >= len(l.fields) {
		return Field{}, false
	}
	return l.fields[i].clone(), true
}

// Get returns the field with the given id.
func (l *FieldList) Get(id int) (Field, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.fields[i].clone(), true
	}
	return Field{}, false
}

// NextID returns the id the next added field will receive.
func (l *FieldList) NextID() int {
	maxID := 0
	for _, f := range l.fields {
		if f.ID > maxID {
			maxID = f.ID
		}
	}
	return maxID + 1
}

// Add appends a field of the given type with type-appropriate defaults and
// makes it the only active field.
func (l *FieldList) Add(t FieldType) Field {
	id := l.NextID()
	f := Field{
		ID:     id,
		Name:   fmt.Sprintf("field_%d", id),
		Label:  t.DefaultLabel(),
		Active: true,
		Input:  NewInput(t),
	}
	for i := range l.fields {
		l.fields[i].Active = false
	}
	l.fields = append(l.fields, f)
	return f.clone()
}

// Update merges patch into the field with the given id.
// It reports false, without changing anything, when no such field exists.
func (l *FieldList) Update(id int, patch FieldPatch) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	f := &l.fields[i]

	if patch.Label != nil {
		f.Label = *patch.Label
	}
	if patch.Name != nil {
		f.Name = NormalizeName(*patch.Name)
	}
	if patch.Required != nil {
		f.Required = *patch.Required
	}
	if patch.Type != nil && *patch.Type != f.Type() {
		f.Input = retype(f.Input, *patch.Type)
	}
	if patch.Options != nil {
		if sel, ok := f.Input.(SelectInput); ok {
			sel.Options = *patch.Options
			f.Input = sel
		}
	}
	if patch.MaxRating != nil {
		if r, ok := f.Input.(RatingInput); ok {
			r.Max = RatingInput{Max: *patch.MaxRating}.Scale()
			f.Input = r
		}
	}
	switch {
	case patch.ClearPlaceholder:
		f.Placeholder = nil
	case patch.Placeholder != nil:
		p := *patch.Placeholder
		f.Placeholder = &p
	}
	return true
}

// retype switches a field to a new type, keeping attributes the new type understands.
func retype(prev Input, t FieldType) Input {
	switch t {
	case FieldSelect:
		if sel, ok := prev.(SelectInput); ok {
			return sel
		}
		return SelectInput{}
	case FieldRating:
		if r, ok := prev.(RatingInput); ok {
			return r
		}
		return RatingInput{Max: DefaultMaxRating}
	default:
		return PlainInput{Kind: t}
	}
}

// Remove deletes the field with the given id and reports whether it existed.
func (l *FieldList) Remove(id int) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.fields = append(l.fields[:i], l.fields[i+1:]...)
	return true
}

// Move relocates the field at index from to index to, keeping every other
// field in the same relative order.
func (l *FieldList) Move(from, to int) error {
	n := len(l.fields)
	if from < 0 || from >= n {
		return fmt.Errorf("move field: source index %d out of range [0,%d)", from, n)
	}
	if to < 0 || to >= n {
		return fmt.Errorf("move field: target index %d out of range [0,%d)", to, n)
	}
	if from == to {
		return nil
	}

	moved := l.fields[from]
	if from < to {
		copy(l.fields[from:to], l.fields[from+1:to+1])
	} else {
		copy(l.fields[to+1:from+1], l.fields[to:from])
	}
	l.fields[to] = moved
	return nil
}

// SetActive highlights the field with the given id and clears every other highlight.
func (l *FieldList) SetActive(id int) {
	for i := range l.fields {
		l.fields[i].Active = l.fields[i].ID == id
	}
}

// ActiveID returns the id of the highlighted field, if any.
func (l *FieldList) ActiveID() (int, bool) {
	for _, f := range l.fields {
		if f.Active {
			return f.ID, true
		}
	}
	return 0, false
}

// DuplicateNames returns every response key used by more than one field, in first-seen order.
func (l *FieldList) DuplicateNames() []string {
	seen := make(map[string]int, len(l.fields))
	var dups []string
	for _, f := range l.fields {
		seen[f.Name]++
		if seen[f.Name] == 2 {
			dups = append(dups, f.Name)
		}
	}
	return dups
}

func (l *FieldList) indexOf(id int) int {
	for i, f := range l.fields {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// MarshalJSON encodes the list as a JSON array of field definitions.
func (l *FieldList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.fields)
}

// UnmarshalJSON decodes a JSON array of field definitions.
func (l *FieldList) UnmarshalJSON(data []byte) error {
	var fields []Field
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	l.fields = fields
	return nil
}
