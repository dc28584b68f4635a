package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// FieldType identifies how a form field is rendered and filled.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldNumber   FieldType = "number"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldTel      FieldType = "tel"
	FieldDate     FieldType = "date"
	FieldRating   FieldType = "rating"
)

// AllFieldTypes lists every supported field type in builder order.
var AllFieldTypes = []FieldType{
	FieldText, FieldEmail, FieldNumber, FieldTextarea,
	FieldSelect, FieldTel, FieldDate, FieldRating,
}

const (
	DefaultSelectOptions = "Option 1, Option 2, Option 3"
	DefaultMaxRating     = 5
)

// ParseFieldType converts a raw type name into a FieldType.
func ParseFieldType(s string) (FieldType, error) {
	t := FieldType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllFieldTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown field type %q", s)
}

// DefaultLabel returns the label a newly added field of this type starts with.
func (t FieldType) DefaultLabel() string {
	switch t {
	case FieldText:
		return "Text Field"
	case FieldEmail:
		return "Email Address"
	case FieldNumber:
		return "Number"
	case FieldTextarea:
		return "Comments"
	case FieldSelect:
		return "Dropdown Menu"
	case FieldTel:
		return "Phone Number"
	case FieldDate:
		return "Date"
	case FieldRating:
		return "Rating"
	default:
		return "New Field"
	}
}

// DisplayName is the human-facing name used in the builder's type picker.
func (t FieldType) DisplayName() string {
	switch t {
	case FieldTextarea:
		return "Text Area"
	case FieldSelect:
		return "Dropdown"
	case FieldTel:
		return "Phone Number"
	default:
		if t == "" {
			return ""
		}
		return strings.ToUpper(string(t[:1])) + string(t[1:])
	}
}

// SupportsPlaceholder reports whether the builder offers a placeholder toggle.
func (t FieldType) SupportsPlaceholder() bool {
	return t == FieldText || t == FieldTextarea
}

// Input is the type-specific part of a field. The set of implementations is closed.
type Input interface {
	Type() FieldType
	sealed()
}

// PlainInput covers every type that carries no extra attributes.
type PlainInput struct {
	Kind FieldType
}

func (p PlainInput) Type() FieldType { return p.Kind }
func (PlainInput) sealed()           {}

// SelectInput is a dropdown with comma-separated options.
type SelectInput struct {
	Options string
}

func (SelectInput) Type() FieldType { return FieldSelect }
func (SelectInput) sealed()         {}

// Choices splits Options on commas, trimming whitespace and dropping empty entries.
func (s SelectInput) Choices() []string {
	var out []string
	for _, opt := range strings.Split(s.Options, ",") {
		if opt = strings.TrimSpace(opt); opt != "" {
			out = append(out, opt)
		}
	}
	return out
}

// RatingInput is a star or 10-point scale.
type RatingInput struct {
	Max int
}

func (RatingInput) Type() FieldType { return FieldRating }
func (RatingInput) sealed()         {}

// Scale returns the effective maximum, which is either 5 or 10.
func (r RatingInput) Scale() int {
	if r.Max == 10 {
		return 10
	}
	return DefaultMaxRating
}

// NewInput builds the default variant for a field type.
func NewInput(t FieldType) Input {
	switch t {
	case FieldSelect:
		return SelectInput{Options: DefaultSelectOptions}
	case FieldRating:
		return RatingInput{Max: DefaultMaxRating}
	default:
		return PlainInput{Kind: t}
	}
}

// Field is a single entry of a form definition.
type Field struct {
	ID       int
	Name     string
	Label    string
	Required bool
	// Placeholder is nil when the field has no placeholder control at all.
	Placeholder *string
	Active      bool
	Input       Input
}

// Type returns the field's type, defaulting to text for a zero Field.
func (f Field) Type() FieldType {
	if f.Input == nil {
		return FieldText
	}
	return f.Input.Type()
}

// PlaceholderText returns the placeholder or an empty string.
func (f Field) PlaceholderText() string {
	if f.Placeholder == nil {
		return ""
	}
	return *f.Placeholder
}

// Choices returns the select options, or nil for non-select fields.
func (f Field) Choices() []string {
	if s, ok := f.Input.(SelectInput); ok {
		return s.Choices()
	}
	return nil
}

// MaxRating returns the rating scale, or 0 for non-rating fields.
func (f Field) MaxRating() int {
	if r, ok := f.Input.(RatingInput); ok {
		return r.Scale()
	}
	return 0
}

func (f Field) clone() Field {
	if f.Placeholder != nil {
		p := *f.Placeholder
		f.Placeholder = &p
	}
	return f
}

type fieldJSON struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Label       string  `json:"label"`
	Type        string  `json:"type"`
	Required    bool    `json:"required"`
	Options     *string `json:"options,omitempty"`
	MaxRating   *int    `json:"maxRating,omitempty"`
	Placeholder *string `json:"placeholder,omitempty"`
}

// MarshalJSON flattens the input variant into the wire shape used by form definitions.
func (f Field) MarshalJSON() ([]byte, error) {
	out := fieldJSON{
		ID:          f.ID,
		Name:        f.Name,
		Label:       f.Label,
		Type:        string(f.Type()),
		Required:    f.Required,
		Placeholder: f.Placeholder,
	}
	switch in := f.Input.(type) {
	case SelectInput:
		opts := in.Options
		out.Options = &opts
	case RatingInput:
		scale := in.Scale()
		out.MaxRating = &scale
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds the input variant from the flat wire shape.
func (f *Field) UnmarshalJSON(data []byte) error {
	var in fieldJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	t, err := ParseFieldType(in.Type)
	if err != nil {
		return err
	}

	*f = Field{
		ID:          in.ID,
		Name:        in.Name,
		Label:       in.Label,
		Required:    in.Required,
		Placeholder: in.Placeholder,
	}
	switch t {
	case FieldSelect:
		sel := SelectInput{}
		if in.Options != nil {
			sel.Options = *in.Options
		}
		f.Input = sel
	case FieldRating:
		r := RatingInput{Max: DefaultMaxRating}
		if in.MaxRating != nil {
			r.Max = *in.MaxRating
		}
		f.Input = RatingInput{Max: r.Scale()}
	default:
		f.Input = PlainInput{Kind: t}
	}
	return nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeName derives a response key: lower-cased, whitespace runs become underscores.
func NormalizeName(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(s), "_")
}
