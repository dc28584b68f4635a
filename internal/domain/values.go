package domain

// FormValues maps a field name to what the user entered.
// Text-like fields hold strings, rating fields hold ints.
type FormValues map[string]any

// SetText stores a text value.
func (v FormValues) SetText(name, value string) {
	v[name] = value
}

// SetRating stores a rating value.
func (v FormValues) SetRating(name string, value int) {
	v[name] = value
}

// Text returns the value as a string, or "" if it is absent or not text.
func (v FormValues) Text(name string) string {
	s, _ := v[name].(string)
	return s
}

// Rating returns the rating value, or 0 if it is absent or not a rating.
func (v FormValues) Rating(name string) int {
	n, _ := v[name].(int)
	return n
}

// IsBlank reports whether the named value counts as not filled in:
// absent, nil, an empty string or a zero rating.
func (v FormValues) IsBlank(name string) bool {
	switch val := v[name].(type) {
	case nil:
		return true
	case string:
		return val == ""
	case int:
		return val == 0
	case float64:
		return val == 0
	case bool:
		return !val
	default:
		return false
	}
}

// Clone returns a shallow copy.
func (v FormValues) Clone() FormValues {
	out := make(FormValues, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// MissingRequired returns the labels of required fields whose value is blank, in field order.
func MissingRequired(fields []Field, values FormValues) []string {
	var missing []string
	for _, f := range fields {
		if f.Required && values.IsBlank(f.Name) {
			missing = append(missing, f.Label)
		}
	}
	return missing
}
