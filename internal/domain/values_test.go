package domain

import "testing"

func TestFormValues_IsBlank(t *testing.T) {
	v := FormValues{
		"empty":  "",
		"text":   "hi",
		"zero":   0,
		"rating": 4,
		"nil":    nil,
	}
	tests := []struct {
		name string
		want bool
	}{
		{"empty", true},
		{"text", false},
		{"zero", true},
		{"rating", false},
		{"nil", true},
		{"absent", true},
	}
	for _, tt := range tests {
		if got := v.IsBlank(tt.name); got != tt.want {
			t.Errorf("IsBlank(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMissingRequired(t *testing.T) {
	fields := []Field{
		{ID: 1, Name: "email", Label: "Email Address", Required: true, Input: PlainInput{Kind: FieldEmail}},
		{ID: 2, Name: "feedback", Label: "Your Feedback", Required: true, Input: PlainInput{Kind: FieldTextarea}},
		{ID: 3, Name: "score", Label: "Score", Required: false, Input: RatingInput{Max: 5}},
	}

	tests := []struct {
		name     string
		values   FormValues
		expected []string
	}{
		{"all empty", FormValues{}, []string{"Email Address", "Your Feedback"}},
		{"one filled", FormValues{"email": "a@b.c"}, []string{"Your Feedback"}},
		{"all filled", FormValues{"email": "a@b.c", "feedback": "nice"}, nil},
		{"optional ignored", FormValues{"email": "a@b.c", "feedback": "x", "score": 0}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MissingRequired(fields, tt.values)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("expected %v, got %v", tt.expected, got)
				}
			}
		})
	}
}

func TestValidationError_ListsLabels(t *testing.T) {
	err := &ValidationError{Missing: []string{"Email Address", "Your Feedback"}}
	want := "Please complete the following required fields: Email Address, Your Feedback"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}
