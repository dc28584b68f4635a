package util

import (
	"path/filepath"
	"testing"
	"time"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{500, "500"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{1500000, "1.5M"},
	}

	for _, tt := range tests {
		if got := FormatCount(tt.input); got != tt.expected {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(87.5); got != "88%" {
		t.Errorf("FormatPercent(87.5) = %q", got)
	}
	if got := FormatPercent(0); got != "0%" {
		t.Errorf("FormatPercent(0) = %q", got)
	}
}

func TestFormatDateTime(t *testing.T) {
	if got := FormatDateTime(time.Time{}); got != "-" {
		t.Errorf("zero time should render as -, got %q", got)
	}
	ts := time.Date(2025, 3, 1, 10, 30, 0, 0, time.Local)
	if got := FormatDateTime(ts); got != "2025-03-01 10:30" {
		t.Errorf("unexpected format %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"cut", "hello world", 6, "hello…"},
		{"newlines", "a\nb", 10, "a b"},
		{"runes", "àèìòù", 3, "àè…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.n); got != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.expected)
			}
		})
	}
}

func TestGetXDGStateDir(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	dir, err := GetXDGStateDir()
	if err != nil {
		t.Fatalf("GetXDGStateDir: %v", err)
	}
	if dir != filepath.Join("/tmp/state", "feedwise") {
		t.Errorf("unexpected dir %q", dir)
	}
}
