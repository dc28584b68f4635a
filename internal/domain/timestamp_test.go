package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{"rfc3339 utc", `"2025-03-01T10:00:00Z"`, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), false},
		{"rfc3339 offset", `"2025-03-01T12:00:00+02:00"`, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), false},
		{"naive with micros", `"2025-03-01T10:00:00.123000"`, time.Date(2025, 3, 1, 10, 0, 0, 123000000, time.UTC), false},
		{"naive seconds", `"2025-03-01T10:00:00"`, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), false},
		{"null", `null`, time.Time{}, false},
		{"empty string", `""`, time.Time{}, false},
		{"garbage", `"yesterday"`, time.Time{}, true},
		{"number", `12`, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
			if !tt.wantErr && !ts.Equal(tt.expected) {
				t.Errorf("expected %s, got %s", tt.expected, ts.Time)
			}
		})
	}
}

func TestFeedbackRecord_DecodesServerShapes(t *testing.T) {
	data := `[
		{"id":"a","responses":{"feedback":"ok"},"sentiment":"positive","summary":"s","created_at":"2025-03-01T10:00:00.123000"},
		{"id":"b","responses":{},"sentiment":"unknown","summary":"s","created_at":null},
		{"id":"c","responses":{},"sentiment":"negative","summary":"s"}
	]`
	var records []FeedbackRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		t.Fatalf("decoding records: %v", err)
	}
	if records[0].CreatedAt.IsZero() {
		t.Error("expected naive timestamp to be decoded")
	}
	if !records[1].CreatedAt.IsZero() || !records[2].CreatedAt.IsZero() {
		t.Error("expected missing timestamps to be zero")
	}
	if records[1].Sentiment.Normalized() != SentimentNeutral {
		t.Errorf("expected unknown sentiment to display as neutral, got %s", records[1].Sentiment.Normalized())
	}
}

func TestAnalysisResult_NaiveCreatedAt(t *testing.T) {
	var result AnalysisResult
	err := json.Unmarshal([]byte(`{"id":"x","sentiment":"neutral","summary":"s","created_at":"2025-03-01T10:00:00.5"}`), &result)
	if err != nil {
		t.Fatalf("decoding analysis: %v", err)
	}
	if result.CreatedAt.Nanosecond() != 500000000 {
		t.Errorf("unexpected created_at %s", result.CreatedAt.Time)
	}
}
