package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emiliopalmerini/feedwise/internal/adapters/logger"
	"github.com/emiliopalmerini/feedwise/internal/adapters/otel"
	"github.com/emiliopalmerini/feedwise/internal/dashboard"
	"github.com/emiliopalmerini/feedwise/internal/domain"
)

type stubReader struct {
	records []domain.FeedbackRecord
	stats   domain.FeedbackStats
}

func (s stubReader) ListFeedback(context.Context, string, domain.FeedbackQuery) ([]domain.FeedbackRecord, error) {
	return s.records, nil
}

func (s stubReader) Stats(context.Context, string) (domain.FeedbackStats, error) {
	return s.stats, nil
}

func newTestDashboard(formID string) (*Dashboard, *dashboard.Query) {
	reader := stubReader{
		records: []domain.FeedbackRecord{
			{ID: "1", Responses: map[string]any{"feedback": "Fast and friendly"}, Sentiment: domain.SentimentPositive, Summary: "Praise"},
			{ID: "2", Responses: map[string]any{"feedback": "Too slow"}, Sentiment: domain.SentimentNegative, Summary: "Speed complaint", DetailedAnalysis: "Latency issues"},
		},
		stats: domain.FeedbackStats{Total: 10, SentimentCounts: domain.SentimentCounts{Positive: 7, Neutral: 2, Negative: 1}},
	}
	q := dashboard.NewQuery(context.Background(), formID, reader, otel.NewNoOpRecorder(), logger.Discard{}, time.Hour)
	return NewDashboard(q), q
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDashboard_RendersSnapshot(t *testing.T) {
	d, q := newTestDashboard("f1")
	defer q.Close()

	q.Fetch(context.Background())
	d, _ = d.Update(SnapshotMsg{})

	view := d.View()
	for _, want := range []string{"Feedback for f1", "Total responses: 10", "70%", "20%", "10%", "Fast and friendly", "Too slow"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
	if strings.Contains(view, "Latency issues") {
		t.Error("details must be collapsed by default")
	}

	d, _ = d.Update(runes("j"))
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(d.View(), "Latency issues") {
		t.Error("expected details of the second record after expanding it")
	}
}

func TestDashboard_FilterCycles(t *testing.T) {
	d, q := newTestDashboard("f1")
	defer q.Close()

	expected := []domain.Filter{domain.FilterPositive, domain.FilterNeutral, domain.FilterNegative, domain.FilterAll}
	for _, want := range expected {
		d, _ = d.Update(runes("f"))
		if got := q.Snapshot().Query.Filter; got != want {
			t.Errorf("expected filter %q, got %q", want, got)
		}
	}
}

func TestDashboard_SearchTyping(t *testing.T) {
	d, q := newTestDashboard("f1")
	defer q.Close()

	d, _ = d.Update(runes("/"))
	if !d.Capturing() {
		t.Fatal("expected search box to capture input")
	}
	for _, r := range "slow" {
		d, _ = d.Update(runes(string(r)))
	}
	if got := q.Snapshot().Query.Search; got != "slow" {
		t.Errorf("expected search term %q, got %q", "slow", got)
	}

	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if d.Capturing() {
		t.Error("expected esc to release the search box")
	}
}

func TestDashboard_NoForm(t *testing.T) {
	d, q := newTestDashboard("")
	defer q.Close()

	if !strings.Contains(d.View(), "Connect a form") {
		t.Errorf("unexpected view: %s", d.View())
	}
}
