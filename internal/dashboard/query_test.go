package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/emiliopalmerini/feedwise/internal/adapters/logger"
	"github.com/emiliopalmerini/feedwise/internal/domain"
	"github.com/emiliopalmerini/feedwise/internal/ports"
)

type mockReader struct {
	mu       sync.Mutex
	queries  []domain.FeedbackQuery
	ListFunc func(ctx context.Context, formID string, q domain.FeedbackQuery) ([]domain.FeedbackRecord, error)
	StatsFn  func(ctx context.Context, formID string) (domain.FeedbackStats, error)
}

func (m *mockReader) ListFeedback(ctx context.Context, formID string, q domain.FeedbackQuery) ([]domain.FeedbackRecord, error) {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	m.mu.Unlock()
	if m.ListFunc != nil {
		return m.ListFunc(ctx, formID, q)
	}
	return []domain.FeedbackRecord{{ID: "1", Summary: q.Search}}, nil
}

func (m *mockReader) Stats(ctx context.Context, formID string) (domain.FeedbackStats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx, formID)
	}
	return domain.FeedbackStats{Total: 10, SentimentCounts: domain.SentimentCounts{Positive: 7, Neutral: 2, Negative: 1}}, nil
}

func (m *mockReader) calls() []domain.FeedbackQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.FeedbackQuery, len(m.queries))
	copy(out, m.queries)
	return out
}

type mockRecorder struct {
	mu          sync.Mutex
	stale       int
	fetches     int
	fetchErrors []error
}

func (m *mockRecorder) RecordSubmission(context.Context, string, ports.SubmissionOutcome) {}

func (m *mockRecorder) RecordFetch(_ context.Context, _ ports.FetchKind, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
	if err != nil {
		m.fetchErrors = append(m.fetchErrors, err)
	}
}

func (m *mockRecorder) RecordStaleDiscard(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stale++
}

func (m *mockRecorder) Close(context.Context) error { return nil }

func (m *mockRecorder) errorsRecorded() []error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]error(nil), m.fetchErrors...)
}

func (m *mockRecorder) staleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stale
}

func newTestQuery(formID string, reader *mockReader, rec *mockRecorder, window time.Duration) *Query {
	return NewQuery(context.Background(), formID, reader, rec, logger.Discard{}, window)
}

func TestQuery_DebouncedSearch(t *testing.T) {
	reader := &mockReader{}
	q := newTestQuery("f1", reader, &mockRecorder{}, 40*time.Millisecond)
	defer q.Close()

	settled := make(chan Snapshot, 10)
	q.OnChange(func(s Snapshot) {
		if s.Status == StatusSuccess {
			settled <- s
		}
	})

	for _, term := range []string{"s", "sl", "slo", "slow", "slow app"} {
		q.SetSearchTerm(term)
	}

	var snap Snapshot
	select {
	case snap = <-settled:
	case <-time.After(time.Second):
		t.Fatal("no fetch completed")
	}
	time.Sleep(120 * time.Millisecond)

	calls := reader.calls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly 1 fetch, got %d", len(calls))
	}
	if calls[0].Search != "slow app" {
		t.Errorf("expected final search term, got %q", calls[0].Search)
	}
	if len(snap.Records) != 1 || snap.Records[0].Summary != "slow app" {
		t.Errorf("unexpected records %+v", snap.Records)
	}
	if p := snap.Percentages(); p.Positive != 70 || p.Neutral != 20 || p.Negative != 10 {
		t.Errorf("unexpected percentages %+v", p)
	}
}

func TestQuery_FilterIndependentOfSearch(t *testing.T) {
	reader := &mockReader{}
	q := newTestQuery("f1", reader, &mockRecorder{}, time.Hour)
	defer q.Close()

	q.SetSearchTerm("late")
	q.SetFilter(domain.FilterNegative)
	q.SetDateRange("2025-01-01", "2025-01-31")
	q.Fetch(context.Background())

	got := reader.calls()[0]
	expected := domain.FeedbackQuery{Search: "late", Filter: domain.FilterNegative, StartDate: "2025-01-01", EndDate: "2025-01-31"}
	if got != expected {
		t.Errorf("expected %+v, got %+v", expected, got)
	}
}

func TestQuery_EmptyFormIDShortCircuits(t *testing.T) {
	reader := &mockReader{}
	q := newTestQuery("", reader, &mockRecorder{}, time.Hour)
	defer q.Close()

	snap := q.Fetch(context.Background())
	if snap.Status != StatusIdle || len(snap.Records) != 0 {
		t.Errorf("expected idle empty snapshot, got %+v", snap)
	}
	if len(reader.calls()) != 0 {
		t.Error("expected no request without a form id")
	}
}

func TestQuery_ErrorKeepsStaleData(t *testing.T) {
	fail := false
	reader := &mockReader{}
	reader.StatsFn = func(context.Context, string) (domain.FeedbackStats, error) {
		if fail {
			return domain.FeedbackStats{}, &domain.APIError{Status: 500}
		}
		return domain.FeedbackStats{Total: 4, SentimentCounts: domain.SentimentCounts{Positive: 4}}, nil
	}
	q := newTestQuery("f1", reader, &mockRecorder{}, time.Hour)
	defer q.Close()

	first := q.Fetch(context.Background())
	if first.Status != StatusSuccess {
		t.Fatalf("expected success, got %v (%v)", first.Status, first.Err)
	}

	fail = true
	second := q.Fetch(context.Background())
	if second.Status != StatusError || !domain.IsRemote(second.Err) {
		t.Fatalf("expected remote error, got %v (%v)", second.Status, second.Err)
	}
	if second.Stats.Total != 4 || len(second.Records) != 1 {
		t.Errorf("expected previous data to remain, got %+v", second)
	}
}

func TestQuery_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var firstCtx context.Context

	reader := &mockReader{}
	var n int
	var mu sync.Mutex
	reader.ListFunc = func(ctx context.Context, _ string, q domain.FeedbackQuery) ([]domain.FeedbackRecord, error) {
		mu.Lock()
		n++
		call := n
		mu.Unlock()
		if call == 1 {
			firstCtx = ctx
			close(started)
			<-release
			return nil, ctx.Err()
		}
		return []domain.FeedbackRecord{{ID: "new"}}, nil
	}
	rec := &mockRecorder{}
	q := newTestQuery("f1", reader, rec, time.Hour)
	defer q.Close()

	done := make(chan Snapshot, 1)
	go func() { done <- q.Fetch(context.Background()) }()
	<-started

	latest := q.Fetch(context.Background())
	if latest.Records[0].ID != "new" {
		t.Fatalf("expected new records, got %+v", latest.Records)
	}
	if firstCtx.Err() == nil {
		t.Error("expected superseded fetch to be cancelled")
	}

	close(release)
	<-done

	snap := q.Snapshot()
	if len(snap.Records) != 1 || snap.Records[0].ID != "new" {
		t.Errorf("stale response overwrote newer data: %+v", snap.Records)
	}
	if snap.Status != StatusSuccess {
		t.Errorf("expected success, got %v", snap.Status)
	}
	if rec.staleCount() != 1 {
		t.Errorf("expected 1 stale discard, got %d", rec.staleCount())
	}
	if errs := rec.errorsRecorded(); len(errs) != 0 {
		t.Errorf("superseded fetch must not count as a fetch error, got %v", errs)
	}
}

func TestQuery_RefreshRefetches(t *testing.T) {
	reader := &mockReader{}
	q := newTestQuery("f1", reader, &mockRecorder{}, 10*time.Millisecond)
	defer q.Close()

	settled := make(chan struct{}, 4)
	q.OnChange(func(s Snapshot) {
		if s.Status == StatusSuccess {
			settled <- struct{}{}
		}
	})

	for i := 0; i < 2; i++ {
		q.Refresh()
		select {
		case <-settled:
		case <-time.After(time.Second):
			t.Fatalf("refresh %d never completed", i+1)
		}
	}
	if got := len(reader.calls()); got != 2 {
		t.Errorf("expected 2 fetches, got %d", got)
	}
}

func TestQuery_ListErrorCancelsStats(t *testing.T) {
	reader := &mockReader{
		ListFunc: func(context.Context, string, domain.FeedbackQuery) ([]domain.FeedbackRecord, error) {
			return nil, errors.New("boom")
		},
		StatsFn: func(ctx context.Context, _ string) (domain.FeedbackStats, error) {
			<-ctx.Done()
			return domain.FeedbackStats{}, ctx.Err()
		},
	}
	rec := &mockRecorder{}
	q := newTestQuery("f1", reader, rec, time.Hour)
	defer q.Close()

	snap := q.Fetch(context.Background())
	if snap.Status != StatusError || snap.Err == nil || snap.Err.Error() != "boom" {
		t.Errorf("expected list error, got %v (%v)", snap.Status, snap.Err)
	}
	errs := rec.errorsRecorded()
	if len(errs) != 1 || errs[0].Error() != "boom" {
		t.Errorf("expected only the list failure to be counted, got %v", errs)
	}
}
