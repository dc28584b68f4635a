package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/emiliopalmerini/feedwise/internal/domain"
	"github.com/emiliopalmerini/feedwise/internal/ports"
)

// Status is the lifecycle of the most recent fetch.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Snapshot is an immutable view of the dashboard. After a failed fetch it still
// carries the last successful records and stats alongside Err.
type Snapshot struct {
	FormID     string
	Query      domain.FeedbackQuery
	Status     Status
	Records    []domain.FeedbackRecord
	Stats      domain.FeedbackStats
	Err        error
	Generation uint64
}

// Percentages returns the rounded sentiment shares of the current stats.
func (s Snapshot) Percentages() domain.SentimentPercentages {
	return s.Stats.Percentages()
}

// Query keeps the dashboard list and stats in sync with the search and filter inputs.
// Input changes are debounced, and only the newest fetch may publish its result.
type Query struct {
	reader    ports.FeedbackReader
	recorder  ports.MetricsRecorder
	logger    ports.Logger
	debouncer *Debouncer
	baseCtx   context.Context

	mu         sync.Mutex
	formID     string
	query      domain.FeedbackQuery
	status     Status
	records    []domain.FeedbackRecord
	stats      domain.FeedbackStats
	err        error
	generation uint64
	cancel     context.CancelFunc
	onChange   func(Snapshot)
}

// NewQuery creates a dashboard query for formID. Scheduled fetches run under ctx.
func NewQuery(ctx context.Context, formID string, reader ports.FeedbackReader, recorder ports.MetricsRecorder, logger ports.Logger, window time.Duration) *Query {
	return &Query{
		reader:    reader,
		recorder:  recorder,
		logger:    logger,
		debouncer: NewDebouncer(window),
		baseCtx:   ctx,
		formID:    formID,
		query:     domain.FeedbackQuery{Filter: domain.FilterAll},
	}
}

// OnChange registers the listener that receives every published snapshot.
func (q *Query) OnChange(fn func(Snapshot)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.onChange = fn
}

// SetFormID switches the dashboard to another form and schedules a fetch.
func (q *Query) SetFormID(formID string) {
	q.mu.Lock()
	if formID != q.formID {
		q.records = nil
		q.stats = domain.FeedbackStats{}
		q.err = nil
	}
	q.formID = formID
	q.mu.Unlock()
	q.schedule()
}

// SetSearchTerm updates the free-text search and schedules a fetch.
func (q *Query) SetSearchTerm(term string) {
	q.mu.Lock()
	q.query.Search = term
	q.mu.Unlock()
	q.schedule()
}

// SetFilter updates the sentiment filter and schedules a fetch.
func (q *Query) SetFilter(f domain.Filter) {
	q.mu.Lock()
	q.query.Filter = f
	q.mu.Unlock()
	q.schedule()
}

// SetDateRange updates the YYYY-MM-DD bounds and schedules a fetch. Empty means unbounded.
func (q *Query) SetDateRange(start, end string) {
	q.mu.Lock()
	q.query.StartDate = start
	q.query.EndDate = end
	q.mu.Unlock()
	q.schedule()
}

// Refresh schedules a fetch with the current inputs, e.g. after a new submission.
func (q *Query) Refresh() {
	q.schedule()
}

func (q *Query) schedule() {
	q.debouncer.Trigger(func() {
		q.Fetch(q.baseCtx)
	})
}

// Snapshot returns the current state.
func (q *Query) Snapshot() Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

func (q *Query) snapshotLocked() Snapshot {
	records := make([]domain.FeedbackRecord, len(q.records))
	copy(records, q.records)
	return Snapshot{
		FormID:     q.formID,
		Query:      q.query,
		Status:     q.status,
		Records:    records,
		Stats:      q.stats,
		Err:        q.err,
		Generation: q.generation,
	}
}

// Fetch loads the list and stats now, superseding any fetch still in flight.
// It returns the snapshot current when it finishes, which is not necessarily
// its own result if a newer fetch started meanwhile.
func (q *Query) Fetch(ctx context.Context) Snapshot {
	q.mu.Lock()
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
	q.generation++
	gen := q.generation

	if q.formID == "" {
		q.status = StatusIdle
		q.records = nil
		q.stats = domain.FeedbackStats{}
		q.err = nil
		snap := q.snapshotLocked()
		onChange := q.onChange
		q.mu.Unlock()
		notify(onChange, snap)
		return snap
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	q.cancel = cancel
	formID, query := q.formID, q.query
	q.status = StatusLoading
	loading := q.snapshotLocked()
	onChange := q.onChange
	q.mu.Unlock()
	notify(onChange, loading)

	records, stats, err := q.load(fetchCtx, formID, query)
	cancel()

	q.mu.Lock()
	if gen != q.generation {
		snap := q.snapshotLocked()
		q.mu.Unlock()
		q.logger.Debug(fmt.Sprintf("discarding stale dashboard response generation=%d latest=%d", gen, snap.Generation))
		q.recorder.RecordStaleDiscard(context.WithoutCancel(ctx))
		return snap
	}
	q.cancel = nil
	if err != nil {
		q.status = StatusError
		q.err = err
		q.logger.Error(fmt.Sprintf("fetching dashboard for form %s: %v", formID, err))
	} else {
		q.status = StatusSuccess
		q.records = records
		q.stats = stats
		q.err = nil
	}
	snap := q.snapshotLocked()
	onChange = q.onChange
	q.mu.Unlock()

	notify(onChange, snap)
	return snap
}

// load fetches the list and the stats concurrently.
func (q *Query) load(ctx context.Context, formID string, query domain.FeedbackQuery) ([]domain.FeedbackRecord, domain.FeedbackStats, error) {
	var (
		records []domain.FeedbackRecord
		stats   domain.FeedbackStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		var err error
		records, err = q.reader.ListFeedback(gctx, formID, query)
		q.recorder.RecordFetch(ctx, ports.FetchFeedbackList, time.Since(start), fetchErr(err))
		return err
	})
	g.Go(func() error {
		start := time.Now()
		var err error
		stats, err = q.reader.Stats(gctx, formID)
		q.recorder.RecordFetch(ctx, ports.FetchFeedbackStat, time.Since(start), fetchErr(err))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.FeedbackStats{}, err
	}
	return records, stats, nil
}

// Close stops pending and in-flight fetches.
func (q *Query) Close() {
	q.debouncer.Stop()
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
}

// fetchErr hides cancellation from the error count. A fetch cancelled by a newer
// one is counted as a stale discard instead.
func fetchErr(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func notify(fn func(Snapshot), snap Snapshot) {
	if fn != nil {
		fn(snap)
	}
}
