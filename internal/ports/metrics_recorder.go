package ports

import (
	"context"
	"time"
)

// SubmissionOutcome classifies how a submit attempt ended.
type SubmissionOutcome string

const (
	OutcomeSubmitted  SubmissionOutcome = "submitted"
	OutcomeValidation SubmissionOutcome = "validation_error"
	OutcomeRemote     SubmissionOutcome = "remote_error"
)

// FetchKind names the dashboard request being measured.
type FetchKind string

const (
	FetchFeedbackList FetchKind = "feedback_list"
	FetchFeedbackStat FetchKind = "feedback_stats"
	FetchGlobalStats  FetchKind = "global_stats"
)

// MetricsRecorder exports client-side usage metrics to an observability backend.
type MetricsRecorder interface {
	// RecordSubmission counts one submit attempt for a form.
	RecordSubmission(ctx context.Context, formID string, outcome SubmissionOutcome)
	// RecordFetch records the latency of a read request and whether it failed.
	RecordFetch(ctx context.Context, kind FetchKind, elapsed time.Duration, err error)
	// RecordStaleDiscard counts responses dropped because a newer fetch superseded them.
	RecordStaleDiscard(ctx context.Context)
	// Close shuts down the recorder and flushes any pending metrics.
	Close(ctx context.Context) error
}
