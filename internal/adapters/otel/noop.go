package otel

import (
	"context"
	"time"

	"github.com/emiliopalmerini/feedwise/internal/ports"
)

// NoOpRecorder drops every measurement. It is used when telemetry is disabled.
type NoOpRecorder struct{}

// NewNoOpRecorder creates a recorder for graceful degradation.
func NewNoOpRecorder() *NoOpRecorder {
	return &NoOpRecorder{}
}

func (*NoOpRecorder) RecordSubmission(context.Context, string, ports.SubmissionOutcome) {}

func (*NoOpRecorder) RecordFetch(context.Context, ports.FetchKind, time.Duration, error) {}

func (*NoOpRecorder) RecordStaleDiscard(context.Context) {}

func (*NoOpRecorder) Close(context.Context) error { return nil }
