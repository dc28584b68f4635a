package ports_test

import (
	"testing"

	"github.com/emiliopalmerini/feedwise/internal/adapters/api"
	"github.com/emiliopalmerini/feedwise/internal/adapters/logger"
	"github.com/emiliopalmerini/feedwise/internal/adapters/otel"
	"github.com/emiliopalmerini/feedwise/internal/ports"
)

// Compile-time interface conformance checks.
// These verify that concrete adapters properly implement their port interfaces.

func TestFeedbackAPIConformance(t *testing.T) {
	var _ ports.FeedbackAPI = (*api.Client)(nil)
}

func TestMetricsRecorderConformance(t *testing.T) {
	var _ ports.MetricsRecorder = (*otel.Exporter)(nil)
	var _ ports.MetricsRecorder = (*otel.NoOpRecorder)(nil)
}

func TestLoggerConformance(t *testing.T) {
	var _ ports.Logger = (*logger.Logrus)(nil)
	var _ ports.Logger = logger.Discard{}
}
