package ports

import (
	"context"

	"github.com/emiliopalmerini/feedwise/internal/domain"
)

// Submitter sends a filled form to the webhook of a form connection.
type Submitter interface {
	Submit(ctx context.Context, formID string, values domain.FormValues) (domain.AnalysisResult, error)
}

// FeedbackReader reads stored submissions and their aggregates for one form.
type FeedbackReader interface {
	ListFeedback(ctx context.Context, formID string, q domain.FeedbackQuery) ([]domain.FeedbackRecord, error)
	Stats(ctx context.Context, formID string) (domain.FeedbackStats, error)
}

// GlobalStatsReader reads the cross-form landing numbers.
type GlobalStatsReader interface {
	GlobalStats(ctx context.Context) (domain.GlobalStats, error)
}

// FeedbackAPI is the full remote surface the client talks to.
type FeedbackAPI interface {
	Submitter
	FeedbackReader
	GlobalStatsReader
}
