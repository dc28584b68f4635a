package domain

import (
	"fmt"
	"math"
	"strings"
)

// Sentiment is the polarity the analysis service assigns to a submission.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Normalized maps unknown server values onto neutral for display purposes.
func (s Sentiment) Normalized() Sentiment {
	switch Sentiment(strings.ToLower(string(s))) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Filter restricts the dashboard list to one sentiment, or to none.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterPositive Filter = "positive"
	FilterNeutral  Filter = "neutral"
	FilterNegative Filter = "negative"
)

// Filters lists every filter in the order the dashboard cycles through them.
var Filters = []Filter{FilterAll, FilterPositive, FilterNeutral, FilterNegative}

// ParseFilter accepts "", "all" or a sentiment name.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FilterAll, nil
	}
	for _, known := range Filters {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown sentiment filter %q", s)
}

// QueryValue returns the value for the sentiment query parameter, or "" for all.
func (f Filter) QueryValue() string {
	if f == FilterAll || f == "" {
		return ""
	}
	return string(f)
}

// Next returns the filter after f in cycling order.
func (f Filter) Next() Filter {
	for i, known := range Filters {
		if known == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// AnalysisResult is what the webhook returns for a submission. The client only renders it.
type AnalysisResult struct {
	ID                string    `json:"id,omitempty"`
	Message           string    `json:"message,omitempty"`
	Sentiment         Sentiment `json:"sentiment"`
	SentimentAnalysis string    `json:"sentiment_analysis,omitempty"`
	Summary           string    `json:"summary"`
	DetailedAnalysis  string    `json:"detailed_analysis,omitempty"`
	CreatedAt         Timestamp `json:"created_at"`
}

// FeedbackRecord is one stored submission as listed by the dashboard.
type FeedbackRecord struct {
	ID                string         `json:"id"`
	Responses         map[string]any `json:"responses"`
	Sentiment         Sentiment      `json:"sentiment"`
	Summary           string         `json:"summary"`
	SentimentAnalysis string         `json:"sentiment_analysis,omitempty"`
	DetailedAnalysis  string         `json:"detailed_analysis,omitempty"`
	CreatedAt         Timestamp      `json:"created_at"`
}

// Headline picks the text shown for a collapsed record: the feedback field if
// present, otherwise the summary.
func (r FeedbackRecord) Headline() string {
	for _, key := range []string{"feedback", "text", "comments"} {
		if s, ok := r.Responses[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	if r.Summary != "" {
		return r.Summary
	}
	return "No Text"
}

// FeedbackQuery holds the optional list filters sent to the API.
type FeedbackQuery struct {
	Search    string
	Filter    Filter
	StartDate string
	EndDate   string
}

// SentimentCounts breaks a total down by sentiment.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// FeedbackStats are the aggregate numbers for one form.
type FeedbackStats struct {
	Total           int             `json:"total"`
	SentimentCounts SentimentCounts `json:"sentiment_counts"`
}

// SentimentPercentages are whole-number shares of the total.
type SentimentPercentages struct {
	Positive int
	Neutral  int
	Negative int
}

// Percentages converts counts into rounded percentages of Total.
// A zero total yields zero for every sentiment.
func (s FeedbackStats) Percentages() SentimentPercentages {
	if s.Total <= 0 {
		return SentimentPercentages{}
	}
	pct := func(n int) int {
		return int(math.Round(float64(n) * 100 / float64(s.Total)))
	}
	return SentimentPercentages{
		Positive: pct(s.SentimentCounts.Positive),
		Neutral:  pct(s.SentimentCounts.Neutral),
		Negative: pct(s.SentimentCounts.Negative),
	}
}

// GlobalStats are the landing-page numbers across every form.
type GlobalStats struct {
	Forms        int     `json:"forms"`
	Responses    int     `json:"responses"`
	Satisfaction float64 `json:"satisfaction"`
}
