package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/feedwise/internal/domain"
	"github.com/emiliopalmerini/feedwise/internal/ports"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of a failed response is read looking for a detail.
const maxErrorBody = 64 << 10

// Config holds the connection settings for the feedback API.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the feedback REST API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     ports.Logger
}

// NewClient creates a new feedback API client.
func NewClient(cfg Config, logger ports.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("feedback API base URL not configured")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must use http or https", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// WebhookURL returns the endpoint external forms should POST to.
func (c *Client) WebhookURL(formID string) string {
	return c.endpoint(nil, "webhook", formID)
}

type submitRequest struct {
	Responses domain.FormValues `json:"responses"`
}

// Submit posts the form values to the webhook and returns the analysis.
func (c *Client) Submit(ctx context.Context, formID string, values domain.FormValues) (domain.AnalysisResult, error) {
	var result domain.AnalysisResult

	if values == nil {
		values = domain.FormValues{}
	}
	body, err := json.Marshal(submitRequest{Responses: values})
	if err != nil {
		return result, fmt.Errorf("encoding submission: %w", err)
	}

	target := c.endpoint(nil, "webhook", formID)
	if err := c.do(ctx, http.MethodPost, target, body, &result); err != nil {
		return result, fmt.Errorf("submitting feedback: %w", err)
	}
	return result, nil
}

// ListFeedback returns the submissions for a form, newest first as ordered by the server.
func (c *Client) ListFeedback(ctx context.Context, formID string, q domain.FeedbackQuery) ([]domain.FeedbackRecord, error) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if s := q.Filter.QueryValue(); s != "" {
		params.Set("sentiment", s)
	}
	if q.StartDate != "" {
		params.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		params.Set("end_date", q.EndDate)
	}

	var records []domain.FeedbackRecord
	target := c.endpoint(params, "feedback", formID)
	if err := c.do(ctx, http.MethodGet, target, nil, &records); err != nil {
		return nil, fmt.Errorf("fetching feedback: %w", err)
	}
	return records, nil
}

// Stats returns the sentiment breakdown for a form.
func (c *Client) Stats(ctx context.Context, formID string) (domain.FeedbackStats, error) {
	var stats domain.FeedbackStats
	target := c.endpoint(nil, "feedback", formID, "stats")
	if err := c.do(ctx, http.MethodGet, target, nil, &stats); err != nil {
		return stats, fmt.Errorf("fetching feedback statistics: %w", err)
	}
	return stats, nil
}

// GlobalStats returns the totals across every form.
func (c *Client) GlobalStats(ctx context.Context) (domain.GlobalStats, error) {
	var stats domain.GlobalStats
	target := c.endpoint(nil, "global-stats")
	if err := c.do(ctx, http.MethodGet, target, nil, &stats); err != nil {
		return stats, fmt.Errorf("fetching global stats: %w", err)
	}
	return stats, nil
}

// endpoint joins escaped path segments onto the base URL.
func (c *Client) endpoint(params url.Values, segments ...string) string {
	u := *c.baseURL
	var raw strings.Builder
	raw.WriteString(strings.TrimRight(u.EscapedPath(), "/"))
	for _, s := range segments {
		raw.WriteString("/")
		raw.WriteString(url.PathEscape(s))
	}
	// RawPath keeps escaped slashes inside a segment intact.
	u.RawPath = raw.String()
	if p, err := url.PathUnescape(u.RawPath); err == nil {
		u.Path = p
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String()
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, target string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug(fmt.Sprintf("api %s %s request_id=%s", method, target, requestID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return &domain.TransportError{Op: "executing request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &domain.APIError{Status: resp.StatusCode}
		var payload errorResponse
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(raw, &payload) == nil {
			apiErr.Detail = payload.Detail
		}
		c.logger.Error(fmt.Sprintf("api %s %s request_id=%s status=%d detail=%q",
			method, target, requestID, resp.StatusCode, apiErr.Detail))
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
