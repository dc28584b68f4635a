package otel

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emiliopalmerini/feedwise/internal/ports"
)

const (
	serviceName    = "feedwise"
	serviceVersion = "1.0.0"
)

// Exporter exports client usage metrics to an OTEL Collector.
type Exporter struct {
	provider       *sdkmetric.MeterProvider
	submissions    metric.Int64Counter
	fetchDuration  metric.Float64Histogram
	fetchErrors    metric.Int64Counter
	staleDiscarded metric.Int64Counter
}

// NewExporter creates a new OTEL metrics exporter pushing over OTLP/gRPC.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	return newExporter(provider)
}

// newExporter registers the instruments on an existing provider.
func newExporter(provider *sdkmetric.MeterProvider) (*Exporter, error) {
	meter := provider.Meter(serviceName)

	submissions, err := meter.Int64Counter(
		"feedwise_submissions_total",
		metric.WithDescription("Form submissions by outcome"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating submissions counter: %w", err)
	}

	fetchDuration, err := meter.Float64Histogram(
		"feedwise_fetch_duration_seconds",
		metric.WithDescription("Latency of feedback API reads"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetch duration histogram: %w", err)
	}

	fetchErrors, err := meter.Int64Counter(
		"feedwise_fetch_errors_total",
		metric.WithDescription("Failed feedback API reads"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetch errors counter: %w", err)
	}

	staleDiscarded, err := meter.Int64Counter(
		"feedwise_stale_responses_total",
		metric.WithDescription("Dashboard responses dropped because a newer fetch superseded them"),
		metric.WithUnit("{response}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stale responses counter: %w", err)
	}

	return &Exporter{
		provider:       provider,
		submissions:    submissions,
		fetchDuration:  fetchDuration,
		fetchErrors:    fetchErrors,
		staleDiscarded: staleDiscarded,
	}, nil
}

// RecordSubmission counts one submit attempt.
func (e *Exporter) RecordSubmission(ctx context.Context, formID string, outcome ports.SubmissionOutcome) {
	e.submissions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("form_id", formID),
		attribute.String("outcome", string(outcome)),
	))
}

// RecordFetch records the latency of one read and counts it if it failed.
func (e *Exporter) RecordFetch(ctx context.Context, kind ports.FetchKind, elapsed time.Duration, err error) {
	opt := metric.WithAttributes(attribute.String("kind", string(kind)))
	e.fetchDuration.Record(ctx, elapsed.Seconds(), opt)
	if err != nil {
		e.fetchErrors.Add(ctx, 1, opt)
	}
}

// RecordStaleDiscard counts a superseded dashboard response.
func (e *Exporter) RecordStaleDiscard(ctx context.Context) {
	e.staleDiscarded.Add(ctx, 1)
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
