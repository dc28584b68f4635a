package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/emiliopalmerini/feedwise/internal/adapters/api"
	"github.com/emiliopalmerini/feedwise/internal/adapters/logger"
	"github.com/emiliopalmerini/feedwise/internal/adapters/otel"
	"github.com/emiliopalmerini/feedwise/internal/infrastructure/config"
	"github.com/emiliopalmerini/feedwise/internal/ports"
)

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config   *config.Client
	API      *api.Client
	Recorder ports.MetricsRecorder
	Logger   ports.Logger
	log      *logger.Logrus
}

// NewAppContext wires the API client, logger and metrics recorder from cfg.
// logOut receives log output; when nil the configured log file is used.
func NewAppContext(ctx context.Context, cfg *config.Client, logOut io.Writer) (*AppContext, error) {
	var (
		log *logger.Logrus
		err error
	)
	if logOut != nil {
		log, err = logger.New(logOut, cfg.Log.Level)
	} else {
		log, err = logger.NewFile(cfg.Log.File, cfg.Log.Level)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := api.NewClient(api.Config{BaseURL: cfg.API.URL, Timeout: cfg.API.Timeout}, log.With("component", "api"))
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return &AppContext{
		Config:   cfg,
		API:      client,
		Recorder: newRecorder(ctx, cfg.Telemetry, log),
		Logger:   log,
		log:      log,
	}, nil
}

// newRecorder falls back to a no-op recorder when telemetry is off or unreachable.
func newRecorder(ctx context.Context, t config.Telemetry, log ports.Logger) ports.MetricsRecorder {
	if !t.Enabled {
		return otel.NewNoOpRecorder()
	}
	exp, err := otel.NewExporter(ctx, otel.ConfigFrom(t))
	if err != nil {
		log.Error(fmt.Sprintf("metrics disabled: %v", err))
		return otel.NewNoOpRecorder()
	}
	return exp
}

// Close flushes metrics and releases the log file.
func (a *AppContext) Close(ctx context.Context) error {
	var firstErr error
	if a.Recorder != nil {
		if err := a.Recorder.Close(ctx); err != nil {
			firstErr = fmt.Errorf("close metrics: %w", err)
		}
	}
	if a.log != nil {
		if err := a.log.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close log: %w", err)
		}
	}
	return firstErr
}
