package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/emiliopalmerini/feedwise/internal/adapters/otel"
	"github.com/emiliopalmerini/feedwise/internal/infrastructure/config"
)

func testConfig() *config.Client {
	return &config.Client{
		API:      config.API{URL: "http://localhost:8000", Timeout: time.Second},
		Log:      config.Log{Level: "debug"},
		Debounce: 300 * time.Millisecond,
	}
}

func TestNewAppContext_TelemetryDisabled(t *testing.T) {
	var logs bytes.Buffer
	app, err := NewAppContext(context.Background(), testConfig(), &logs)
	if err != nil {
		t.Fatalf("NewAppContext: %v", err)
	}
	if _, ok := app.Recorder.(*otel.NoOpRecorder); !ok {
		t.Errorf("expected no-op recorder, got %T", app.Recorder)
	}
	if app.API.BaseURL() != "http://localhost:8000" {
		t.Errorf("unexpected base URL %q", app.API.BaseURL())
	}
	if err := app.Close(context.Background()); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestNewAppContext_TelemetryWithoutEndpointFallsBack(t *testing.T) {
	cfg := testConfig()
	cfg.Telemetry = config.Telemetry{Enabled: true}

	var logs bytes.Buffer
	app, err := NewAppContext(context.Background(), cfg, &logs)
	if err != nil {
		t.Fatalf("NewAppContext: %v", err)
	}
	defer app.Close(context.Background())

	if _, ok := app.Recorder.(*otel.NoOpRecorder); !ok {
		t.Errorf("expected no-op recorder, got %T", app.Recorder)
	}
	if !bytes.Contains(logs.Bytes(), []byte("metrics disabled")) {
		t.Error("expected the fallback to be logged")
	}
}

func TestNewAppContext_BadURL(t *testing.T) {
	cfg := testConfig()
	cfg.API.URL = "ftp://nowhere"
	if _, err := NewAppContext(context.Background(), cfg, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unsupported scheme")
	}
}

func TestAppContextClose_Empty(t *testing.T) {
	a := &AppContext{}
	if err := a.Close(context.Background()); err != nil {
		t.Errorf("Close() on empty context should not error, got: %v", err)
	}
}
