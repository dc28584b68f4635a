package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/emiliopalmerini/feedwise/internal/util"
)

// API holds the feedback API connection settings.
type API struct {
	URL     string        `envconfig:"FEEDWISE_API_URL" default:"http://localhost:8000"`
	Timeout time.Duration `envconfig:"FEEDWISE_HTTP_TIMEOUT" default:"10s"`
}

// Log holds logging configuration.
type Log struct {
	Level string `envconfig:"FEEDWISE_LOG_LEVEL" default:"info"`
	// File receives log output while the TUI owns the terminal.
	File string `envconfig:"FEEDWISE_LOG_FILE"`
}

// Telemetry holds OTEL exporter configuration.
type Telemetry struct {
	Enabled  bool   `envconfig:"FEEDWISE_OTEL_ENABLED" default:"false"`
	Endpoint string `envconfig:"FEEDWISE_OTEL_ENDPOINT"`
	Insecure bool   `envconfig:"FEEDWISE_OTEL_INSECURE" default:"false"`
}

// Client is the immutable configuration built once at startup.
type Client struct {
	API       API
	Log       Log
	Telemetry Telemetry
	// Debounce is the dashboard's quiescence window before a fetch runs.
	Debounce time.Duration `envconfig:"FEEDWISE_DEBOUNCE" default:"300ms"`
}

// Load reads .env files from the working directory, then the environment.
// Variables already set in the environment win over .env entries.
func Load() (*Client, error) {
	loadEnvFiles(".env", ".env.local")

	var cfg Client
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogFile()
	}
	if cfg.Debounce <= 0 {
		return nil, fmt.Errorf("FEEDWISE_DEBOUNCE must be positive, got %s", cfg.Debounce)
	}
	return &cfg, nil
}

func loadEnvFiles(files ...string) {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		// Load never overrides variables that are already set.
		_ = godotenv.Load(file)
	}
}

func defaultLogFile() string {
	if dir, err := util.GetXDGStateDir(); err == nil {
		return filepath.Join(dir, "feedwise.log")
	}
	return filepath.Join(os.TempDir(), "feedwise.log")
}
