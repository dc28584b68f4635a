package otel

import "github.com/emiliopalmerini/feedwise/internal/infrastructure/config"

// Config holds OTEL exporter configuration.
type Config struct {
	Endpoint string
	Enabled  bool
	Insecure bool
}

// ConfigFrom maps the loaded telemetry settings onto the exporter config.
func ConfigFrom(t config.Telemetry) Config {
	return Config{
		Endpoint: t.Endpoint,
		Enabled:  t.Enabled,
		Insecure: t.Insecure,
	}
}
