package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"FEEDWISE_API_URL", "FEEDWISE_HTTP_TIMEOUT", "FEEDWISE_DEBOUNCE", "FEEDWISE_LOG_FILE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.URL != "http://localhost:8000" {
		t.Errorf("unexpected default URL %q", cfg.API.URL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("unexpected default timeout %s", cfg.API.Timeout)
	}
	if cfg.Debounce != 300*time.Millisecond {
		t.Errorf("unexpected default debounce %s", cfg.Debounce)
	}
	if cfg.Log.File == "" {
		t.Error("expected a default log file")
	}
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	env := "FEEDWISE_API_URL=http://from-dotenv:9000\nFEEDWISE_LOG_LEVEL=debug\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FEEDWISE_API_URL", "http://from-env:8000")
	t.Setenv("FEEDWISE_LOG_LEVEL", "")
	os.Unsetenv("FEEDWISE_LOG_LEVEL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.URL != "http://from-env:8000" {
		t.Errorf("environment should win, got %q", cfg.API.URL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf(".env value should fill unset variables, got %q", cfg.Log.Level)
	}
}

func TestLoad_RejectsNonPositiveDebounce(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FEEDWISE_DEBOUNCE", "0s")
	if _, err := Load(); err == nil {
		t.Error("expected error for zero debounce")
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
