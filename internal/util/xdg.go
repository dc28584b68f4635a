package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetXDGStateDir returns the XDG state directory for feedwise.
// It respects XDG_STATE_HOME if set, otherwise falls back to ~/.local/state/feedwise
func GetXDGStateDir() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, "feedwise"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".local", "state", "feedwise"), nil
}
