package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Logrus adapts a logrus logger to the ports.Logger interface.
type Logrus struct {
	entry  *logrus.Entry
	closer io.Closer
}

// New creates a logger writing to w at the given level ("debug", "info", ...).
func New(w io.Writer, level string) (*Logrus, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	l := logrus.New()
	l.Out = w
	l.Level = lvl
	l.Formatter = &logrus.TextFormatter{
		DisableLevelTruncation: true,
		PadLevelText:           true,
		TimestampFormat:        "2006/01/02 15:04:05",
		FullTimestamp:          true,
	}
	return &Logrus{entry: logrus.NewEntry(l)}, nil
}

// NewFile creates a logger appending to path. The TUI logs here so that
// output does not tear the alternate screen.
func NewFile(path, level string) (*Logrus, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l, err := New(f, level)
	if err != nil {
		f.Close()
		return nil, err
	}
	l.closer = f
	return l, nil
}

// With returns a logger that adds a field to every entry.
func (l *Logrus) With(key string, value any) *Logrus {
	return &Logrus{entry: l.entry.WithField(key, value), closer: l.closer}
}

func (l *Logrus) Debug(message string) { l.entry.Debug(message) }
func (l *Logrus) Info(message string)  { l.entry.Info(message) }
func (l *Logrus) Error(message string) { l.entry.Error(message) }

// Close releases the log file, if any.
func (l *Logrus) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Discard drops every message.
type Discard struct{}

func (Discard) Debug(string) {}
func (Discard) Info(string)  {}
func (Discard) Error(string) {}
