// Package logging builds the process logger: JSON lines to a size-rotated
// file when a log file is configured, plain text on stderr otherwise.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects where and how much to log.
type Config struct {
	File      string
	Level     string
	MaxSizeMB int
	MaxFiles  int
}

// Default rotation limits.
const (
	defaultMaxSizeMB = 10
	defaultMaxFiles  = 5
)

// New returns a logger tagged with a fresh run ID and the closer for its
// output. Callers close it on exit; closing the stderr output is a no-op.
func New(cfg Config, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	var (
		handler slog.Handler
		closer  io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		w, err := NewRotatingWriter(cfg)
		if err != nil {
			return nil, nil, err
		}
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
		closer = w
	} else {
		handler = slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler).With("run", runID()), closer, nil
}

// NewRotatingWriter returns a size-rotated writer for cfg.File, creating its
// directory if needed.
func NewRotatingWriter(cfg Config) (*lumberjack.Logger, error) {
	if cfg.File == "" {
		return nil, fmt.Errorf("log file path must not be empty")
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = defaultMaxSizeMB
	}
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = defaultMaxFiles
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxFiles,
	}, nil
}

// ParseLevel maps debug, info, warn and error onto slog levels. An empty
// string means warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

func runID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
