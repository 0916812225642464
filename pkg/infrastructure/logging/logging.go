// Package logging builds the leveled logger used across the CLI and the
// per-run log file that mirrors console output into the output directory.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ParseLevel maps a string level name to a slog.Level. Supported values:
// "debug", "info", "warn", "error" (case-insensitive). Unknown values
// default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled text logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// OpenRunLog creates a timestamped log file run_YYYYMMDD_HHMMSS.log in dir,
// creating dir if needed. Callers typically tee the logger to it with
// io.MultiWriter.
func OpenRunLog(dir string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	name := fmt.Sprintf("run_%s.log", now.Format("20060102_150405"))
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating run log: %w", err)
	}
	return f, nil
}

// CaseFilename returns the timestamped case filename case_YYYYMMDD_HHMMSS.csv.
func CaseFilename(now time.Time) string {
	return fmt.Sprintf("case_%s.csv", now.Format("20060102_150405"))
}
