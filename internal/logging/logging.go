// Package logging provides Gantry's logging infrastructure built on charmbracelet/log.
//
// All log output goes to stderr by default; stdout is reserved for command
// output (task tables, JSON, YAML). While the dashboard owns the terminal,
// output can be redirected to a file with ToFile.
//
// Usage:
//
//	// During CLI initialization (PersistentPreRun):
//	logging.Setup(verbose, quiet, jsonFormat)
//
//	// At the point of use:
//	logger := logging.New("source")
//	logger.Debug("loaded project", "project", id, "tasks", n)
//
// Setup must be called before New. charmbracelet/log copies the default
// logger's state into a child at creation time, so children created before
// Setup keep the old level and writer.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Level aliases for charmbracelet/log levels, so consumers need not import
// charmbracelet/log directly.
const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
)

// Setup configures the global logging defaults. verbose selects Debug, quiet
// selects Error, and quiet wins when both are set. jsonFormat switches to the
// NDJSON formatter.
func Setup(verbose, quiet, jsonFormat bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.ErrorLevel
	}

	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	if jsonFormat {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
}

// New creates a logger with the given component prefix. An empty component
// produces a logger without a prefix.
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// SetOutput overrides the output writer for the default logger.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// ToFile redirects the default logger to the file at path, creating parent
// directories as needed. The returned function restores stderr and closes
// the file. An empty path discards log output until restored.
func ToFile(path string) (restore func(), err error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
