// Package logging builds the planner's leveled logger. The terminal belongs
// to the UI, so log lines go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	Path  string
	Level string
}

// Logger pairs a charmbracelet logger with the file it writes to.
type Logger struct {
	*log.Logger
	file *os.File
}

// New opens (appending) the log file and returns a logger writing to it.
// An empty path discards output.
func New(opts Options) (*Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.Path) == "" {
		return &Logger{Logger: newLogger(io.Discard, level)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Logger{Logger: newLogger(f, level), file: f}, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return newLogger(io.Discard, log.InfoLevel)
}

// Close closes the underlying file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: true,
		Prefix:          "planner",
	})
}

func parseLevel(s string) (log.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}
