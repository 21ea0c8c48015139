// Package logger provides the levelled console logger used by the CLI and
// the scene loader.
package logger

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Logger writes levelled, caller-annotated lines. A nil *Logger discards
// everything, so library code can accept an optional logger.
type Logger struct {
	log *log.Logger
}

// ParseLevel converts a level name to a log.Level, defaulting to info.
func ParseLevel(levelStr string) log.Level {
	s := strings.ToLower(strings.TrimSpace(levelStr))
	if s == "warning" {
		s = "warn"
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// New creates a logger writing to w at the given level. Styling is applied
// only when w is a terminal.
func New(w io.Writer, levelStr string) *Logger {
	return &Logger{
		log: log.NewWithOptions(w, log.Options{
			Level:           ParseLevel(levelStr),
			ReportTimestamp: true,
			ReportCaller:    true,
			CallerOffset:    1, // Skip this wrapper
		}),
	}
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, v ...any) {
	if l != nil {
		l.log.Debugf(format, v...)
	}
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, v ...any) {
	if l != nil {
		l.log.Infof(format, v...)
	}
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, v ...any) {
	if l != nil {
		l.log.Warnf(format, v...)
	}
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, v ...any) {
	if l != nil {
		l.log.Errorf(format, v...)
	}
}
