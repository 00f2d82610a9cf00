// Package logging adapts log/slog to the avidbase.Logger interface.
package logging

import (
	"io"
	"log/slog"
	"sort"

	"github.com/avidbase/avidbase-go/pkg/avidbase"
)

// SlogLogger implements avidbase.Logger on top of a *slog.Logger.
type SlogLogger struct {
	l *slog.Logger
}

var _ avidbase.Logger = (*SlogLogger)(nil)

// NewSlogLogger wraps l.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// New creates a logger writing text or JSON records to w. Debug records are
// only written when verbose is set.
func New(w io.Writer, json bool, verbose bool) *SlogLogger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return NewSlogLogger(slog.New(handler))
}

func (s *SlogLogger) Debug(msg string, fields map[string]interface{}) {
	s.l.Debug(msg, attrs(fields)...)
}

func (s *SlogLogger) Info(msg string, fields map[string]interface{}) {
	s.l.Info(msg, attrs(fields)...)
}

func (s *SlogLogger) Warn(msg string, fields map[string]interface{}) {
	s.l.Warn(msg, attrs(fields)...)
}

func (s *SlogLogger) Error(msg string, fields map[string]interface{}) {
	s.l.Error(msg, attrs(fields)...)
}

// With returns a child logger that always includes the given fields.
func (s *SlogLogger) With(fields map[string]interface{}) *SlogLogger {
	return &SlogLogger{l: s.l.With(attrs(fields)...)}
}

// attrs converts fields to slog arguments in key order so output is stable.
func attrs(fields map[string]interface{}) []any {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	args := make([]any, 0, len(fields))
	for _, key := range keys {
		args = append(args, slog.Any(key, fields[key]))
	}

	return args
}
