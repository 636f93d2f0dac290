// Package testutil provides log capture and reduction fixtures for tests
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogRecord is one captured log entry with its attributes flattened
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

type logStore struct {
	mu      sync.Mutex
	records []LogRecord
}

// LogRecorder is a slog.Handler that keeps every record in memory. Loggers
// derived with With share the same store.
type LogRecorder struct {
	store *logStore
	attrs []slog.Attr
	group string
}

// NewLogger returns a debug-level logger and the recorder behind it
func NewLogger() (*slog.Logger, *LogRecorder) {
	rec := &LogRecorder{store: &logStore{}}
	return slog.New(rec), rec
}

// Enabled implements slog.Handler
func (h *LogRecorder) Enabled(context.Context, slog.Level) bool { return true }

// Handle implements slog.Handler
func (h *LogRecorder) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		attrs[key] = a.Value.Any()
		return true
	})

	h.store.mu.Lock()
	h.store.records = append(h.store.records, LogRecord{Level: r.Level, Message: r.Message, Attrs: attrs})
	h.store.mu.Unlock()
	return nil
}

// WithAttrs implements slog.Handler
func (h *LogRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

// WithGroup implements slog.Handler
func (h *LogRecorder) WithGroup(name string) slog.Handler {
	next := *h
	if next.group != "" {
		name = next.group + "." + name
	}
	next.group = name
	return &next
}

// Records returns a copy of everything captured so far
func (h *LogRecorder) Records() []LogRecord {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	out := make([]LogRecord, len(h.store.records))
	copy(out, h.store.records)
	return out
}

// Find returns the records at level whose message contains msg
func (h *LogRecorder) Find(level slog.Level, msg string) []LogRecord {
	var out []LogRecord
	for _, r := range h.Records() {
		if r.Level == level && strings.Contains(r.Message, msg) {
			out = append(out, r)
		}
	}
	return out
}

// AssertLogged fails the test unless a record at level contains msg
func AssertLogged(t testing.TB, h *LogRecorder, level slog.Level, msg string) LogRecord {
	t.Helper()
	found := h.Find(level, msg)
	if len(found) == 0 {
		t.Errorf("no %s log containing %q", level, msg)
		for _, r := range h.Records() {
			t.Logf("  [%s] %s %v", r.Level, r.Message, r.Attrs)
		}
		return LogRecord{}
	}
	return found[0]
}

// AssertNoErrors fails the test if an error-level record was captured
func AssertNoErrors(t testing.TB, h *LogRecorder) {
	t.Helper()
	for _, r := range h.Records() {
		if r.Level >= slog.LevelError {
			t.Errorf("unexpected error log: %s %v", r.Message, r.Attrs)
		}
	}
}
