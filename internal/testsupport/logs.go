package testsupport

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"arrtag/internal/logging"
)

// LogRecord is one captured log call with its attributes rendered as strings.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]string
}

// LogCapture is a slog handler that keeps every record in memory.
type LogCapture struct {
	mu      *sync.Mutex
	records *[]LogRecord
	attrs   []slog.Attr
}

// NewLogCapture returns an empty capture accepting all levels.
func NewLogCapture() *LogCapture {
	return &LogCapture{mu: &sync.Mutex{}, records: &[]LogRecord{}}
}

// CaptureStreams returns streams backed by two captures (main, debug).
func CaptureStreams() (*logging.Streams, *LogCapture, *LogCapture) {
	mainLog, debugLog := NewLogCapture(), NewLogCapture()
	return &logging.Streams{Main: mainLog.Logger(), Debug: debugLog.Logger()}, mainLog, debugLog
}

func (c *LogCapture) Logger() *slog.Logger { return slog.New(c) }

func (c *LogCapture) Enabled(context.Context, slog.Level) bool { return true }

func (c *LogCapture) Handle(_ context.Context, record slog.Record) error {
	rec := LogRecord{Level: record.Level, Message: record.Message, Attrs: map[string]string{}}
	for _, attr := range c.attrs {
		rec.Attrs[attr.Key] = attr.Value.Resolve().String()
	}
	record.Attrs(func(attr slog.Attr) bool {
		rec.Attrs[attr.Key] = attr.Value.Resolve().String()
		return true
	})
	c.mu.Lock()
	defer c.mu.Unlock()
	*c.records = append(*c.records, rec)
	return nil
}

func (c *LogCapture) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogCapture{mu: c.mu, records: c.records, attrs: append(append([]slog.Attr(nil), c.attrs...), attrs...)}
}

func (c *LogCapture) WithGroup(string) slog.Handler { return c }

// Records returns a snapshot of everything captured so far.
func (c *LogCapture) Records() []LogRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]LogRecord(nil), *c.records...)
}

// AtLevel returns the captured records with exactly the given level.
func (c *LogCapture) AtLevel(level slog.Level) []LogRecord {
	var out []LogRecord
	for _, rec := range c.Records() {
		if rec.Level == level {
			out = append(out, rec)
		}
	}
	return out
}

// Find returns the first record whose message contains substr.
func (c *LogCapture) Find(substr string) (LogRecord, bool) {
	for _, rec := range c.Records() {
		if strings.Contains(rec.Message, substr) {
			return rec, true
		}
	}
	return LogRecord{}, false
}
