package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"arrtag/internal/logging"
)

func TestConsoleHandlerOmitsSourceForInfo(t *testing.T) {
	var buf bytes.Buffer
	handler, err := logging.NewHandler(&buf, "console", "info")
	if err != nil {
		t.Fatalf("NewHandler returned error: %v", err)
	}

	slog.New(handler).Info("message without source", logging.String(logging.FieldBackend, "series"))

	line := buf.String()
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no source information in info logs, got %q", line)
	}
	if !strings.Contains(line, " INFO series: message without source") {
		t.Fatalf("expected backend prefix, got %q", line)
	}
}

func TestConsoleHandlerIncludesSourceForDebug(t *testing.T) {
	var buf bytes.Buffer
	handler, err := logging.NewHandler(&buf, "console", "debug")
	if err != nil {
		t.Fatalf("NewHandler returned error: %v", err)
	}

	slog.New(handler).Info("message with source")

	if !strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected source information in debug logs, got %q", buf.String())
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	handler, err := logging.NewHandler(&buf, "", "info")
	if err != nil {
		t.Fatalf("NewHandler returned error: %v", err)
	}

	slog.New(handler).Info("path change",
		logging.String("new_path", "/tv/Show - {imdb-tt1}"),
		logging.Int("status", 202),
	)

	line := buf.String()
	if !strings.Contains(line, `new_path="/tv/Show - {imdb-tt1}"`) {
		t.Fatalf("expected quoted path, got %q", line)
	}
	if !strings.Contains(line, "status=202") {
		t.Fatalf("expected bare integer, got %q", line)
	}
}

func TestJSONHandlerFields(t *testing.T) {
	var buf bytes.Buffer
	handler, err := logging.NewHandler(&buf, "json", "info")
	if err != nil {
		t.Fatalf("NewHandler returned error: %v", err)
	}

	slog.New(handler).Warn("json message", logging.String("k", "v"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record["level"] != "warn" || record["msg"] != "json message" || record["k"] != "v" {
		t.Fatalf("unexpected record: %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts field, got %v", record)
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"invalid": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for input, want := range tests {
		if got := logging.ParseLevel(input); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestErrorWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	handler, err := logging.NewHandler(&buf, "json", "info")
	if err != nil {
		t.Fatalf("NewHandler returned error: %v", err)
	}

	logging.ErrorWithContext(slog.New(handler), "update rejected", "update_failed", logging.Int("status", 400))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record[logging.FieldEventType] != "update_failed" || record[logging.FieldErrorHint] == nil {
		t.Fatalf("expected injected fields, got %v", record)
	}
}
