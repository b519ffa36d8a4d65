package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"arrtag/internal/config"
	"arrtag/internal/logging"
)

func TestNewStreamsRoutesByLevel(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	streams, err := logging.NewStreams(logging.Options{
		Dir:        dir,
		Format:     "console",
		Level:      "info",
		Console:    &console,
		MaxSizeMB:  1,
		MaxBackups: 2,
		RunID:      "run-42",
	})
	if err != nil {
		t.Fatalf("NewStreams returned error: %v", err)
	}
	log := streams.With(logging.String(logging.FieldBackend, "series"))
	log.Main.Info("path changed", logging.String("new_path", "/tv/Foo - {tvdb-1}"))
	log.Debug.Debug("entry inspected", logging.String("path", "/tv/Foo"))
	if err := streams.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	mainLog := readFile(t, filepath.Join(dir, logging.MainLogName))
	debugLog := readFile(t, filepath.Join(dir, logging.DebugLogName))

	if !strings.Contains(mainLog, "path changed") || strings.Contains(mainLog, "entry inspected") {
		t.Fatalf("unexpected main.log content: %q", mainLog)
	}
	if !strings.Contains(debugLog, "entry inspected") || strings.Contains(debugLog, "path changed") {
		t.Fatalf("unexpected debug.log content: %q", debugLog)
	}
	if !strings.Contains(mainLog, "run_id=run-42") {
		t.Fatalf("expected run id in main.log, got %q", mainLog)
	}
	out := console.String()
	if !strings.Contains(out, "INFO series: path changed") {
		t.Fatalf("expected backend prefix on console, got %q", out)
	}
	if strings.Contains(out, "entry inspected") {
		t.Fatalf("debug detail leaked to info console: %q", out)
	}
	if strings.Contains(out, "run_id") {
		t.Fatalf("console should omit run id: %q", out)
	}
}

func TestNewStreamsJSONFormat(t *testing.T) {
	dir := t.TempDir()
	streams, err := logging.NewStreams(logging.Options{Dir: dir, Format: "json", RunID: "r1"})
	if err != nil {
		t.Fatalf("NewStreams returned error: %v", err)
	}
	streams.Main.Error("list failed", logging.Int("status", 500))
	_ = streams.Close()

	content := readFile(t, filepath.Join(dir, logging.MainLogName))
	for _, want := range []string{`"level":"error"`, `"msg":"list failed"`, `"status":500`, `"run_id":"r1"`} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %s in %q", want, content)
		}
	}
}

func TestNewStreamsFromConfigHonoursConsoleToggle(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Dir = t.TempDir()
	cfg.Logging.Console = false

	var console bytes.Buffer
	streams, err := logging.NewStreamsFromConfig(&cfg, &console, "")
	if err != nil {
		t.Fatalf("NewStreamsFromConfig returned error: %v", err)
	}
	streams.Main.Info("quiet")
	_ = streams.Close()

	if console.Len() != 0 {
		t.Fatalf("expected no console output, got %q", console.String())
	}
}

func TestNewHandlerRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.NewHandler(&bytes.Buffer{}, "xml", "info"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopStreams(t *testing.T) {
	streams := logging.NopStreams()
	streams.Main.Error("discarded")
	streams.Debug.Debug("discarded")
	if err := streams.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
