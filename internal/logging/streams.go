package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"arrtag/internal/config"
)

// Log file names inside the log directory.
const (
	MainLogName  = "main.log"
	DebugLogName = "debug.log"
)

// Options describes stream construction parameters.
type Options struct {
	// Dir holds main.log and debug.log. Empty disables file output.
	Dir    string
	Format string
	// Level applies to the console mirror only; files are fixed at info
	// (main) and debug (debug).
	Level      string
	Console    io.Writer
	MaxSizeMB  int
	MaxBackups int
	RunID      string
}

// Streams pairs the operational log with the fine-grained diagnostic log.
// Main receives progress, changes and errors; Debug receives per-entry detail
// and failure payloads.
type Streams struct {
	Main  *slog.Logger
	Debug *slog.Logger

	closers []io.Closer
}

// NopStreams discards everything.
func NopStreams() *Streams {
	return &Streams{Main: NewNop(), Debug: NewNop()}
}

// NewStreams opens the rotated log files and wires the console mirror.
func NewStreams(opts Options) (*Streams, error) {
	streams := &Streams{}

	var console slog.Handler
	if opts.Console != nil {
		console = newConsoleHandler(opts.Console, opts.Level)
	}

	mainFile, err := streams.openFile(opts, MainLogName, "info")
	if err != nil {
		return nil, err
	}
	debugFile, err := streams.openFile(opts, DebugLogName, "debug")
	if err != nil {
		_ = streams.Close()
		return nil, err
	}

	streams.Main = slog.New(newRunIDHandler(TeeHandler(mainFile, console), opts.RunID))
	streams.Debug = slog.New(newRunIDHandler(TeeHandler(debugFile, console), opts.RunID))
	return streams, nil
}

// NewStreamsFromConfig builds streams from the [logging] section.
func NewStreamsFromConfig(cfg *config.Config, console io.Writer, runID string) (*Streams, error) {
	if cfg == nil {
		return NewStreams(Options{Console: console, Level: "info", RunID: runID})
	}
	if !cfg.Logging.Console {
		console = nil
	}
	return NewStreams(Options{
		Dir:        cfg.Logging.Dir,
		Format:     cfg.Logging.Format,
		Level:      cfg.Logging.Level,
		Console:    console,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		RunID:      runID,
	})
}

func (s *Streams) openFile(opts Options, name, level string) (slog.Handler, error) {
	dir := strings.TrimSpace(opts.Dir)
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 1
	}
	writer := &lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    maxSize,
		MaxBackups: opts.MaxBackups,
	}
	s.closers = append(s.closers, writer)
	return NewHandler(writer, opts.Format, level)
}

// With returns streams whose records all carry attrs.
func (s *Streams) With(attrs ...Attr) *Streams {
	args := Args(attrs...)
	return &Streams{
		Main:    s.Main.With(args...),
		Debug:   s.Debug.With(args...),
		closers: s.closers,
	}
}

// Close flushes and closes the log files.
func (s *Streams) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
