// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package observability builds the zerolog logger used by the engine and the
// command line.
package observability

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/citation-view/pkg/types"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger creates a logger from cfg. Output is "stderr" (the default),
// "stdout", or a file path that is appended to; the returned Closer releases
// the file. The terminal UI owns stdout, so interactive sessions should log
// to stderr or a file.
func NewLogger(cfg types.LogConfig) (zerolog.Logger, io.Closer, error) {
	var (
		out    io.Writer
		closer io.Closer = nopCloser{}
	)

	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("opening log file: %w", err)
		}
		out, closer = f, f
	}

	return NewLoggerTo(out, cfg), closer, nil
}

// NewLoggerTo creates a logger writing to w, formatted per cfg.Format
// ("console" or "json").
func NewLoggerTo(w io.Writer, cfg types.LogConfig) zerolog.Logger {
	switch strings.ToLower(cfg.Format) {
	case "console", "pretty":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: w != os.Stderr}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(parseLevel(cfg.Level))
}

// parseLevel converts a string log level to zerolog.Level.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// WithExportContext adds export fields to a logger.
func WithExportContext(logger zerolog.Logger, format string, count int) zerolog.Logger {
	return logger.With().
		Str("format", format).
		Int("count", count).
		Logger()
}
