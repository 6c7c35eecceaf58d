// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package observability builds the server's structured logger and Prometheus metrics.
package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/research-server/pkg/types"
)

// NewLogger creates a zerolog logger from cfg. When forceStderr is set the
// output setting is ignored, which the stdio transport needs because stdout
// carries the protocol stream.
func NewLogger(cfg types.LoggingConfig, forceStderr bool) zerolog.Logger {
	var out io.Writer = os.Stderr
	if !forceStderr && strings.EqualFold(cfg.Output, "stdout") {
		out = os.Stdout
	}
	return newLogger(cfg, out)
}

func newLogger(cfg types.LoggingConfig, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", "research-server").
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
