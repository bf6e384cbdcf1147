// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

// Package logging provides the zerolog loggers used by the pipeline.
//
// A process-wide logger serves code that has no context at hand (database
// drivers, startup). Stages log through the context logger instead, which
// carries the run_id of the invocation:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	runner := pipeline.NewRunner(cfg, loader, db, logging.Logger())
//	logging.Ctx(ctx).Info().Int("users", n).Msg("Similarity computed")
//
// Long-lived components tag their logger once with Component:
//
//	logger := logging.Component(base, "similarity")
//
// Level, format and caller come from LOG_LEVEL, LOG_FORMAT and LOG_CALLER
// through internal/config.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Config controls how New builds a logger.
type Config struct {
	// Level is trace, debug, info, warn, error or disabled. Unknown values mean info.
	Level string

	// Format is json (default) or console.
	Format string

	// Caller adds file:line to every entry.
	Caller bool

	// Timestamp adds an RFC 3339 time field.
	Timestamp bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

var (
	mu     sync.RWMutex
	global = New(Config{Timestamp: true})
)

// New builds a logger from cfg. It does not touch the process-wide logger
// or the zerolog global level.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(out).Level(parseLevel(cfg.Level)).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// Init replaces the process-wide logger. Safe to call more than once.
func Init(cfg Config) {
	l := New(cfg)
	mu.Lock()
	global = l
	mu.Unlock()
}

// parseLevel accepts zerolog level names in any case, plus "warning".
// Empty and unknown names fall back to info.
func parseLevel(name string) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Logger returns the process-wide logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// With starts a child of the process-wide logger.
func With() zerolog.Context {
	l := Logger()
	return l.With()
}

// Component returns base tagged with a component field.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Component(base zerolog.Logger, name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}

// Debug starts a debug entry on the process-wide logger.
func Debug() *zerolog.Event {
	l := Logger()
	return l.Debug()
}

// Info starts an info entry on the process-wide logger.
func Info() *zerolog.Event {
	l := Logger()
	return l.Info()
}

// Warn starts a warning entry on the process-wide logger.
func Warn() *zerolog.Event {
	l := Logger()
	return l.Warn()
}

// Error starts an error entry on the process-wide logger.
func Error() *zerolog.Event {
	l := Logger()
	return l.Error()
}

// NewTestLogger returns a JSON logger writing every level to w.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
