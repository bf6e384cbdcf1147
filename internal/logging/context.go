// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	// runIDKey is the context key for the pipeline run ID.
	runIDKey contextKey = "run_id"

	// loggerKey is the context key for storing a logger instance.
	loggerKey contextKey = "logger"
)

// NewRunID creates a unique identifier for one pipeline invocation.
func NewRunID() string {
	return uuid.New().String()
}

// ContextWithRunID returns a new context carrying the given run ID.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext retrieves the run ID from context.
// Returns empty string if not present.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithLogger stores a logger in the context.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext retrieves a logger from context.
// Returns the global logger if no logger is stored in context.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return Logger()
}

// Ctx returns a logger with the run ID from ctx attached.
//
//	logging.Ctx(ctx).Info().Msg("Stage complete")
//	// {"level":"info","run_id":"…","message":"Stage complete"}
func Ctx(ctx context.Context) *zerolog.Logger {
	logger := LoggerFromContext(ctx)
	if runID := RunIDFromContext(ctx); runID != "" {
		logger = logger.With().Str("run_id", runID).Logger()
	}
	return &logger
}
