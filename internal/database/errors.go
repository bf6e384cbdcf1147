// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package database

import (
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/tomtom215/lastfm-eda/internal/logging"
)

var (
	// ErrUnknownDriver is returned by New for a driver other than duckdb or sqlite.
	ErrUnknownDriver = errors.New("unknown database driver")

	// ErrUnknownEntity is returned by TopByMonth for an entity other than tag or artist.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrInvalidTableName is returned when a table name is not a plain identifier.
	ErrInvalidTableName = errors.New("invalid table name")
)

// closeWithLog closes a resource and logs any error
// Use this for cleanup operations where errors should be acknowledged but not fail the operation
func closeWithLog(closer io.Closer, logger *zerolog.Logger, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		if logger != nil {
			logger.Error().Str("type", resourceType).Err(err).Msg("Failed to close resource")
		} else {
			logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
		}
	}
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
