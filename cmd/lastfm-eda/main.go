// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

// Package main is the entry point for the LastFM EDA batch pipeline.
//
// The pipeline loads the HetRec 2011 LastFM dataset, stores it in an embedded
// relational database, runs the exploratory analyses and computes user-user
// cosine similarity with k-nearest-neighbor lists.
//
// # Startup Order
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Logging: zerolog with the configured level and format
//  3. Database: DuckDB (default) or SQLite
//  4. Pipeline: the configured stages in canonical order
//  5. Metrics: Prometheus textfile, if metrics.textfile is set
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the run. The current stage stops at its next
// context check and the process exits non-zero. Re-running is safe: inserts
// skip rows that already exist.
//
// # Example Usage
//
//	export DATA_DIR=./hetrec2011-lastfm-2k
//	export OUTPUT_DIR=./output
//	export SIMILARITY_K_VALUES=3,10
//	./lastfm-eda
//
// Recompute similarity only, from the cleaned database rows:
//
//	PIPELINE_STAGES=similarity SIMILARITY_SOURCE=database ./lastfm-eda
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/lastfm-eda/internal/config"
	"github.com/tomtom215/lastfm-eda/internal/database"
	"github.com/tomtom215/lastfm-eda/internal/dataset"
	"github.com/tomtom215/lastfm-eda/internal/logging"
	"github.com/tomtom215/lastfm-eda/internal/metrics"
	"github.com/tomtom215/lastfm-eda/internal/pipeline"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup executes before exit.
func run() int {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Error().Err(err).Msg("Failed to load configuration")
		return 1
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	runID := logging.NewRunID()
	logger := logging.With().Str("run_id", runID).Logger()

	logger.Info().
		Str("data_dir", cfg.Dataset.Dir).
		Str("db_driver", cfg.Database.Driver).
		Str("db_path", cfg.Database.Path).
		Str("output_dir", cfg.Output.Dir).
		Msg("Configuration loaded")

	loader, err := dataset.NewLoader(&cfg.Dataset)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create dataset loader")
		return 1
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize database")
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing database")
		}
	}()
	logger.Info().Str("driver", db.Driver()).Msg("Database initialized successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithRunID(ctx, runID)

	runner := pipeline.NewRunner(cfg, loader, db, logging.Logger())
	_, runErr := runner.Run(ctx)

	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Warn().Err(err).Msg("Failed to write metrics textfile")
		} else {
			logger.Info().Str("file", cfg.Metrics.Textfile).Msg("Metrics written")
		}
	}

	if runErr != nil {
		logger.Error().Err(runErr).Msg("Pipeline failed")
		return 1
	}
	return 0
}
