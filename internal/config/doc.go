// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

/*
Package config provides centralized configuration management for the
LastFM EDA pipeline.

# Configuration Sources

Configuration is layered with Koanf v2. Later sources override earlier ones:

 1. Built-in defaults matching the hetrec2011-lastfm-2k layout
 2. An optional YAML file (CONFIG_PATH, ./config.yaml, /etc/lastfm-eda/config.yaml)
 3. Environment variables

# Environment Variables

Dataset (DatasetConfig):
  - DATA_DIR: Directory holding the .dat files (default: data)
  - DATA_ENCODING: latin1 or utf8 (default: latin1)

Database (DatabaseConfig):
  - DB_DRIVER: duckdb or sqlite (default: duckdb)
  - DB_PATH: Database file, or :memory: (default: lastfm.duckdb)
  - DB_MAX_MEMORY: DuckDB memory limit (default: 2GB)
  - DB_THREADS: DuckDB thread count, 0 keeps the engine default
  - DB_BATCH_SIZE: Rows per insert transaction (default: 10000)
  - DB_RESET: Drop pipeline tables before creating the schema (default: false)

Output (OutputConfig):
  - OUTPUT_DIR: Directory for flat-file results (default: output)

Similarity (SimilarityConfig):
  - SIMILARITY_K_VALUES: Comma-separated neighbor counts (default: 3,10)
  - SIMILARITY_SOURCE: file or database (default: file)
  - SIMILARITY_DUPLICATE_POLICY: sum or reject (default: sum)
  - SIMILARITY_WORKERS: Goroutines for the cosine pass, 0 = NumCPU

Analysis:
  - OUTLIER_Z_THRESHOLD: Rows with z-score above this are removed (default: 3)
  - TEMPORAL_TOP_N: Entities kept per month (default: 5)

Pipeline:
  - PIPELINE_STAGES: Comma-separated subset of
    schema,ingest,explore,outliers,temporal,similarity,correlation
  - METRICS_TEXTFILE: Prometheus textfile written after the run

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

# Usage Example

	cfg, err := config.Load()
	if err != nil {
	    logging.Error().Err(err).Msg("Failed to load configuration")
	    return 1
	}
	db, err := database.New(&cfg.Database)

# Validation

Struct tags are checked with go-playground/validator, then cross-field rules
run: k values and stage names must be unique.

# Thread Safety

The Config struct is not modified after Load() returns and may be shared
between goroutines without synchronization.
*/
package config
