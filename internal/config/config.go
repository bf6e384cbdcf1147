// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package config

import (
	"path/filepath"
)

// Config holds all pipeline configuration.
type Config struct {
	Dataset    DatasetConfig    `koanf:"dataset"`
	Database   DatabaseConfig   `koanf:"database"`
	Output     OutputConfig     `koanf:"output"`
	Similarity SimilarityConfig `koanf:"similarity"`
	Outliers   OutliersConfig   `koanf:"outliers"`
	Temporal   TemporalConfig   `koanf:"temporal"`
	Pipeline   PipelineConfig   `koanf:"pipeline"`
	Metrics    MetricsConfig    `koanf:"metrics"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// DatasetConfig locates the tab-separated LastFM files.
type DatasetConfig struct {
	Dir string `koanf:"dir" validate:"required"`

	// Encoding of the .dat files. The published dataset is latin1.
	Encoding string `koanf:"encoding" validate:"oneof=latin1 utf8"`

	Artists           string `koanf:"artists" validate:"required"`
	Tags              string `koanf:"tags" validate:"required"`
	UserArtists       string `koanf:"user_artists" validate:"required"`
	UserTaggedArtists string `koanf:"user_taggedartists" validate:"required"`
	UserFriends       string `koanf:"user_friends" validate:"required"`
}

// Path joins a dataset file name onto Dir.
func (d *DatasetConfig) Path(name string) string {
	return filepath.Join(d.Dir, name)
}

// DatabaseConfig holds relational store settings.
type DatabaseConfig struct {
	Driver    string `koanf:"driver" validate:"oneof=duckdb sqlite"`
	Path      string `koanf:"path" validate:"required"`
	MaxMemory string `koanf:"max_memory"` // DuckDB only
	Threads   int    `koanf:"threads" validate:"gte=0"`

	// BatchSize is the number of rows committed per insert transaction.
	BatchSize int `koanf:"batch_size" validate:"gte=1"`

	// Reset drops every pipeline table before creating the schema.
	Reset bool `koanf:"reset"`
}

// OutputConfig holds the flat-file output location.
type OutputConfig struct {
	Dir string `koanf:"dir" validate:"required"`
}

// SimilarityConfig controls the user-user similarity stage.
type SimilarityConfig struct {
	// KValues lists the neighbor counts to extract; each gets its own file and table.
	KValues []int `koanf:"k_values" validate:"required,min=1,dive,gte=1"`

	// Source selects where interactions come from: the user_artists file or table.
	Source string `koanf:"source" validate:"oneof=file database"`

	// DuplicatePolicy handles repeated (user, artist) pairs: sum or reject.
	DuplicatePolicy string `koanf:"duplicate_policy" validate:"oneof=sum reject"`

	// Workers is the number of goroutines computing similarity rows (0 = NumCPU).
	Workers int `koanf:"workers" validate:"gte=0"`
}

// OutliersConfig controls z-score outlier removal.
type OutliersConfig struct {
	ZThreshold float64 `koanf:"z_threshold" validate:"gt=0"`
}

// TemporalConfig controls monthly aggregation.
type TemporalConfig struct {
	TopN int `koanf:"top_n" validate:"gte=1"`
}

// PipelineConfig selects which stages run.
type PipelineConfig struct {
	// Stages is the set of stages to run. They always execute in canonical order.
	Stages []string `koanf:"stages" validate:"required,min=1,dive,oneof=schema ingest explore outliers temporal similarity correlation"`
}

// MetricsConfig holds Prometheus textfile export settings.
type MetricsConfig struct {
	// Textfile is written at the end of a run. Empty disables the export.
	Textfile string `koanf:"textfile"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`

	// Format is the output format: json or console.
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load loads configuration from defaults, an optional YAML file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
