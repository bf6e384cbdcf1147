// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/lastfm-eda/config.yaml",
	"/etc/lastfm-eda/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// AllStages is the canonical stage order.
var AllStages = []string{
	"schema",
	"ingest",
	"explore",
	"outliers",
	"temporal",
	"similarity",
	"correlation",
}

// defaultConfig returns a Config struct with all default values.
func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Dir:               "data",
			Encoding:          "latin1",
			Artists:           "artists.dat",
			Tags:              "tags.dat",
			UserArtists:       "user_artists.dat",
			UserTaggedArtists: "user_taggedartists.dat",
			UserFriends:       "user_friends.dat",
		},
		Database: DatabaseConfig{
			Driver:    "duckdb",
			Path:      "lastfm.duckdb",
			MaxMemory: "2GB",
			Threads:   0,
			BatchSize: 10000,
			Reset:     false,
		},
		Output: OutputConfig{
			Dir: "output",
		},
		Similarity: SimilarityConfig{
			KValues:         []int{3, 10},
			Source:          "file",
			DuplicatePolicy: "sum",
			Workers:         0,
		},
		Outliers: OutliersConfig{
			ZThreshold: 3,
		},
		Temporal: TemporalConfig{
			TopN: 5,
		},
		Pipeline: PipelineConfig{
			Stages: append([]string(nil), AllStages...),
		},
		Metrics: MetricsConfig{
			Textfile: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Default returns the built-in configuration without reading a file or the environment.
func Default() *Config {
	return defaultConfig()
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources.
//
// Precedence: ENV > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// DB_PATH -> database.path, SIMILARITY_K_VALUES -> similarity.k_values
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"similarity.k_values",
	"pipeline.stages",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	"data_dir":      "dataset.dir",
	"data_encoding": "dataset.encoding",

	"db_driver":     "database.driver",
	"db_path":       "database.path",
	"db_max_memory": "database.max_memory",
	"db_threads":    "database.threads",
	"db_batch_size": "database.batch_size",
	"db_reset":      "database.reset",

	"output_dir": "output.dir",

	"similarity_k_values":         "similarity.k_values",
	"similarity_source":           "similarity.source",
	"similarity_duplicate_policy": "similarity.duplicate_policy",
	"similarity_workers":          "similarity.workers",

	"outlier_z_threshold": "outliers.z_threshold",
	"temporal_top_n":      "temporal.top_n",
	"pipeline_stages":     "pipeline.stages",
	"metrics_textfile":    "metrics.textfile",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
