// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// isolateConfigFiles points CONFIG_PATH at a missing file and runs the test in
// an empty directory so no stray config.yaml is picked up.
func isolateConfigFiles(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "absent.yaml"))
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Dataset.Dir != "data" {
		t.Errorf("Dataset.Dir = %q, want data", cfg.Dataset.Dir)
	}
	if cfg.Dataset.Encoding != "latin1" {
		t.Errorf("Dataset.Encoding = %q, want latin1", cfg.Dataset.Encoding)
	}
	if cfg.Dataset.UserArtists != "user_artists.dat" {
		t.Errorf("Dataset.UserArtists = %q, want user_artists.dat", cfg.Dataset.UserArtists)
	}
	if cfg.Database.Driver != "duckdb" {
		t.Errorf("Database.Driver = %q, want duckdb", cfg.Database.Driver)
	}
	if cfg.Database.BatchSize != 10000 {
		t.Errorf("Database.BatchSize = %d, want 10000", cfg.Database.BatchSize)
	}
	if !reflect.DeepEqual(cfg.Similarity.KValues, []int{3, 10}) {
		t.Errorf("Similarity.KValues = %v, want [3 10]", cfg.Similarity.KValues)
	}
	if cfg.Similarity.DuplicatePolicy != "sum" {
		t.Errorf("Similarity.DuplicatePolicy = %q, want sum", cfg.Similarity.DuplicatePolicy)
	}
	if cfg.Outliers.ZThreshold != 3 {
		t.Errorf("Outliers.ZThreshold = %v, want 3", cfg.Outliers.ZThreshold)
	}
	if cfg.Temporal.TopN != 5 {
		t.Errorf("Temporal.TopN = %d, want 5", cfg.Temporal.TopN)
	}
	if !reflect.DeepEqual(cfg.Pipeline.Stages, AllStages) {
		t.Errorf("Pipeline.Stages = %v, want %v", cfg.Pipeline.Stages, AllStages)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() = %v, want nil", err)
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	isolateConfigFiles(t)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, defaultConfig()) {
		t.Errorf("LoadWithKoanf() = %+v, want defaults %+v", cfg, defaultConfig())
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	isolateConfigFiles(t)

	t.Setenv("DATA_DIR", "/srv/lastfm")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/lastfm.sqlite")
	t.Setenv("DB_BATCH_SIZE", "500")
	t.Setenv("DB_RESET", "true")
	t.Setenv("SIMILARITY_K_VALUES", "1, 5,20")
	t.Setenv("SIMILARITY_SOURCE", "database")
	t.Setenv("PIPELINE_STAGES", "schema,similarity")
	t.Setenv("OUTLIER_Z_THRESHOLD", "2.5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Dataset.Dir != "/srv/lastfm" {
		t.Errorf("Dataset.Dir = %q, want /srv/lastfm", cfg.Dataset.Dir)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Database.Path != "/tmp/lastfm.sqlite" {
		t.Errorf("Database.Path = %q, want /tmp/lastfm.sqlite", cfg.Database.Path)
	}
	if cfg.Database.BatchSize != 500 {
		t.Errorf("Database.BatchSize = %d, want 500", cfg.Database.BatchSize)
	}
	if !cfg.Database.Reset {
		t.Error("Database.Reset = false, want true")
	}
	if !reflect.DeepEqual(cfg.Similarity.KValues, []int{1, 5, 20}) {
		t.Errorf("Similarity.KValues = %v, want [1 5 20]", cfg.Similarity.KValues)
	}
	if cfg.Similarity.Source != "database" {
		t.Errorf("Similarity.Source = %q, want database", cfg.Similarity.Source)
	}
	if !reflect.DeepEqual(cfg.Pipeline.Stages, []string{"schema", "similarity"}) {
		t.Errorf("Pipeline.Stages = %v, want [schema similarity]", cfg.Pipeline.Stages)
	}
	if cfg.Outliers.ZThreshold != 2.5 {
		t.Errorf("Outliers.ZThreshold = %v, want 2.5", cfg.Outliers.ZThreshold)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadWithKoanf_YAMLFile(t *testing.T) {
	isolateConfigFiles(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
dataset:
  dir: /data/hetrec
database:
  driver: sqlite
  path: eda.sqlite
similarity:
  k_values: [2, 4]
  workers: 2
temporal:
  top_n: 3
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	// Env beats file.
	t.Setenv("TEMPORAL_TOP_N", "7")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Dataset.Dir != "/data/hetrec" {
		t.Errorf("Dataset.Dir = %q, want /data/hetrec", cfg.Dataset.Dir)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if !reflect.DeepEqual(cfg.Similarity.KValues, []int{2, 4}) {
		t.Errorf("Similarity.KValues = %v, want [2 4]", cfg.Similarity.KValues)
	}
	if cfg.Similarity.Workers != 2 {
		t.Errorf("Similarity.Workers = %d, want 2", cfg.Similarity.Workers)
	}
	if cfg.Temporal.TopN != 7 {
		t.Errorf("Temporal.TopN = %d, want 7 (env override)", cfg.Temporal.TopN)
	}
	// Untouched sections keep defaults.
	if cfg.Dataset.Encoding != "latin1" {
		t.Errorf("Dataset.Encoding = %q, want latin1", cfg.Dataset.Encoding)
	}
}

func TestLoadWithKoanf_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown driver",
			env:     map[string]string{"DB_DRIVER": "mysql"},
			wantErr: "Database.Driver must be one of",
		},
		{
			name:    "zero k",
			env:     map[string]string{"SIMILARITY_K_VALUES": "3,0"},
			wantErr: "Similarity.KValues[1]",
		},
		{
			name:    "duplicate k",
			env:     map[string]string{"SIMILARITY_K_VALUES": "3,3"},
			wantErr: "duplicate value 3",
		},
		{
			name:    "unknown stage",
			env:     map[string]string{"PIPELINE_STAGES": "schema,plot"},
			wantErr: "Pipeline.Stages[1]",
		},
		{
			name:    "duplicate stage",
			env:     map[string]string{"PIPELINE_STAGES": "ingest,ingest"},
			wantErr: `duplicate stage "ingest"`,
		},
		{
			name:    "bad duplicate policy",
			env:     map[string]string{"SIMILARITY_DUPLICATE_POLICY": "mean"},
			wantErr: "Similarity.DuplicatePolicy",
		},
		{
			name:    "non-positive threshold",
			env:     map[string]string{"OUTLIER_Z_THRESHOLD": "0"},
			wantErr: "Outliers.ZThreshold must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigFiles(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("LoadWithKoanf() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadWithKoanf() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"DB_PATH", "database.path"},
		{"db_path", "database.path"},
		{"SIMILARITY_K_VALUES", "similarity.k_values"},
		{"LOG_FORMAT", "logging.format"},
		{"HOME", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := envTransformFunc(tt.key); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestStageEnabled(t *testing.T) {
	cfg := defaultConfig()
	cfg.Pipeline.Stages = []string{"schema", "similarity"}

	if !cfg.StageEnabled("similarity") {
		t.Error("StageEnabled(similarity) = false, want true")
	}
	if cfg.StageEnabled("outliers") {
		t.Error("StageEnabled(outliers) = true, want false")
	}
}

func TestDatasetPath(t *testing.T) {
	d := DatasetConfig{Dir: "data"}
	if got, want := d.Path("tags.dat"), filepath.Join("data", "tags.dat"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}
