// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline Metrics
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lastfm_eda_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300, 900},
		},
		[]string{"stage"},
	)

	StageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lastfm_eda_stage_failures_total",
			Help: "Total number of failed pipeline stages",
		},
		[]string{"stage"},
	)

	LastRunSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lastfm_eda_last_run_success",
			Help: "1 if the last pipeline run completed, 0 otherwise",
		},
	)

	LastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lastfm_eda_last_run_timestamp_seconds",
			Help: "Unix timestamp of the end of the last pipeline run",
		},
	)

	// Dataset Metrics
	RowsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lastfm_eda_rows_loaded_total",
			Help: "Total number of rows parsed from dataset files",
		},
		[]string{"dataset"},
	)

	// Database Metrics
	RowsInserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lastfm_eda_rows_inserted_total",
			Help: "Total number of rows inserted into the relational store",
		},
		[]string{"table"},
	)

	RowsIgnored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lastfm_eda_rows_ignored_total",
			Help: "Total number of rows skipped as duplicates of an existing primary key",
		},
		[]string{"table"},
	)

	RowsDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lastfm_eda_rows_deleted_total",
			Help: "Total number of rows deleted by outlier removal",
		},
		[]string{"table"},
	)

	// Analysis Metrics
	OutliersRemoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lastfm_eda_outliers_removed_total",
			Help: "Total number of entities flagged as z-score outliers",
		},
		[]string{"entity"}, // "artist", "tag", "user"
	)

	// Similarity Metrics
	SimilarityUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lastfm_eda_similarity_users",
			Help: "Number of users (rows) in the last interaction matrix",
		},
	)

	SimilarityItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lastfm_eda_similarity_items",
			Help: "Number of items (columns) in the last interaction matrix",
		},
	)

	SimilarityNonZero = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lastfm_eda_similarity_nonzero_cells",
			Help: "Number of non-zero cells in the last interaction matrix",
		},
	)

	SimilarityComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lastfm_eda_similarity_compute_duration_seconds",
			Help:    "Duration of the all-pairs cosine computation in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	NeighborListsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lastfm_eda_neighbor_lists_written_total",
			Help: "Total number of neighbor lists written",
		},
		[]string{"k"},
	)
)

// RecordStage records a pipeline stage duration and failure.
func RecordStage(stage string, duration time.Duration, err error) {
	StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	if err != nil {
		StageFailures.WithLabelValues(stage).Inc()
	}
}

// RecordRun records the end of a pipeline run.
func RecordRun(err error) {
	LastRunTimestamp.Set(float64(time.Now().Unix()))
	if err != nil {
		LastRunSuccess.Set(0)
		return
	}
	LastRunSuccess.Set(1)
}

// RecordRowsLoaded records rows parsed from a dataset file.
func RecordRowsLoaded(dataset string, rows int) {
	RowsLoaded.WithLabelValues(dataset).Add(float64(rows))
}

// RecordInsert records the outcome of a batched insert.
func RecordInsert(table string, inserted, ignored int) {
	RowsInserted.WithLabelValues(table).Add(float64(inserted))
	RowsIgnored.WithLabelValues(table).Add(float64(ignored))
}

// RecordDelete records rows deleted from a table.
func RecordDelete(table string, rows int64) {
	RowsDeleted.WithLabelValues(table).Add(float64(rows))
}

// RecordOutliers records entities flagged as outliers.
func RecordOutliers(entity string, count int) {
	OutliersRemoved.WithLabelValues(entity).Add(float64(count))
}

// RecordSimilarity records the shape of the interaction matrix and the compute time.
func RecordSimilarity(users, items, nonZero int, duration time.Duration) {
	SimilarityUsers.Set(float64(users))
	SimilarityItems.Set(float64(items))
	SimilarityNonZero.Set(float64(nonZero))
	SimilarityComputeDuration.Observe(duration.Seconds())
}

// RecordNeighborLists records neighbor lists written for k.
func RecordNeighborLists(k, lists int) {
	NeighborListsWritten.WithLabelValues(strconv.Itoa(k)).Add(float64(lists))
}

// WriteTextfile writes every registered metric to path in the Prometheus text
// format, for pickup by the node_exporter textfile collector.
func WriteTextfile(path string) error {
	return writeTextfile(path, prometheus.DefaultGatherer)
}

func writeTextfile(path string, g prometheus.Gatherer) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create metrics directory %s: %w", dir, err)
		}
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
