// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

/*
Package metrics provides Prometheus metrics for pipeline runs.

The pipeline is a batch job, so nothing is served over HTTP. At the end of a
run the default registry is written to a textfile (metrics.textfile in the
configuration) that the node_exporter textfile collector can pick up.

# Available Metrics

Pipeline Metrics:
  - lastfm_eda_stage_duration_seconds: Stage execution time (histogram)
    Labels: stage
  - lastfm_eda_stage_failures_total: Failed stages (counter)
    Labels: stage
  - lastfm_eda_last_run_success: 1 if the last run completed (gauge)
  - lastfm_eda_last_run_timestamp_seconds: End of the last run (gauge)

Data Metrics:
  - lastfm_eda_rows_loaded_total: Rows parsed per dataset file (counter)
  - lastfm_eda_rows_inserted_total: Rows inserted per table (counter)
  - lastfm_eda_rows_ignored_total: Duplicate rows skipped per table (counter)
  - lastfm_eda_rows_deleted_total: Rows deleted by outlier removal (counter)
  - lastfm_eda_outliers_removed_total: Outlier entities (counter)
    Labels: entity (artist, tag, user)

Similarity Metrics:
  - lastfm_eda_similarity_users, lastfm_eda_similarity_items,
    lastfm_eda_similarity_nonzero_cells: Interaction matrix shape (gauges)
  - lastfm_eda_similarity_compute_duration_seconds: Cosine computation time (histogram)
  - lastfm_eda_neighbor_lists_written_total: Neighbor lists per k (counter)

# Usage

	start := time.Now()
	err := runStage(ctx)
	metrics.RecordStage("similarity", time.Since(start), err)

	if err := metrics.WriteTextfile("/var/lib/node_exporter/lastfm_eda.prom"); err != nil {
	    logging.Warn().Err(err).Msg("Failed to write metrics")
	}

# Thread Safety

All collectors are safe for concurrent use.
*/
package metrics
