// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

/*
Package pipeline runs the LastFM analysis stages as one batch job.

Stages always execute in this order, skipping those not listed in
pipeline.stages:

 1. schema: create tables (dropping them first when database.reset is set)
 2. ingest: load the five .dat files and insert them idempotently
 3. explore: descriptive statistics (q1_summary.json)
 4. outliers: z-score filtering with deletes (q2_clean_*.csv)
 5. temporal: monthly activity and top entities (q3_*.csv)
 6. similarity: user-user cosine similarity and neighbor lists
 7. correlation: friend count correlations (q5_correlations.json)

Each stage is timed and recorded in the metrics package. The first failing
stage stops the run; because every insert ignores existing keys, a failed run
can simply be started again.

Every log line carries the run_id of the invocation.
*/
package pipeline
