// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

// Package database provides the relational store for the LastFM EDA pipeline.
//
// # Overview
//
// The package persists the raw dataset tables, the user-user similarity
// relation and the per-k neighbor tables, and serves the few queries the
// analysis stages need.
//
// Files:
//   - database.go: Connection lifecycle for both drivers
//   - database_schema.go: Table creation and reset
//   - crud_insert.go: Batched idempotent inserts for the dataset tables
//   - crud_similarity.go: Similarity pair and neighbor inserts
//   - crud_delete.go: Outlier deletes
//   - query_analysis.go: Monthly top-N, interaction and count queries
//
// # Database Technology
//
// Two drivers share one SQL dialect subset (? placeholders, ON CONFLICT DO NOTHING,
// window functions, printf):
//   - duckdb (default): CGO driver github.com/duckdb/duckdb-go/v2
//   - sqlite: pure-Go driver modernc.org/sqlite, single connection
//
// # Insert Semantics
//
// Every insert is INSERT ... ON CONFLICT DO NOTHING inside a transaction of
// at most batch_size rows. Rows skipped because of a primary key collision are
// counted in InsertStats.Ignored and logged at debug level; they are never an
// error. A failed batch is rolled back, earlier batches stay committed, and a
// re-run of the same insert converges to the same table contents.
//
// # Usage Example
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.CreateSchema(ctx, cfg.Database.Reset); err != nil {
//	    return err
//	}
//	stats, err := db.InsertUserArtists(ctx, rows)
package database
