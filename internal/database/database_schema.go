// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

/*
database_schema.go - Database Schema Management

Tables:
  - artists, tags, user_artists, user_taggedartists, user_friends: raw dataset rows
  - user_pairs_similarity: cosine similarity for every ordered pair of distinct users
  - neighbors_k{k}_users: ranked nearest neighbors, one table per configured k

Foreign keys are not declared. The dataset tags artists that are missing from
artists.dat, and ON CONFLICT DO NOTHING only absorbs unique violations, so a
foreign key would abort ingestion.

All DDL is portable between DuckDB and SQLite.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"strings"
)

// Table names.
const (
	TableArtists             = "artists"
	TableTags                = "tags"
	TableUserArtists         = "user_artists"
	TableUserTaggedArtists   = "user_taggedartists"
	TableUserFriends         = "user_friends"
	TableUserPairsSimilarity = "user_pairs_similarity"

	neighborTablePrefix = "neighbors_k"
	neighborTableSuffix = "_users"
)

// NeighborTable returns the neighbor table name for k.
func NeighborTable(k int) string {
	return fmt.Sprintf("%s%d%s", neighborTablePrefix, k, neighborTableSuffix)
}

func isNeighborTable(name string) bool {
	if !strings.HasPrefix(name, neighborTablePrefix) || !strings.HasSuffix(name, neighborTableSuffix) {
		return false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(name, neighborTablePrefix), neighborTableSuffix)
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// getTableCreationQueries returns the DDL for the dataset and similarity tables.
func getTableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS artists (
			id INTEGER PRIMARY KEY,
			name VARCHAR,
			url VARCHAR,
			pictureURL VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS tags (
			tagID INTEGER PRIMARY KEY,
			tagValue VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS user_artists (
			userID INTEGER NOT NULL,
			artistID INTEGER NOT NULL,
			weight INTEGER NOT NULL,
			PRIMARY KEY (userID, artistID)
		)`,
		`CREATE TABLE IF NOT EXISTS user_taggedartists (
			userID INTEGER NOT NULL,
			artistID INTEGER NOT NULL,
			tagID INTEGER NOT NULL,
			day INTEGER NOT NULL,
			month INTEGER NOT NULL,
			year INTEGER NOT NULL,
			PRIMARY KEY (userID, artistID, tagID, day, month, year)
		)`,
		`CREATE TABLE IF NOT EXISTS user_friends (
			userID INTEGER NOT NULL,
			friendID INTEGER NOT NULL,
			PRIMARY KEY (userID, friendID)
		)`,
		similarityTableQuery,
	}
}

const similarityTableQuery = `CREATE TABLE IF NOT EXISTS user_pairs_similarity (
	user1 INTEGER NOT NULL,
	user2 INTEGER NOT NULL,
	similarity DOUBLE NOT NULL,
	PRIMARY KEY (user1, user2)
)`

func neighborTableQuery(k int) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		userID INTEGER NOT NULL,
		neighborID INTEGER NOT NULL,
		rank_order INTEGER NOT NULL,
		PRIMARY KEY (userID, neighborID)
	)`, NeighborTable(k))
}

// CreateSchema creates the dataset and similarity tables. With reset, every
// pipeline table (including neighbor tables of any k) is dropped first.
func (db *DB) CreateSchema(ctx context.Context, reset bool) error {
	if reset {
		if err := db.dropPipelineTables(ctx); err != nil {
			return err
		}
	}

	for _, query := range getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// EnsureSimilarityTables creates the similarity table and one neighbor table per k.
func (db *DB) EnsureSimilarityTables(ctx context.Context, ks []int) error {
	queries := []string{similarityTableQuery}
	for _, k := range ks {
		if k < 1 {
			return fmt.Errorf("invalid neighbor count %d", k)
		}
		queries = append(queries, neighborTableQuery(k))
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create similarity table: %w", err)
		}
	}
	return nil
}

// Tables lists the user tables in the main schema, sorted by name.
func (db *DB) Tables(ctx context.Context) ([]string, error) {
	query := `SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'main' ORDER BY table_name`
	if db.driver == DriverSQLite {
		query = `SELECT name FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
	}

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer closeQuietly(rows)

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// dropPipelineTables drops every table this package manages.
func (db *DB) dropPipelineTables(ctx context.Context) error {
	tables, err := db.Tables(ctx)
	if err != nil {
		return err
	}

	managed := map[string]bool{
		TableArtists:             true,
		TableTags:                true,
		TableUserArtists:         true,
		TableUserTaggedArtists:   true,
		TableUserFriends:         true,
		TableUserPairsSimilarity: true,
	}

	for _, table := range tables {
		if !managed[table] && !isNeighborTable(table) {
			continue
		}
		if _, err := db.conn.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
