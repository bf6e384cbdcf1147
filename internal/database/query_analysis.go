// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/lastfm-eda/internal/models"
)

// Entities accepted by TopByMonth, mapped to their user_taggedartists column.
var monthlyEntityColumns = map[string]string{
	"tag":    "tagID",
	"artist": "artistID",
}

// TopByMonth returns, for every year-month in user_taggedartists, the n
// entities with the most tag assignments. Rows are ordered by month, then
// count descending, then entity id ascending.
func (db *DB) TopByMonth(ctx context.Context, entity string, n int) ([]models.MonthlyTop, error) {
	column, ok := monthlyEntityColumns[entity]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	if n < 1 {
		return nil, fmt.Errorf("top n must be positive, got %d", n)
	}

	// printf and ROW_NUMBER behave the same in DuckDB and SQLite
	query := fmt.Sprintf(`
		WITH counts AS (
			SELECT printf('%%04d-%%02d', year, month) AS ym,
			       %s AS entity_id,
			       COUNT(*) AS cnt
			FROM user_taggedartists
			GROUP BY 1, 2
		),
		ranked AS (
			SELECT ym, entity_id, cnt,
			       ROW_NUMBER() OVER (PARTITION BY ym ORDER BY cnt DESC, entity_id ASC) AS rn
			FROM counts
		)
		SELECT ym, entity_id, cnt
		FROM ranked
		WHERE rn <= ?
		ORDER BY ym, rn`, column)

	rows, err := db.conn.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query top %ss by month: %w", entity, err)
	}
	defer closeQuietly(rows)

	var out []models.MonthlyTop
	for rows.Next() {
		var (
			top   models.MonthlyTop
			count int64
		)
		if err := rows.Scan(&top.YearMonth, &top.EntityID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan monthly top row: %w", err)
		}
		top.Count = int(count)
		out = append(out, top)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly top rows: %w", err)
	}
	return out, nil
}

// Interactions reads user_artists as similarity input, ordered by user then artist.
func (db *DB) Interactions(ctx context.Context) ([]models.Interaction, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT userID, artistID, CAST(weight AS DOUBLE)
		FROM user_artists
		ORDER BY userID, artistID`)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer closeQuietly(rows)

	var out []models.Interaction
	for rows.Next() {
		var in models.Interaction
		if err := rows.Scan(&in.UserID, &in.ItemID, &in.Weight); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interactions: %w", err)
	}
	return out, nil
}

// Neighbors reads back the stored neighbor lists for k, ordered by user and rank.
func (db *DB) Neighbors(ctx context.Context, k int) ([]models.NeighborList, error) {
	query := fmt.Sprintf(`
		SELECT n.userID, n.neighborID, COALESCE(s.similarity, 0)
		FROM %s n
		LEFT JOIN user_pairs_similarity s ON s.user1 = n.userID AND s.user2 = n.neighborID
		ORDER BY n.userID, n.rank_order`, NeighborTable(k))

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query neighbors for k=%d: %w", k, err)
	}
	defer closeQuietly(rows)

	var out []models.NeighborList
	for rows.Next() {
		var (
			userID int
			nb     models.Neighbor
		)
		if err := rows.Scan(&userID, &nb.UserID, &nb.Similarity); err != nil {
			return nil, fmt.Errorf("failed to scan neighbor: %w", err)
		}
		if len(out) == 0 || out[len(out)-1].UserID != userID {
			out = append(out, models.NeighborList{UserID: userID})
		}
		last := &out[len(out)-1]
		last.Neighbors = append(last.Neighbors, nb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating neighbors: %w", err)
	}
	return out, nil
}

// CountRows returns the row count of a table.
func (db *DB) CountRows(ctx context.Context, table string) (int64, error) {
	if !isIdentifier(table) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}

	var count int64
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}

// isIdentifier reports whether s is a plain lowercase SQL identifier.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
