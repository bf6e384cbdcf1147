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

// PairMatrix is a square user-by-user score matrix.
type PairMatrix interface {
	Len() int
	UserID(i int) int
	At(i, j int) float64
}

// InsertSimilarityPairs stores S[i][j] for every ordered pair of distinct users.
// Both directions are written; the diagonal is not.
func (db *DB) InsertSimilarityPairs(ctx context.Context, m PairMatrix) (InsertStats, error) {
	n := m.Len()
	if n < 2 {
		return InsertStats{}, nil
	}

	// Row idx enumerates the n*(n-1) off-diagonal cells in row-major order.
	query := `INSERT INTO user_pairs_similarity (user1, user2, similarity) VALUES (?, ?, ?) ON CONFLICT DO NOTHING`
	return db.insertRows(ctx, TableUserPairsSimilarity, query, n*(n-1), func(idx int) []interface{} {
		i := idx / (n - 1)
		j := idx % (n - 1)
		if j >= i {
			j++
		}
		return []interface{}{m.UserID(i), m.UserID(j), m.At(i, j)}
	})
}

// InsertNeighbors stores neighbor lists for k with 1-based rank_order.
// The table must exist; see EnsureSimilarityTables.
func (db *DB) InsertNeighbors(ctx context.Context, k int, lists []models.NeighborList) (InsertStats, error) {
	if k < 1 {
		return InsertStats{}, fmt.Errorf("invalid neighbor count %d", k)
	}

	type neighborRow struct {
		userID, neighborID, rank int
	}
	var rows []neighborRow
	for _, list := range lists {
		for r, nb := range list.Neighbors {
			rows = append(rows, neighborRow{userID: list.UserID, neighborID: nb.UserID, rank: r + 1})
		}
	}

	table := NeighborTable(k)
	query := fmt.Sprintf(`INSERT INTO %s (userID, neighborID, rank_order) VALUES (?, ?, ?) ON CONFLICT DO NOTHING`, table)
	return db.insertRows(ctx, table, query, len(rows), func(i int) []interface{} {
		return []interface{}{rows[i].userID, rows[i].neighborID, rows[i].rank}
	})
}
