// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/lastfm-eda/internal/logging"
)

// deleteChunkSize bounds the IN list length, well under SQLite's bind variable limit.
const deleteChunkSize = 500

// DeleteUserArtistsByArtist removes listening rows of the given artists.
func (db *DB) DeleteUserArtistsByArtist(ctx context.Context, artistIDs []int) (int64, error) {
	return db.deleteIn(ctx, TableUserArtists, "artistID", artistIDs)
}

// DeleteUserTaggedArtistsByTag removes tag assignments of the given tags.
func (db *DB) DeleteUserTaggedArtistsByTag(ctx context.Context, tagIDs []int) (int64, error) {
	return db.deleteIn(ctx, TableUserTaggedArtists, "tagID", tagIDs)
}

// DeleteUserArtistsByUser removes listening rows of the given users.
func (db *DB) DeleteUserArtistsByUser(ctx context.Context, userIDs []int) (int64, error) {
	return db.deleteIn(ctx, TableUserArtists, "userID", userIDs)
}

// deleteIn deletes rows whose column is in ids, in a single transaction.
func (db *DB) deleteIn(ctx context.Context, table, column string, ids []int) (deleted int64, err error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
			}
		}
	}()

	for start := 0; start < len(ids); start += deleteChunkSize {
		chunk := ids[start:min(start+deleteChunkSize, len(ids))]

		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(chunk)), ",")
		args := make([]interface{}, len(chunk))
		for i, id := range chunk {
			args[i] = id
		}

		// table and column are package constants, never user input
		query := fmt.Sprintf("DELETE FROM %s WHERE %s IN (%s)", table, column, placeholders) //nolint:gosec
		result, execErr := tx.ExecContext(ctx, query, args...)
		if execErr != nil {
			err = fmt.Errorf("failed to delete from %s: %w", table, execErr)
			return 0, err
		}
		n, rowsErr := result.RowsAffected()
		if rowsErr != nil {
			err = fmt.Errorf("failed to get rows affected for %s: %w", table, rowsErr)
			return 0, err
		}
		deleted += n
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit delete from %s: %w", table, err)
	}

	logging.Debug().
		Str("table", table).
		Str("column", column).
		Int("ids", len(ids)).
		Int64("deleted", deleted).
		Msg("Rows deleted")

	return deleted, nil
}
