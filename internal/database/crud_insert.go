// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomtom215/lastfm-eda/internal/logging"
	"github.com/tomtom215/lastfm-eda/internal/models"
)

// InsertStats counts the outcome of a batched insert.
// Ignored rows collided with an existing primary key and were skipped.
type InsertStats struct {
	Inserted int
	Ignored  int
}

// Total returns the number of rows submitted.
func (s InsertStats) Total() int {
	return s.Inserted + s.Ignored
}

func (s *InsertStats) add(other InsertStats) {
	s.Inserted += other.Inserted
	s.Ignored += other.Ignored
}

// rowArgs returns the bind arguments for row i.
type rowArgs func(i int) []interface{}

// insertRows inserts n rows with query, committing every db.batchSize rows.
//
// A failing batch is rolled back and aborts the insert; batches committed
// before it stay in place. Because every query uses ON CONFLICT DO NOTHING,
// re-running the insert from the start is safe.
func (db *DB) insertRows(ctx context.Context, table, query string, n int, args rowArgs) (InsertStats, error) {
	var total InsertStats
	for start := 0; start < n; start += db.batchSize {
		end := min(start+db.batchSize, n)

		stats, err := db.insertBatch(ctx, query, start, end, args)
		total.add(stats)
		if err != nil {
			return total, fmt.Errorf("failed to insert into %s (rows %d-%d): %w", table, start, end-1, err)
		}
	}

	if total.Ignored > 0 {
		logging.Debug().
			Str("table", table).
			Int("duplicates", total.Ignored).
			Msg("Duplicate rows ignored")
	}
	logging.Debug().
		Str("table", table).
		Int("inserted", total.Inserted).
		Int("duplicates", total.Ignored).
		Int("total", total.Total()).
		Msg("Batched insert committed")

	return total, nil
}

// insertBatch inserts rows [start, end) in one transaction with a prepared statement.
func (db *DB) insertBatch(ctx context.Context, query string, start, end int, args rowArgs) (stats InsertStats, err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return InsertStats{}, fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Ensure transaction is finalized
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logging.Error().
					Err(rbErr).
					AnErr("original_error", err).
					Msg("Transaction rollback failed")
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return InsertStats{}, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer closeWithLog(stmt, nil, "prepared statement")

	for i := start; i < end; i++ {
		result, execErr := stmt.ExecContext(ctx, args(i)...)
		if execErr != nil {
			err = fmt.Errorf("failed to insert row %d: %w", i, execErr)
			return InsertStats{}, err
		}

		// With ON CONFLICT DO NOTHING, no error is returned for duplicates
		rowsAffected, rowsErr := result.RowsAffected()
		if rowsErr != nil {
			err = fmt.Errorf("failed to get rows affected for row %d: %w", i, rowsErr)
			return InsertStats{}, err
		}

		if rowsAffected > 0 {
			stats.Inserted++
		} else {
			stats.Ignored++
		}
	}

	if err = tx.Commit(); err != nil {
		return InsertStats{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return stats, nil
}

// nullIfEmpty maps "" to SQL NULL.
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// InsertArtists inserts artists. Empty url and pictureURL are stored as NULL.
func (db *DB) InsertArtists(ctx context.Context, artists []models.Artist) (InsertStats, error) {
	query := `INSERT INTO artists (id, name, url, pictureURL) VALUES (?, ?, ?, ?) ON CONFLICT DO NOTHING`
	return db.insertRows(ctx, TableArtists, query, len(artists), func(i int) []interface{} {
		a := artists[i]
		return []interface{}{a.ID, a.Name, nullIfEmpty(a.URL), nullIfEmpty(a.PictureURL)}
	})
}

// InsertTags inserts tags.
func (db *DB) InsertTags(ctx context.Context, tags []models.Tag) (InsertStats, error) {
	query := `INSERT INTO tags (tagID, tagValue) VALUES (?, ?) ON CONFLICT DO NOTHING`
	return db.insertRows(ctx, TableTags, query, len(tags), func(i int) []interface{} {
		return []interface{}{tags[i].TagID, tags[i].TagValue}
	})
}

// InsertUserArtists inserts listening counts.
func (db *DB) InsertUserArtists(ctx context.Context, rows []models.UserArtist) (InsertStats, error) {
	query := `INSERT INTO user_artists (userID, artistID, weight) VALUES (?, ?, ?) ON CONFLICT DO NOTHING`
	return db.insertRows(ctx, TableUserArtists, query, len(rows), func(i int) []interface{} {
		r := rows[i]
		return []interface{}{r.UserID, r.ArtistID, r.Weight}
	})
}

// InsertUserTaggedArtists inserts tag assignments.
func (db *DB) InsertUserTaggedArtists(ctx context.Context, rows []models.UserTaggedArtist) (InsertStats, error) {
	query := `INSERT INTO user_taggedartists (userID, artistID, tagID, day, month, year)
		VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT DO NOTHING`
	return db.insertRows(ctx, TableUserTaggedArtists, query, len(rows), func(i int) []interface{} {
		r := rows[i]
		return []interface{}{r.UserID, r.ArtistID, r.TagID, r.Day, r.Month, r.Year}
	})
}

// InsertUserFriends inserts friend relations.
func (db *DB) InsertUserFriends(ctx context.Context, rows []models.UserFriend) (InsertStats, error) {
	query := `INSERT INTO user_friends (userID, friendID) VALUES (?, ?) ON CONFLICT DO NOTHING`
	return db.insertRows(ctx, TableUserFriends, query, len(rows), func(i int) []interface{} {
		return []interface{}{rows[i].UserID, rows[i].FriendID}
	})
}
