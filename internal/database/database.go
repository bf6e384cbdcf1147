// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "modernc.org/sqlite"

	"github.com/tomtom215/lastfm-eda/internal/config"
	"github.com/tomtom215/lastfm-eda/internal/logging"
)

// Supported driver names. They match the database/sql driver registrations.
const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite"
)

const memoryPath = ":memory:"

// DB wraps the relational store connection and provides the pipeline's data access methods.
type DB struct {
	conn      *sql.DB
	cfg       *config.DatabaseConfig
	driver    string
	batchSize int
}

// New opens the configured database. The schema is not created; call CreateSchema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 10000
	}

	if cfg.Path != memoryPath {
		// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	var (
		conn *sql.DB
		err  error
	)
	switch cfg.Driver {
	case DriverDuckDB, "":
		conn, err = openDuckDB(cfg)
	case DriverSQLite:
		conn, err = openSQLite(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	driver := cfg.Driver
	if driver == "" {
		driver = DriverDuckDB
	}

	db := &DB{
		conn:      conn,
		cfg:       cfg,
		driver:    driver,
		batchSize: batchSize,
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	logging.Debug().
		Str("driver", driver).
		Str("path", cfg.Path).
		Int("batch_size", batchSize).
		Msg("Database opened")

	return db, nil
}

func openDuckDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	// Disable auto-install/auto-load so a restricted network never stalls the run
	connStr := cfg.Path + "?access_mode=read_write&autoinstall_known_extensions=false&autoload_known_extensions=false"
	if cfg.MaxMemory != "" {
		connStr += "&max_memory=" + cfg.MaxMemory
	}
	if cfg.Threads > 0 {
		connStr += fmt.Sprintf("&threads=%d", cfg.Threads)
	}

	conn, err := sql.Open(DriverDuckDB, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return conn, nil
}

func openSQLite(cfg *config.DatabaseConfig) (*sql.DB, error) {
	conn, err := sql.Open(DriverSQLite, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection: every :memory: connection is a separate database,
	// and a single writer avoids SQLITE_BUSY on files.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			closeQuietly(conn)
			return nil, fmt.Errorf("pragma failed (%s): %w", pragma, err)
		}
	}
	return conn, nil
}

// Driver returns the active driver name.
func (db *DB) Driver() string {
	return db.driver
}

// Close checkpoints a DuckDB file so the WAL is not replayed on next open, then closes the connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}

	if db.driver == DriverDuckDB && db.cfg.Path != memoryPath {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
			logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
		}
		cancel()
	}

	return db.conn.Close()
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}
