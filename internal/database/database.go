// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/playadb/internal/cache"
	"github.com/tomtom215/playadb/internal/config"
	"github.com/tomtom215/playadb/internal/logging"
)

// DB wraps the DuckDB handle together with the in-process spatial and text
// indexes derived from the committed directory rows.
//
// Writers are serialized by writeMu. indexMu guards the index generation:
// readers hold it shared across index lookups and the row fetches that
// follow, and ReplaceTx holds it exclusively across commit and index swap.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig

	writeMu sync.Mutex

	indexMu    sync.RWMutex
	grid       *cache.SpatialHashGrid
	text       *cache.Trie
	generation uint64
}

// New opens (or creates) the DuckDB database described by cfg, creates the
// schema and builds the in-process indexes from whatever rows are already
// committed.
func New(cfg *config.DatabaseConfig, idx *config.IndexConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	if path != ":memory:" {
		dbDir := filepath.Dir(path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, &StorageError{Op: "open", Err: fmt.Errorf("failed to create database directory %s: %w", dbDir, err)}
			}
		}
	}

	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "512MB"
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
		path, numThreads, maxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: fmt.Errorf("failed to open database: %w", err)}
	}

	cellSize := 0.0
	if idx != nil {
		cellSize = idx.CellSizeM
	}

	db := &DB{
		conn: conn,
		cfg:  cfg,
		grid: cache.NewSpatialHashGrid(cellSize),
		text: cache.NewTrie(),
	}

	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, &StorageError{Op: "initialize", Err: err}
	}

	return db, nil
}

// Conn returns the underlying connection pool.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// maxOpenConns returns the pool size for a host with cpus CPUs: at least two
// reader connections plus one that an open write transaction may hold.
func maxOpenConns(cpus int) int {
	return max(cpus, 2) + 1
}

// configureConnectionPool sizes the pool so readers never wait on a pending
// write. DuckDB keeps one database instance per sql.DB, so ":memory:" is
// shared by every pooled connection.
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(maxOpenConns(runtime.NumCPU()))
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// initialize creates the schema, applies migrations and loads the indexes.
func (db *DB) initialize() error {
	if err := db.createTables(); err != nil {
		return err
	}
	if err := db.runMigrations(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := db.RebuildIndexes(ctx); err != nil {
		return fmt.Errorf("failed to build indexes: %w", err)
	}
	return nil
}

// Close checkpoints and closes the database.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}

	if db.cfg != nil && db.cfg.Path != "" && db.cfg.Path != ":memory:" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := db.Checkpoint(ctx); err != nil {
			logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
		}
		cancel()
	}

	return db.conn.Close()
}

// Ping checks if the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// WriteTx runs fn inside an exclusive write transaction. Writers queue on
// writeMu and never interleave; readers keep seeing the last committed
// snapshot until Commit returns. Any error from fn rolls the transaction
// back and is returned wrapped in a StorageError unless it already carries
// its own type.
func (db *DB) WriteTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return db.writeTx(ctx, "write", fn, false)
}

// ReplaceTx is WriteTx for directory replacement. Before committing it
// snapshots the rows written by fn into fresh indexes, then commits and
// swaps the indexes while holding indexMu so readers never pair an old
// index with new rows.
func (db *DB) ReplaceTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return db.writeTx(ctx, "replace", fn, true)
}

func (db *DB) writeTx(ctx context.Context, op string, fn func(tx *sql.Tx) error, reindex bool) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return &StorageError{Op: op + ": begin", Err: err}
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logging.Warn().Err(rbErr).Str("op", op).Msg("Rollback failed")
		}
		return err
	}

	if !reindex {
		if err := tx.Commit(); err != nil {
			return &StorageError{Op: op + ": commit", Err: err}
		}
		return nil
	}

	snap, err := loadIndexSnapshot(ctx, tx)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logging.Warn().Err(rbErr).Str("op", op).Msg("Rollback failed")
		}
		return &StorageError{Op: op + ": index snapshot", Err: err}
	}

	db.indexMu.Lock()
	defer db.indexMu.Unlock()

	if err := tx.Commit(); err != nil {
		return &StorageError{Op: op + ": commit", Err: err}
	}
	db.swapIndexesLocked(snap)
	return nil
}
