// Package database provides the SQLite-backed record store for HydraZone.
//
// The database stores:
//   - Zones (name, kind, serial, account, masters)
//   - Resource records, owned by a zone and removed with it
//   - The durable tier of the CNAME flattening cache
//
// Write transactions are opened with BEGIN IMMEDIATE, so concurrent
// read-modify-write batches against the same database file are serialized
// by SQLite itself.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jroosing/hydrazone/internal/zone"
)

// dsnFormat enables WAL, a busy timeout, foreign keys, and immediate
// write locks for every pooled connection.
const dsnFormat = "file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate"

// DB wraps a SQLite connection pool.
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// Open opens or creates a SQLite database at the given path and applies
// pending schema migrations.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", fmt.Sprintf(dsnFormat, path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	db := &DB{conn: conn, now: time.Now}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Health checks database connectivity.
func (db *DB) Health(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// BeginTx starts a unit of work against the record store.
func (db *DB) BeginTx(ctx context.Context) (zone.Tx, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &storeTx{tx: tx, now: db.now}, nil
}

var _ zone.Store = (*DB)(nil)
