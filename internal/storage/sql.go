package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Dialect selects the SQL flavour used by SQLKV.
type Dialect string

const (
	DialectSQLite Dialect = "sqlite"
	DialectMySQL  Dialect = "mysql"
)

var sqlSchema = map[Dialect]string{
	DialectSQLite: `CREATE TABLE IF NOT EXISTS kv_slots (
		slot_key   TEXT PRIMARY KEY,
		payload    BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	DialectMySQL: `CREATE TABLE IF NOT EXISTS kv_slots (
		slot_key   VARCHAR(191) PRIMARY KEY,
		payload    LONGBLOB NOT NULL,
		updated_at DATETIME(3) NOT NULL
	)`,
}

var sqlUpsert = map[Dialect]string{
	DialectSQLite: `INSERT INTO kv_slots (slot_key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(slot_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
	DialectMySQL: `INSERT INTO kv_slots (slot_key, payload, updated_at) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE payload = VALUES(payload), updated_at = VALUES(updated_at)`,
}

// SQLKV implements KV on a database/sql handle. It serves both the embedded
// SQLite file and a MySQL server; the table is created on open.
type SQLKV struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQLite opens (creating if needed) the SQLite database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLKV, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)
	return newSQLKV(ctx, db, DialectSQLite)
}

// OpenMySQL connects to the MySQL server described by dsn.
func OpenMySQL(ctx context.Context, dsn string) (*SQLKV, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)
	return newSQLKV(ctx, db, DialectMySQL)
}

func newSQLKV(ctx context.Context, db *sql.DB, dialect Dialect) (*SQLKV, error) {
	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}
	if _, err := db.ExecContext(ctx, sqlSchema[dialect]); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv_slots: %w", err)
	}
	return &SQLKV{db: db, dialect: dialect}, nil
}

func (s *SQLKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM kv_slots WHERE slot_key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get slot: %w", err)
	}
	return payload, true, nil
}

func (s *SQLKV) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, sqlUpsert[s.dialect], key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("set slot: %w", err)
	}
	return nil
}

func (s *SQLKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_slots WHERE slot_key = ?`, key); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}

func (s *SQLKV) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLKV) Close() error {
	return s.db.Close()
}
