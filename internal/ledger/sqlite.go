package ledger

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// SQLite is a durable WorldState backed by a single SQLite table.
// Uses WAL mode for concurrent read access.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite creates or opens a SQLite database at the given path.
// Applies required pragmas and the schema automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// This function is idempotent - safe to call multiple times.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1) // Single writer to avoid SQLITE_BUSY errors
	db.SetMaxIdleConns(1) // Keep one connection ready

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// GetState returns the value for key, or (nil, nil) if absent.
func (s *SQLite) GetState(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM world_state WHERE key = ?
	`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get state %q: %w", key, err)
	}
	return value, nil
}

// PutState stores value under key, replacing any previous value.
func (s *SQLite) PutState(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO world_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("put state %q: %w", key, err)
	}
	return nil
}

// DeleteState removes key. Deleting an absent key is a no-op.
func (s *SQLite) DeleteState(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM world_state WHERE key = ?
	`, key)
	if err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}

// GetStateByRange scans [startKey, endKey) in byte-wise key order.
// Empty bounds cover the entire keyspace.
//
// Deterministic ordering: ORDER BY key COLLATE BINARY ASC, so scans
// produce identical sequences across replicas holding identical state.
func (s *SQLite) GetStateByRange(ctx context.Context, startKey, endKey string) (Iterator, error) {
	query := `SELECT key, value FROM world_state`
	var conds []string
	var args []any
	if startKey != "" {
		conds = append(conds, "key >= ?")
		args = append(args, startKey)
	}
	if endKey != "" {
		conds = append(conds, "key < ?")
		args = append(args, endKey)
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY key COLLATE BINARY ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("range scan [%q, %q): %w", startKey, endKey, err)
	}

	return &sqliteIterator{rows: rows}, nil
}

type sqliteIterator struct {
	rows *sql.Rows
}

func (it *sqliteIterator) Next() (*KV, error) {
	if !it.rows.Next() {
		if err := it.rows.Err(); err != nil {
			return nil, fmt.Errorf("range scan: %w", err)
		}
		return nil, nil
	}

	var kv KV
	if err := it.rows.Scan(&kv.Key, &kv.Value); err != nil {
		return nil, fmt.Errorf("scan row: %w", err)
	}
	return &kv, nil
}

func (it *sqliteIterator) Close() error {
	return it.rows.Close()
}
