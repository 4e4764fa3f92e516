package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a file-backed challenge store. TTL expiry is enforced by
// the expires_at predicate on read plus an opportunistic purge on write, and
// Take is a single DELETE ... RETURNING statement so fetch-and-delete is
// atomic even across processes sharing the database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the challenge database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open challenge database: %w", err)
	}

	// SQLite allows one writer at a time; a single pooled connection
	// queues writers in-process instead of surfacing SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	// WAL mode for concurrent readers alongside the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS challenges (
		id         TEXT PRIMARY KEY,
		payload    BLOB NOT NULL,
		expires_at INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create challenges table: %w", err)
	}
	if _, err := db.Exec("CREATE INDEX IF NOT EXISTS idx_challenges_expires ON challenges(expires_at)"); err != nil {
		db.Close()
		return nil, fmt.Errorf("create expiry index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Put inserts the record. Ids are generated to be collision-free, so a
// conflicting insert is a backend error, not a supported path.
func (s *SQLiteStore) Put(ctx context.Context, id string, payload []byte, ttl time.Duration) error {
	now := time.Now().UnixMilli()
	expiresAt := time.Now().Add(ttl).UnixMilli()

	// Purge anything already expired so the table stays small.
	if _, err := s.db.ExecContext(ctx, "DELETE FROM challenges WHERE expires_at <= ?", now); err != nil {
		return fmt.Errorf("%w: purge expired: %v", ErrUnavailable, err)
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO challenges (id, payload, expires_at) VALUES (?, ?, ?)",
		id, payload, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert challenge: %v", ErrUnavailable, err)
	}
	return nil
}

// Take deletes the unexpired row and returns its payload in one statement.
func (s *SQLiteStore) Take(ctx context.Context, id string) ([]byte, error) {
	now := time.Now().UnixMilli()
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		"DELETE FROM challenges WHERE id = ? AND expires_at > ? RETURNING payload",
		id, now,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: take challenge: %v", ErrUnavailable, err)
	}
	return payload, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
