package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS kv_entries (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		expires_at INTEGER
	)
`

// SQLite keeps entries in a single-file sqlite database
type SQLite struct {
	db   *sql.DB
	opts Options
	now  func() time.Time
}

// OpenSQLite opens the database at path, creating parent directories and the table as needed
func OpenSQLite(ctx context.Context, path string, opts Options) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, unavailable("open", path, err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, unavailable("open", path, err)
	}
	// sqlite serialises writers; one connection avoids SQLITE_BUSY under concurrent Set calls
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, unavailable("ping", path, err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, unavailable("create table", path, err)
	}

	return &SQLite{db: db, opts: opts, now: time.Now}, nil
}

// Get implements Store
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE key = ? AND (expires_at IS NULL OR expires_at > ?)`,
		key, s.now().UnixNano(),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, unavailable("get", key, err)
	}
	return value, nil
}

// Set implements Store
func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	var expiresAt sql.NullInt64
	if exp := s.opts.expiry(s.now()); !exp.IsZero() {
		expiresAt = sql.NullInt64{Int64: exp.UnixNano(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, key, value, expiresAt)
	if err != nil {
		return unavailable("set", key, err)
	}
	return nil
}

// Delete implements Store
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return unavailable("delete", key, err)
	}
	return nil
}

// DeletePrefix implements Store
func (s *SQLite) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM kv_entries WHERE substr(key, 1, ?) = ?`,
		utf8.RuneCountInString(prefix), prefix,
	)
	if err != nil {
		return 0, unavailable("delete", prefix, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, unavailable("delete", prefix, err)
	}
	return int(n), nil
}

// Close implements Store
func (s *SQLite) Close() error {
	return s.db.Close()
}
