package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"time"
	"unicode/utf8"
)

// Postgres stores entries in the kv_entries table created by the migrations
type Postgres struct {
	db   *sql.DB
	opts Options
}

// NewPostgres wraps an open connection. The store owns db and closes it on Close.
func NewPostgres(db *sql.DB, opts Options) *Postgres {
	return &Postgres{db: db, opts: opts}
}

// Get implements Store
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE key = $1 AND (expires_at IS NULL OR expires_at > NOW())`,
		key,
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
func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	var expiresAt sql.NullTime
	if exp := p.opts.expiry(time.Now()); !exp.IsZero() {
		expiresAt = sql.NullTime{Time: exp, Valid: true}
	}

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, expires_at, updated_at) VALUES ($1, $2, $3, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = NOW()
	`, key, value, expiresAt)
	if err != nil {
		return unavailable("set", key, err)
	}
	return nil
}

// Delete implements Store
func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = $1`, key); err != nil {
		return unavailable("delete", key, err)
	}
	return nil
}

// DeletePrefix implements Store
func (p *Postgres) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	res, err := p.db.ExecContext(ctx,
		`DELETE FROM kv_entries WHERE left(key, $1) = $2`,
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
func (p *Postgres) Close() error {
	return p.db.Close()
}
