package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLite is a durable Store over a single kv_entries table (see
// internal/migrations). Expired rows are deleted lazily on Get.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db, now: time.Now}
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		value     []byte
		expiresAt sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM kv_entries WHERE key = ?`, key,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: sqlite get %s: %w", ErrUnavailable, key, err)
	}

	if expiresAt.Valid && s.now().UnixMilli() >= expiresAt.Int64 {
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM kv_entries WHERE key = ? AND expires_at = ?`, key, expiresAt.Int64,
		); err != nil {
			return nil, false, fmt.Errorf("%w: sqlite evict %s: %w", ErrUnavailable, key, err)
		}
		return nil, false, nil
	}

	return value, true, nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt sql.NullInt64
	if ttl > 0 {
		expiresAt = sql.NullInt64{Int64: s.now().Add(ttl).UnixMilli(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_entries (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("%w: sqlite set %s: %w", ErrUnavailable, key, err)
	}
	return nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: sqlite ping: %w", ErrUnavailable, err)
	}
	return nil
}

func (s *SQLite) Close() error { return s.db.Close() }
