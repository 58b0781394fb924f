// Package storage is the session's persistent key/value store, the counterpart of a
// browser's local storage. Values survive process restarts until removed.
package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Local is a string key/value store backed by a sqlite file.
type Local struct{ db *sqlx.DB }

func Open(dsn string) (*Local, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS local_storage(
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);`); err != nil {
		return nil, err
	}
	return &Local{db: db}, nil
}

// Get returns ok=false when the key is absent.
func (l *Local) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := l.db.GetContext(ctx, &v, `SELECT value FROM local_storage WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (l *Local) Set(ctx context.Context, key, value string) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO local_storage(key, value, updated_at)
		VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// Remove is a no-op for absent keys.
func (l *Local) Remove(ctx context.Context, key string) error {
	_, err := l.db.ExecContext(ctx, `DELETE FROM local_storage WHERE key = ?`, key)
	return err
}

func (l *Local) Close() error { return l.db.Close() }
