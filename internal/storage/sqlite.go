package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteKV keeps the key-value pairs in a single local SQLite file.
type SQLiteKV struct {
	db *sql.DB
}

var _ KV = (*SQLiteKV)(nil)

func NewSQLiteKV(dbPath string) (*SQLiteKV, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// one writer at a time; sqlite serialises them anyway
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteKV{db: db}, nil
}

func (s *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteKV) Set(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	slog.DebugContext(ctx, "Stored key", "key", key, "backend", "sqlite", "size", len(value))
	return nil
}

func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteKV) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
