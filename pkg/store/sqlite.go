package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrStoreClosed is returned when using a closed store
var ErrStoreClosed = errors.New("store is closed")

// SQLite persists precompiled templates to a SQLite database.
// It is suitable for single-process use.
type SQLite struct {
	db     *sql.DB
	now    func() time.Time
	mu     sync.RWMutex
	closed bool
}

// NewSQLite opens (or creates) a SQLite store.
// The path should be a file path (e.g., "./templates.db") or ":memory:" for testing.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS templates (
			name TEXT PRIMARY KEY,
			precompiled TEXT NOT NULL,
			expires_at INTEGER NOT NULL DEFAULT 0
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLite{db: db, now: time.Now}, nil
}

// Save implements Store.
func (s *SQLite) Save(ctx context.Context, name, precompiled string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO templates (name, precompiled, expires_at)
		VALUES (?, ?, 0)
		ON CONFLICT(name) DO UPDATE SET
			precompiled = excluded.precompiled,
			expires_at = 0
	`, name, precompiled)
	if err != nil {
		return fmt.Errorf("save template: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *SQLite) Load(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", ErrStoreClosed
	}

	var precompiled string
	err := s.db.QueryRowContext(ctx, `
		SELECT precompiled FROM templates
		WHERE name = ? AND (expires_at = 0 OR expires_at > ?)
	`, name, s.now().UnixNano()).Scan(&precompiled)

	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("load template: %w", err)
	}
	return precompiled, nil
}

// Delete implements Store.
func (s *SQLite) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// Exists implements Store.
func (s *SQLite) Exists(ctx context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, ErrStoreClosed
	}

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM templates
		WHERE name = ? AND (expires_at = 0 OR expires_at > ?)
	`, name, s.now().UnixNano()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check existence: %w", err)
	}
	return count > 0, nil
}

// List implements Store.
func (s *SQLite) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM templates
		WHERE expires_at = 0 OR expires_at > ?
		ORDER BY name
	`, s.now().UnixNano())
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan template name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}

	return names, nil
}

// SetTTL implements Store.
func (s *SQLite) SetTTL(ctx context.Context, name string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	now := s.now()
	result, err := s.db.ExecContext(ctx, `
		UPDATE templates SET expires_at = ?
		WHERE name = ? AND (expires_at = 0 OR expires_at > ?)
	`, now.Add(ttl).UnixNano(), name, now.UnixNano())
	if err != nil {
		return fmt.Errorf("set TTL: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set TTL: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// Close closes the database. Closing twice is safe.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
