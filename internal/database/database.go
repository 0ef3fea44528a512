package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Manager owns the process's single SQLite handle. It is constructed once
// and passed to every repository; repositories borrow the handle per call
// and never hold it across calls.
//
// The handle revives itself: after Close, the next DB call reconnects and
// re-runs the idempotent schema setup.
type Manager struct {
	path string

	mu sync.Mutex
	db *sqlx.DB
}

// Open connects to the SQLite database at path (created if absent) and
// ensures the schema exists.
func Open(path string) (*Manager, error) {
	if path == "" {
		path = "postshub.db"
	}
	m := &Manager{path: path}
	if _, err := m.DB(); err != nil {
		return nil, err
	}
	return m, nil
}

// DB returns a live handle, transparently reopening a closed one.
func (m *Manager) DB() (*sqlx.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		if err := m.db.Ping(); err == nil {
			return m.db, nil
		}
		_ = m.db.Close()
		m.db = nil
	}

	db, err := sqlx.Connect("sqlite3", m.path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One live connection for the process lifetime. Pragmas below are
	// per-connection, so the cap must come before them.
	db.SetMaxOpenConns(1)

	// journal_mode may not be supported in some contexts (e.g., in-memory). Ignore errors.
	_, _ = db.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	m.db = db
	slog.Debug("database connection established", "path", m.path)
	return db, nil
}

// Exec is a raw escape hatch for maintenance code. Normal repository logic
// uses parameterized statements instead.
func (m *Manager) Exec(query string, args ...any) (sql.Result, error) {
	db, err := m.DB()
	if err != nil {
		return nil, err
	}
	return db.Exec(query, args...)
}

// Query is the read-side counterpart of Exec.
func (m *Manager) Query(query string, args ...any) (*sql.Rows, error) {
	db, err := m.DB()
	if err != nil {
		return nil, err
	}
	return db.Query(query, args...)
}

// Close releases the connection. Safe to call repeatedly; a later DB call
// reconnects.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}
