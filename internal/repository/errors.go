package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// Storage error kinds. Driver errors cross into the rest of the system only
// through mapError, so callers can match on these with errors.Is instead of
// inspecting SQLite error codes.
var (
	// ErrConnectivity means the database could not be opened or reached.
	// The manager revives closed connections, so the next call may succeed.
	ErrConnectivity = errors.New("database unavailable")

	// ErrConstraint means a unique or foreign key constraint was violated.
	ErrConstraint = errors.New("constraint violated")
)

// mapError translates a raw driver error into one of the storage error
// kinds, preserving the original as the wrapped cause. sql.ErrNoRows is left
// untouched; each repository maps it to its entity-specific not-found error.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	var se sqlite3.Error
	if errors.As(err, &se) {
		switch se.Code {
		case sqlite3.ErrConstraint:
			return fmt.Errorf("%w: %v", ErrConstraint, err)
		case sqlite3.ErrCantOpen, sqlite3.ErrBusy, sqlite3.ErrLocked:
			return fmt.Errorf("%w: %v", ErrConnectivity, err)
		}
	}
	return err
}

// isUniqueViolation reports whether err is a SQLite unique constraint
// violation, used to surface duplicate usernames as a business rule error.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
		se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
