// ABOUTME: Sentinel errors shared by every store.
// ABOUTME: Callers use errors.Is to tell conflicts and misses from storage faults.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrNotFound is returned when a lookup, credential check, or delete
// matches no row. It is an expected outcome, not a storage fault.
var ErrNotFound = errors.New("not found")

// ErrConstraintViolation is returned when a write conflicts with a unique
// key, such as registering an email that is already taken.
var ErrConstraintViolation = errors.New("constraint violation")

// isUniqueViolation reports whether err is a SQLite unique or primary key
// conflict.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}

// checkAffected turns a zero-row result into ErrNotFound.
func checkAffected(result sql.Result, what string, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return nil
}
