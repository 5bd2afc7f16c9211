// Package store implements SQLite-backed persistence for items, item types
// and the location history ledger.
package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// DBTX is the subset of database/sql used by the store functions. Both
// *sql.DB and *sql.Tx satisfy it, so the same queries run inside and
// outside transactions.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Deletion policy errors.
var (
	// ErrNotEmpty means an item cannot be deleted while other items list it
	// as their current location.
	ErrNotEmpty = errors.New("item still contains other items")

	// ErrTypeInUse means an item type cannot be deleted while items
	// reference it.
	ErrTypeInUse = errors.New("item type is still referenced by items")
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// nullable converts an empty string to NULL for insertion.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure on the given column (e.g. "items.unique_code").
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}
