package stores

import (
	"database/sql"
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// IsNotFoundError returns true if the error is a "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsUniqueConstraintError returns true if the error is a SQLite UNIQUE
// constraint violation on an item name. Primary key collisions on the
// internal id are not reported.
func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return true
		}
		if code&0xff != sqlite3.SQLITE_CONSTRAINT || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return false
		}
	}

	// Without an extended code only the message names the column.
	return strings.Contains(err.Error(), "UNIQUE constraint failed: items.name")
}
