package database

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// ErrDuplicateKey reports a business-key uniqueness violation. Repositories
// translate the driver error so controllers can map it to a conflict
// response without knowing the storage engine.
var ErrDuplicateKey = errors.New("duplicate key")

// IsDuplicateKey reports whether err was caused by a unique constraint.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	// The gorm sqlite driver occasionally wraps the constraint failure in a
	// plain error string.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
