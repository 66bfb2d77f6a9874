// Package search implements the cross-entity library search over books and
// academic papers.
package search

import (
	"errors"

	"gorm.io/gorm"
)

// ErrInvalidKey reports a search key outside the whitelisted columns.
var ErrInvalidKey = errors.New("invalid search key")

// allowedKeys is the fixed whitelist of columns a caller may filter on. It
// guards the generated statement against arbitrary column injection.
var allowedKeys = map[string]bool{
	"author_name": true,
	"title_name":  true,
	"status":      true,
	"type":        true,
}

// LibraryRecord is one row of the union of academic papers and books,
// tagged with the table it came from.
type LibraryRecord struct {
	Source     string `json:"source"`
	ItemID     string `json:"item_id"`
	AuthorName string `json:"author_name"`
	TitleName  string `json:"title_name"`
	Status     string `json:"status"`
	Type       string `json:"type"`
}

// Repository runs the library union queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new library search repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AllowedKey reports whether key may be used as a filter column.
func AllowedKey(key string) bool {
	return allowedKeys[key]
}

const unionSelect = `SELECT 'academic_papers' AS source, acadp_id AS item_id, author_name, title_name, status, type FROM academic_papers`

const unionSelectBooks = `SELECT 'books' AS source, book_id AS item_id, author_name, title_name, status, type FROM books`

// All returns the full union of papers and books.
func (r *Repository) All() ([]LibraryRecord, error) {
	var rows []LibraryRecord
	err := r.db.Raw(unionSelect + " UNION " + unionSelectBooks).Scan(&rows).Error
	return rows, err
}

// Filter returns the union rows whose key column contains value as a
// case-insensitive substring. The key must pass AllowedKey.
func (r *Repository) Filter(key, value string) ([]LibraryRecord, error) {
	if !allowedKeys[key] {
		return nil, ErrInvalidKey
	}
	pattern := "%" + value + "%"
	query := unionSelect + " WHERE LOWER(" + key + ") LIKE LOWER(?) UNION " +
		unionSelectBooks + " WHERE LOWER(" + key + ") LIKE LOWER(?)"

	var rows []LibraryRecord
	err := r.db.Raw(query, pattern, pattern).Scan(&rows).Error
	return rows, err
}
