// Package books provides database operations for the book catalogue.
package books

import (
	"gorm.io/gorm"

	"librarysystem/internal/database"
	"librarysystem/internal/entities"
)

var searchColumns = []string{"book_id", "author_name", "title_name", "type", "status"}

var sortColumns = map[string]bool{
	"id":          true,
	"book_id":     true,
	"author_name": true,
	"title_name":  true,
	"type":        true,
	"status":      true,
	"created_at":  true,
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new book repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns a page of books plus the total count matching the filter.
func (r *Repository) List(opts database.ListOptions) ([]entities.Book, int64, error) {
	opts = opts.Normalize()

	var total int64
	counted := database.ApplySearch(r.db.Model(&entities.Book{}), opts, searchColumns)
	if err := counted.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []entities.Book
	err := database.ApplySearch(r.db.Model(&entities.Book{}), opts, searchColumns).
		Order(database.OrderClause(opts, sortColumns)).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&rows).Error
	return rows, total, err
}

// GetByID retrieves a book by row id.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// Create inserts a new book. A business-key collision is reported as
// database.ErrDuplicateKey.
func (r *Repository) Create(book *entities.Book) error {
	if err := r.db.Create(book).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return database.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// Update saves all mutable fields of the book.
func (r *Repository) Update(book *entities.Book) error {
	if err := r.db.Save(book).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return database.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// Delete removes a book by row id.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Book{}, id).Error
}

// ExistsByID reports whether a book row with the given id exists.
func (r *Repository) ExistsByID(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
