// Package papers provides database operations for academic papers.
package papers

import (
	"gorm.io/gorm"

	"librarysystem/internal/database"
	"librarysystem/internal/entities"
)

var searchColumns = []string{"acadp_id", "author_name", "title_name", "status", "course", "type"}

var sortColumns = map[string]bool{
	"id":            true,
	"acadp_id":      true,
	"author_name":   true,
	"title_name":    true,
	"status":        true,
	"academic_year": true,
	"course":        true,
	"type":          true,
	"created_at":    true,
}

// Repository handles all academic paper database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new academic paper repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns a page of papers plus the total count matching the filter.
func (r *Repository) List(opts database.ListOptions) ([]entities.AcademicPaper, int64, error) {
	opts = opts.Normalize()

	var total int64
	counted := database.ApplySearch(r.db.Model(&entities.AcademicPaper{}), opts, searchColumns)
	if err := counted.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []entities.AcademicPaper
	err := database.ApplySearch(r.db.Model(&entities.AcademicPaper{}), opts, searchColumns).
		Order(database.OrderClause(opts, sortColumns)).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&rows).Error
	return rows, total, err
}

// GetByID retrieves a paper by row id.
func (r *Repository) GetByID(id uint) (*entities.AcademicPaper, error) {
	var paper entities.AcademicPaper
	if err := r.db.First(&paper, id).Error; err != nil {
		return nil, err
	}
	return &paper, nil
}

// Create inserts a new paper. A business-key collision is reported as
// database.ErrDuplicateKey.
func (r *Repository) Create(paper *entities.AcademicPaper) error {
	if err := r.db.Create(paper).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return database.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// Update saves all mutable fields of the paper.
func (r *Repository) Update(paper *entities.AcademicPaper) error {
	if err := r.db.Save(paper).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return database.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// Delete removes a paper by row id.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.AcademicPaper{}, id).Error
}

// ExistsByID reports whether a paper row with the given id exists.
func (r *Repository) ExistsByID(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.AcademicPaper{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
