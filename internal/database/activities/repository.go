// Package activities provides database operations for the audit trail.
package activities

import (
	"time"

	"gorm.io/gorm"

	"librarysystem/internal/database"
	"librarysystem/internal/entities"
)

var searchColumns = []string{"account_id", "activity"}

var sortColumns = map[string]bool{
	"id":         true,
	"account_id": true,
	"activity":   true,
	"created_at": true,
}

// Repository handles all activity database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new activity repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns a page of activities plus the total count matching the filter.
func (r *Repository) List(opts database.ListOptions) ([]entities.Activity, int64, error) {
	opts = opts.Normalize()

	var total int64
	counted := database.ApplySearch(r.db.Model(&entities.Activity{}), opts, searchColumns)
	if err := counted.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []entities.Activity
	err := database.ApplySearch(r.db.Model(&entities.Activity{}), opts, searchColumns).
		Order(database.OrderClause(opts, sortColumns)).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&rows).Error
	return rows, total, err
}

// GetByID retrieves an activity by row id.
func (r *Repository) GetByID(id uint) (*entities.Activity, error) {
	var activity entities.Activity
	if err := r.db.First(&activity, id).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// Create inserts a new activity entry.
func (r *Repository) Create(activity *entities.Activity) error {
	return r.db.Create(activity).Error
}

// Update saves all mutable fields of the activity.
func (r *Repository) Update(activity *entities.Activity) error {
	return r.db.Save(activity).Error
}

// Delete removes an activity by row id.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Activity{}, id).Error
}

// ExistsByID reports whether an activity row with the given id exists.
func (r *Repository) ExistsByID(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Activity{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Record appends an audit entry for an account action.
func (r *Repository) Record(accountID, action string) error {
	return r.Create(&entities.Activity{AccountID: accountID, Activity: action})
}

// DeleteOlderThan removes activity rows past the retention window and
// returns how many were deleted.
func (r *Repository) DeleteOlderThan(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	result := r.db.Where("created_at < ?", cutoff).Delete(&entities.Activity{})
	return result.RowsAffected, result.Error
}
