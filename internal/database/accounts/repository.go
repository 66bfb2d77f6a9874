// Package accounts provides database operations for account management.
package accounts

import (
	"gorm.io/gorm"

	"librarysystem/internal/database"
	"librarysystem/internal/entities"
)

// searchColumns is the fixed whitelist of text columns matched by the
// free-text search filter.
var searchColumns = []string{"account_id", "name", "course", "year_and_section", "email", "account_type"}

var sortColumns = map[string]bool{
	"id":               true,
	"account_id":       true,
	"name":             true,
	"course":           true,
	"year_and_section": true,
	"email":            true,
	"account_type":     true,
	"created_at":       true,
}

// Repository handles all account database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new account repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns a page of accounts plus the total count matching the filter,
// ignoring pagination.
func (r *Repository) List(opts database.ListOptions) ([]entities.Account, int64, error) {
	opts = opts.Normalize()

	var total int64
	counted := database.ApplySearch(r.db.Model(&entities.Account{}), opts, searchColumns)
	if err := counted.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []entities.Account
	err := database.ApplySearch(r.db.Model(&entities.Account{}), opts, searchColumns).
		Order(database.OrderClause(opts, sortColumns)).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&rows).Error
	return rows, total, err
}

// GetByID retrieves an account by row id.
func (r *Repository) GetByID(id uint) (*entities.Account, error) {
	var account entities.Account
	if err := r.db.First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// Create inserts a new account. A business-key collision is reported as
// database.ErrDuplicateKey.
func (r *Repository) Create(account *entities.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return database.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// Update saves all mutable fields of the account.
func (r *Repository) Update(account *entities.Account) error {
	if err := r.db.Save(account).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return database.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// Delete removes an account by row id.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Account{}, id).Error
}

// ExistsByID reports whether an account row with the given id exists.
func (r *Repository) ExistsByID(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Account{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
