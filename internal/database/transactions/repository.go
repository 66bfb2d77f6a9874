// Package transactions provides database operations for borrow transactions.
package transactions

import (
	"time"

	"gorm.io/gorm"

	"librarysystem/internal/database"
	"librarysystem/internal/entities"
	"librarysystem/internal/lending"
)

var searchColumns = []string{"account_id", "transaction_id", "item_id", "status"}

var sortColumns = map[string]bool{
	"id":             true,
	"account_id":     true,
	"transaction_id": true,
	"item_id":        true,
	"borrow_date":    true,
	"due_date":       true,
	"return_date":    true,
	"status":         true,
	"created_at":     true,
}

// Repository handles all transaction database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new transaction repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns a page of transactions plus the total count matching the filter.
func (r *Repository) List(opts database.ListOptions) ([]entities.Transaction, int64, error) {
	opts = opts.Normalize()

	var total int64
	counted := database.ApplySearch(r.db.Model(&entities.Transaction{}), opts, searchColumns)
	if err := counted.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []entities.Transaction
	err := database.ApplySearch(r.db.Model(&entities.Transaction{}), opts, searchColumns).
		Order(database.OrderClause(opts, sortColumns)).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&rows).Error
	return rows, total, err
}

// GetByID retrieves a transaction by row id.
func (r *Repository) GetByID(id uint) (*entities.Transaction, error) {
	var txn entities.Transaction
	if err := r.db.First(&txn, id).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

// Create inserts a new transaction. A business-key collision is reported as
// database.ErrDuplicateKey.
func (r *Repository) Create(txn *entities.Transaction) error {
	if err := r.db.Create(txn).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return database.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// Update saves all mutable fields of the transaction.
func (r *Repository) Update(txn *entities.Transaction) error {
	if err := r.db.Save(txn).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return database.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// Delete removes a transaction by row id.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Transaction{}, id).Error
}

// ExistsByID reports whether a transaction row with the given id exists.
func (r *Repository) ExistsByID(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Transaction{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// MarkOverdue refreshes the status of unreturned transactions whose due day
// has passed and returns how many rows changed. Each row is updated with a
// single statement; there is no surrounding multi-statement transaction.
func (r *Repository) MarkOverdue(now time.Time) (int64, error) {
	var open []entities.Transaction
	if err := r.db.Where("return_date IS NULL AND due_date < ?", now).Find(&open).Error; err != nil {
		return 0, err
	}

	var updated int64
	for _, txn := range open {
		if !lending.IsOverdue(txn.DueDate, now) {
			continue
		}
		status := lending.StatusOverdue(lending.OverdueBy(txn.DueDate, now))
		if status == txn.Status {
			continue
		}
		err := r.db.Model(&entities.Transaction{}).
			Where("id = ?", txn.ID).
			Update("status", status).Error
		if err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}
