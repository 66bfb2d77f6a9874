package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"librarysystem/internal/database"
	"librarysystem/internal/entities"
	"librarysystem/internal/lending"
	"librarysystem/internal/validation"
)

// TransactionStore defines database operations for borrow transactions.
type TransactionStore interface {
	List(opts database.ListOptions) ([]entities.Transaction, int64, error)
	GetByID(id uint) (*entities.Transaction, error)
	Create(txn *entities.Transaction) error
	Update(txn *entities.Transaction) error
	Delete(id uint) error
	ExistsByID(id uint) (bool, error)
}

// ActivityRecorder appends audit entries for borrow and return events.
type ActivityRecorder interface {
	Record(accountID, action string) error
}

type TransactionsController struct {
	store      TransactionStore
	activities ActivityRecorder
}

func NewTransactionsController(store TransactionStore, activities ActivityRecorder) *TransactionsController {
	return &TransactionsController{
		store:      store,
		activities: activities,
	}
}

// List returns a page of transactions.
// GET /api/transactions
func (controller *TransactionsController) List(c *gin.Context) {
	rows, total, err := controller.store.List(listOptionsFromQuery(c))
	if err != nil {
		respondInternalError(c, err, "list transactions")
		return
	}
	respondRecords(c, rows, total)
}

// Get returns a single transaction row.
// GET /api/transactions/:id
func (controller *TransactionsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	txn, err := controller.store.GetByID(id)
	if err != nil {
		respondInternalError(c, err, "get transaction")
		return
	}
	c.JSON(http.StatusOK, txn)
}

// Create opens a borrow cycle. The dates are never taken from the client:
// borrow_date is the current time, due_date is one loan period later, and the
// status always starts as pending.
// POST /api/transactions
func (controller *TransactionsController) Create(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validation.CreateTransactionSchema.Validate(payload); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	now := time.Now()
	txn := &entities.Transaction{
		AccountID:     stringField(payload, "account_id"),
		TransactionID: stringField(payload, "transaction_id"),
		ItemID:        stringField(payload, "item_id"),
		BorrowDate:    now,
		DueDate:       lending.DueDate(now, nil),
		Status:        lending.StatusPending,
	}

	if err := controller.store.Create(txn); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			respondMsg(c, http.StatusBadRequest,
				fmt.Sprintf("Error creating transaction %s id already exists", txn.TransactionID))
			return
		}
		respondInternalError(c, err, "create transaction")
		return
	}

	controller.recordActivity(txn.AccountID, "borrowed item "+txn.ItemID)
	respondMsg(c, http.StatusCreated, "Transaction created")
}

// Update doubles as the return action: when the payload carries a return
// date, the status is rederived from the borrow/due/return triple. The
// literal string "null" for return_date means the item is still out.
// PUT /api/transactions/:id
func (controller *TransactionsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validation.UpdateTransactionSchema.Validate(payload); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	borrow, ok := parseDateField(payload, "borrow_date")
	if !ok || borrow == nil {
		respondMsg(c, http.StatusBadRequest, "Invalid borrow date")
		return
	}
	due, ok := parseDateField(payload, "due_date")
	if !ok {
		respondMsg(c, http.StatusBadRequest, "Invalid due date")
		return
	}
	returned, ok := parseDateField(payload, "return_date")
	if !ok {
		respondMsg(c, http.StatusBadRequest, "Invalid return date")
		return
	}

	txn, err := controller.store.GetByID(id)
	if err != nil {
		respondInternalError(c, err, "update transaction")
		return
	}
	wasReturned := txn.ReturnDate != nil

	txn.AccountID = stringField(payload, "account_id")
	txn.TransactionID = stringField(payload, "transaction_id")
	txn.ItemID = stringField(payload, "item_id")
	txn.BorrowDate = *borrow
	txn.DueDate = lending.DueDate(*borrow, due)
	txn.ReturnDate = returned
	txn.Status = lending.DeriveStatus(*borrow, &txn.DueDate, returned)

	if err := controller.store.Update(txn); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			respondMsg(c, http.StatusBadRequest, "Error Updating transaction")
			return
		}
		respondInternalError(c, err, "update transaction")
		return
	}

	if returned != nil && !wasReturned {
		controller.recordActivity(txn.AccountID, "returned item "+txn.ItemID)
	}

	respondMsg(c, http.StatusOK, fmt.Sprintf("Transaction with id of %d is updated", id))
}

// Delete removes a transaction row.
// DELETE /api/transactions/:id
func (controller *TransactionsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := controller.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete transaction")
		return
	}
	respondMsg(c, http.StatusOK, fmt.Sprintf("Transaction with id of %d is deleted", id))
}

// recordActivity is best-effort: a failed audit write never fails the
// borrow or return itself.
func (controller *TransactionsController) recordActivity(accountID, action string) {
	if controller.activities == nil {
		return
	}
	if err := controller.activities.Record(accountID, action); err != nil {
		log.Printf("failed to record activity for %s: %v", accountID, err)
	}
}
