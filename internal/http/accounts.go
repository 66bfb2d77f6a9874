package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"librarysystem/internal/auth"
	"librarysystem/internal/database"
	"librarysystem/internal/entities"
	"librarysystem/internal/validation"
)

// AccountStore defines database operations for account management.
type AccountStore interface {
	List(opts database.ListOptions) ([]entities.Account, int64, error)
	GetByID(id uint) (*entities.Account, error)
	Create(account *entities.Account) error
	Update(account *entities.Account) error
	Delete(id uint) error
	ExistsByID(id uint) (bool, error)
}

type AccountsController struct {
	store      AccountStore
	bcryptCost int
}

func NewAccountsController(store AccountStore, bcryptCost int) *AccountsController {
	return &AccountsController{
		store:      store,
		bcryptCost: bcryptCost,
	}
}

// List returns a page of accounts.
// GET /api/accounts
func (controller *AccountsController) List(c *gin.Context) {
	rows, total, err := controller.store.List(listOptionsFromQuery(c))
	if err != nil {
		respondInternalError(c, err, "list accounts")
		return
	}
	respondRecords(c, rows, total)
}

// Get returns a single account row. Existence is pre-checked by middleware.
// GET /api/accounts/:id
func (controller *AccountsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	account, err := controller.store.GetByID(id)
	if err != nil {
		respondInternalError(c, err, "get account")
		return
	}
	c.JSON(http.StatusOK, account)
}

// Create validates the payload and inserts a new account. The plaintext
// password is hashed before it touches the database.
// POST /api/accounts
func (controller *AccountsController) Create(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validation.CreateAccountSchema.Validate(payload); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	account, err := controller.accountFromPayload(payload)
	if err != nil {
		respondMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := controller.store.Create(account); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			respondMsg(c, http.StatusBadRequest,
				fmt.Sprintf("Account id %s already exists", account.AccountID))
			return
		}
		respondInternalError(c, err, "create account")
		return
	}

	respondMsg(c, http.StatusCreated, "Account Created")
}

// Update replaces all mutable fields of an existing account.
// PUT /api/accounts/:id
func (controller *AccountsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validation.UpdateAccountSchema.Validate(payload); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	account, err := controller.store.GetByID(id)
	if err != nil {
		respondInternalError(c, err, "update account")
		return
	}

	updated, err := controller.accountFromPayload(payload)
	if err != nil {
		respondMsg(c, http.StatusBadRequest, err.Error())
		return
	}
	updated.ID = account.ID
	updated.CreatedAt = account.CreatedAt

	if err := controller.store.Update(updated); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			respondMsg(c, http.StatusBadRequest,
				fmt.Sprintf("Account id %s already exists", updated.AccountID))
			return
		}
		respondInternalError(c, err, "update account")
		return
	}

	respondMsg(c, http.StatusOK, "Account updated successfully")
}

// Delete removes an account row.
// DELETE /api/accounts/:id
func (controller *AccountsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := controller.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete account")
		return
	}
	respondMsg(c, http.StatusOK, "Account deleted successfully")
}

func (controller *AccountsController) accountFromPayload(payload map[string]any) (*entities.Account, error) {
	hash, err := auth.HashPassword(stringField(payload, "password"), controller.bcryptCost)
	if err != nil {
		return nil, err
	}

	return &entities.Account{
		AccountID:      stringField(payload, "account_id"),
		Name:           stringField(payload, "name"),
		Password:       hash,
		Course:         stringField(payload, "course"),
		YearAndSection: stringField(payload, "year_and_section"),
		Email:          stringField(payload, "email"),
		AccountType:    entities.AccountType(stringField(payload, "account_type")),
	}, nil
}
