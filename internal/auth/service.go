// Package auth implements session-based authentication for the JSON API:
// bcrypt credential checks against the accounts table, server-side sessions
// persisted in sqlite, and the gin middleware guarding the API surface.
package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"librarysystem/internal/config"
	"librarysystem/internal/entities"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
	ErrAuthRequired    = errors.New("authentication required")
)

// Service handles credential verification and account lookups for the
// authentication flow.
type Service struct {
	db     *gorm.DB
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(db *gorm.DB, cfg config.Auth) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// Authenticate validates an account id and password pair and returns the
// matching account. Wrong password and unknown account both come back as
// ErrInvalidPassword so the handler reports a single failure message.
func (s *Service) Authenticate(accountID, password string) (*entities.Account, error) {
	var account entities.Account
	err := s.db.Where("account_id = ?", accountID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidPassword
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	if err := CheckPassword(password, account.Password); err != nil {
		return nil, err
	}

	return &account, nil
}

// GetByAccountID retrieves an account by its business key.
func (s *Service) GetByAccountID(accountID string) (*entities.Account, error) {
	var account entities.Account
	err := s.db.Where("account_id = ?", accountID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// CreateAccount hashes the password and inserts a new account row.
func (s *Service) CreateAccount(account *entities.Account, password string) error {
	var existing entities.Account
	err := s.db.Where("account_id = ?", account.AccountID).First(&existing).Error
	if err == nil {
		return ErrAccountExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	account.Password = hash

	if err := s.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// HasAccounts returns true if any accounts exist in the database.
func (s *Service) HasAccounts() (bool, error) {
	var count int64
	err := s.db.Model(&entities.Account{}).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
