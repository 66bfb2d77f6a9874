package auth

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"librarysystem/internal/config"
	"librarysystem/internal/entities"
)

func setupTestService(t *testing.T) (*Service, func()) {
	dbPath := "./test_auth_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Account{})
	require.NoError(t, err)

	service := NewService(db, config.Auth{BcryptCost: bcrypt.MinCost})

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return service, cleanup
}

func testAccount() *entities.Account {
	return &entities.Account{
		AccountID:   "2021-00123",
		Name:        "Ana Reyes",
		Email:       "ana@example.edu",
		AccountType: entities.AccountTypeStudent,
	}
}

func TestService_CreateAccount(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	account := testAccount()
	require.NoError(t, service.CreateAccount(account, "secret-password"))

	// Stored password must be the hash, not the plaintext
	assert.NotEqual(t, "secret-password", account.Password)
	assert.NotEmpty(t, account.Password)
}

func TestService_CreateAccount_Duplicate(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	require.NoError(t, service.CreateAccount(testAccount(), "secret-password"))

	err := service.CreateAccount(testAccount(), "other-password")
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestService_CreateAccount_ShortPassword(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	err := service.CreateAccount(testAccount(), "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestService_Authenticate(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	require.NoError(t, service.CreateAccount(testAccount(), "secret-password"))

	account, err := service.Authenticate("2021-00123", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, "Ana Reyes", account.Name)
}

func TestService_Authenticate_WrongPassword(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	require.NoError(t, service.CreateAccount(testAccount(), "secret-password"))

	_, err := service.Authenticate("2021-00123", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestService_Authenticate_UnknownAccount(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	// Indistinguishable from a wrong password
	_, err := service.Authenticate("2021-99999", "secret-password")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestService_GetByAccountID(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	require.NoError(t, service.CreateAccount(testAccount(), "secret-password"))

	account, err := service.GetByAccountID("2021-00123")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.edu", account.Email)

	_, err = service.GetByAccountID("2021-99999")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestService_HasAccounts(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	has, err := service.HasAccounts()
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, service.CreateAccount(testAccount(), "secret-password"))

	has, err = service.HasAccounts()
	require.NoError(t, err)
	assert.True(t, has)
}
