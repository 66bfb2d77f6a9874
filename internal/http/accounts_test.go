package http

import (
	"encoding/json"
	"net/http"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"librarysystem/internal/auth"
	"librarysystem/internal/database/accounts"
	"librarysystem/internal/entities"
)

func setupAccountsRouter(t *testing.T) (*gin.Engine, *accounts.Repository, func()) {
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_accounts_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Account{})
	require.NoError(t, err)

	repo := accounts.NewRepository(db)
	controller := NewAccountsController(repo, bcrypt.MinCost)

	router := gin.New()
	group := router.Group("/api/accounts")
	group.GET("", SearchFilter("account_id", "name", "course", "year_and_section", "email", "account_type"), controller.List)
	group.POST("", controller.Create)
	group.GET("/:id", CheckIDExists(repo, "accounts"), controller.Get)
	group.PUT("/:id", CheckIDExists(repo, "accounts"), controller.Update)
	group.DELETE("/:id", CheckIDExists(repo, "accounts"), controller.Delete)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return router, repo, cleanup
}

const createAccountBody = `{"account_id": "2021-00123", "name": "Maria Reyes", "password": "s3cret-pass", "course": "BSIT", "year_and_section": "3A-1", "email": "maria.reyes@example.edu", "account_type": "student"}`

func TestAccounts_Create_HashesPassword(t *testing.T) {
	router, repo, cleanup := setupAccountsRouter(t)
	defer cleanup()

	w := doJSON(router, "POST", "/api/accounts", createAccountBody)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Account Created")

	rows, total, err := repo.List(listOptions(t))
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	assert.NotEqual(t, "s3cret-pass", rows[0].Password)
	assert.NoError(t, auth.CheckPassword("s3cret-pass", rows[0].Password))
}

func TestAccounts_Create_Duplicate(t *testing.T) {
	router, _, cleanup := setupAccountsRouter(t)
	defer cleanup()

	w := doJSON(router, "POST", "/api/accounts", createAccountBody)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "POST", "/api/accounts", createAccountBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Account id 2021-00123 already exists")
}

func TestAccounts_Create_ValidationErrors(t *testing.T) {
	router, repo, cleanup := setupAccountsRouter(t)
	defer cleanup()

	w := doJSON(router, "POST", "/api/accounts", `{"account_id": "x", "password": "short"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Errors, "Account ID should be between 5 and 32 characters long")
	assert.Contains(t, body.Errors, "Password should be at least 8 characters long")
	assert.Contains(t, body.Errors, "Email is required")

	_, total, err := repo.List(listOptions(t))
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestAccounts_Get_OmitsPassword(t *testing.T) {
	router, _, cleanup := setupAccountsRouter(t)
	defer cleanup()

	w := doJSON(router, "POST", "/api/accounts", createAccountBody)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "GET", "/api/accounts/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "maria.reyes@example.edu")
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "s3cret-pass")
}

func TestAccounts_Update(t *testing.T) {
	router, repo, cleanup := setupAccountsRouter(t)
	defer cleanup()

	w := doJSON(router, "POST", "/api/accounts", createAccountBody)
	require.Equal(t, http.StatusCreated, w.Code)

	existing, err := repo.GetByID(1)
	require.NoError(t, err)

	updateBody := `{"account_id": "2021-00123", "name": "Maria R. Cruz", "password": "s3cret-pass", "course": "BSIT", "year_and_section": "4A-1", "email": "maria.reyes@example.edu", "account_type": "faculty", "created_at": "` + existing.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z") + `"}`

	w = doJSON(router, "PUT", "/api/accounts/1", updateBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Account updated successfully")

	updated, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Maria R. Cruz", updated.Name)
	assert.Equal(t, entities.AccountTypeFaculty, updated.AccountType)
	assert.Equal(t, existing.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestAccounts_Delete(t *testing.T) {
	router, _, cleanup := setupAccountsRouter(t)
	defer cleanup()

	w := doJSON(router, "POST", "/api/accounts", createAccountBody)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "DELETE", "/api/accounts/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Account deleted successfully")

	w = doJSON(router, "GET", "/api/accounts/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Couldn't find ID 1 in accounts")
}

func TestAccounts_List_KeyFilter(t *testing.T) {
	router, repo, cleanup := setupAccountsRouter(t)
	defer cleanup()

	w := doJSON(router, "POST", "/api/accounts", createAccountBody)
	require.Equal(t, http.StatusCreated, w.Code)

	hash, err := auth.HashPassword("another-pass", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(&entities.Account{
		AccountID:   "FAC-0007",
		Name:        "Jose Santos",
		Password:    hash,
		Course:      "N/A",
		Email:       "jose.santos@example.edu",
		AccountType: entities.AccountTypeFaculty,
	}))

	w = doJSON(router, "GET", "/api/accounts?key=account_type&value=faculty", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Records []entities.Account `json:"records"`
		Total   int64              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.EqualValues(t, 1, body.Total)
	assert.Equal(t, "FAC-0007", body.Records[0].AccountID)
}
