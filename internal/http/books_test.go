package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"librarysystem/internal/auth"
	"librarysystem/internal/database/books"
	"librarysystem/internal/database/search"
	"librarysystem/internal/entities"
)

func setupBooksRouter(t *testing.T) (*gin.Engine, *books.Repository, func()) {
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_books_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Book{}, &entities.AcademicPaper{})
	require.NoError(t, err)

	repo := books.NewRepository(db)
	controller := NewBooksController(repo)

	router := gin.New()
	group := router.Group("/api/books")
	group.GET("", SearchFilter("book_id", "author_name", "title_name", "type", "status"), controller.List)
	group.POST("", controller.Create)
	group.POST("/upload", controller.Upload)
	group.GET("/:id", CheckIDExists(repo, "books"), controller.Get)
	group.PUT("/:id", CheckIDExists(repo, "books"), controller.Update)
	group.DELETE("/:id", CheckIDExists(repo, "books"), controller.Delete)

	router.GET("/api/search/books", SearchFilter("book_id", "author_name", "title_name", "type", "status"), controller.List)

	libraryController := NewLibraryController(search.NewRepository(db))
	router.GET("/api/search/library", libraryController.Search)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return router, repo, cleanup
}

const createBookBody = `{"book_id": "BK001", "author_name": "Robert Martin", "title_name": "Clean Code", "type": "reference", "status": "available"}`

func TestBooks_CreateAndGet(t *testing.T) {
	router, _, cleanup := setupBooksRouter(t)
	defer cleanup()

	w := doJSON(router, http.MethodPost, "/api/books", createBookBody)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Book created successfully")

	w = doJSON(router, http.MethodGet, "/api/books/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var book entities.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
	assert.Equal(t, "BK001", book.BookID)
	assert.Equal(t, "Clean Code", book.TitleName)
}

func TestBooks_Create_ValidationErrors(t *testing.T) {
	router, repo, cleanup := setupBooksRouter(t)
	defer cleanup()

	w := doJSON(router, http.MethodPost, "/api/books", `{"book_id": "BK-1!"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Errors)

	// Nothing persisted on validation failure
	_, total, err := repo.List(listOptions(t))
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestBooks_Create_Duplicate(t *testing.T) {
	router, _, cleanup := setupBooksRouter(t)
	defer cleanup()

	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/books", createBookBody).Code)

	w := doJSON(router, http.MethodPost, "/api/books", createBookBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unable to create book, BK001 already exists")
}

func TestBooks_List_Envelope(t *testing.T) {
	router, _, cleanup := setupBooksRouter(t)
	defer cleanup()

	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/books", createBookBody).Code)

	w := doJSON(router, http.MethodGet, "/api/books", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Records []entities.Book `json:"records"`
		Total   int64           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Records, 1)
	assert.Equal(t, int64(1), resp.Total)
}

func TestBooks_List_KeyFilter(t *testing.T) {
	router, _, cleanup := setupBooksRouter(t)
	defer cleanup()

	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/books", createBookBody).Code)
	other := `{"book_id": "BK002", "author_name": "Andrew Hunt", "title_name": "The Pragmatic Programmer", "type": "reference", "status": "borrowed"}`
	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/books", other).Code)

	w := doJSON(router, http.MethodGet, "/api/books?key=status&value=borrowed", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Records []entities.Book `json:"records"`
		Total   int64           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "BK002", resp.Records[0].BookID)
}

func TestBooks_List_InvalidSearchKey(t *testing.T) {
	router, _, cleanup := setupBooksRouter(t)
	defer cleanup()

	w := doJSON(router, http.MethodGet, "/api/books?key=password&value=x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid search key")
}

func TestBooks_Update(t *testing.T) {
	router, repo, cleanup := setupBooksRouter(t)
	defer cleanup()

	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/books", createBookBody).Code)

	body := `{"book_id": "BK001", "author_name": "Robert Martin", "title_name": "Clean Code", "type": "reference", "status": "borrowed", "created_at": "2024-01-01T00:00:00.000Z"}`
	w := doJSON(router, http.MethodPut, "/api/books/1", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Book updated successfully")

	book, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "borrowed", book.Status)
}

func TestBooks_Update_RequiresCreatedAt(t *testing.T) {
	router, _, cleanup := setupBooksRouter(t)
	defer cleanup()

	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/books", createBookBody).Code)

	w := doJSON(router, http.MethodPut, "/api/books/1", createBookBody)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Created at is required")
}

func TestBooks_Delete(t *testing.T) {
	router, repo, cleanup := setupBooksRouter(t)
	defer cleanup()

	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/books", createBookBody).Code)

	w := doJSON(router, http.MethodDelete, "/api/books/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Book deleted successfully")

	exists, err := repo.ExistsByID(1)
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting it again hits the existence check
	w = doJSON(router, http.MethodDelete, "/api/books/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBooks_Upload(t *testing.T) {
	router, repo, cleanup := setupBooksRouter(t)
	defer cleanup()

	body := `[` + createBookBody + `,
		{"book_id": "BK002", "author_name": "Andrew Hunt", "title_name": "The Pragmatic Programmer", "type": "reference", "status": "available"},
		{"book_id": "!!", "author_name": "Bad", "title_name": "Row", "type": "reference", "status": "available"}]`

	w := doJSON(router, http.MethodPost, "/api/books/upload", body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "2 books uploaded")
	assert.Contains(t, w.Body.String(), "row 3")

	_, total, err := repo.List(listOptions(t))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestBooks_SearchRoute(t *testing.T) {
	router, _, cleanup := setupBooksRouter(t)
	defer cleanup()

	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/books", createBookBody).Code)
	other := `{"book_id": "BK002", "author_name": "Andrew Hunt", "title_name": "The Pragmatic Programmer", "type": "reference", "status": "borrowed"}`
	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/books", other).Code)

	w := doJSON(router, http.MethodGet, "/api/search/books?key=status&value=borrowed", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Records []entities.Book `json:"records"`
		Total   int64           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "BK002", resp.Records[0].BookID)
}

func TestBooks_CSRFBlocksWriteWithoutToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_books_" + t.Name() + ".db"
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}()
	require.NoError(t, db.AutoMigrate(&entities.Book{}))

	repo := books.NewRepository(db)
	controller := NewBooksController(repo)

	router := gin.New()
	router.Use(auth.CSRFMiddleware([]byte("test-secret-key-32-bytes-long!!"), false))
	router.POST("/api/books", controller.Create)

	req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(createBookBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "CSRF token invalid or missing")
	assert.NotContains(t, w.Body.String(), "Book created successfully")

	_, total, err := repo.List(listOptions(t))
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestSearchLibrary_Union(t *testing.T) {
	router, _, cleanup := setupBooksRouter(t)
	defer cleanup()

	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/books", createBookBody).Code)

	w := doJSON(router, http.MethodGet, "/api/search/library?key=title_name&value=clean", "")
	require.Equal(t, http.StatusOK, w.Code)

	var rows []search.LibraryRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "books", rows[0].Source)
	assert.Equal(t, "BK001", rows[0].ItemID)
}

func TestSearchLibrary_InvalidKey(t *testing.T) {
	router, _, cleanup := setupBooksRouter(t)
	defer cleanup()

	w := doJSON(router, http.MethodGet, "/api/search/library?key=book_id&value=BK", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid search key")
}
