package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"librarysystem/internal/database"
	"librarysystem/internal/entities"
	"librarysystem/internal/validation"
)

// BookStore defines database operations for book management.
type BookStore interface {
	List(opts database.ListOptions) ([]entities.Book, int64, error)
	GetByID(id uint) (*entities.Book, error)
	Create(book *entities.Book) error
	Update(book *entities.Book) error
	Delete(id uint) error
	ExistsByID(id uint) (bool, error)
}

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

// List returns a page of books.
// GET /api/books
func (controller *BooksController) List(c *gin.Context) {
	rows, total, err := controller.store.List(listOptionsFromQuery(c))
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	respondRecords(c, rows, total)
}

// Get returns a single book row.
// GET /api/books/:id
func (controller *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	book, err := controller.store.GetByID(id)
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// Create validates the payload and inserts a new book.
// POST /api/books
func (controller *BooksController) Create(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validation.CreateBookSchema.Validate(payload); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	book := bookFromPayload(payload)
	if err := controller.store.Create(book); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			respondMsg(c, http.StatusBadRequest,
				fmt.Sprintf("Unable to create book, %s already exists", book.BookID))
			return
		}
		respondInternalError(c, err, "create book")
		return
	}

	respondMsg(c, http.StatusCreated, "Book created successfully")
}

// Upload bulk-inserts a JSON array of books. Rows are validated and inserted
// individually; failures are collected per row instead of aborting the batch.
// POST /api/books/upload
func (controller *BooksController) Upload(c *gin.Context) {
	var payloads []map[string]any
	if err := c.ShouldBindJSON(&payloads); err != nil {
		respondMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	inserted := 0
	var rowErrors []string
	for i, payload := range payloads {
		if errs := validation.CreateBookSchema.Validate(payload); len(errs) > 0 {
			for _, msg := range errs {
				rowErrors = append(rowErrors, fmt.Sprintf("row %d: %s", i+1, msg))
			}
			continue
		}

		book := bookFromPayload(payload)
		if err := controller.store.Create(book); err != nil {
			if errors.Is(err, database.ErrDuplicateKey) {
				rowErrors = append(rowErrors,
					fmt.Sprintf("row %d: Unable to create book, %s already exists", i+1, book.BookID))
				continue
			}
			respondInternalError(c, err, "upload books")
			return
		}
		inserted++
	}

	status := http.StatusCreated
	if inserted == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{
		"msg":    fmt.Sprintf("%d books uploaded", inserted),
		"errors": rowErrors,
	})
}

// Update replaces all mutable fields of an existing book.
// PUT /api/books/:id
func (controller *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validation.UpdateBookSchema.Validate(payload); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	book, err := controller.store.GetByID(id)
	if err != nil {
		respondInternalError(c, err, "update book")
		return
	}

	updated := bookFromPayload(payload)
	updated.ID = book.ID
	updated.CreatedAt = book.CreatedAt

	if err := controller.store.Update(updated); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			respondMsg(c, http.StatusBadRequest,
				fmt.Sprintf("Unable to create book, %s already exists", updated.BookID))
			return
		}
		respondInternalError(c, err, "update book")
		return
	}

	respondMsg(c, http.StatusOK, "Book updated successfully")
}

// Delete removes a book row.
// DELETE /api/books/:id
func (controller *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := controller.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete book")
		return
	}
	respondMsg(c, http.StatusOK, "Book deleted successfully")
}

func bookFromPayload(payload map[string]any) *entities.Book {
	return &entities.Book{
		BookID:     stringField(payload, "book_id"),
		AuthorName: stringField(payload, "author_name"),
		TitleName:  stringField(payload, "title_name"),
		Type:       stringField(payload, "type"),
		Status:     stringField(payload, "status"),
	}
}
