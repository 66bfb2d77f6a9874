package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"librarysystem/internal/database/search"
)

// Context keys the search dispatch middleware stashes for list handlers.
const (
	contextSearchKey   = "search_key"
	contextSearchValue = "search_value"
)

// SearchFilter narrows a list query to a single column match. The key must
// be one of the entity's allowed text columns; with no key/value pair the
// request passes through to the normal list behavior.
func SearchFilter(allowed ...string) gin.HandlerFunc {
	allowedKeys := make(map[string]bool, len(allowed))
	for _, key := range allowed {
		allowedKeys[key] = true
	}

	return func(c *gin.Context) {
		key := c.Query("key")
		value := c.Query("value")
		if key == "" && value == "" {
			c.Next()
			return
		}

		if !allowedKeys[key] {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid search key"})
			return
		}

		c.Set(contextSearchKey, key)
		c.Set(contextSearchValue, value)
		c.Next()
	}
}

// LibraryStore runs the cross-entity union over books and academic papers.
type LibraryStore interface {
	All() ([]search.LibraryRecord, error)
	Filter(key, value string) ([]search.LibraryRecord, error)
}

// LibraryController serves /api/search/library.
type LibraryController struct {
	store LibraryStore
}

func NewLibraryController(store LibraryStore) *LibraryController {
	return &LibraryController{store: store}
}

// Search returns the union of papers and books, optionally narrowed by a
// whitelisted key/value filter.
func (controller *LibraryController) Search(c *gin.Context) {
	key := c.Query("key")
	value := c.Query("value")

	if key == "" && value == "" {
		rows, err := controller.store.All()
		if err != nil {
			respondInternalError(c, err, "library search")
			return
		}
		c.JSON(http.StatusOK, rows)
		return
	}

	if key == "" || value == "" {
		respondMsg(c, http.StatusBadRequest, "Missing search key or value")
		return
	}

	rows, err := controller.store.Filter(key, value)
	if err != nil {
		if errors.Is(err, search.ErrInvalidKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search key"})
			return
		}
		respondInternalError(c, err, "library search")
		return
	}
	c.JSON(http.StatusOK, rows)
}
