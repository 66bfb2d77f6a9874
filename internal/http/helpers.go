package http

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"librarysystem/internal/database"
)

// --- Response Types ---

// MsgResponse is the confirmation envelope for mutations and errors.
type MsgResponse struct {
	Msg string `json:"msg"`
}

// ErrorsResponse carries accumulated validation failures.
type ErrorsResponse struct {
	Errors []string `json:"errors"`
}

// RecordsResponse wraps list results. Total counts all rows matching the
// filter, ignoring pagination.
type RecordsResponse struct {
	Records any   `json:"records"`
	Total   int64 `json:"total"`
}

// --- Response Helpers ---

func respondMsg(c *gin.Context, status int, msg string) {
	c.JSON(status, MsgResponse{Msg: msg})
}

func respondValidationErrors(c *gin.Context, errs []string) {
	c.JSON(http.StatusBadRequest, ErrorsResponse{Errors: errs})
}

func respondRecords(c *gin.Context, records any, total int64) {
	c.JSON(http.StatusOK, RecordsResponse{Records: records, Total: total})
}

// respondInternalError logs the error and sends a generic 500. The actual
// error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	respondMsg(c, http.StatusInternalServerError, "Server error")
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates the numeric row id from the URL.
// Responds with a 400 error and returns (0, false) when malformed.
func parseIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondMsg(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// listOptionsFromQuery builds the shared list options from the query string
// plus the key/value filter stashed by the search dispatch middleware.
func listOptionsFromQuery(c *gin.Context) database.ListOptions {
	opts := database.ListOptions{
		Search:      c.Query("search"),
		SortBy:      c.Query("sort_by"),
		Order:       c.Query("order"),
		SearchKey:   c.GetString(contextSearchKey),
		SearchValue: c.GetString(contextSearchValue),
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		opts.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		opts.Offset = offset
	}
	return opts
}

// --- Payload Helpers ---

// Create/update bodies arrive as loose maps so the validation schemas can
// report every field failure at once before any typed conversion happens.

func stringField(payload map[string]any, field string) string {
	value, ok := payload[field]
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func intField(payload map[string]any, field string) int {
	value, ok := payload[field]
	if !ok {
		return 0
	}
	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

var dateLayouts = []string{
	"2006-01-02T15:04:05.000Z07:00",
	time.RFC3339,
	"2006-01-02",
}

// parseDateField parses a date field. The literal string "null" and an empty
// value both mean absent.
func parseDateField(payload map[string]any, field string) (*time.Time, bool) {
	raw := stringField(payload, field)
	if raw == "" || raw == "null" {
		return nil, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	return nil, false
}
