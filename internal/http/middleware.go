package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is set on every response for log correlation.
const RequestIDHeader = "X-Request-ID"

// RequestID attaches a request id to the context and response. An id supplied
// by the client is kept so upstream proxies can trace through.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Existser reports whether a row with the given id is present.
type Existser interface {
	ExistsByID(id uint) (bool, error)
}

// CheckIDExists verifies the :id route parameter before the handler runs:
// 400 for a non-numeric id, 404 when no row matches.
func CheckIDExists(store Existser, table string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param("id")
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, MsgResponse{Msg: "Invalid id"})
			return
		}

		exists, err := store.ExistsByID(uint(id))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, MsgResponse{Msg: "Server error"})
			return
		}
		if !exists {
			c.AbortWithStatusJSON(http.StatusNotFound, MsgResponse{
				Msg: fmt.Sprintf("Couldn't find ID %d in %s", id, table),
			})
			return
		}

		c.Next()
	}
}
