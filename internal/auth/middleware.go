package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"librarysystem/internal/entities"
)

// Context keys for the authenticated account
const (
	ContextKeyAccountID   = "auth_account_id"
	ContextKeyAccountType = "auth_account_type"
)

// Middleware guards the API surface with session authentication.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
	publicPaths    map[string]bool
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service, sessionManager *SessionManager) *Middleware {
	publicPaths := map[string]bool{
		"/health":      true,
		"/ping":        true,
		"/api/login":   true,
		"/api/logout":  true,
		"/favicon.ico": true,
	}

	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
		publicPaths:    publicPaths,
	}
}

// Handler returns a gin handler that rejects unauthenticated requests to
// protected paths. The account row is re-fetched each request, so a deleted
// account loses access immediately even with a live session.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		accountID := m.sessionManager.GetAccountID(c.Request)
		if accountID == "" {
			m.reject(c)
			return
		}

		account, err := m.service.GetByAccountID(accountID)
		if err != nil {
			m.reject(c)
			return
		}

		c.Set(ContextKeyAccountID, account.AccountID)
		c.Set(ContextKeyAccountType, account.AccountType)
		c.Next()
	}
}

func (m *Middleware) reject(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "Unauthorized: Please log in first",
	})
}

// isPublicPath checks if a path is accessible without authentication.
func (m *Middleware) isPublicPath(path string) bool {
	if m.publicPaths[path] {
		return true
	}
	if !strings.HasPrefix(path, "/api/") {
		return true
	}
	return false
}

// GetAccountID retrieves the authenticated account's business key from the
// gin context. Returns "" on public paths.
func GetAccountID(c *gin.Context) string {
	if id, exists := c.Get(ContextKeyAccountID); exists {
		if accountID, ok := id.(string); ok {
			return accountID
		}
	}
	return ""
}

// GetAccountType retrieves the authenticated account's type from the context.
func GetAccountType(c *gin.Context) entities.AccountType {
	if t, exists := c.Get(ContextKeyAccountType); exists {
		if accountType, ok := t.(entities.AccountType); ok {
			return accountType
		}
	}
	return ""
}
