package auth

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers exposes the login/logout/me endpoints.
type Handlers struct {
	service        *Service
	sessionManager *SessionManager
}

// NewHandlers creates the authentication handlers.
func NewHandlers(service *Service, sessionManager *SessionManager) *Handlers {
	return &Handlers{
		service:        service,
		sessionManager: sessionManager,
	}
}

// RegisterRoutes attaches the authentication endpoints to the router.
func (h *Handlers) RegisterRoutes(router gin.IRouter) {
	router.POST("/api/login", h.Login)
	router.GET("/api/logout", h.Logout)
	router.GET("/api/me", h.Me)
}

type loginRequest struct {
	AccountID string `json:"account_id"`
	Password  string `json:"password"`
}

// Login verifies credentials and establishes a session.
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	account, err := h.service.Authenticate(req.AccountID, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication failed"})
		return
	}

	if err := h.sessionManager.CreateSession(c.Request, account); err != nil {
		log.Printf("failed to create session for %s: %v", account.AccountID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    account.AccountID,
		"name":    account.Name,
		"type":    account.AccountType,
	})
}

// Logout destroys the current session. Calling it without a session is not
// an error.
func (h *Handlers) Logout(c *gin.Context) {
	if err := h.sessionManager.DestroySession(c.Request); err != nil {
		log.Printf("failed to destroy session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the account row behind the current session.
func (h *Handlers) Me(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Please log in first"})
		return
	}

	account, err := h.service.GetByAccountID(accountID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Please log in first"})
		return
	}

	c.JSON(http.StatusOK, account)
}
