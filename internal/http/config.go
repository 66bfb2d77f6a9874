package http

import (
	"gorm.io/gorm"

	"librarysystem/internal/auth"
)

// RouterConfig carries every dependency the router wires into controllers
// and middleware.
type RouterConfig struct {
	Database *gorm.DB
	Version  string

	AccountStore     AccountStore
	BookStore        BookStore
	PaperStore       PaperStore
	ActivityStore    ActivityStore
	TransactionStore TransactionStore
	ActivityRecorder ActivityRecorder
	LibraryStore     LibraryStore

	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware

	BcryptCost    int
	CSRFSecret    []byte
	SecureCookies bool
}
