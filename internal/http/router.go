// Package http wires the gin router: session and auth middleware, the
// resource controllers, search dispatch and the existence checks.
package http

import (
	"github.com/gin-gonic/gin"

	"librarysystem/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestID())

	// CSRF must run before session so the session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	if cfg.AuthService != nil && cfg.SessionManager != nil {
		auth.NewHandlers(cfg.AuthService, cfg.SessionManager).RegisterRoutes(router)
	}

	accountColumns := []string{"account_id", "name", "course", "year_and_section", "email", "account_type"}
	bookColumns := []string{"book_id", "author_name", "title_name", "type", "status"}
	paperColumns := []string{"acadp_id", "author_name", "title_name", "status", "course", "type"}
	activityColumns := []string{"account_id", "activity"}
	transactionColumns := []string{"account_id", "transaction_id", "item_id", "status"}

	accountsController := NewAccountsController(cfg.AccountStore, cfg.BcryptCost)
	accounts := router.Group("/api/accounts")
	accounts.GET("", SearchFilter(accountColumns...), accountsController.List)
	accounts.POST("", accountsController.Create)
	accounts.GET("/:id", CheckIDExists(cfg.AccountStore, "accounts"), accountsController.Get)
	accounts.PUT("/:id", CheckIDExists(cfg.AccountStore, "accounts"), accountsController.Update)
	accounts.DELETE("/:id", CheckIDExists(cfg.AccountStore, "accounts"), accountsController.Delete)

	booksController := NewBooksController(cfg.BookStore)
	books := router.Group("/api/books")
	books.GET("", SearchFilter(bookColumns...), booksController.List)
	books.POST("", booksController.Create)
	books.POST("/upload", booksController.Upload)
	books.GET("/:id", CheckIDExists(cfg.BookStore, "books"), booksController.Get)
	books.PUT("/:id", CheckIDExists(cfg.BookStore, "books"), booksController.Update)
	books.DELETE("/:id", CheckIDExists(cfg.BookStore, "books"), booksController.Delete)

	papersController := NewPapersController(cfg.PaperStore)
	papers := router.Group("/api/academic-papers")
	papers.GET("", SearchFilter(paperColumns...), papersController.List)
	papers.POST("", papersController.Create)
	papers.POST("/upload", papersController.Upload)
	papers.GET("/:id", CheckIDExists(cfg.PaperStore, "academic_papers"), papersController.Get)
	papers.PUT("/:id", CheckIDExists(cfg.PaperStore, "academic_papers"), papersController.Update)
	papers.DELETE("/:id", CheckIDExists(cfg.PaperStore, "academic_papers"), papersController.Delete)

	activitiesController := NewActivitiesController(cfg.ActivityStore)
	activities := router.Group("/api/activities")
	activities.GET("", SearchFilter(activityColumns...), activitiesController.List)
	activities.POST("", activitiesController.Create)
	activities.GET("/:id", CheckIDExists(cfg.ActivityStore, "activities"), activitiesController.Get)
	activities.PUT("/:id", CheckIDExists(cfg.ActivityStore, "activities"), activitiesController.Update)
	activities.DELETE("/:id", CheckIDExists(cfg.ActivityStore, "activities"), activitiesController.Delete)

	transactionsController := NewTransactionsController(cfg.TransactionStore, cfg.ActivityRecorder)
	transactions := router.Group("/api/transactions")
	transactions.GET("", SearchFilter(transactionColumns...), transactionsController.List)
	transactions.POST("", transactionsController.Create)
	transactions.GET("/:id", CheckIDExists(cfg.TransactionStore, "transactions"), transactionsController.Get)
	transactions.PUT("/:id", CheckIDExists(cfg.TransactionStore, "transactions"), transactionsController.Update)
	transactions.DELETE("/:id", CheckIDExists(cfg.TransactionStore, "transactions"), transactionsController.Delete)

	// Dedicated search aliases for each resource, same whitelists and
	// handlers as the list routes.
	searchGroup := router.Group("/api/search")
	searchGroup.GET("/accounts", SearchFilter(accountColumns...), accountsController.List)
	searchGroup.GET("/books", SearchFilter(bookColumns...), booksController.List)
	searchGroup.GET("/academic-papers", SearchFilter(paperColumns...), papersController.List)
	searchGroup.GET("/activities", SearchFilter(activityColumns...), activitiesController.List)
	searchGroup.GET("/transactions", SearchFilter(transactionColumns...), transactionsController.List)

	if cfg.LibraryStore != nil {
		libraryController := NewLibraryController(cfg.LibraryStore)
		searchGroup.GET("/library", libraryController.Search)
	}

	return router
}
