package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"librarysystem/internal/auth"
	"librarysystem/internal/config"
	"librarysystem/internal/database"
	"librarysystem/internal/database/accounts"
	"librarysystem/internal/database/activities"
	"librarysystem/internal/database/books"
	"librarysystem/internal/database/papers"
	"librarysystem/internal/database/search"
	"librarysystem/internal/database/transactions"
	http_controllers "librarysystem/internal/http"
	"librarysystem/internal/scheduler"
	"librarysystem/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until an interrupt or termination signal,
// then drains it within the configured shutdown timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the database, repositories, authentication, background tasks
// and router together, then serves until shutdown.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Library System v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	accountRepo := accounts.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	paperRepo := papers.NewRepository(db.DB)
	activityRepo := activities.NewRepository(db.DB)
	transactionRepo := transactions.NewRepository(db.DB)
	libraryRepo := search.NewRepository(db.DB)

	// Background tasks: overdue sweeps and activity log retention.
	var taskClient *tasks.Client
	var maintenance *scheduler.MaintenanceScheduler
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewOverdueSweepQueue(transactionRepo),
			tasks.NewCleanupActivitiesQueue(activityRepo),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		maintenance = scheduler.NewMaintenanceScheduler(taskClient, cfg.Tasks)
		if err := maintenance.Start(taskCtx); err != nil {
			log.Fatalf("Failed to start maintenance scheduler: %v", err)
		}
	}

	authService := auth.NewService(db.DB, cfg.Auth)

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	authMiddleware := auth.NewMiddleware(authService, sessionManager)

	// CSRF stays off unless a secret is explicitly configured: without one
	// there is no stable key to sign tokens across restarts.
	var csrfSecret []byte
	if cfg.Auth.SessionSecret != "" {
		csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
		if err != nil {
			// Not hex, use as raw bytes
			csrfSecret = []byte(cfg.Auth.SessionSecret)
		}
	} else {
		log.Printf("CSRF protection disabled (set AUTH_SESSION_SECRET to enable)")
	}

	hasAccounts, _ := authService.HasAccounts()
	if !hasAccounts {
		log.Printf("No accounts found. Run '%s create-admin' to create an administrator account.", os.Args[0])
	}

	routerCfg := http_controllers.RouterConfig{
		Database:         db.DB,
		Version:          version,
		AccountStore:     accountRepo,
		BookStore:        bookRepo,
		PaperStore:       paperRepo,
		ActivityStore:    activityRepo,
		TransactionStore: transactionRepo,
		ActivityRecorder: activityRepo,
		LibraryStore:     libraryRepo,
		AuthService:      authService,
		SessionManager:   sessionManager,
		AuthMiddleware:   authMiddleware,
		BcryptCost:       cfg.Auth.BcryptCost,
		CSRFSecret:       csrfSecret,
		SecureCookies:    cfg.Auth.SecureCookies,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
