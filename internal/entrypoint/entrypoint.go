// Package entrypoint assembles the application: storage backend, auth,
// audit, routes and the HTTP server with graceful shutdown.
package entrypoint

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"booknook/internal/audit"
	"booknook/internal/auth"
	"booknook/internal/config"
	"booknook/internal/database"
	"booknook/internal/database/memory"
	"booknook/internal/http"
	"booknook/internal/shelf"
	"booknook/internal/storage"
)

// Run starts the application and blocks until SIGINT/SIGTERM.
func Run(cfg *config.Config, version string) {
	if err := run(cfg, version); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config, version string) error {
	store, gormDB, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.Catalog.SeedEnabled {
		if err := database.SeedCatalog(store); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	sessionSecret := cfg.Auth.SessionSecret
	if sessionSecret == "" {
		sessionSecret, err = auth.GenerateSessionSecret()
		if err != nil {
			return fmt.Errorf("failed to generate session secret: %w", err)
		}
		log.Printf("Generated ephemeral session secret; set AUTH_SESSION_SECRET to persist sessions across restarts")
	}

	var sqlDB *sql.DB
	if gormDB != nil {
		sqlDB, err = gormDB.DB()
		if err != nil {
			return fmt.Errorf("failed to access underlying database: %w", err)
		}
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize sessions: %w", err)
	}

	var auditor *audit.Auditor
	if cfg.Audit.Enabled {
		auditor = audit.NewAuditor(cfg.Audit.Dir)
		scheduler := audit.NewRetentionScheduler(auditor, cfg.Audit.RetentionDays)
		if err := scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start audit retention: %w", err)
		}
		defer scheduler.Stop()
	}

	authService := auth.NewService(store, cfg.Auth)
	authMiddleware := auth.NewMiddleware(authService, sessionManager)
	rateLimiter := auth.NewRateLimiter(auth.RateLimitConfig{
		MaxAttempts:     cfg.Auth.MaxLoginAttempts,
		WindowDuration:  cfg.Auth.RateLimitWindow,
		LockoutDuration: cfg.Auth.LockoutDuration,
	})
	authController := auth.NewController(authService, sessionManager, rateLimiter, auditor)
	defer authController.Stop()

	shelfService := shelf.NewService(store)

	router := http.NewRouter(http.RouterConfig{
		DB:                  gormDB,
		Version:             version,
		SessionManager:      sessionManager,
		AuthMiddleware:      authMiddleware,
		AuthController:      authController,
		BooksController:     http.NewBooksController(store),
		UserBooksController: http.NewUserBooksController(shelfService, auditor),
		CSRFEnabled:         cfg.Auth.CSRFEnabled,
		CSRFSecret:          []byte(sessionSecret),
		CSRFSecure:          cfg.Auth.SecureCookies,
	})

	return serve(cfg, router, version)
}

// openStore selects the storage backend from configuration. The gorm
// handle is nil for the memory backend.
func openStore(cfg *config.Config) (storage.Store, *gorm.DB, func(), error) {
	switch cfg.Database.Backend {
	case config.StorageBackendMemory:
		log.Printf("Using in-memory store; data is lost on shutdown")
		return memory.NewStore(), nil, func() {}, nil
	case config.StorageBackendSQLite, "":
		db, err := database.NewDatabase(cfg.Database.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				log.Printf("Failed to close database: %v", err)
			}
		}
		return database.NewStore(db), db.DB, closeFn, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Database.Backend)
	}
}

func serve(cfg *config.Config, handler nethttp.Handler, version string) error {
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("BookNook %s listening on %s", version, addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)
	}

	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Printf("Server stopped")
	return nil
}
