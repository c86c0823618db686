// Package http wires the JSON API: public catalog and auth routes, and
// a session-protected group for per-user reading state.
package http

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"booknook/internal/auth"
)

// RouterConfig carries everything the router needs to assemble the
// middleware chain and route groups.
type RouterConfig struct {
	DB      *gorm.DB // nil when the in-memory backend is active
	Version string

	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	AuthController *auth.Controller

	BooksController     *BooksController
	UserBooksController *UserBooksController

	// CSRF protection for cookie-authenticated mutations.
	CSRFEnabled bool
	CSRFSecret  []byte
	CSRFSecure  bool
}

// NewRouter builds the Gin engine with the full middleware chain.
// Order matters: sessions must load before the auth middleware resolves
// them, and CSRF must see the final request context.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(auth.SecurityHeadersMiddleware())

	if cfg.CSRFEnabled {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.CSRFSecure))
	}

	router.Use(cfg.SessionManager.SessionLoadSave())
	router.Use(cfg.AuthMiddleware.Handler())

	healthController := NewHealthController(cfg.DB, cfg.Version)
	router.GET("/health", healthController.Health)

	cfg.AuthController.RegisterRoutes(router)

	// Catalog reads are public; only shelf state is per-user.
	router.GET("/api/books", cfg.BooksController.GetBooks)
	router.GET("/api/books/:id", cfg.BooksController.GetBook)

	protected := router.Group("/", cfg.AuthMiddleware.RequireAuth())
	{
		protected.POST("/api/books", cfg.BooksController.CreateBook)

		protected.GET("/api/user-books", cfg.UserBooksController.List)
		protected.GET("/api/user-books/:status", cfg.UserBooksController.ListByStatus)
		protected.POST("/api/user-books", cfg.UserBooksController.Add)
		protected.PATCH("/api/user-books/:id", cfg.UserBooksController.Update)
		protected.DELETE("/api/user-books/:id", cfg.UserBooksController.Remove)
	}

	return router
}
