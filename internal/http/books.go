package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"booknook/internal/entities"
	"booknook/internal/storage"
)

// CatalogStore defines the catalog operations the controller needs.
type CatalogStore interface {
	GetBook(id uint) (*entities.Book, error)
	GetBooks() ([]entities.Book, error)
	CreateBook(data storage.NewBook) (*entities.Book, error)
}

type BooksController struct {
	store CatalogStore
}

func NewBooksController(store CatalogStore) *BooksController {
	return &BooksController{store: store}
}

// GetBooks returns the full catalog.
// GET /api/books
func (bc *BooksController) GetBooks(c *gin.Context) {
	books, err := bc.store.GetBooks()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, books)
}

// GetBook returns a single catalog entry.
// GET /api/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBook(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondNotFound(c, "Book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

type createBookRequest struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	CoverImage  string  `json:"coverImage"`
	TotalPages  int     `json:"totalPages"`
	Description *string `json:"description"`
	Rating      *int    `json:"rating"`
}

// CreateBook adds a book to the shared catalog. The catalog is
// append-only; there is no update or delete counterpart.
// POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Title == "" || req.Author == "" {
		respondBadRequest(c, "title and author are required")
		return
	}
	if req.TotalPages <= 0 {
		respondBadRequest(c, "totalPages must be a positive integer")
		return
	}

	book, err := bc.store.CreateBook(storage.NewBook{
		Title:       req.Title,
		Author:      req.Author,
		CoverImage:  req.CoverImage,
		TotalPages:  req.TotalPages,
		Description: req.Description,
		Rating:      req.Rating,
	})
	if err != nil {
		respondInternalError(c, err, "create book")
		return
	}
	c.JSON(http.StatusCreated, book)
}
