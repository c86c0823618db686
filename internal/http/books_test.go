package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booknook/internal/database/memory"
	"booknook/internal/entities"
	"booknook/internal/storage"
)

func setupBooksRouter(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	controller := NewBooksController(store)

	router := gin.New()
	router.GET("/api/books", controller.GetBooks)
	router.GET("/api/books/:id", controller.GetBook)
	router.POST("/api/books", controller.CreateBook)

	return router, store
}

func TestBooksController_GetBooks(t *testing.T) {
	router, store := setupBooksRouter(t)

	_, err := store.CreateBook(storage.NewBook{Title: "Dune", Author: "Frank Herbert", TotalPages: 412})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var books []entities.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestBooksController_GetBook(t *testing.T) {
	router, store := setupBooksRouter(t)

	created, err := store.CreateBook(storage.NewBook{Title: "Dune", Author: "Frank Herbert", TotalPages: 412})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/books/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var book entities.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
	assert.Equal(t, created.ID, book.ID)
}

func TestBooksController_GetBook_NotFound(t *testing.T) {
	router, _ := setupBooksRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/books/999", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestBooksController_GetBook_InvalidID(t *testing.T) {
	router, _ := setupBooksRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/books/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBooksController_CreateBook(t *testing.T) {
	router, _ := setupBooksRouter(t)

	body := `{"title":"Dune","author":"Frank Herbert","totalPages":412,"rating":5}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var book entities.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
	assert.NotZero(t, book.ID)
	require.NotNil(t, book.Rating)
	assert.Equal(t, 5, *book.Rating)
}

func TestBooksController_CreateBook_Validation(t *testing.T) {
	router, _ := setupBooksRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing title", `{"author":"A","totalPages":100}`},
		{"missing author", `{"title":"T","totalPages":100}`},
		{"zero pages", `{"title":"T","author":"A","totalPages":0}`},
		{"negative pages", `{"title":"T","author":"A","totalPages":-1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
