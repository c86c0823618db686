// Package books provides database operations for the shared catalog.
// The catalog is append-only: books are created by seeding or an
// administrative call and never mutated or deleted afterwards.
package books

import (
	"errors"

	"gorm.io/gorm"

	"booknook/internal/entities"
	"booknook/internal/storage"
)

// Repository handles catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetBook retrieves a book by ID.
func (r *Repository) GetBook(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// GetBooks returns the full catalog. Order is not contractual; in
// practice it is insertion order.
func (r *Repository) GetBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Find(&books).Error
	return books, err
}

// CreateBook inserts a new catalog record and assigns a fresh ID.
// Description and rating stay nil when not supplied.
func (r *Repository) CreateBook(data storage.NewBook) (*entities.Book, error) {
	book := &entities.Book{
		Title:       data.Title,
		Author:      data.Author,
		CoverImage:  data.CoverImage,
		TotalPages:  data.TotalPages,
		Description: data.Description,
		Rating:      data.Rating,
	}
	if err := r.db.Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}
