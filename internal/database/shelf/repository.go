// Package shelf provides database operations for per-user reading
// state: the user_books join table plus its progress fields.
package shelf

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"booknook/internal/entities"
	"booknook/internal/storage"
)

// Repository handles reading-state database operations. It exclusively
// owns user_books rows; users and books are read-only references.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reading-state repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetUserBooks returns every shelf entry owned by userID, each joined
// with its book. A missing referenced book is a data-integrity fault.
func (r *Repository) GetUserBooks(userID uint) ([]entities.UserBookWithBook, error) {
	var userBooks []entities.UserBook
	err := r.db.Preload("Book").Where("user_id = ?", userID).Find(&userBooks).Error
	if err != nil {
		return nil, err
	}
	return joinBooks(userBooks)
}

// GetUserBooksByStatus returns the shelf entries with the given status.
// The status must already be validated by the caller.
func (r *Repository) GetUserBooksByStatus(userID uint, status entities.ReadingStatus) ([]entities.UserBookWithBook, error) {
	var userBooks []entities.UserBook
	err := r.db.Preload("Book").
		Where("user_id = ? AND status = ?", userID, status).
		Find(&userBooks).Error
	if err != nil {
		return nil, err
	}
	return joinBooks(userBooks)
}

// GetUserBook retrieves a single shelf entry with its book.
func (r *Repository) GetUserBook(id uint) (*entities.UserBookWithBook, error) {
	var userBook entities.UserBook
	err := r.db.Preload("Book").First(&userBook, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	if userBook.Book.ID == 0 {
		return nil, fmt.Errorf("%w: book %d referenced by user_book %d", storage.ErrIntegrity, userBook.BookID, userBook.ID)
	}
	joined := entities.UserBookWithBook{UserBook: userBook, Book: userBook.Book}
	return &joined, nil
}

// AddUserBook creates a shelf entry. DateAdded is set to the current
// time; DateCompleted is set only when the initial status is completed.
func (r *Repository) AddUserBook(data storage.NewUserBook) (*entities.UserBook, error) {
	now := time.Now()
	userBook := &entities.UserBook{
		UserID:      data.UserID,
		BookID:      data.BookID,
		Status:      data.Status,
		CurrentPage: data.CurrentPage,
		DateAdded:   now,
	}
	if data.Status == entities.StatusCompleted {
		userBook.DateCompleted = &now
	}

	if err := r.db.Omit("Book", "User").Create(userBook).Error; err != nil {
		return nil, err
	}
	return userBook, nil
}

// UpdateUserBook applies only the supplied fields. DateCompleted is set
// when the status transitions into completed from any other status and
// is never cleared or overwritten afterwards.
func (r *Repository) UpdateUserBook(id uint, patch storage.UserBookPatch) (*entities.UserBook, error) {
	var userBook entities.UserBook
	err := r.db.First(&userBook, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	if patch.Status != nil {
		newStatus := *patch.Status
		if newStatus == entities.StatusCompleted && userBook.Status != entities.StatusCompleted {
			now := time.Now()
			userBook.DateCompleted = &now
		}
		userBook.Status = newStatus
	}
	if patch.CurrentPage != nil {
		userBook.CurrentPage = *patch.CurrentPage
	}

	if err := r.db.Omit("Book", "User").Save(&userBook).Error; err != nil {
		return nil, err
	}
	return &userBook, nil
}

// RemoveUserBook hard-deletes a shelf entry. Deleting a missing ID is a
// no-op, not an error.
func (r *Repository) RemoveUserBook(id uint) error {
	return r.db.Delete(&entities.UserBook{}, id).Error
}

func joinBooks(userBooks []entities.UserBook) ([]entities.UserBookWithBook, error) {
	joined := make([]entities.UserBookWithBook, 0, len(userBooks))
	for _, ub := range userBooks {
		if ub.Book.ID == 0 {
			return nil, fmt.Errorf("%w: book %d referenced by user_book %d", storage.ErrIntegrity, ub.BookID, ub.ID)
		}
		joined = append(joined, entities.UserBookWithBook{UserBook: ub, Book: ub.Book})
	}
	return joined, nil
}
