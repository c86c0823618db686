// Package shelf implements the reading-state service: it mediates
// between untrusted request payloads and the store, enforcing the
// domain rules for status values and page progress.
package shelf

import (
	"errors"
	"fmt"

	"booknook/internal/entities"
	"booknook/internal/storage"
)

var (
	ErrInvalidStatus    = errors.New("invalid reading status")
	ErrBookRequired     = errors.New("book id is required")
	ErrBookNotFound     = errors.New("book not found")
	ErrUserBookNotFound = errors.New("reading record not found")
	ErrNegativePage     = errors.New("current page must not be negative")
	ErrPageOutOfRange   = errors.New("current page exceeds the book's page count")
)

// Store is the persistence capability the service needs: reading-state
// ownership plus read access to the catalog for page-bound checks.
type Store interface {
	storage.ReadingState
	GetBook(id uint) (*entities.Book, error)
}

// AddRequest is the untrusted payload for adding a book to a shelf.
// The user ID never comes from the payload; it is forced to the
// authenticated identity by the caller of Add.
type AddRequest struct {
	BookID      uint   `json:"bookId"`
	Status      string `json:"status"`
	CurrentPage *int   `json:"currentPage"`
}

// UpdateRequest is the untrusted payload for a partial update.
type UpdateRequest struct {
	Status      *string `json:"status"`
	CurrentPage *int    `json:"currentPage"`
}

// Service enforces the reading-state domain rules.
type Service struct {
	store Store
}

// NewService creates a new reading-state service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns the authenticated user's full shelf, each entry joined
// with its book.
func (s *Service) List(userID uint) ([]entities.UserBookWithBook, error) {
	return s.store.GetUserBooks(userID)
}

// ListByStatus returns the user's shelf entries with the given status.
// An unrecognized status is rejected before the store is queried.
func (s *Service) ListByStatus(userID uint, status string) ([]entities.UserBookWithBook, error) {
	parsed := entities.ReadingStatus(status)
	if !parsed.IsValid() {
		return nil, ErrInvalidStatus
	}
	return s.store.GetUserBooksByStatus(userID, parsed)
}

// Add creates a shelf entry for the authenticated user. The referenced
// book must exist and the starting page must fit within it.
func (s *Service) Add(userID uint, req AddRequest) (*entities.UserBook, error) {
	if req.BookID == 0 {
		return nil, ErrBookRequired
	}
	status := entities.ReadingStatus(req.Status)
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	book, err := s.store.GetBook(req.BookID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to look up book %d: %w", req.BookID, err)
	}

	currentPage := 0
	if req.CurrentPage != nil {
		currentPage = *req.CurrentPage
	}
	if err := checkPage(currentPage, book.TotalPages); err != nil {
		return nil, err
	}

	return s.store.AddUserBook(storage.NewUserBook{
		UserID:      userID,
		BookID:      req.BookID,
		Status:      status,
		CurrentPage: currentPage,
	})
}

// Update applies a partial update to a shelf entry. Only the supplied
// fields change; the page bound is re-checked against the joined book.
// An empty patch is a valid no-op.
func (s *Service) Update(id uint, req UpdateRequest) (*entities.UserBook, error) {
	patch := storage.UserBookPatch{CurrentPage: req.CurrentPage}
	if req.Status != nil {
		status := entities.ReadingStatus(*req.Status)
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}
		patch.Status = &status
	}

	existing, err := s.store.GetUserBook(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserBookNotFound
		}
		return nil, fmt.Errorf("failed to look up reading record %d: %w", id, err)
	}

	if req.CurrentPage != nil {
		if err := checkPage(*req.CurrentPage, existing.Book.TotalPages); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.UpdateUserBook(id, patch)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserBookNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Remove deletes a shelf entry. Removing a missing ID is a no-op, so
// the operation always succeeds from the caller's perspective.
func (s *Service) Remove(id uint) error {
	return s.store.RemoveUserBook(id)
}

func checkPage(page, totalPages int) error {
	if page < 0 {
		return ErrNegativePage
	}
	if page > totalPages {
		return ErrPageOutOfRange
	}
	return nil
}
