// Package memory provides a map-backed implementation of the storage
// contract for development and tests, selected by configuration
// (DATABASE_BACKEND=memory). IDs are monotonically increasing integers;
// a single mutex gives the single-writer discipline the maps need.
package memory

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"booknook/internal/entities"
	"booknook/internal/storage"
)

// Store keeps all records in process memory. Safe for concurrent use.
type Store struct {
	mu sync.Mutex

	users     map[uint]entities.User
	books     map[uint]entities.Book
	userBooks map[uint]entities.UserBook

	nextUserID     uint
	nextBookID     uint
	nextUserBookID uint
}

var _ storage.Store = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:          make(map[uint]entities.User),
		books:          make(map[uint]entities.Book),
		userBooks:      make(map[uint]entities.UserBook),
		nextUserID:     1,
		nextBookID:     1,
		nextUserBookID: 1,
	}
}

// --- Catalog ---

func (s *Store) GetBook(id uint) (*entities.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &book, nil
}

func (s *Store) GetBooks() ([]entities.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := make([]entities.Book, 0, len(s.books))
	// insertion order: ids are assigned sequentially
	for id := uint(1); id < s.nextBookID; id++ {
		if book, ok := s.books[id]; ok {
			books = append(books, book)
		}
	}
	return books, nil
}

func (s *Store) CreateBook(data storage.NewBook) (*entities.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book := entities.Book{
		ID:          s.nextBookID,
		Title:       data.Title,
		Author:      data.Author,
		CoverImage:  data.CoverImage,
		TotalPages:  data.TotalPages,
		Description: data.Description,
		Rating:      data.Rating,
	}
	s.nextBookID++
	s.books[book.ID] = book
	return &book, nil
}

// --- Identity ---

func (s *Store) GetUser(id uint) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(username string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) GetUserByEmail(email string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) CreateUser(data storage.NewUser) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == data.Username || strings.EqualFold(existing.Email, data.Email) {
			return nil, storage.ErrConflict
		}
	}

	profilePicture := data.ProfilePicture
	if profilePicture == "" {
		profilePicture = entities.DefaultProfilePicture
	}

	user := entities.User{
		ID:             s.nextUserID,
		Username:       data.Username,
		Email:          data.Email,
		PasswordHash:   data.PasswordHash,
		Name:           data.Name,
		ProfilePicture: profilePicture,
	}
	s.nextUserID++
	s.users[user.ID] = user
	return &user, nil
}

// --- ReadingState ---

func (s *Store) GetUserBooks(userID uint) ([]entities.UserBookWithBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collectUserBooks(userID, nil)
}

func (s *Store) GetUserBooksByStatus(userID uint, status entities.ReadingStatus) ([]entities.UserBookWithBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collectUserBooks(userID, &status)
}

// collectUserBooks must be called with the mutex held.
func (s *Store) collectUserBooks(userID uint, status *entities.ReadingStatus) ([]entities.UserBookWithBook, error) {
	joined := make([]entities.UserBookWithBook, 0)
	for id := uint(1); id < s.nextUserBookID; id++ {
		userBook, ok := s.userBooks[id]
		if !ok || userBook.UserID != userID {
			continue
		}
		if status != nil && userBook.Status != *status {
			continue
		}
		book, ok := s.books[userBook.BookID]
		if !ok {
			return nil, fmt.Errorf("%w: book %d referenced by user_book %d", storage.ErrIntegrity, userBook.BookID, userBook.ID)
		}
		joined = append(joined, entities.UserBookWithBook{UserBook: userBook, Book: book})
	}
	return joined, nil
}

func (s *Store) GetUserBook(id uint) (*entities.UserBookWithBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userBook, ok := s.userBooks[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	book, ok := s.books[userBook.BookID]
	if !ok {
		return nil, fmt.Errorf("%w: book %d referenced by user_book %d", storage.ErrIntegrity, userBook.BookID, userBook.ID)
	}
	joined := entities.UserBookWithBook{UserBook: userBook, Book: book}
	return &joined, nil
}

func (s *Store) AddUserBook(data storage.NewUserBook) (*entities.UserBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	userBook := entities.UserBook{
		ID:          s.nextUserBookID,
		UserID:      data.UserID,
		BookID:      data.BookID,
		Status:      data.Status,
		CurrentPage: data.CurrentPage,
		DateAdded:   now,
	}
	if data.Status == entities.StatusCompleted {
		userBook.DateCompleted = &now
	}
	s.nextUserBookID++
	s.userBooks[userBook.ID] = userBook
	return &userBook, nil
}

func (s *Store) UpdateUserBook(id uint, patch storage.UserBookPatch) (*entities.UserBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userBook, ok := s.userBooks[id]
	if !ok {
		return nil, storage.ErrNotFound
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

	s.userBooks[id] = userBook
	return &userBook, nil
}

func (s *Store) RemoveUserBook(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.userBooks, id)
	return nil
}
