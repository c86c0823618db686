// Package storage defines the persistence contract shared by the
// database-backed and in-memory store implementations. The backend is
// selected by configuration at startup, never by package-level state.
package storage

import (
	"errors"

	"booknook/internal/entities"
)

// Store failure sentinels. Nothing below the service layer produces a
// user-facing message; callers translate these into HTTP outcomes.
var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict means a uniqueness constraint was violated.
	ErrConflict = errors.New("record already exists")

	// ErrIntegrity means a referenced record is missing. This is a fatal
	// data fault, not a user-facing not-found.
	ErrIntegrity = errors.New("data integrity fault")
)

// NewBook is the input for catalog creation.
type NewBook struct {
	Title       string
	Author      string
	CoverImage  string
	TotalPages  int
	Description *string
	Rating      *int
}

// NewUser is the input for user creation. The password arrives already
// hashed; plaintext credentials never reach the store.
type NewUser struct {
	Username       string
	Email          string
	PasswordHash   string
	Name           string
	ProfilePicture string
}

// NewUserBook is the input for adding a book to a user's shelf.
type NewUserBook struct {
	UserID      uint
	BookID      uint
	Status      entities.ReadingStatus
	CurrentPage int
}

// UserBookPatch carries a partial update. Nil fields are left untouched.
type UserBookPatch struct {
	Status      *entities.ReadingStatus
	CurrentPage *int
}

// Catalog holds immutable-once-created books. Append-only: no update or
// delete operations are exposed.
type Catalog interface {
	GetBook(id uint) (*entities.Book, error)
	GetBooks() ([]entities.Book, error)
	CreateBook(data NewBook) (*entities.Book, error)
}

// Identity holds user records. CreateUser returns ErrConflict when the
// username or email is already taken.
type Identity interface {
	GetUser(id uint) (*entities.User, error)
	GetUserByUsername(username string) (*entities.User, error)
	GetUserByEmail(email string) (*entities.User, error)
	CreateUser(data NewUser) (*entities.User, error)
}

// ReadingState owns UserBook records. Listing operations return each
// record joined with its book; a missing referenced book surfaces as
// ErrIntegrity.
type ReadingState interface {
	GetUserBooks(userID uint) ([]entities.UserBookWithBook, error)
	GetUserBooksByStatus(userID uint, status entities.ReadingStatus) ([]entities.UserBookWithBook, error)
	GetUserBook(id uint) (*entities.UserBookWithBook, error)
	AddUserBook(data NewUserBook) (*entities.UserBook, error)
	UpdateUserBook(id uint, patch UserBookPatch) (*entities.UserBook, error)
	RemoveUserBook(id uint) error
}

// Store is the full persistence capability consumed by the entrypoint.
type Store interface {
	Catalog
	Identity
	ReadingState
}
