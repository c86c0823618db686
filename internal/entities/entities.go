package entities

import (
	"time"
)

// ReadingStatus is a user's relationship to a book on their shelf.
type ReadingStatus string

const (
	StatusWantToRead ReadingStatus = "want_to_read"
	StatusReading    ReadingStatus = "reading"
	StatusCompleted  ReadingStatus = "completed"
)

// ReadingStatuses lists every valid status value.
var ReadingStatuses = []ReadingStatus{StatusWantToRead, StatusReading, StatusCompleted}

// IsValid reports whether s is one of the three known statuses.
func (s ReadingStatus) IsValid() bool {
	switch s {
	case StatusWantToRead, StatusReading, StatusCompleted:
		return true
	}
	return false
}

// DefaultProfilePicture is applied when a user registers without one.
const DefaultProfilePicture = "https://images.unsplash.com/photo-1494790108377-be9c29b29330?ixlib=rb-4.0.3&ixid=MnwxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8&auto=format&fit=crop&w=100&h=100"

type User struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Username       string `gorm:"uniqueIndex;size:100" json:"username"`
	Email          string `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash   string `gorm:"size:100" json:"-"`
	Name           string `gorm:"size:200" json:"name"`
	ProfilePicture string `gorm:"size:2048" json:"profilePicture"`
}

// Book is a catalog record shared by all users. Optional fields are
// pointers so an absent value serializes as JSON null, never a zero value.
type Book struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"index;size:512" json:"title"`
	Author      string  `gorm:"index;size:256" json:"author"`
	CoverImage  string  `gorm:"size:2048" json:"coverImage"`
	TotalPages  int     `json:"totalPages"`
	Description *string `gorm:"type:text" json:"description"`
	Rating      *int    `json:"rating"`
}

// UserBook joins a user to a book plus the mutable progress fields.
// DateAdded is set at creation and never changes; DateCompleted is set
// exactly when the status transitions into completed.
type UserBook struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UserID        uint          `gorm:"index" json:"userId"`
	BookID        uint          `gorm:"index" json:"bookId"`
	Status        ReadingStatus `gorm:"size:20" json:"status"`
	CurrentPage   int           `gorm:"default:0" json:"currentPage"`
	DateAdded     time.Time     `json:"dateAdded"`
	DateCompleted *time.Time    `json:"dateCompleted"`

	Book Book `gorm:"foreignKey:BookID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// UserBookWithBook is the denormalized shape returned by listing
// operations: the UserBook fields flattened with the Book embedded.
type UserBookWithBook struct {
	UserBook
	Book Book `json:"book"`
}
