// Package users provides database operations for user accounts.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByUsername(username)
package users

import (
	"errors"

	"gorm.io/gorm"

	"booknook/internal/entities"
	"booknook/internal/storage"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetUser retrieves a user by ID.
func (r *Repository) GetUser(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username. Backed by a unique
// index, so the lookup is a point read.
func (r *Repository) GetUserByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (r *Repository) GetUserByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user. The unique indexes on username and
// email enforce uniqueness at the persistence layer; violations surface
// as storage.ErrConflict.
func (r *Repository) CreateUser(data storage.NewUser) (*entities.User, error) {
	profilePicture := data.ProfilePicture
	if profilePicture == "" {
		profilePicture = entities.DefaultProfilePicture
	}

	user := &entities.User{
		Username:       data.Username,
		Email:          data.Email,
		PasswordHash:   data.PasswordHash,
		Name:           data.Name,
		ProfilePicture: profilePicture,
	}

	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, storage.ErrConflict
		}
		return nil, err
	}
	return user, nil
}
