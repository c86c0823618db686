package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"booknook/internal/database/books"
	"booknook/internal/database/shelf"
	"booknook/internal/database/users"
	"booknook/internal/entities"
	"booknook/internal/storage"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Book{},
		&entities.UserBook{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Store bundles the per-entity repositories into the full storage
// contract consumed by the entrypoint.
type Store struct {
	storage.Catalog
	storage.Identity
	storage.ReadingState
}

var _ storage.Store = (*Store)(nil)

func NewStore(d *Database) *Store {
	return &Store{
		Catalog:      books.NewRepository(d.DB),
		Identity:     users.NewRepository(d.DB),
		ReadingState: shelf.NewRepository(d.DB),
	}
}
