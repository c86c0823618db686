package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingStatus_IsValid(t *testing.T) {
	for _, status := range ReadingStatuses {
		assert.True(t, status.IsValid(), string(status))
	}
	assert.False(t, ReadingStatus("abandoned").IsValid())
	assert.False(t, ReadingStatus("").IsValid())
	assert.False(t, ReadingStatus("Reading").IsValid())
}

func TestUserBookWithBook_WireShape(t *testing.T) {
	entry := UserBookWithBook{
		UserBook: UserBook{
			ID:          3,
			UserID:      1,
			BookID:      2,
			Status:      StatusReading,
			CurrentPage: 50,
			DateAdded:   time.Now(),
		},
		Book: Book{ID: 2, Title: "Dune", Author: "Frank Herbert", TotalPages: 412},
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Shelf fields are flattened at the top level, the book is nested
	assert.Equal(t, float64(3), decoded["id"])
	assert.Equal(t, float64(1), decoded["userId"])
	assert.Equal(t, "reading", decoded["status"])
	assert.Equal(t, float64(50), decoded["currentPage"])
	assert.Nil(t, decoded["dateCompleted"])

	book, ok := decoded["book"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Dune", book["title"])
	assert.Equal(t, float64(412), book["totalPages"])
}

func TestUser_PasswordHashNeverSerialized(t *testing.T) {
	user := User{ID: 1, Username: "alice", PasswordHash: "$2a$12$secret"}

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "PasswordHash")
}
