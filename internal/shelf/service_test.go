package shelf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booknook/internal/database/memory"
	"booknook/internal/entities"
	"booknook/internal/storage"
)

func setupService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewService(store), store
}

func seedBook(t *testing.T, store *memory.Store, title string, pages int) *entities.Book {
	t.Helper()
	book, err := store.CreateBook(storage.NewBook{
		Title:      title,
		Author:     "Test Author",
		TotalPages: pages,
	})
	require.NoError(t, err)
	return book
}

func intptr(v int) *int { return &v }

func strptr(v string) *string { return &v }

func TestService_Add(t *testing.T) {
	svc, store := setupService(t)
	book := seedBook(t, store, "Dune", 412)

	entry, err := svc.Add(1, AddRequest{BookID: book.ID, Status: "want_to_read"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), entry.UserID)
	assert.Equal(t, entities.StatusWantToRead, entry.Status)
	assert.Equal(t, 0, entry.CurrentPage)
	assert.Nil(t, entry.DateCompleted)
}

func TestService_Add_ForcesAuthenticatedUser(t *testing.T) {
	svc, store := setupService(t)
	book := seedBook(t, store, "Dune", 412)

	// The request payload has no user field at all; ownership comes
	// from the caller-supplied ID.
	entry, err := svc.Add(42, AddRequest{BookID: book.ID, Status: "reading"})
	require.NoError(t, err)
	assert.Equal(t, uint(42), entry.UserID)
}

func TestService_Add_Validation(t *testing.T) {
	svc, store := setupService(t)
	book := seedBook(t, store, "Dune", 412)

	tests := []struct {
		name    string
		req     AddRequest
		wantErr error
	}{
		{
			name:    "missing book id",
			req:     AddRequest{Status: "reading"},
			wantErr: ErrBookRequired,
		},
		{
			name:    "invalid status",
			req:     AddRequest{BookID: book.ID, Status: "abandoned"},
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "empty status",
			req:     AddRequest{BookID: book.ID},
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "unknown book",
			req:     AddRequest{BookID: 999, Status: "reading"},
			wantErr: ErrBookNotFound,
		},
		{
			name:    "negative page",
			req:     AddRequest{BookID: book.ID, Status: "reading", CurrentPage: intptr(-1)},
			wantErr: ErrNegativePage,
		},
		{
			name:    "page beyond book",
			req:     AddRequest{BookID: book.ID, Status: "reading", CurrentPage: intptr(413)},
			wantErr: ErrPageOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(1, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Add_PageAtBounds(t *testing.T) {
	svc, store := setupService(t)
	book := seedBook(t, store, "Dune", 412)

	// Both 0 and TotalPages are valid positions
	entry, err := svc.Add(1, AddRequest{BookID: book.ID, Status: "reading", CurrentPage: intptr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, entry.CurrentPage)

	entry, err = svc.Add(1, AddRequest{BookID: book.ID, Status: "completed", CurrentPage: intptr(412)})
	require.NoError(t, err)
	assert.Equal(t, 412, entry.CurrentPage)
	assert.NotNil(t, entry.DateCompleted)
}

func TestService_List(t *testing.T) {
	svc, store := setupService(t)
	dune := seedBook(t, store, "Dune", 412)
	hail := seedBook(t, store, "Project Hail Mary", 476)

	_, err := svc.Add(1, AddRequest{BookID: dune.ID, Status: "reading"})
	require.NoError(t, err)
	_, err = svc.Add(1, AddRequest{BookID: hail.ID, Status: "completed"})
	require.NoError(t, err)
	_, err = svc.Add(2, AddRequest{BookID: dune.ID, Status: "want_to_read"})
	require.NoError(t, err)

	entries, err := svc.List(1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Dune", entries[0].Book.Title)
}

func TestService_ListByStatus(t *testing.T) {
	svc, store := setupService(t)
	dune := seedBook(t, store, "Dune", 412)

	_, err := svc.Add(1, AddRequest{BookID: dune.ID, Status: "reading"})
	require.NoError(t, err)

	entries, err := svc.ListByStatus(1, "reading")
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	entries, err = svc.ListByStatus(1, "completed")
	require.NoError(t, err)
	assert.Empty(t, entries)

	// The filter is validated before the store is queried
	_, err = svc.ListByStatus(1, "abandoned")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_Update(t *testing.T) {
	svc, store := setupService(t)
	book := seedBook(t, store, "Dune", 412)

	entry, err := svc.Add(1, AddRequest{BookID: book.ID, Status: "reading", CurrentPage: intptr(50)})
	require.NoError(t, err)

	updated, err := svc.Update(entry.ID, UpdateRequest{CurrentPage: intptr(120)})
	require.NoError(t, err)
	assert.Equal(t, 120, updated.CurrentPage)
	assert.Equal(t, entities.StatusReading, updated.Status)

	updated, err = svc.Update(entry.ID, UpdateRequest{Status: strptr("completed")})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCompleted, updated.Status)
	assert.NotNil(t, updated.DateCompleted)
}

func TestService_Update_EmptyPatchIsNoOp(t *testing.T) {
	svc, store := setupService(t)
	book := seedBook(t, store, "Dune", 412)

	entry, err := svc.Add(1, AddRequest{BookID: book.ID, Status: "reading", CurrentPage: intptr(50)})
	require.NoError(t, err)

	updated, err := svc.Update(entry.ID, UpdateRequest{})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusReading, updated.Status)
	assert.Equal(t, 50, updated.CurrentPage)
}

func TestService_Update_Validation(t *testing.T) {
	svc, store := setupService(t)
	book := seedBook(t, store, "Dune", 412)

	entry, err := svc.Add(1, AddRequest{BookID: book.ID, Status: "reading"})
	require.NoError(t, err)

	_, err = svc.Update(entry.ID, UpdateRequest{Status: strptr("abandoned")})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.Update(entry.ID, UpdateRequest{CurrentPage: intptr(-5)})
	assert.ErrorIs(t, err, ErrNegativePage)

	// The page bound comes from the joined book, not the payload
	_, err = svc.Update(entry.ID, UpdateRequest{CurrentPage: intptr(500)})
	assert.ErrorIs(t, err, ErrPageOutOfRange)

	_, err = svc.Update(999, UpdateRequest{CurrentPage: intptr(10)})
	assert.ErrorIs(t, err, ErrUserBookNotFound)
}

func TestService_Remove(t *testing.T) {
	svc, store := setupService(t)
	book := seedBook(t, store, "Dune", 412)

	entry, err := svc.Add(1, AddRequest{BookID: book.ID, Status: "reading"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(entry.ID))

	entries, err := svc.List(1)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Removal is idempotent
	require.NoError(t, svc.Remove(entry.ID))
}
