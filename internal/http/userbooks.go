package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"booknook/internal/audit"
	"booknook/internal/shelf"
)

// UserBooksController exposes the per-user shelf endpoints. Listing
// and creation are scoped to the authenticated user; update and delete
// address entries by id without an ownership check, matching the
// original API contract.
type UserBooksController struct {
	service *shelf.Service
	auditor *audit.Auditor
}

// NewUserBooksController creates the shelf controller. The auditor may
// be nil, in which case writes are not audited.
func NewUserBooksController(service *shelf.Service, auditor *audit.Auditor) *UserBooksController {
	return &UserBooksController{
		service: service,
		auditor: auditor,
	}
}

// List returns the user's full shelf.
// GET /api/user-books
func (uc *UserBooksController) List(c *gin.Context) {
	entries, err := uc.service.List(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list user books")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ListByStatus returns the shelf entries with the given status.
// GET /api/user-books/:status
func (uc *UserBooksController) ListByStatus(c *gin.Context) {
	entries, err := uc.service.ListByStatus(GetUserID(c), c.Param("status"))
	if err != nil {
		if errors.Is(err, shelf.ErrInvalidStatus) {
			respondBadRequest(c, "invalid status filter")
			return
		}
		respondInternalError(c, err, "list user books by status")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Add puts a book on the user's shelf.
// POST /api/user-books
func (uc *UserBooksController) Add(c *gin.Context) {
	userID := GetUserID(c)

	var req shelf.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	entry, err := uc.service.Add(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, shelf.ErrBookNotFound):
			respondNotFound(c, "Book")
		case errors.Is(err, shelf.ErrBookRequired),
			errors.Is(err, shelf.ErrInvalidStatus),
			errors.Is(err, shelf.ErrNegativePage),
			errors.Is(err, shelf.ErrPageOutOfRange):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "add user book")
		}
		return
	}

	uc.auditWrite(userID, "user_book.add", entry)
	c.JSON(http.StatusCreated, entry)
}

// Update applies a partial update to a shelf entry.
// PATCH /api/user-books/:id
func (uc *UserBooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req shelf.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	entry, err := uc.service.Update(id, req)
	if err != nil {
		switch {
		case errors.Is(err, shelf.ErrUserBookNotFound):
			respondNotFound(c, "User book")
		case errors.Is(err, shelf.ErrInvalidStatus),
			errors.Is(err, shelf.ErrNegativePage),
			errors.Is(err, shelf.ErrPageOutOfRange):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "update user book")
		}
		return
	}

	uc.auditWrite(GetUserID(c), "user_book.update", entry)
	c.JSON(http.StatusOK, entry)
}

// Remove deletes a shelf entry. Deleting a missing entry still
// succeeds, so retries are safe.
// DELETE /api/user-books/:id
func (uc *UserBooksController) Remove(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := uc.service.Remove(id); err != nil {
		respondInternalError(c, err, "remove user book")
		return
	}

	uc.auditWrite(GetUserID(c), "user_book.remove", gin.H{"id": id})
	c.Status(http.StatusNoContent)
}

func (uc *UserBooksController) auditWrite(userID uint, operation string, payload any) {
	if uc.auditor == nil {
		return
	}
	if _, err := uc.auditor.SaveRecord(userID, operation, payload); err != nil {
		log.Printf("Failed to save audit record for %s: %v", operation, err)
	}
}
