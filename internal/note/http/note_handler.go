// Package http provides HTTP handlers for the note API.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/gideon/notes/internal/auth/http"
	apperrors "github.com/gideon/notes/internal/errors"
	"github.com/gideon/notes/internal/httputil"
	noteDomain "github.com/gideon/notes/internal/note/domain"
	"github.com/gideon/notes/internal/note/http/dto"
	noteUseCase "github.com/gideon/notes/internal/note/usecase"
	customValidation "github.com/gideon/notes/internal/validation"
)

// NoteHandler handles HTTP requests for note CRUD, soft delete and restore.
type NoteHandler struct {
	noteUseCase noteUseCase.NoteUseCase
	logger      *slog.Logger
}

// NewNoteHandler creates a new note handler with required dependencies.
func NewNoteHandler(noteUC noteUseCase.NoteUseCase, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		noteUseCase: noteUC,
		logger:      logger,
	}
}

// CreateNoteHandler creates a note owned by the authenticated user.
// POST /api/notes
// Returns 201 Created with the note and its initial ETag.
func (h *NoteHandler) CreateNoteHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	note, err := h.noteUseCase.Create(c.Request.Context(), user.ID, dto.ToCreateInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SetVersionETag(c, note.Version)
	c.JSON(http.StatusCreated, dto.MapNoteToResponse(note))
}

// ListNotesHandler lists the user's active notes with search, tag filter and
// pagination.
// GET /api/notes?search=&tag=&page=0&size=10&sort_by=updated_at
func (h *NoteHandler) ListNotesHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	page, size, sortBy, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	filter := noteDomain.ListFilter{
		Search: c.Query("search"),
		Tag:    c.Query("tag"),
		Page:   page,
		Size:   size,
		SortBy: sortBy,
	}

	result, err := h.noteUseCase.List(c.Request.Context(), user.ID, filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPageToResponse(result))
}

// GetNoteHandler returns a single active note.
// GET /api/notes/:id
// Returns 404 for missing, deleted and foreign notes alike.
func (h *NoteHandler) GetNoteHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, err := parseNoteID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	note, err := h.noteUseCase.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SetVersionETag(c, note.Version)
	c.JSON(http.StatusOK, dto.MapNoteToResponse(note))
}

// UpdateNoteHandler replaces a note's fields.
// PUT /api/notes/:id
// An If-Match header pins the expected version; absent means last-write-wins.
// Returns 409 when the note changed since the pinned version.
func (h *NoteHandler) UpdateNoteHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, err := parseNoteID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	expectedVersion, err := httputil.ParseIfMatchVersion(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	note, err := h.noteUseCase.Update(c.Request.Context(), user.ID, id, dto.ToUpdateInput(req), expectedVersion)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SetVersionETag(c, note.Version)
	c.JSON(http.StatusOK, dto.MapNoteToResponse(note))
}

// DeleteNoteHandler soft-deletes a note.
// DELETE /api/notes/:id
// Honors If-Match like update. Returns 204 No Content.
func (h *NoteHandler) DeleteNoteHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, err := parseNoteID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	expectedVersion, err := httputil.ParseIfMatchVersion(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.noteUseCase.Delete(c.Request.Context(), user.ID, id, expectedVersion); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// RestoreNoteHandler brings a soft-deleted note back.
// POST /api/notes/:id/restore
// Returns 404 unless the note is currently deleted and owned by the caller.
func (h *NoteHandler) RestoreNoteHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, err := parseNoteID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	note, err := h.noteUseCase.Restore(c.Request.Context(), user.ID, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SetVersionETag(c, note.Version)
	c.JSON(http.StatusOK, dto.MapNoteToResponse(note))
}

// parseNoteID reads the :id path parameter. A malformed ID behaves like a
// missing note.
func parseNoteID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, noteDomain.ErrNoteNotFound
	}
	return id, nil
}
