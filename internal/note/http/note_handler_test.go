package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authHTTP "github.com/gideon/notes/internal/auth/http"
	noteDomain "github.com/gideon/notes/internal/note/domain"
	"github.com/gideon/notes/internal/note/http/dto"
	httpMocks "github.com/gideon/notes/internal/note/http/mocks"
	noteUseCase "github.com/gideon/notes/internal/note/usecase"
	userDomain "github.com/gideon/notes/internal/user/domain"
)

// setupNoteTestHandler creates a test note handler with mocked dependencies.
func setupNoteTestHandler(t *testing.T) (*NoteHandler, *httpMocks.MockNoteUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockNoteUseCase := &httpMocks.MockNoteUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewNoteHandler(mockNoteUseCase, logger)

	return handler, mockNoteUseCase
}

// createTestContext creates a test Gin context with an authenticated user in
// the request context, mirroring what the authentication middleware does.
func createTestContext(
	method, path string,
	body interface{},
	user *userDomain.User,
) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req = req.WithContext(authHTTP.WithUser(req.Context(), user))
	}
	c.Request = req

	return c, w
}

func testNoteUser() *userDomain.User {
	return &userDomain.User{ID: 42, Username: "alice", Email: "alice@example.com"}
}

func testNote(version int64) *noteDomain.Note {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &noteDomain.Note{
		ID:        7,
		UserID:    42,
		Title:     "groceries",
		Content:   "milk, eggs",
		Tags:      []string{"home"},
		Version:   version,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestNoteHandler_CreateNoteHandler(t *testing.T) {
	t.Run("Success_ReturnsCreatedWithETag", func(t *testing.T) {
		handler, mockUseCase := setupNoteTestHandler(t)

		request := dto.CreateNoteRequest{
			Title:   "groceries",
			Content: "milk, eggs",
			Tags:    []string{"home"},
		}

		expectedInput := noteUseCase.CreateNoteInput{
			Title:   "groceries",
			Content: "milk, eggs",
			Tags:    []string{"home"},
		}

		mockUseCase.On("Create", mock.Anything, int64(42), expectedInput).
			Return(testNote(0), nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/notes", request, testNoteUser())

		handler.CreateNoteHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, `"0"`, w.Header().Get("ETag"))

		var response dto.NoteResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), response.ID)
		assert.Equal(t, int64(0), response.Version)
		assert.Equal(t, []string{"home"}, response.Tags)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_Unauthenticated", func(t *testing.T) {
		handler, _ := setupNoteTestHandler(t)

		request := dto.CreateNoteRequest{Title: "groceries"}

		c, w := createTestContext(http.MethodPost, "/api/notes", request, nil)

		handler.CreateNoteHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupNoteTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/api/notes", nil, testNoteUser())
		c.Request.Body = io.NopCloser(bytes.NewReader([]byte("invalid json")))

		handler.CreateNoteHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_MissingTitle", func(t *testing.T) {
		handler, _ := setupNoteTestHandler(t)

		request := dto.CreateNoteRequest{Content: "body only"}

		c, w := createTestContext(http.MethodPost, "/api/notes", request, testNoteUser())

		handler.CreateNoteHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "validation_error", response["error"])
	})
}

func TestNoteHandler_ListNotesHandler(t *testing.T) {
	t.Run("Success_ReturnsPage", func(t *testing.T) {
		handler, mockUseCase := setupNoteTestHandler(t)

		expectedFilter := noteDomain.ListFilter{
			Search: "milk",
			Tag:    "home",
			Page:   0,
			Size:   10,
			SortBy: "updated_at",
		}

		page := &noteUseCase.NotesPage{
			Notes: []*noteDomain.Note{testNote(3)},
			Page:  0,
			Size:  10,
			Total: 1,
		}

		mockUseCase.On("List", mock.Anything, int64(42), expectedFilter).
			Return(page, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/api/notes?search=milk&tag=home", nil, testNoteUser())

		handler.ListNotesHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.PagedNotesResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Len(t, response.Notes, 1)
		assert.Equal(t, int64(1), response.TotalElements)
		assert.Equal(t, int64(1), response.TotalPages)
		assert.True(t, response.Last)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidPageParameter", func(t *testing.T) {
		handler, _ := setupNoteTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/api/notes?page=-1", nil, testNoteUser())

		handler.ListNotesHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_InvalidSortField", func(t *testing.T) {
		handler, _ := setupNoteTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/api/notes?sort_by=password", nil, testNoteUser())

		handler.ListNotesHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestNoteHandler_GetNoteHandler(t *testing.T) {
	t.Run("Success_ReturnsNoteWithETag", func(t *testing.T) {
		handler, mockUseCase := setupNoteTestHandler(t)

		mockUseCase.On("Get", mock.Anything, int64(42), int64(7)).
			Return(testNote(5), nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/api/notes/7", nil, testNoteUser())
		c.Params = gin.Params{{Key: "id", Value: "7"}}

		handler.GetNoteHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `"5"`, w.Header().Get("ETag"))

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupNoteTestHandler(t)

		mockUseCase.On("Get", mock.Anything, int64(42), int64(999)).
			Return(nil, noteDomain.ErrNoteNotFound).
			Once()

		c, w := createTestContext(http.MethodGet, "/api/notes/999", nil, testNoteUser())
		c.Params = gin.Params{{Key: "id", Value: "999"}}

		handler.GetNoteHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "not_found", response["error"])

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_MalformedIDBehavesLikeMissing", func(t *testing.T) {
		handler, _ := setupNoteTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/api/notes/abc", nil, testNoteUser())
		c.Params = gin.Params{{Key: "id", Value: "abc"}}

		handler.GetNoteHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestNoteHandler_UpdateNoteHandler(t *testing.T) {
	t.Run("Success_IfMatchPinsVersion", func(t *testing.T) {
		handler, mockUseCase := setupNoteTestHandler(t)

		request := dto.UpdateNoteRequest{Title: "updated", Content: "new body"}

		expectedInput := noteUseCase.UpdateNoteInput{Title: "updated", Content: "new body"}
		expectedVersion := int64(2)

		mockUseCase.On("Update", mock.Anything, int64(42), int64(7), expectedInput, &expectedVersion).
			Return(testNote(3), nil).
			Once()

		c, w := createTestContext(http.MethodPut, "/api/notes/7", request, testNoteUser())
		c.Params = gin.Params{{Key: "id", Value: "7"}}
		c.Request.Header.Set("If-Match", `"2"`)

		handler.UpdateNoteHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `"3"`, w.Header().Get("ETag"))

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_NoIfMatchMeansLastWriteWins", func(t *testing.T) {
		handler, mockUseCase := setupNoteTestHandler(t)

		request := dto.UpdateNoteRequest{Title: "updated"}

		mockUseCase.On("Update", mock.Anything, int64(42), int64(7), mock.Anything, (*int64)(nil)).
			Return(testNote(4), nil).
			Once()

		c, w := createTestContext(http.MethodPut, "/api/notes/7", request, testNoteUser())
		c.Params = gin.Params{{Key: "id", Value: "7"}}

		handler.UpdateNoteHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_VersionConflict", func(t *testing.T) {
		handler, mockUseCase := setupNoteTestHandler(t)

		request := dto.UpdateNoteRequest{Title: "updated"}

		mockUseCase.On("Update", mock.Anything, int64(42), int64(7), mock.Anything, mock.Anything).
			Return(nil, noteDomain.ErrNoteVersionConflict).
			Once()

		c, w := createTestContext(http.MethodPut, "/api/notes/7", request, testNoteUser())
		c.Params = gin.Params{{Key: "id", Value: "7"}}
		c.Request.Header.Set("If-Match", `"1"`)

		handler.UpdateNoteHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "conflict", response["error"])

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidIfMatchHeader", func(t *testing.T) {
		handler, _ := setupNoteTestHandler(t)

		request := dto.UpdateNoteRequest{Title: "updated"}

		c, w := createTestContext(http.MethodPut, "/api/notes/7", request, testNoteUser())
		c.Params = gin.Params{{Key: "id", Value: "7"}}
		c.Request.Header.Set("If-Match", `"not-a-number"`)

		handler.UpdateNoteHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_InternalFailure", func(t *testing.T) {
		handler, mockUseCase := setupNoteTestHandler(t)

		request := dto.UpdateNoteRequest{Title: "updated"}

		mockUseCase.On("Update", mock.Anything, int64(42), int64(7), mock.Anything, mock.Anything).
			Return(nil, errors.New("database connection failed")).
			Once()

		c, w := createTestContext(http.MethodPut, "/api/notes/7", request, testNoteUser())
		c.Params = gin.Params{{Key: "id", Value: "7"}}

		handler.UpdateNoteHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}

func TestNoteHandler_DeleteNoteHandler(t *testing.T) {
	t.Run("Success_ReturnsNoContent", func(t *testing.T) {
		handler, mockUseCase := setupNoteTestHandler(t)

		expectedVersion := int64(1)
		mockUseCase.On("Delete", mock.Anything, int64(42), int64(7), &expectedVersion).
			Return(nil).
			Once()

		c, w := createTestContext(http.MethodDelete, "/api/notes/7", nil, testNoteUser())
		c.Params = gin.Params{{Key: "id", Value: "7"}}
		c.Request.Header.Set("If-Match", `"1"`)

		handler.DeleteNoteHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_StaleVersion", func(t *testing.T) {
		handler, mockUseCase := setupNoteTestHandler(t)

		mockUseCase.On("Delete", mock.Anything, int64(42), int64(7), mock.Anything).
			Return(noteDomain.ErrNoteVersionConflict).
			Once()

		c, w := createTestContext(http.MethodDelete, "/api/notes/7", nil, testNoteUser())
		c.Params = gin.Params{{Key: "id", Value: "7"}}
		c.Request.Header.Set("If-Match", `"0"`)

		handler.DeleteNoteHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupNoteTestHandler(t)

		mockUseCase.On("Delete", mock.Anything, int64(42), int64(999), mock.Anything).
			Return(noteDomain.ErrNoteNotFound).
			Once()

		c, w := createTestContext(http.MethodDelete, "/api/notes/999", nil, testNoteUser())
		c.Params = gin.Params{{Key: "id", Value: "999"}}

		handler.DeleteNoteHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}

func TestNoteHandler_RestoreNoteHandler(t *testing.T) {
	t.Run("Success_ReturnsRestoredNote", func(t *testing.T) {
		handler, mockUseCase := setupNoteTestHandler(t)

		mockUseCase.On("Restore", mock.Anything, int64(42), int64(7)).
			Return(testNote(2), nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/notes/7/restore", nil, testNoteUser())
		c.Params = gin.Params{{Key: "id", Value: "7"}}

		handler.RestoreNoteHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `"2"`, w.Header().Get("ETag"))

		var response dto.NoteResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), response.Version)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_ActiveNoteNotRestorable", func(t *testing.T) {
		handler, mockUseCase := setupNoteTestHandler(t)

		mockUseCase.On("Restore", mock.Anything, int64(42), int64(7)).
			Return(nil, noteDomain.ErrNoteNotFound).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/notes/7/restore", nil, testNoteUser())
		c.Params = gin.Params{{Key: "id", Value: "7"}}

		handler.RestoreNoteHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}
