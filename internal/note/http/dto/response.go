package dto

import (
	"time"

	noteDomain "github.com/gideon/notes/internal/note/domain"
	noteUseCase "github.com/gideon/notes/internal/note/usecase"
)

// NoteResponse is the serialized form of a note. Version is also exposed as
// the ETag header; it appears in the body as well so clients that ignore
// headers can still run the concurrency protocol.
type NoteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PagedNotesResponse is one page of a note listing.
type PagedNotesResponse struct {
	Notes         []NoteResponse `json:"notes"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"total_elements"`
	TotalPages    int64          `json:"total_pages"`
	Last          bool           `json:"last"`
}

// MapNoteToResponse converts a domain note to its response form.
func MapNoteToResponse(note *noteDomain.Note) NoteResponse {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}

	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Tags:      tags,
		Version:   note.Version,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// MapPageToResponse converts a use case page to its response form.
func MapPageToResponse(page *noteUseCase.NotesPage) PagedNotesResponse {
	notes := make([]NoteResponse, 0, len(page.Notes))
	for _, note := range page.Notes {
		notes = append(notes, MapNoteToResponse(note))
	}

	totalPages := int64(0)
	if page.Size > 0 {
		totalPages = (page.Total + int64(page.Size) - 1) / int64(page.Size)
	}

	return PagedNotesResponse{
		Notes:         notes,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.Total,
		TotalPages:    totalPages,
		Last:          int64(page.Page) >= totalPages-1,
	}
}
