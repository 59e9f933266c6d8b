// Package dto contains request and response shapes for the note HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	noteUseCase "github.com/gideon/notes/internal/note/usecase"
)

// CreateNoteRequest is the payload for creating a note.
type CreateNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Validate checks request shape. Field-level rules live in the use case.
func (r CreateNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required")),
	)
}

// UpdateNoteRequest is the payload for replacing a note's fields.
type UpdateNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Validate checks request shape. Field-level rules live in the use case.
func (r UpdateNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required")),
	)
}

// ToCreateInput converts the request to a use case input.
func ToCreateInput(r CreateNoteRequest) noteUseCase.CreateNoteInput {
	return noteUseCase.CreateNoteInput{
		Title:   r.Title,
		Content: r.Content,
		Tags:    r.Tags,
	}
}

// ToUpdateInput converts the request to a use case input.
func ToUpdateInput(r UpdateNoteRequest) noteUseCase.UpdateNoteInput {
	return noteUseCase.UpdateNoteInput{
		Title:   r.Title,
		Content: r.Content,
		Tags:    r.Tags,
	}
}
