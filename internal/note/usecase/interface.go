// Package usecase implements note business logic: ownership-scoped CRUD with
// optimistic concurrency control over soft-deletable notes.
package usecase

import (
	"context"

	noteDomain "github.com/gideon/notes/internal/note/domain"
)

// CreateNoteInput carries the fields for creating a note.
type CreateNoteInput struct {
	Title   string
	Content string
	Tags    []string
}

// UpdateNoteInput carries the replacement fields for updating a note. Updates
// are full replacements, not patches.
type UpdateNoteInput struct {
	Title   string
	Content string
	Tags    []string
}

// NotesPage is one page of a note listing with the total match count.
type NotesPage struct {
	Notes []*noteDomain.Note
	Page  int
	Size  int
	Total int64
}

// NoteUseCase defines note operations. Every operation is scoped to the
// calling user; a note ID owned by someone else behaves exactly like a
// missing one. The expectedVersion arguments implement optimistic
// concurrency: nil means last-write-wins, a stale value means conflict.
type NoteUseCase interface {
	Create(ctx context.Context, userID int64, input CreateNoteInput) (*noteDomain.Note, error)
	List(ctx context.Context, userID int64, filter noteDomain.ListFilter) (*NotesPage, error)
	Get(ctx context.Context, userID int64, id int64) (*noteDomain.Note, error)
	Update(ctx context.Context, userID int64, id int64, input UpdateNoteInput, expectedVersion *int64) (*noteDomain.Note, error)
	Delete(ctx context.Context, userID int64, id int64, expectedVersion *int64) error
	Restore(ctx context.Context, userID int64, id int64) (*noteDomain.Note, error)
}

// NoteRepository defines note persistence operations.
type NoteRepository interface {
	Create(ctx context.Context, note *noteDomain.Note) error
	GetByIDAndUserID(ctx context.Context, id int64, userID int64) (*noteDomain.Note, error)
	GetDeletedByIDAndUserID(ctx context.Context, id int64, userID int64) (*noteDomain.Note, error)
	List(ctx context.Context, userID int64, filter noteDomain.ListFilter) ([]*noteDomain.Note, int64, error)
	UpdateVersioned(ctx context.Context, note *noteDomain.Note, expectedVersion int64) error
}

// EventRecorder receives business events for metrics. Implementations must be
// cheap and non-blocking.
type EventRecorder interface {
	NoteCreated(ctx context.Context)
	VersionConflict(ctx context.Context)
}
