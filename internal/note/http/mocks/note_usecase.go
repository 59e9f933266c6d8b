// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	noteDomain "github.com/gideon/notes/internal/note/domain"
	"github.com/gideon/notes/internal/note/usecase"
)

// MockNoteUseCase is a mock implementation of NoteUseCase for testing.
type MockNoteUseCase struct {
	mock.Mock
}

// Create mocks the Create method of NoteUseCase.
func (m *MockNoteUseCase) Create(
	ctx context.Context,
	userID int64,
	input usecase.CreateNoteInput,
) (*noteDomain.Note, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*noteDomain.Note), args.Error(1)
}

// List mocks the List method of NoteUseCase.
func (m *MockNoteUseCase) List(
	ctx context.Context,
	userID int64,
	filter noteDomain.ListFilter,
) (*usecase.NotesPage, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.NotesPage), args.Error(1)
}

// Get mocks the Get method of NoteUseCase.
func (m *MockNoteUseCase) Get(ctx context.Context, userID int64, id int64) (*noteDomain.Note, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*noteDomain.Note), args.Error(1)
}

// Update mocks the Update method of NoteUseCase.
func (m *MockNoteUseCase) Update(
	ctx context.Context,
	userID int64,
	id int64,
	input usecase.UpdateNoteInput,
	expectedVersion *int64,
) (*noteDomain.Note, error) {
	args := m.Called(ctx, userID, id, input, expectedVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*noteDomain.Note), args.Error(1)
}

// Delete mocks the Delete method of NoteUseCase.
func (m *MockNoteUseCase) Delete(
	ctx context.Context,
	userID int64,
	id int64,
	expectedVersion *int64,
) error {
	args := m.Called(ctx, userID, id, expectedVersion)
	return args.Error(0)
}

// Restore mocks the Restore method of NoteUseCase.
func (m *MockNoteUseCase) Restore(ctx context.Context, userID int64, id int64) (*noteDomain.Note, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*noteDomain.Note), args.Error(1)
}
