package usecase

import (
	"context"
	"errors"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/gideon/notes/internal/database"
	apperrors "github.com/gideon/notes/internal/errors"
	noteDomain "github.com/gideon/notes/internal/note/domain"
	appValidation "github.com/gideon/notes/internal/validation"
)

// noteUseCase implements NoteUseCase.
type noteUseCase struct {
	noteRepo  NoteRepository
	txManager database.TxManager
	events    EventRecorder
	now       func() time.Time
}

// NewNoteUseCase creates a new NoteUseCase with the provided dependencies.
// events may be nil when metrics are disabled.
func NewNoteUseCase(
	noteRepo NoteRepository,
	txManager database.TxManager,
	events EventRecorder,
) NoteUseCase {
	return &noteUseCase{
		noteRepo:  noteRepo,
		txManager: txManager,
		events:    events,
		now:       time.Now,
	}
}

func validateNoteFields(title string, content string, tags []string) error {
	err := validation.Validate(map[string]any{
		"title":   title,
		"content": content,
		"tags":    tags,
	}, validation.Map(
		validation.Key("title",
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		validation.Key("content",
			validation.Length(0, 10000).Error("content must be at most 10000 characters"),
		),
		validation.Key("tags",
			validation.Length(0, 20).Error("a note can carry at most 20 tags"),
			validation.Each(
				appValidation.NotBlank,
				validation.Length(1, 50).Error("each tag must be between 1 and 50 characters"),
			),
		),
	))
	return appValidation.WrapValidationError(err)
}

// Create stores a new note at version zero.
func (n *noteUseCase) Create(
	ctx context.Context,
	userID int64,
	input CreateNoteInput,
) (*noteDomain.Note, error) {
	if err := validateNoteFields(input.Title, input.Content, input.Tags); err != nil {
		return nil, err
	}

	note := &noteDomain.Note{
		UserID:  userID,
		Title:   input.Title,
		Content: input.Content,
		Tags:    noteDomain.SplitTags(noteDomain.JoinTags(input.Tags)),
	}

	if err := n.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	if n.events != nil {
		n.events.NoteCreated(ctx)
	}
	return note, nil
}

// List returns one page of the user's active notes.
func (n *noteUseCase) List(
	ctx context.Context,
	userID int64,
	filter noteDomain.ListFilter,
) (*NotesPage, error) {
	notes, total, err := n.noteRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	return &NotesPage{
		Notes: notes,
		Page:  filter.Page,
		Size:  filter.Size,
		Total: total,
	}, nil
}

// Get returns one active note owned by the user.
func (n *noteUseCase) Get(ctx context.Context, userID int64, id int64) (*noteDomain.Note, error) {
	return n.noteRepo.GetByIDAndUserID(ctx, id, userID)
}

// Update replaces the note's fields under optimistic concurrency control.
//
// With an expected version, a mismatch against the stored version reports a
// conflict without writing. Without one the caller accepts last-write-wins
// and the stored version is used as the compare value. Either way the
// compare-and-swap in the repository is what decides a race: losing it is the
// same conflict.
func (n *noteUseCase) Update(
	ctx context.Context,
	userID int64,
	id int64,
	input UpdateNoteInput,
	expectedVersion *int64,
) (*noteDomain.Note, error) {
	if err := validateNoteFields(input.Title, input.Content, input.Tags); err != nil {
		return nil, err
	}

	var updated *noteDomain.Note
	err := n.txManager.WithTx(ctx, func(ctx context.Context) error {
		note, err := n.noteRepo.GetByIDAndUserID(ctx, id, userID)
		if err != nil {
			return err
		}

		compareVersion, err := n.resolveVersion(ctx, note, expectedVersion)
		if err != nil {
			return err
		}

		note.Title = input.Title
		note.Content = input.Content
		note.Tags = noteDomain.SplitTags(noteDomain.JoinTags(input.Tags))

		if err := n.casUpdate(ctx, note, compareVersion); err != nil {
			return err
		}

		updated = note
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes the note, consuming one version like any other write.
func (n *noteUseCase) Delete(
	ctx context.Context,
	userID int64,
	id int64,
	expectedVersion *int64,
) error {
	return n.txManager.WithTx(ctx, func(ctx context.Context) error {
		note, err := n.noteRepo.GetByIDAndUserID(ctx, id, userID)
		if err != nil {
			return err
		}

		compareVersion, err := n.resolveVersion(ctx, note, expectedVersion)
		if err != nil {
			return err
		}

		deletedAt := n.now().UTC()
		note.DeletedAt = &deletedAt

		return n.casUpdate(ctx, note, compareVersion)
	})
}

// Restore brings a soft-deleted note back. Only deleted notes can be
// restored; an active note reports not-found here just like a missing one.
func (n *noteUseCase) Restore(ctx context.Context, userID int64, id int64) (*noteDomain.Note, error) {
	var restored *noteDomain.Note
	err := n.txManager.WithTx(ctx, func(ctx context.Context) error {
		note, err := n.noteRepo.GetDeletedByIDAndUserID(ctx, id, userID)
		if err != nil {
			return err
		}

		note.DeletedAt = nil

		if err := n.casUpdate(ctx, note, note.Version); err != nil {
			return err
		}

		restored = note
		return nil
	})
	if err != nil {
		return nil, err
	}
	return restored, nil
}

// resolveVersion picks the compare value for the CAS write. A stale client
// version is rejected here, before any write is attempted.
func (n *noteUseCase) resolveVersion(
	ctx context.Context,
	note *noteDomain.Note,
	expectedVersion *int64,
) (int64, error) {
	if expectedVersion == nil {
		return note.Version, nil
	}
	if *expectedVersion != note.Version {
		if n.events != nil {
			n.events.VersionConflict(ctx)
		}
		return 0, noteDomain.ErrNoteVersionConflict
	}
	return *expectedVersion, nil
}

func (n *noteUseCase) casUpdate(ctx context.Context, note *noteDomain.Note, compareVersion int64) error {
	err := n.noteRepo.UpdateVersioned(ctx, note, compareVersion)
	if err != nil && errors.Is(err, apperrors.ErrVersionConflict) && n.events != nil {
		n.events.VersionConflict(ctx)
	}
	return err
}
