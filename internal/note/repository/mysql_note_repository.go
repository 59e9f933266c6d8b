package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gideon/notes/internal/database"
	apperrors "github.com/gideon/notes/internal/errors"
	noteDomain "github.com/gideon/notes/internal/note/domain"
)

// MySQLNoteRepository implements note persistence for MySQL databases.
type MySQLNoteRepository struct {
	db *sql.DB
}

// Create inserts a new note at version zero and populates its generated ID
// and timestamps.
func (m *MySQLNoteRepository) Create(ctx context.Context, note *noteDomain.Note) error {
	querier := database.GetTx(ctx, m.db)

	now := time.Now().UTC()

	query := `INSERT INTO notes (user_id, title, content, tags, version, created_at, updated_at)
			  VALUES (?, ?, ?, ?, 0, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		note.UserID,
		note.Title,
		note.Content,
		noteDomain.JoinTags(note.Tags),
		now,
		now,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create note")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read generated note id")
	}

	note.ID = id
	note.Version = 0
	note.CreatedAt = now
	note.UpdatedAt = now
	return nil
}

// GetByIDAndUserID retrieves an active note owned by the given user. Deleted
// notes and other users' notes both report not-found.
func (m *MySQLNoteRepository) GetByIDAndUserID(
	ctx context.Context,
	id int64,
	userID int64,
) (*noteDomain.Note, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, title, content, tags, version, created_at, updated_at, deleted_at
			  FROM notes
			  WHERE id = ? AND user_id = ? AND deleted_at IS NULL`

	return scanNote(querier.QueryRowContext(ctx, query, id, userID))
}

// GetDeletedByIDAndUserID retrieves a soft-deleted note owned by the given
// user, for restore.
func (m *MySQLNoteRepository) GetDeletedByIDAndUserID(
	ctx context.Context,
	id int64,
	userID int64,
) (*noteDomain.Note, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, title, content, tags, version, created_at, updated_at, deleted_at
			  FROM notes
			  WHERE id = ? AND user_id = ? AND deleted_at IS NOT NULL`

	return scanNote(querier.QueryRowContext(ctx, query, id, userID))
}

// List returns one page of the user's active notes plus the total match
// count before paging.
func (m *MySQLNoteRepository) List(
	ctx context.Context,
	userID int64,
	filter noteDomain.ListFilter,
) ([]*noteDomain.Note, int64, error) {
	querier := database.GetTx(ctx, m.db)

	where := `WHERE user_id = ? AND deleted_at IS NULL`
	args := []any{userID}

	if filter.Search != "" {
		where += ` AND (title LIKE ? OR content LIKE ?)`
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Tag != "" {
		where += ` AND FIND_IN_SET(?, tags) > 0`
		args = append(args, filter.Tag)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM notes ` + where
	if err := querier.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count notes")
	}

	query := fmt.Sprintf(
		`SELECT id, user_id, title, content, tags, version, created_at, updated_at, deleted_at
		 FROM notes %s
		 ORDER BY %s DESC
		 LIMIT ? OFFSET ?`,
		where, sortColumn(filter.SortBy),
	)
	args = append(args, filter.Size, filter.Offset())

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to list notes")
	}
	defer rows.Close()

	notes, err := collectNotes(rows)
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

// UpdateVersioned writes the note's current fields with a compare-and-swap on
// expectedVersion. Zero rows affected means another write got there first.
func (m *MySQLNoteRepository) UpdateVersioned(
	ctx context.Context,
	note *noteDomain.Note,
	expectedVersion int64,
) error {
	querier := database.GetTx(ctx, m.db)

	now := time.Now().UTC()

	query := `UPDATE notes
			  SET title = ?, content = ?, tags = ?, deleted_at = ?,
				  version = version + 1, updated_at = ?
			  WHERE id = ? AND user_id = ? AND version = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		note.Title,
		note.Content,
		noteDomain.JoinTags(note.Tags),
		note.DeletedAt,
		now,
		note.ID,
		note.UserID,
		expectedVersion,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update note")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read update result")
	}
	if affected == 0 {
		return noteDomain.ErrNoteVersionConflict
	}

	note.Version = expectedVersion + 1
	note.UpdatedAt = now
	return nil
}

// NewMySQLNoteRepository creates a new MySQL note repository instance.
func NewMySQLNoteRepository(db *sql.DB) *MySQLNoteRepository {
	return &MySQLNoteRepository{db: db}
}
