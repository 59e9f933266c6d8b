// Package repository implements data persistence for notes. Repositories
// support both PostgreSQL and MySQL.
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

// sortColumns whitelists the ORDER BY targets. Anything else falls back to
// updated_at.
var sortColumns = map[string]string{
	"updated_at": "updated_at",
	"created_at": "created_at",
	"title":      "title",
}

func sortColumn(sortBy string) string {
	if column, ok := sortColumns[sortBy]; ok {
		return column
	}
	return "updated_at"
}

// PostgreSQLNoteRepository implements note persistence for PostgreSQL databases.
type PostgreSQLNoteRepository struct {
	db *sql.DB
}

// Create inserts a new note at version zero and populates its generated ID
// and timestamps.
func (p *PostgreSQLNoteRepository) Create(ctx context.Context, note *noteDomain.Note) error {
	querier := database.GetTx(ctx, p.db)

	now := time.Now().UTC()

	query := `INSERT INTO notes (user_id, title, content, tags, version, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, 0, $5, $6)
			  RETURNING id`

	err := querier.QueryRowContext(
		ctx,
		query,
		note.UserID,
		note.Title,
		note.Content,
		noteDomain.JoinTags(note.Tags),
		now,
		now,
	).Scan(&note.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create note")
	}

	note.Version = 0
	note.CreatedAt = now
	note.UpdatedAt = now
	return nil
}

// GetByIDAndUserID retrieves an active note owned by the given user. Deleted
// notes and other users' notes both report not-found.
func (p *PostgreSQLNoteRepository) GetByIDAndUserID(
	ctx context.Context,
	id int64,
	userID int64,
) (*noteDomain.Note, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, title, content, tags, version, created_at, updated_at, deleted_at
			  FROM notes
			  WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`

	return scanNote(querier.QueryRowContext(ctx, query, id, userID))
}

// GetDeletedByIDAndUserID retrieves a soft-deleted note owned by the given
// user, for restore.
func (p *PostgreSQLNoteRepository) GetDeletedByIDAndUserID(
	ctx context.Context,
	id int64,
	userID int64,
) (*noteDomain.Note, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, title, content, tags, version, created_at, updated_at, deleted_at
			  FROM notes
			  WHERE id = $1 AND user_id = $2 AND deleted_at IS NOT NULL`

	return scanNote(querier.QueryRowContext(ctx, query, id, userID))
}

// List returns one page of the user's active notes plus the total match
// count before paging.
func (p *PostgreSQLNoteRepository) List(
	ctx context.Context,
	userID int64,
	filter noteDomain.ListFilter,
) ([]*noteDomain.Note, int64, error) {
	querier := database.GetTx(ctx, p.db)

	where := `WHERE user_id = $1 AND deleted_at IS NULL`
	args := []any{userID}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND (title ILIKE $%d OR content ILIKE $%d)`, len(args), len(args))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		where += fmt.Sprintf(` AND (',' || tags || ',') LIKE ('%%,' || $%d || ',%%')`, len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM notes ` + where
	if err := querier.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count notes")
	}

	args = append(args, filter.Size, filter.Offset())
	query := fmt.Sprintf(
		`SELECT id, user_id, title, content, tags, version, created_at, updated_at, deleted_at
		 FROM notes %s
		 ORDER BY %s DESC
		 LIMIT $%d OFFSET $%d`,
		where, sortColumn(filter.SortBy), len(args)-1, len(args),
	)

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
func (p *PostgreSQLNoteRepository) UpdateVersioned(
	ctx context.Context,
	note *noteDomain.Note,
	expectedVersion int64,
) error {
	querier := database.GetTx(ctx, p.db)

	now := time.Now().UTC()

	query := `UPDATE notes
			  SET title = $1, content = $2, tags = $3, deleted_at = $4,
				  version = version + 1, updated_at = $5
			  WHERE id = $6 AND user_id = $7 AND version = $8`

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

// scanNote maps a single note row, translating sql.ErrNoRows to the domain error.
func scanNote(row *sql.Row) (*noteDomain.Note, error) {
	var note noteDomain.Note
	var tags string
	err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&tags,
		&note.Version,
		&note.CreatedAt,
		&note.UpdatedAt,
		&note.DeletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, noteDomain.ErrNoteNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get note")
	}
	note.Tags = noteDomain.SplitTags(tags)
	return &note, nil
}

func collectNotes(rows *sql.Rows) ([]*noteDomain.Note, error) {
	notes := []*noteDomain.Note{}
	for rows.Next() {
		var note noteDomain.Note
		var tags string
		err := rows.Scan(
			&note.ID,
			&note.UserID,
			&note.Title,
			&note.Content,
			&tags,
			&note.Version,
			&note.CreatedAt,
			&note.UpdatedAt,
			&note.DeletedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan note")
		}
		note.Tags = noteDomain.SplitTags(tags)
		notes = append(notes, &note)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate notes")
	}
	return notes, nil
}

// NewPostgreSQLNoteRepository creates a new PostgreSQL note repository instance.
func NewPostgreSQLNoteRepository(db *sql.DB) *PostgreSQLNoteRepository {
	return &PostgreSQLNoteRepository{db: db}
}
