// Package domain defines the note entity and its domain errors.
package domain

import (
	"strings"
	"time"

	apperrors "github.com/gideon/notes/internal/errors"
)

// Note is a user-owned note under optimistic concurrency control. Version
// starts at zero and increases by exactly one on every committed write,
// including soft delete and restore. DeletedAt marks soft deletion; deleted
// notes are invisible to all operations except restore.
type Note struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	Tags      []string
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Deleted reports whether the note is soft-deleted.
func (n *Note) Deleted() bool {
	return n.DeletedAt != nil
}

// Domain errors for note operations. A note owned by another user reports
// not-found, never forbidden, so note IDs leak nothing about other accounts.
var (
	ErrNoteNotFound        = apperrors.Wrap(apperrors.ErrNotFound, "note not found")
	ErrNoteVersionConflict = apperrors.Wrap(apperrors.ErrVersionConflict, "note was modified concurrently")
)

// JoinTags serializes tags for storage as a comma-separated list. Empty and
// whitespace-only tags are dropped.
func JoinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, ",")
}

// SplitTags parses the stored comma-separated form back into a slice. An
// empty stored value yields an empty slice, not a nil one, so responses
// render [] rather than null.
func SplitTags(stored string) []string {
	if stored == "" {
		return []string{}
	}

	parts := strings.Split(stored, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
