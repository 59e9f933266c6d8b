// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/gideon/notes/internal/errors"
)

// Role identifies the coarse permission group a user belongs to. It is carried
// in token claims for forward compatibility but is not enforced anywhere yet.
type Role string

// Known user roles.
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents an account in the system. The Password field holds the
// one-way hash, never the plaintext.
type User struct {
	ID        int64
	Username  string
	Email     string
	Password  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUsernameTaken indicates a user with the same username already exists.
	ErrUsernameTaken = errors.Wrap(errors.ErrConflict, "username already exists")

	// ErrEmailTaken indicates a user with the same email already exists.
	ErrEmailTaken = errors.Wrap(errors.ErrConflict, "email already exists")
)
