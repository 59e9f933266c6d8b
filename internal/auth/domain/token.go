// Package domain defines the authentication domain models: signed token claims
// and the access/refresh token pair handed to clients.
package domain

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/gideon/notes/internal/errors"
)

// TokenKind distinguishes access tokens from refresh tokens. Both carry the
// same claim shape and differ only in expiry and intended use.
type TokenKind string

// Token kinds.
const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Claims is the payload of a signed bearer token. It is created at issuance
// and never mutated; a token is either valid-and-unexpired, valid-but-expired,
// or structurally/cryptographically invalid. There is no revocation list, so
// invalidation is purely time-based.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the numeric id of the principal.
	UserID int64 `json:"id"`
	// Roles carries the principal's role list. Present for forward
	// compatibility; nothing enforces it yet.
	Roles []string `json:"roles"`
	// Kind marks the token as access or refresh.
	Kind TokenKind `json:"kind"`
}

// TokenPair bundles a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Domain-specific errors for token operations.
var (
	// ErrInvalidToken covers malformed, unsigned, wrong-signature and
	// subject-mismatch tokens. The cases are deliberately indistinguishable
	// to the caller.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrExpiredToken indicates a structurally valid token past its expiry.
	ErrExpiredToken = errors.Wrap(errors.ErrTokenExpired, "expired token")

	// ErrInvalidCredentials indicates a failed login. Unknown email and wrong
	// password both map here to prevent account enumeration.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")
)
