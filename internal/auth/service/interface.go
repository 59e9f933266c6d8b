// Package service provides authentication services: signing, parsing and
// verifying bearer tokens, and password hashing.
package service

import (
	authDomain "github.com/gideon/notes/internal/auth/domain"
	userDomain "github.com/gideon/notes/internal/user/domain"
)

// TokenService issues and validates signed stateless bearer tokens. It is pure
// computation: no storage, no network, no server-side session state.
type TokenService interface {
	// Issue builds, signs and serializes a token of the given kind for the user.
	Issue(user *userDomain.User, kind authDomain.TokenKind) (string, error)

	// Validate verifies the token's signature, subject and expiry, in that
	// order. Signature or subject failures return ErrInvalidToken; only a
	// token that passed both returns ErrExpiredToken when past expiry, so a
	// forged token never leaks expiry information.
	Validate(tokenString, expectedSubject string) (*authDomain.Claims, error)

	// ExtractSubject returns the subject of a signature-verified token without
	// checking expiry. Used to resolve the principal to validate against, and
	// by the admission gate to derive a client key without touching storage.
	ExtractSubject(tokenString string) (string, error)
}

// PasswordService hashes passwords and verifies candidates against stored
// hashes. The hash format is opaque to callers.
type PasswordService interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}
