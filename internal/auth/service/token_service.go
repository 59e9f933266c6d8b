package service

import (
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/gideon/notes/internal/auth/domain"
	apperrors "github.com/gideon/notes/internal/errors"
	userDomain "github.com/gideon/notes/internal/user/domain"
)

// tokenService implements TokenService using HMAC-SHA256 signed JWTs.
//
// The signing key is process-wide configuration loaded once at startup and
// never rotated at runtime. now is injectable for deterministic expiry tests.
type tokenService struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenService creates a TokenService from a base64-encoded signing key and
// the configured access/refresh token lifetimes.
func NewTokenService(secretKey string, accessTTL, refreshTTL time.Duration) (TokenService, error) {
	if secretKey == "" {
		return nil, apperrors.New("jwt secret key is required")
	}

	key, err := base64.StdEncoding.DecodeString(secretKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "jwt secret key must be base64-encoded")
	}

	return &tokenService{
		signingKey: key,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// Issue builds, signs and serializes a token of the given kind for the user.
func (t *tokenService) Issue(user *userDomain.User, kind authDomain.TokenKind) (string, error) {
	ttl := t.accessTTL
	if kind == authDomain.TokenKindRefresh {
		ttl = t.refreshTTL
	}

	now := t.now().UTC()

	claims := &authDomain.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ID:        uuid.Must(uuid.NewV7()).String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: user.ID,
		Roles:  []string{string(user.Role)},
		Kind:   kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(t.signingKey)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate verifies signature, subject and expiry, in that order.
func (t *tokenService) Validate(tokenString, expectedSubject string) (*authDomain.Claims, error) {
	claims, err := t.parse(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Subject != expectedSubject {
		return nil, authDomain.ErrInvalidToken
	}

	// "now >= expiry" is expired, so behavior at the exact boundary is
	// deterministic. A missing expiry claim is structurally invalid.
	if claims.ExpiresAt == nil {
		return nil, authDomain.ErrInvalidToken
	}
	if !t.now().UTC().Before(claims.ExpiresAt.Time) {
		return nil, authDomain.ErrExpiredToken
	}

	return claims, nil
}

// ExtractSubject returns the subject of a signature-verified token without
// checking expiry.
func (t *tokenService) ExtractSubject(tokenString string) (string, error) {
	claims, err := t.parse(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", authDomain.ErrInvalidToken
	}
	return claims.Subject, nil
}

// parse verifies structure and signature but deliberately skips claim
// validation: expiry ordering is handled by Validate so that signature
// failures always win over expiry failures.
func (t *tokenService) parse(tokenString string) (*authDomain.Claims, error) {
	claims := &authDomain.Claims{}

	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			return t.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}

	return claims, nil
}
