// Package usecase implements business logic orchestration for authentication:
// account creation, login and token refresh.
package usecase

import (
	"context"

	authDomain "github.com/gideon/notes/internal/auth/domain"
	userDomain "github.com/gideon/notes/internal/user/domain"
)

// SignupInput contains the input data for account registration.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput contains the input data for authentication.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthOutput is returned by every successful auth operation: a fresh token
// pair plus the account it was issued for.
type AuthOutput struct {
	Tokens authDomain.TokenPair
	User   *userDomain.User
}

// AuthUseCase defines the authentication business operations.
type AuthUseCase interface {
	// Signup registers a new account and issues its first token pair.
	Signup(ctx context.Context, input SignupInput) (*AuthOutput, error)

	// Login verifies credentials and issues a fresh token pair.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// Refresh exchanges a valid refresh token for a fresh token pair.
	Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error)

	// Authenticate resolves and validates the principal behind a bearer
	// access token. Used by the authentication middleware.
	Authenticate(ctx context.Context, accessToken string) (*userDomain.User, error)
}

// TokenRecorder receives one event per issued token for metrics.
// Implementations must be cheap and non-blocking.
type TokenRecorder interface {
	TokenIssued(ctx context.Context, kind string)
}

// UserRepository defines the identity-store operations the auth use case needs.
type UserRepository interface {
	Create(ctx context.Context, user *userDomain.User) error
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
	GetByID(ctx context.Context, id int64) (*userDomain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
