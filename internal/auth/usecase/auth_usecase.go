package usecase

import (
	"context"
	"errors"
	"strings"

	validation "github.com/jellydator/validation"

	authDomain "github.com/gideon/notes/internal/auth/domain"
	authService "github.com/gideon/notes/internal/auth/service"
	apperrors "github.com/gideon/notes/internal/errors"
	userDomain "github.com/gideon/notes/internal/user/domain"
	appValidation "github.com/gideon/notes/internal/validation"
)

// authUseCase implements AuthUseCase.
type authUseCase struct {
	userRepo        UserRepository
	tokenService    authService.TokenService
	passwordService authService.PasswordService
	events          TokenRecorder
}

// NewAuthUseCase creates a new AuthUseCase with the provided dependencies.
// events may be nil when metrics are disabled.
func NewAuthUseCase(
	userRepo UserRepository,
	tokenService authService.TokenService,
	passwordService authService.PasswordService,
	events TokenRecorder,
) AuthUseCase {
	return &authUseCase{
		userRepo:        userRepo,
		tokenService:    tokenService,
		passwordService: passwordService,
		events:          events,
	}
}

// validateSignupInput validates registration input using jellydator/validation.
func (a *authUseCase) validateSignupInput(input SignupInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
			appValidation.Username,
			validation.Length(3, 50).Error("username must be between 3 and 50 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		),
	)
	return appValidation.WrapValidationError(err)
}

// Signup registers a new account and issues its first token pair.
func (a *authUseCase) Signup(ctx context.Context, input SignupInput) (*AuthOutput, error) {
	if err := a.validateSignupInput(input); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	usernameTaken, err := a.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if usernameTaken {
		return nil, userDomain.ErrUsernameTaken
	}

	emailTaken, err := a.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, userDomain.ErrEmailTaken
	}

	hashedPassword, err := a.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &userDomain.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Role:     userDomain.RoleUser,
	}

	if err := a.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return a.issuePair(ctx, user)
}

// Login verifies credentials and issues a fresh token pair.
//
// Unknown email and wrong password both return ErrInvalidCredentials to
// prevent account enumeration.
func (a *authUseCase) Login(ctx context.Context, input LoginInput) (*AuthOutput, error) {
	user, err := a.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(input.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.passwordService.Verify(input.Password, user.Password) {
		return nil, authDomain.ErrInvalidCredentials
	}

	return a.issuePair(ctx, user)
}

// Refresh exchanges a valid refresh token for a fresh token pair.
//
// The refresh token is checked through the same TokenService as access tokens;
// there is no revocation mechanism, so a stolen refresh token stays usable
// until its natural expiry. Known limitation.
func (a *authUseCase) Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error) {
	// Resolve the subject before full validation so the principal to
	// validate against is known.
	subject, err := a.tokenService.ExtractSubject(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := a.userRepo.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, authDomain.ErrInvalidToken
		}
		return nil, err
	}

	claims, err := a.tokenService.Validate(refreshToken, user.Email)
	if err != nil {
		return nil, err
	}
	if claims.Kind != authDomain.TokenKindRefresh {
		return nil, authDomain.ErrInvalidToken
	}

	return a.issuePair(ctx, user)
}

// Authenticate resolves and validates the principal behind a bearer access token.
func (a *authUseCase) Authenticate(ctx context.Context, accessToken string) (*userDomain.User, error) {
	subject, err := a.tokenService.ExtractSubject(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := a.userRepo.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, authDomain.ErrInvalidToken
		}
		return nil, err
	}

	claims, err := a.tokenService.Validate(accessToken, user.Email)
	if err != nil {
		return nil, err
	}
	if claims.Kind != authDomain.TokenKindAccess {
		return nil, authDomain.ErrInvalidToken
	}

	return user, nil
}

// issuePair issues a fresh access/refresh token pair for the user.
func (a *authUseCase) issuePair(ctx context.Context, user *userDomain.User) (*AuthOutput, error) {
	accessToken, err := a.tokenService.Issue(user, authDomain.TokenKindAccess)
	if err != nil {
		return nil, err
	}

	refreshToken, err := a.tokenService.Issue(user, authDomain.TokenKindRefresh)
	if err != nil {
		return nil, err
	}

	if a.events != nil {
		a.events.TokenIssued(ctx, string(authDomain.TokenKindAccess))
		a.events.TokenIssued(ctx, string(authDomain.TokenKindRefresh))
	}

	return &AuthOutput{
		Tokens: authDomain.TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
		User: user,
	}, nil
}
