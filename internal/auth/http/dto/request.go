// Package dto provides data transfer objects for the auth HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	authUseCase "github.com/gideon/notes/internal/auth/usecase"
)

// SignupRequest represents the API request for account registration.
// Field-level rules live in the use case; this only rejects empty bodies early.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks if the signup request is structurally valid.
func (r *SignupRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginRequest represents the API request for authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks if the login request is structurally valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// RefreshTokenRequest represents the API request for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Validate checks if the refresh request is structurally valid.
func (r *RefreshTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

// ToSignupInput converts the request DTO to use case input.
func ToSignupInput(r SignupRequest) authUseCase.SignupInput {
	return authUseCase.SignupInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
	}
}

// ToLoginInput converts the request DTO to use case input.
func ToLoginInput(r LoginRequest) authUseCase.LoginInput {
	return authUseCase.LoginInput{
		Email:    r.Email,
		Password: r.Password,
	}
}
