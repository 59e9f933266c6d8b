package dto

import (
	authUseCase "github.com/gideon/notes/internal/auth/usecase"
)

// AuthResponse represents a successful auth operation in API responses.
type AuthResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	Type         string `json:"type"`
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
}

// MapAuthOutputToResponse converts a use case auth output to an API response.
func MapAuthOutputToResponse(output *authUseCase.AuthOutput) AuthResponse {
	return AuthResponse{
		Token:        output.Tokens.AccessToken,
		RefreshToken: output.Tokens.RefreshToken,
		Type:         "Bearer",
		UserID:       output.User.ID,
		Username:     output.User.Username,
		Email:        output.User.Email,
	}
}
