package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/gideon/notes/internal/auth/usecase"
	apperrors "github.com/gideon/notes/internal/errors"
	"github.com/gideon/notes/internal/httputil"
)

// AuthenticationMiddleware provides authentication via Bearer token in the
// Authorization header.
//
// The middleware:
//  1. Extracts the Bearer token from the Authorization header (case-insensitive)
//  2. Resolves and validates the principal via AuthUseCase.Authenticate
//  3. Stores the authenticated user in the request context
//  4. Allows downstream handlers to access the user via GetUser()
//
// Error handling:
//   - Missing/malformed Authorization header → 401 Unauthorized
//   - Invalid token (bad signature, altered subject) → 401 unauthorized
//   - Expired token → 401 token_expired (distinct, so clients refresh)
func AuthenticationMiddleware(
	authUC authUseCase.AuthUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		user, err := authUC.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		// Store authenticated user in context
		ctx := WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.Int64("user_id", user.ID),
			slog.String("username", user.Username))

		c.Next()
	}
}

// BearerToken extracts the bearer token from the Authorization header.
// The "bearer" scheme is matched case-insensitively.
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	const bearerPrefix = "bearer "
	if len(authHeader) < len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := authHeader[len(bearerPrefix):]
	if token == "" {
		return "", false
	}

	return token, true
}
