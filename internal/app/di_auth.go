package app

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/gideon/notes/internal/auth/http"
	authService "github.com/gideon/notes/internal/auth/service"
	authUseCase "github.com/gideon/notes/internal/auth/usecase"
	"github.com/gideon/notes/internal/ratelimit"
	userRepository "github.com/gideon/notes/internal/user/repository"
)

// authComponents groups the lazily built authentication components.
type authComponents struct {
	tokenService    authService.TokenService
	passwordService authService.PasswordService
	userRepo        authUseCase.UserRepository
	useCase         authUseCase.AuthUseCase
	handler         *authHTTP.AuthHandler
	middleware      gin.HandlerFunc
	admission       gin.HandlerFunc

	tokenServiceInit    sync.Once
	passwordServiceInit sync.Once
	userRepoInit        sync.Once
	useCaseInit         sync.Once
	handlerInit         sync.Once
	middlewareInit      sync.Once
	admissionInit       sync.Once
}

// TokenService returns the JWT token service.
func (c *Container) TokenService() (authService.TokenService, error) {
	c.auth.tokenServiceInit.Do(func() {
		tokenService, err := authService.NewTokenService(
			c.config.JWTSecretKey,
			c.config.JWTAccessTokenExpiration,
			c.config.JWTRefreshTokenExpiration,
		)
		if err != nil {
			c.initErrors["tokenService"] = fmt.Errorf("failed to create token service: %w", err)
			return
		}
		c.auth.tokenService = tokenService
	})
	if storedErr, exists := c.initErrors["tokenService"]; exists {
		return nil, storedErr
	}
	return c.auth.tokenService, nil
}

// PasswordService returns the Argon2id password service.
func (c *Container) PasswordService() authService.PasswordService {
	c.auth.passwordServiceInit.Do(func() {
		c.auth.passwordService = authService.NewPasswordService()
	})
	return c.auth.passwordService
}

// UserRepository returns the user repository for the configured driver.
func (c *Container) UserRepository() (authUseCase.UserRepository, error) {
	c.auth.userRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["userRepo"] = fmt.Errorf("failed to get database for user repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.auth.userRepo = userRepository.NewMySQLUserRepository(db)
		case "postgres":
			c.auth.userRepo = userRepository.NewPostgreSQLUserRepository(db)
		default:
			c.initErrors["userRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.auth.userRepo, nil
}

// AuthUseCase returns the authentication use case.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	c.auth.useCaseInit.Do(func() {
		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["authUseCase"] = fmt.Errorf("failed to get user repository for auth use case: %w", err)
			return
		}

		tokenService, err := c.TokenService()
		if err != nil {
			c.initErrors["authUseCase"] = fmt.Errorf("failed to get token service for auth use case: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["authUseCase"] = fmt.Errorf("failed to get business metrics for auth use case: %w", err)
			return
		}

		c.auth.useCase = authUseCase.NewAuthUseCase(
			userRepo,
			tokenService,
			c.PasswordService(),
			businessMetrics,
		)
	})
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.auth.useCase, nil
}

// AuthHandler returns the authentication HTTP handler.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	c.auth.handlerInit.Do(func() {
		useCase, err := c.AuthUseCase()
		if err != nil {
			c.initErrors["authHandler"] = fmt.Errorf("failed to get auth use case for auth handler: %w", err)
			return
		}
		c.auth.handler = authHTTP.NewAuthHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["authHandler"]; exists {
		return nil, storedErr
	}
	return c.auth.handler, nil
}

// AuthMiddleware returns the bearer token authentication middleware.
func (c *Container) AuthMiddleware() (gin.HandlerFunc, error) {
	c.auth.middlewareInit.Do(func() {
		useCase, err := c.AuthUseCase()
		if err != nil {
			c.initErrors["authMiddleware"] = fmt.Errorf("failed to get auth use case for auth middleware: %w", err)
			return
		}
		c.auth.middleware = authHTTP.AuthenticationMiddleware(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["authMiddleware"]; exists {
		return nil, storedErr
	}
	return c.auth.middleware, nil
}

// AdmissionMiddleware returns the rate-limit admission middleware, or nil
// when rate limiting is disabled.
func (c *Container) AdmissionMiddleware() (gin.HandlerFunc, error) {
	c.auth.admissionInit.Do(func() {
		registry := c.RateLimitRegistry()
		if registry == nil {
			return
		}

		tokenService, err := c.TokenService()
		if err != nil {
			c.initErrors["admissionMiddleware"] = fmt.Errorf("failed to get token service for admission middleware: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["admissionMiddleware"] = fmt.Errorf("failed to get business metrics for admission middleware: %w", err)
			return
		}

		c.auth.admission = ratelimit.AdmissionMiddleware(registry, tokenService, businessMetrics, c.Logger())
	})
	if storedErr, exists := c.initErrors["admissionMiddleware"]; exists {
		return nil, storedErr
	}
	return c.auth.admission, nil
}
