// Package http assembles the API router and owns the HTTP server lifecycle.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	authHTTP "github.com/gideon/notes/internal/auth/http"
	"github.com/gideon/notes/internal/config"
	noteHTTP "github.com/gideon/notes/internal/note/http"
)

// RouterDeps carries the handlers and optional middlewares the router mounts.
// Nil optional middlewares are skipped.
type RouterDeps struct {
	AuthHandler *authHTTP.AuthHandler
	NoteHandler *noteHTTP.NoteHandler
	// AuthMiddleware authenticates bearer tokens; guards /api/notes.
	AuthMiddleware gin.HandlerFunc
	// AdmissionMiddleware rate limits /api; runs before authentication.
	AdmissionMiddleware gin.HandlerFunc
	// MetricsMiddleware records request metrics when metrics are enabled.
	MetricsMiddleware gin.HandlerFunc
}

// NewRouter builds the full route tree. Health and readiness sit outside /api
// so probes are never rate limited.
func NewRouter(cfg *config.Config, logger *slog.Logger, deps RouterDeps) *gin.Engine {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))
	router.Use(RecoveryMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}
	if deps.MetricsMiddleware != nil {
		router.Use(deps.MetricsMiddleware)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	api := router.Group("/api")
	if deps.AdmissionMiddleware != nil {
		api.Use(deps.AdmissionMiddleware)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/signup", deps.AuthHandler.SignupHandler)
		auth.POST("/login", deps.AuthHandler.LoginHandler)
		auth.POST("/refresh", deps.AuthHandler.RefreshHandler)
	}

	notes := api.Group("/notes")
	notes.Use(deps.AuthMiddleware)
	{
		notes.POST("", deps.NoteHandler.CreateNoteHandler)
		notes.GET("", deps.NoteHandler.ListNotesHandler)
		notes.GET("/:id", deps.NoteHandler.GetNoteHandler)
		notes.PUT("/:id", deps.NoteHandler.UpdateNoteHandler)
		notes.DELETE("/:id", deps.NoteHandler.DeleteNoteHandler)
		notes.POST("/:id/restore", deps.NoteHandler.RestoreNoteHandler)
	}

	return router
}

// Server wraps the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates the API server around an assembled router.
func NewServer(host string, port int, router *gin.Engine, logger *slog.Logger) *Server {
	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the API server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
