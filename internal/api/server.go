// Package api provides the HTTP API server and handlers for the PageTurn application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/pageturnapp/pageturn-server/internal/auth"
	"github.com/pageturnapp/pageturn-server/internal/http/response"
	"github.com/pageturnapp/pageturn-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	bookService      *service.BookService
	logService       *service.LogService
	rewindService    *service.RewindService
	discoveryService *service.DiscoveryService
	tokens           *auth.TokenService
	validate         *validator.Validate
	router           *chi.Mux
	logger           *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	bookService *service.BookService,
	logService *service.LogService,
	rewindService *service.RewindService,
	discoveryService *service.DiscoveryService,
	tokens *auth.TokenService,
	logger *slog.Logger,
) *Server {
	s := &Server{
		bookService:      bookService,
		logService:       logService,
		rewindService:    rewindService,
		discoveryService: discoveryService,
		tokens:           tokens,
		validate:         validator.New(validator.WithRequiredStructEnabled()),
		router:           chi.NewRouter(),
		logger:           logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(RateLimitMiddleware(NewRateLimiter(120, time.Minute, 30), s.logger))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1, all user-scoped and authenticated.
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/library", s.handleListLibrary)
		r.Post("/books", s.handleCreateBook)
		r.Get("/books/{id}", s.handleGetBook)
		r.Post("/logs", s.handleCreateLog)
		r.Get("/logs", s.handleListLogs)
		r.Get("/rewind", s.handleRewindSummary)
		r.Get("/rewind/totals", s.handleRewindTotals)
		r.Get("/discover", s.handleDiscover)
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
