// Copyright (c) 2026 Plume. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/plumeblog/plume/internal/blog/category"
	"github.com/plumeblog/plume/internal/blog/comment"
	"github.com/plumeblog/plume/internal/blog/favorite"
	"github.com/plumeblog/plume/internal/blog/post"
	"github.com/plumeblog/plume/internal/platform/config"
	"github.com/plumeblog/plume/internal/platform/constants"
	"github.com/plumeblog/plume/internal/platform/middleware"
	"github.com/plumeblog/plume/internal/users/account"
	"github.com/plumeblog/plume/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here; no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler, always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler, 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles credential and federated login plus token refresh.
	Auth *auth.Handler

	// Account handles user registration, profiles, and promotion.
	Account *account.Handler

	// Category manages the admin-curated category taxonomy.
	Category *category.Handler

	// Post handles the article catalogue, search, and per-category reads.
	Post *post.Handler

	// Comment handles commentary, both standalone and nested under posts.
	Comment *comment.Handler

	// Favorite handles per-user bookmarks.
	Favorite *favorite.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.AuthenticateLenient(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain route groups mounted at the root. Comment reads and writes
	// scoped to one post live under /posts/{id}/comments; the post id is
	// resolved from the parent route context.
	posts := h.Post.Routes()
	posts.Mount("/{id}/comments", h.Comment.PostRoutes())

	r.Mount("/users", h.Account.Routes())
	r.Mount("/categories", h.Category.Routes())
	r.Mount("/posts", posts)
	r.Mount("/comments", h.Comment.Routes())

	// Every favorite endpoint requires an identity, so the whole group sits
	// behind RequireAuth instead of each handler rejecting anonymous itself.
	r.With(middleware.RequireAuth).Mount("/favorites", h.Favorite.Routes())
	r.Mount("/", h.Auth.Routes())

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
