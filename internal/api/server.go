// Package api provides the HTTP API server and handlers for the GamesHub application.
package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gameshubapp/gameshub-server/internal/config"
	"github.com/gameshubapp/gameshub-server/internal/service"
	"github.com/gameshubapp/gameshub-server/internal/sessions"
	"github.com/gameshubapp/gameshub-server/internal/store/sqlite"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           *sqlite.Store
	sessions        *sessions.Store
	services        *service.Services
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	authRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, store *sqlite.Store, sessionStore *sessions.Store, services *service.Services, logger *slog.Logger) *Server {
	s := &Server{
		store:    store,
		sessions: sessionStore,
		services: services,
		router:   chi.NewRouter(),
		logger:   logger,
		// Credential endpoints share one per-IP limiter.
		authRateLimiter: NewRateLimiter(20, time.Minute, 10),
	}

	s.setupMiddleware(cfg)

	humaConfig := huma.DefaultConfig("GamesHub API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerGameRoutes()
	s.registerLibraryRoutes()
	s.registerUserRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(cfg *config.Config) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   splitOrigins(cfg.Server.AllowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	s.router.Use(authMiddleware(s.services.Auth))
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
