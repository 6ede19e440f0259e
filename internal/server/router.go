package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/codesphere-app/review-api/internal/config"
	"github.com/codesphere-app/review-api/internal/core"
	"github.com/codesphere-app/review-api/internal/server/handler"
)

// NewRouter creates and configures the HTTP router with middleware and API routes.
func NewRouter(cfg *config.Config, reviewer core.Reviewer, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	origins := cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// No request timeout: a review blocks until the upstream call returns.
	r.Route("/api", func(r chi.Router) {
		reviewHandler := handler.NewReviewHandler(reviewer, logger)
		r.Post("/review", reviewHandler.Handle)
	})

	return r
}
