package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) setupRoutes() {
	// Middleware stack
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(middleware.Recoverer)

	// API versioning group
	s.router.Route("/api/v1", func(r chi.Router) {
		// Health check endpoint
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK")) // Best effort write
		})

		// Quote library endpoints
		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", s.handleListQuotes)
			r.Post("/", s.handleAddQuote)
			r.Get("/random", s.handleRandomQuote)
			r.Get("/{id}", s.handleGetQuote)
			r.Delete("/{id}", s.handleDeleteQuote)
		})

		// Per-user endpoints
		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/profile", s.handleGetProfile)
			r.Put("/profile", s.handleSaveProfile)
			r.Delete("/profile", s.handleDeleteProfile)
			r.Put("/categories", s.handleSetCategories)

			r.Get("/favorites", s.handleListFavorites)
			r.Put("/favorites/{id}", s.handleToggleFavorite)

			r.Get("/reminders", s.handleListReminders)
			r.Put("/reminders", s.handleApplyReminders)
			r.Delete("/reminders", s.handleCancelReminders)
		})

		// Backup endpoints
		r.Get("/backup", s.handleExportBackup)
		r.Post("/backup", s.handleImportBackup)
	})
}
