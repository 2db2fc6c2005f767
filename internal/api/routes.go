package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/lcampos/vocadeck/internal/services"
)

type Server struct {
	FlashcardService services.FlashcardService
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api/flashcards", func(r chi.Router) {
		r.Get("/", s.handleListFlashcards)
		r.Post("/", s.handleCreateFlashcard)
		r.Put("/{id}", s.handleUpdateFlashcard)
		r.Delete("/{id}", s.handleDeleteFlashcard)
	})

	// The store is reached from browser clients on other origins; the
	// namespace carries nothing origin-sensitive, so CORS stays open.
	return cors.AllowAll().Handler(r)
}
