package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lcampos/vocadeck/internal/errors"
	"github.com/lcampos/vocadeck/internal/logger"
	"github.com/lcampos/vocadeck/internal/models"
)

func (s *Server) handleListFlashcards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("listing flashcards")

	values, err := s.FlashcardService.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, values)
}

func (s *Server) handleCreateFlashcard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var draft models.FlashcardDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Warn("invalid create payload: %v", err)
		handleError(w, r, errors.NewValidationError("body", "invalid JSON payload"))
		return
	}

	card, err := s.FlashcardService.Create(r.Context(), draft)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("flashcard created: id=%s", card.ID)
	writeJSON(w, http.StatusCreated, card)
}

func (s *Server) handleUpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	var card models.Flashcard
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		log.Warn("invalid update payload: %v", err)
		handleError(w, r, errors.NewValidationError("body", "invalid JSON payload"))
		return
	}

	updated, err := s.FlashcardService.Replace(r.Context(), id, card)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("flashcard updated: id=%s", updated.ID)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := s.FlashcardService.Delete(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("flashcard deleted: id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}
