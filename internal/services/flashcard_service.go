package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/lcampos/vocadeck/internal/errors"
	"github.com/lcampos/vocadeck/internal/logger"
	"github.com/lcampos/vocadeck/internal/models"
	"github.com/lcampos/vocadeck/internal/repository"
)

// FlashcardService handles flashcard-related business logic: it assigns
// the store-side fields at creation and enforces the namespace's write
// rules. The id is never taken from the client on the create path, so
// two callers cannot collide on client-generated identifiers.
type FlashcardService interface {
	List(ctx context.Context) ([]json.RawMessage, error)
	Create(ctx context.Context, draft models.FlashcardDraft) (models.Flashcard, error)
	Replace(ctx context.Context, id string, card models.Flashcard) (models.Flashcard, error)
	Delete(ctx context.Context, id string) error
}

type flashcardService struct {
	repo  repository.FlashcardRepository
	now   func() int64
	newID func() (string, error)
}

// Option configures a FlashcardService.
type Option func(*flashcardService)

// WithClock replaces the wall clock used for createdAt/dueDate.
func WithClock(now func() int64) Option {
	return func(s *flashcardService) {
		s.now = now
	}
}

// WithIDGenerator replaces the id generator.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(s *flashcardService) {
		s.newID = newID
	}
}

// NewFlashcardService creates a new FlashcardService
func NewFlashcardService(repo repository.FlashcardRepository, opts ...Option) FlashcardService {
	s := &flashcardService{
		repo:  repo,
		now:   func() int64 { return time.Now().UnixMilli() },
		newID: func() (string, error) { return gonanoid.New() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every stored card document verbatim. Values that are not
// valid JSON are skipped so one corrupt record cannot make the whole
// listing unusable.
func (s *flashcardService) List(ctx context.Context) ([]json.RawMessage, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing flashcards")

	values, err := s.repo.List(ctx)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, errors.NewInternalError(err)
	}

	out := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		if !json.Valid(v) {
			log.Warn("skipping corrupt stored record (%d bytes)", len(v))
			continue
		}
		out = append(out, json.RawMessage(v))
	}
	return out, nil
}

func (s *flashcardService) Create(ctx context.Context, draft models.FlashcardDraft) (models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating flashcard: word=%q", draft.Word)

	if strings.TrimSpace(draft.Word) == "" {
		return models.Flashcard{}, errors.NewValidationError("word", "cannot be empty")
	}
	if strings.TrimSpace(draft.Definition) == "" {
		return models.Flashcard{}, errors.NewValidationError("definition", "cannot be empty")
	}

	id, err := s.newID()
	if err != nil {
		log.Error("failed to generate flashcard id: %v", err)
		return models.Flashcard{}, errors.NewInternalError(err)
	}

	now := s.now()
	card := models.Flashcard{
		ID:              id,
		Word:            draft.Word,
		Definition:      draft.Definition,
		ExampleSentence: draft.ExampleSentence,
		CreatedAt:       now,
		DueDate:         now, // due immediately
		Interval:        0,
	}

	if err := s.put(ctx, card); err != nil {
		return models.Flashcard{}, err
	}

	log.Info("flashcard created: id=%s word=%q", card.ID, card.Word)
	return card, nil
}

// Replace overwrites the card stored under id wholesale. The payload id
// must match the path id; beyond that there is no version check, the
// last write wins.
func (s *flashcardService) Replace(ctx context.Context, id string, card models.Flashcard) (models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("replacing flashcard: id=%s", id)

	if card.ID != id {
		return models.Flashcard{}, errors.NewValidationError("id", "payload id does not match path id")
	}
	if strings.TrimSpace(card.Word) == "" {
		return models.Flashcard{}, errors.NewValidationError("word", "cannot be empty")
	}
	if strings.TrimSpace(card.Definition) == "" {
		return models.Flashcard{}, errors.NewValidationError("definition", "cannot be empty")
	}
	if card.Interval < 0 {
		return models.Flashcard{}, errors.NewValidationError("interval", "cannot be negative")
	}

	if err := s.put(ctx, card); err != nil {
		return models.Flashcard{}, err
	}

	log.Info("flashcard replaced: id=%s interval=%.2f", card.ID, card.Interval)
	return card, nil
}

// Delete removes the card stored under id. Deleting an id that is
// already gone is success: the namespace ends up in the requested state
// either way.
func (s *flashcardService) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting flashcard: id=%s", id)

	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete flashcard: %v", err)
		return errors.NewInternalError(err)
	}
	if !existed {
		log.Debug("flashcard already absent: id=%s", id)
	}
	return nil
}

func (s *flashcardService) put(ctx context.Context, card models.Flashcard) error {
	log := logger.FromContext(ctx)

	data, err := json.Marshal(card)
	if err != nil {
		log.Error("failed to marshal flashcard: %v", err)
		return errors.NewInternalError(err)
	}
	if err := s.repo.Put(ctx, card.ID, data); err != nil {
		log.Error("failed to store flashcard: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
