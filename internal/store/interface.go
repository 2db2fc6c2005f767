package store

import (
	"context"

	"github.com/lcampos/vocadeck/internal/models"
)

// ClientInterface defines the interface for flashcard store operations.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	List(ctx context.Context) ([]models.Flashcard, error)
	Create(ctx context.Context, draft models.FlashcardDraft) (models.Flashcard, error)
	Update(ctx context.Context, card models.Flashcard) (models.Flashcard, error)
	Delete(ctx context.Context, id string) error
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
