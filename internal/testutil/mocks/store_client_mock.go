package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lcampos/vocadeck/internal/models"
)

// MockStoreClient is a mock implementation of store.ClientInterface
type MockStoreClient struct {
	mock.Mock
}

func (m *MockStoreClient) List(ctx context.Context) ([]models.Flashcard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}

func (m *MockStoreClient) Create(ctx context.Context, draft models.FlashcardDraft) (models.Flashcard, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(models.Flashcard), args.Error(1)
}

func (m *MockStoreClient) Update(ctx context.Context, card models.Flashcard) (models.Flashcard, error) {
	args := m.Called(ctx, card)
	return args.Get(0).(models.Flashcard), args.Error(1)
}

func (m *MockStoreClient) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
