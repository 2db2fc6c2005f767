package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockFlashcardRepository is a mock implementation of repository.FlashcardRepository
type MockFlashcardRepository struct {
	mock.Mock
}

func (m *MockFlashcardRepository) Put(ctx context.Context, id string, data []byte) error {
	args := m.Called(ctx, id, data)
	return args.Error(0)
}

func (m *MockFlashcardRepository) List(ctx context.Context) ([][]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]byte), args.Error(1)
}

func (m *MockFlashcardRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
