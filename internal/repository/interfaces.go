package repository

import "context"

// FlashcardRepository handles flashcard data access. The store is a
// plain key-value namespace: values are opaque JSON documents and the
// repository never inspects them.
type FlashcardRepository interface {
	// Put inserts or replaces the value for id. Last write wins.
	Put(ctx context.Context, id string, data []byte) error
	// List returns every stored value. Order is unspecified.
	List(ctx context.Context) ([][]byte, error)
	// Delete removes the value for id and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
}
