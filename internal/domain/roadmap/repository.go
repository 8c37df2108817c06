package roadmap

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("roadmap not found")

type Repository interface {
	// Save replaces the user's document entirely.
	Save(ctx context.Context, doc Document) error
	Get(ctx context.Context, userID string) (Document, error)
	// Update loads the document under a row lock, applies fn and writes the
	// result back. A non-nil error from fn aborts without writing.
	Update(ctx context.Context, userID string, fn func(*Document) error) (Document, error)
}
