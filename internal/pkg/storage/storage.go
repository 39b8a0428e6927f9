package storage

import (
	"context"
	"io"
)

// Storage is the interface for persisting uploaded files (court photos).
type Storage interface {
	// Save writes content at the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the file at the given relative path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file at the given relative path.
	Delete(ctx context.Context, path string) error
}
