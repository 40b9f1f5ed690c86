package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a named blob does not exist.
//
// Implementations return errors satisfying errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("blob not found")

// Store is an abstraction over named, immutable blobs.
type Store interface {
	// Open opens a blob for streaming reads. The caller must close the
	// returned reader.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Put writes a blob from r, replacing any existing blob of that name.
	Put(ctx context.Context, name string, r io.Reader) error

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all blobs with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
