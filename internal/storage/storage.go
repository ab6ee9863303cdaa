package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by Open when no object exists under the key.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore is a private bucket of file objects addressed by key.
type ObjectStore interface {
	// Put stores the object, failing if the key is already taken.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Open streams the object's bytes.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
