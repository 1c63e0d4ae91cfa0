package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound indicates the requested key does not exist in the bucket.
var ErrNotFound = errors.New("object not found")

// ObjectStore defines the minimal surface handlers need from blob storage.
type ObjectStore interface {
	// Put writes body under key with the given content type.
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	// Get returns the blob and its stored content type, or ErrNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
}
