package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no tier holds the key. Callers must
// treat it as recoverable: skip the file and continue, never abort a batch.
var ErrNotFound = errors.New("blob not found")

// Store is a logical byte store. The production wiring is a FallbackStore
// over an S3 primary and a local-filesystem fallback; either backend also
// satisfies Store on its own.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete is best-effort; implementations log failures instead of
	// returning them where possible.
	Delete(ctx context.Context, key string) error
}
