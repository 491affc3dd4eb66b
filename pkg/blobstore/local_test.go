package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)

	ctx := context.Background()
	err = store.Put(ctx, "abc123.png", []byte("image-bytes"))
	assert.NoError(t, err)

	data, err := store.Get(ctx, "abc123.png")
	assert.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)

	err = store.Delete(ctx, "abc123.png")
	assert.NoError(t, err)

	_, err = store.Get(ctx, "abc123.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStoreDeleteMissingKey(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)

	// Deleting a key that was never written is not an error.
	assert.NoError(t, store.Delete(context.Background(), "never-written.pdf"))
}

func TestLocalStoreStripsPathComponents(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)

	ctx := context.Background()
	err = store.Put(ctx, "../../etc/passwd", []byte("x"))
	assert.NoError(t, err)

	// Only the base name is used, so the traversal collapses to one key.
	data, err := store.Get(ctx, "passwd")
	assert.NoError(t, err)
	assert.Equal(t, []byte("x"), data)
}
