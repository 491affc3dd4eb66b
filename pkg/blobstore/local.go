package blobstore

import (
	"context"
	"os"
	"path/filepath"
)

// LocalStore keeps blobs as flat files under a single directory. Keys are
// storage filenames (uuid + extension), so no nesting is needed.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

func (l *LocalStore) path(key string) string {
	return filepath.Join(l.dir, filepath.Base(key))
}

func (l *LocalStore) Put(_ context.Context, key string, data []byte) error {
	return os.WriteFile(l.path(key), data, 0o644)
}

func (l *LocalStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(l.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return data, err
}

func (l *LocalStore) Delete(_ context.Context, key string) error {
	err := os.Remove(l.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
