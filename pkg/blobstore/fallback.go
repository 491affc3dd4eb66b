package blobstore

import (
	"context"

	"creative-critique-be/internal/pkg/logger"
)

// FallbackStore layers a local store under a remote primary. Writes go to
// the primary and degrade to local when the primary is unreachable; reads
// try the primary first and fall through to local, so files uploaded while
// degraded stay servable.
type FallbackStore struct {
	primary Store
	local   Store
	log     logger.ILogger
}

func NewFallbackStore(primary, local Store, log logger.ILogger) *FallbackStore {
	return &FallbackStore{primary: primary, local: local, log: log}
}

func (f *FallbackStore) Put(ctx context.Context, key string, data []byte) error {
	if err := f.primary.Put(ctx, key, data); err != nil {
		f.log.Warn("blobstore", "primary put failed, writing to local fallback", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return f.local.Put(ctx, key, data)
	}
	return nil
}

func (f *FallbackStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := f.primary.Get(ctx, key)
	if err == nil {
		return data, nil
	}
	if err != ErrNotFound {
		f.log.Warn("blobstore", "primary get failed, trying local fallback", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	return f.local.Get(ctx, key)
}

func (f *FallbackStore) Delete(ctx context.Context, key string) error {
	// Remove from both tiers so a degraded-mode upload does not linger.
	if err := f.primary.Delete(ctx, key); err != nil {
		f.log.Warn("blobstore", "primary delete failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	if err := f.local.Delete(ctx, key); err != nil {
		f.log.Warn("blobstore", "local delete failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	return nil
}
