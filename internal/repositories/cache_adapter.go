package repositories

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/desertthunder/stratos/internal/models"
	"github.com/desertthunder/stratos/internal/shared"
)

// CacheAdapter exposes [CacheRepository] as the payload cache of the provider sources.
type CacheAdapter struct {
	repo *CacheRepository
}

func NewCacheAdapter(repo *CacheRepository) *CacheAdapter {
	return &CacheAdapter{repo: repo}
}

// Lookup returns the cached body, or [shared.ErrCacheMiss].
func (a *CacheAdapter) Lookup(kind, key string) ([]byte, error) {
	entry, err := a.repo.GetByKey(kind, key)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return entry.Body(), nil
}

// Store saves body under kind and key. Storing an identical body again is a no-op; a different
// body replaces the stored one.
func (a *CacheAdapter) Store(kind, key string, body []byte) error {
	existing, err := a.repo.GetByKey(kind, key)
	switch {
	case err == nil:
		if bytes.Equal(existing.Body(), body) {
			return nil
		}
		existing.SetBody(body)
		return a.repo.Update(existing)
	case errors.Is(err, shared.ErrNotFound):
		if err := a.repo.Create(models.NewCacheEntry(0, kind, key, body)); err != nil {
			return fmt.Errorf("failed to cache %s: %w", key, err)
		}
		return nil
	default:
		return err
	}
}
