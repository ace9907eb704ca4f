package models

import (
	"fmt"
	"time"
)

// CacheEntry is a raw provider payload persisted so open data is fetched at most once.
//
// Kind groups payloads by resource type (matches, events, three-sixty) and Key is the provider path.
type CacheEntry struct {
	id        string
	sequence  int
	kind      string
	key       string
	body      []byte
	createdAt time.Time
	updatedAt time.Time
}

var _ Model = (*CacheEntry)(nil)

// NewCacheEntry creates an unsaved [CacheEntry]; the repository assigns its ID.
func NewCacheEntry(sequence int, kind, key string, body []byte) *CacheEntry {
	now := time.Now().UTC()
	return &CacheEntry{
		sequence:  sequence,
		kind:      kind,
		key:       key,
		body:      body,
		createdAt: now,
		updatedAt: now,
	}
}

// RestoreCacheEntry rebuilds a [CacheEntry] from stored columns.
func RestoreCacheEntry(id string, sequence int, kind, key string, body []byte, createdAt, updatedAt time.Time) *CacheEntry {
	return &CacheEntry{
		id:        id,
		sequence:  sequence,
		kind:      kind,
		key:       key,
		body:      body,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c *CacheEntry) ID() string           { return c.id }
func (c *CacheEntry) Sequence() int        { return c.sequence }
func (c *CacheEntry) Kind() string         { return c.kind }
func (c *CacheEntry) Key() string          { return c.key }
func (c *CacheEntry) Body() []byte         { return c.body }
func (c *CacheEntry) CreatedAt() time.Time { return c.createdAt }
func (c *CacheEntry) UpdatedAt() time.Time { return c.updatedAt }

func (c *CacheEntry) SetID(id string)          { c.id = id }
func (c *CacheEntry) SetSequence(sequence int) { c.sequence = sequence }

// SetBody replaces the payload and bumps the update timestamp.
func (c *CacheEntry) SetBody(body []byte) {
	c.body = body
	c.updatedAt = time.Now().UTC()
}

// Validate checks required fields.
func (c *CacheEntry) Validate() error {
	if c.kind == "" {
		return fmt.Errorf("cache entry kind is required")
	}
	if c.key == "" {
		return fmt.Errorf("cache entry key is required")
	}
	if len(c.body) == 0 {
		return fmt.Errorf("cache entry body is empty")
	}
	return nil
}
