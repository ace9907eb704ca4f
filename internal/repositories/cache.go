package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/stratos/internal/models"
	"github.com/desertthunder/stratos/internal/shared"
)

const cacheColumns = "id, sequence, kind, key, body, created_at, updated_at"

// CacheRepository implements models.Repository[*models.CacheEntry].
//
// Entries are unique per (kind, key) and hard-deleted.
type CacheRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.CacheEntry] = (*CacheRepository)(nil)

func NewCacheRepository(db *sql.DB) *CacheRepository {
	return &CacheRepository{db: db}
}

// Create inserts entry with a generated ID and sequence.
func (r *CacheRepository) Create(entry *models.CacheEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "cache_entries")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()

	query := `
		INSERT INTO cache_entries (id, sequence, kind, key, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, id, sequence, entry.Kind(), entry.Key(), entry.Body(), entry.CreatedAt(), entry.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert cache entry: %w", err)
	}

	entry.SetID(id)
	entry.SetSequence(sequence)
	return nil
}

// Get retrieves an entry by ID.
func (r *CacheRepository) Get(id string) (*models.CacheEntry, error) {
	query := "SELECT " + cacheColumns + " FROM cache_entries WHERE id = ?"
	return r.scanOne(r.db.QueryRow(query, id), id)
}

// GetByKey retrieves the entry stored for kind and key.
func (r *CacheRepository) GetByKey(kind, key string) (*models.CacheEntry, error) {
	query := "SELECT " + cacheColumns + " FROM cache_entries WHERE kind = ? AND key = ?"
	return r.scanOne(r.db.QueryRow(query, kind, key), kind+"/"+key)
}

// Update replaces the body of an existing entry.
func (r *CacheRepository) Update(entry *models.CacheEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	result, err := r.db.Exec(
		"UPDATE cache_entries SET body = ?, updated_at = ? WHERE id = ?",
		entry.Body(), entry.UpdatedAt(), entry.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update cache entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: cache entry %s", shared.ErrNotFound, entry.ID())
	}
	return nil
}

// Delete removes an entry by ID.
func (r *CacheRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM cache_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: cache entry %s", shared.ErrNotFound, id)
	}
	return nil
}

// List retrieves entries in sequence order. The "kind" criterion filters by payload kind.
func (r *CacheRepository) List(criteria map[string]any) ([]*models.CacheEntry, error) {
	query := "SELECT " + cacheColumns + " FROM cache_entries WHERE 1 = 1"
	args := []any{}

	if kind, ok := criteria["kind"].(string); ok && kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cache entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.CacheEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return entries, nil
}

// Purge deletes every entry of kind, or every entry when kind is empty, and returns the count.
func (r *CacheRepository) Purge(kind string) (int64, error) {
	query, args := "DELETE FROM cache_entries", []any{}
	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, kind)
	}

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *CacheRepository) scanOne(row *sql.Row, ref string) (*models.CacheEntry, error) {
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: cache entry %s", shared.ErrNotFound, ref)
	}
	return entry, err
}

func scanEntry(s scanner) (*models.CacheEntry, error) {
	var (
		id        string
		sequence  int
		kind      string
		key       string
		body      []byte
		createdAt time.Time
		updatedAt time.Time
	)

	if err := s.Scan(&id, &sequence, &kind, &key, &body, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan cache entry: %w", err)
	}
	return models.RestoreCacheEntry(id, sequence, kind, key, body, createdAt, updatedAt), nil
}
