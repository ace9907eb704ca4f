package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/stratos/internal/models"
	"github.com/desertthunder/stratos/internal/services"
	"github.com/desertthunder/stratos/internal/shared"
)

var _ services.Cache = (*CacheAdapter)(nil)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "cache_entries")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}

	if _, err := NextSequence(db, "missing"); err == nil {
		t.Error("expected error for a table without a sequence")
	}
}

func TestCacheRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		repo := NewCacheRepository(setupTestDB(t))
		entry := models.NewCacheEntry(0, "events", "events/1.json", []byte(`[]`))

		if err := repo.Create(entry); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}
		if entry.ID() == "" {
			t.Error("entry ID should be set after creation")
		}
		if entry.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", entry.Sequence())
		}
	})

	t.Run("Create ValidationError", func(t *testing.T) {
		repo := NewCacheRepository(setupTestDB(t))
		if err := repo.Create(models.NewCacheEntry(0, "events", "events/1.json", nil)); err == nil {
			t.Fatal("expected validation error for empty body")
		}
	})

	t.Run("Create Duplicate", func(t *testing.T) {
		repo := NewCacheRepository(setupTestDB(t))
		if err := repo.Create(models.NewCacheEntry(0, "events", "events/1.json", []byte(`[]`))); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}
		if err := repo.Create(models.NewCacheEntry(0, "events", "events/1.json", []byte(`[1]`))); err == nil {
			t.Fatal("expected error for duplicate kind and key")
		}
	})

	t.Run("Get and GetByKey", func(t *testing.T) {
		repo := NewCacheRepository(setupTestDB(t))
		entry := models.NewCacheEntry(0, "matches", "matches/43/106.json", []byte(`[{"match_id":1}]`))
		if err := repo.Create(entry); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}

		byID, err := repo.Get(entry.ID())
		if err != nil {
			t.Fatalf("failed to get entry: %v", err)
		}
		if byID.Key() != "matches/43/106.json" || string(byID.Body()) != `[{"match_id":1}]` {
			t.Errorf("unexpected entry %s %s", byID.Key(), byID.Body())
		}

		byKey, err := repo.GetByKey("matches", "matches/43/106.json")
		if err != nil {
			t.Fatalf("failed to get entry by key: %v", err)
		}
		if byKey.ID() != entry.ID() {
			t.Errorf("expected ID %s, got %s", entry.ID(), byKey.ID())
		}

		if _, err := repo.GetByKey("events", "matches/43/106.json"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if _, err := repo.Get("nonexistent-id"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		repo := NewCacheRepository(setupTestDB(t))
		entry := models.NewCacheEntry(0, "events", "events/1.json", []byte(`[]`))
		if err := repo.Create(entry); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}

		entry.SetBody([]byte(`[{"id":"a"}]`))
		if err := repo.Update(entry); err != nil {
			t.Fatalf("failed to update entry: %v", err)
		}

		got, _ := repo.Get(entry.ID())
		if string(got.Body()) != `[{"id":"a"}]` {
			t.Errorf("expected updated body, got %s", got.Body())
		}

		missing := models.RestoreCacheEntry("nonexistent-id", 1, "events", "x", []byte(`[]`), entry.CreatedAt(), entry.UpdatedAt())
		if err := repo.Update(missing); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		repo := NewCacheRepository(setupTestDB(t))
		entry := models.NewCacheEntry(0, "events", "events/1.json", []byte(`[]`))
		if err := repo.Create(entry); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}

		if err := repo.Delete(entry.ID()); err != nil {
			t.Fatalf("failed to delete entry: %v", err)
		}
		if _, err := repo.Get(entry.ID()); err == nil {
			t.Error("expected error when getting deleted entry")
		}
		if err := repo.Delete(entry.ID()); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("List and Purge", func(t *testing.T) {
		repo := NewCacheRepository(setupTestDB(t))
		for _, e := range []*models.CacheEntry{
			models.NewCacheEntry(0, "matches", "matches/43/106.json", []byte(`[]`)),
			models.NewCacheEntry(0, "events", "events/1.json", []byte(`[]`)),
			models.NewCacheEntry(0, "events", "events/2.json", []byte(`[]`)),
		} {
			if err := repo.Create(e); err != nil {
				t.Fatalf("failed to create entry: %v", err)
			}
		}

		all, err := repo.List(nil)
		if err != nil || len(all) != 3 {
			t.Fatalf("expected 3 entries, got %d, %v", len(all), err)
		}
		for i, e := range all {
			if e.Sequence() != i+1 {
				t.Errorf("expected sequence order, got %d at %d", e.Sequence(), i)
			}
		}

		events, _ := repo.List(map[string]any{"kind": "events"})
		if len(events) != 2 {
			t.Errorf("expected 2 events entries, got %d", len(events))
		}

		n, err := repo.Purge("events")
		if err != nil || n != 2 {
			t.Errorf("expected 2 purged, got %d, %v", n, err)
		}
		n, _ = repo.Purge("")
		if n != 1 {
			t.Errorf("expected 1 purged, got %d", n)
		}
		if rest, _ := repo.List(nil); len(rest) != 0 {
			t.Errorf("expected empty cache, got %d", len(rest))
		}
	})
}

func TestCacheAdapter(t *testing.T) {
	t.Run("miss then hit", func(t *testing.T) {
		adapter := NewCacheAdapter(NewCacheRepository(setupTestDB(t)))

		if _, err := adapter.Lookup("events", "events/1.json"); !errors.Is(err, shared.ErrCacheMiss) {
			t.Fatalf("expected ErrCacheMiss, got %v", err)
		}
		if err := adapter.Store("events", "events/1.json", []byte(`[]`)); err != nil {
			t.Fatalf("failed to store: %v", err)
		}
		body, err := adapter.Lookup("events", "events/1.json")
		if err != nil || string(body) != "[]" {
			t.Errorf("expected cached body, got %q, %v", body, err)
		}
	})

	t.Run("store is idempotent", func(t *testing.T) {
		repo := NewCacheRepository(setupTestDB(t))
		adapter := NewCacheAdapter(repo)

		for range 3 {
			if err := adapter.Store("events", "events/1.json", []byte(`[]`)); err != nil {
				t.Fatalf("failed to store: %v", err)
			}
		}
		entries, _ := repo.List(nil)
		if len(entries) != 1 {
			t.Errorf("expected 1 entry, got %d", len(entries))
		}
	})

	t.Run("store replaces a changed body", func(t *testing.T) {
		adapter := NewCacheAdapter(NewCacheRepository(setupTestDB(t)))
		adapter.Store("events", "events/1.json", []byte(`[]`))
		if err := adapter.Store("events", "events/1.json", []byte(`[1]`)); err != nil {
			t.Fatalf("failed to store: %v", err)
		}
		body, _ := adapter.Lookup("events", "events/1.json")
		if string(body) != "[1]" {
			t.Errorf("expected replaced body, got %s", body)
		}
	})

	t.Run("cached source round trip", func(t *testing.T) {
		adapter := NewCacheAdapter(NewCacheRepository(setupTestDB(t)))
		root := t.TempDir()
		source := services.NewCachedSource(services.NewDirSource(root), adapter, nil)

		if _, err := source.Fetch(t.Context(), services.EventsPath(1)); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound from an empty directory, got %v", err)
		}

		adapter.Store(services.KindEvents, services.EventsPath(1), []byte(`[]`))
		body, err := source.Fetch(t.Context(), services.EventsPath(1))
		if err != nil || string(body) != "[]" {
			t.Errorf("expected cached payload, got %q, %v", body, err)
		}
	})
}
