package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/stratos/internal/models"
	"github.com/desertthunder/stratos/internal/repositories"
	"github.com/desertthunder/stratos/internal/services"
	"github.com/desertthunder/stratos/internal/shared"
	tu "github.com/desertthunder/stratos/internal/testing"
)

const rawEvents = `[
  {"id": "k1", "index": 1, "period": 1, "minute": 3, "type": {"name": "Pass"}, "team": {"name": "Argentina"},
   "player": {"name": "Lionel Messi"}, "location": [10, 10], "pass": {"end_location": [30, 10]}},
  {"id": "k2", "index": 2, "period": 1, "minute": 4, "type": {"name": "Shot"}, "team": {"name": "Argentina"},
   "location": [108, 40], "shot": {"statsbomb_xg": 0.25, "outcome": {"name": "Goal"}}}
]`

func testProvider() *tu.MockProvider {
	var samples []models.Sample
	samples = append(samples, tu.Samples("k1", models.Home, 10, 10, 30, 10)...)
	samples = append(samples, tu.Samples("k2", models.Away, 80, 40)...)

	return &tu.MockProvider{
		Matches: []models.Match{
			{ID: 1, Date: "2022-11-22", HomeTeam: "Argentina", AwayTeam: "Saudi Arabia", HomeScore: 1, AwayScore: 2},
			{ID: 2, Date: "2022-11-26", HomeTeam: "Argentina", AwayTeam: "Mexico", HomeScore: 2},
		},
		RawEvents: map[int][]byte{1: []byte(rawEvents), 2: []byte(rawEvents)},
		Samples:   map[int][]models.Sample{1: samples},
	}
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := shared.OpenDatabase(shared.DatabaseConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestRunner(t *testing.T, provider services.Provider, db *sql.DB) (*Runner, *bytes.Buffer) {
	t.Helper()
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config:   shared.DefaultConfig(),
		Provider: provider,
		DB:       db,
		Logger:   shared.NewLogger(&bytes.Buffer{}),
		Output:   output,
	})
	return runner, output
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			provider := testProvider()

			runner := NewRunner(RunnerOpts{Config: config, Logger: logger, Output: output, Provider: provider})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if p, err := runner.Provider(); err != nil || p != provider {
				t.Errorf("expected provider override, got %v (err %v)", p, err)
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			runner, output := newTestRunner(t, nil, nil)
			if err := runner.writePlain("Hello %s", "pitch"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.String() != "Hello pitch" {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
			err := runner.writePlain("test")
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		names := map[string]bool{}
		for i, cmd := range runner.register() {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names[cmd.Name] = true
		}

		for _, want := range []string{"replay", "matches", "summary", "export", "setup", "cache"} {
			if !names[want] {
				t.Errorf("expected %q command", want)
			}
		}
	})

	t.Run("query", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		if q := runner.query(0); q.HomeTeam != "Argentina" || q.MatchID != 0 || q.CompetitionID != 43 {
			t.Errorf("unexpected default query %+v", q)
		}
		if q := runner.query(99); q.MatchID != 99 {
			t.Errorf("expected match id override, got %+v", q)
		}
	})

	t.Run("Close", func(t *testing.T) {
		runner, _ := newTestRunner(t, nil, testDB(t))
		if err := runner.Close(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if runner.db != nil {
			t.Error("expected database to be released")
		}
		if err := runner.Close(); err != nil {
			t.Errorf("second close should be a no-op, got %v", err)
		}
	})
}

func TestCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("matches", func(t *testing.T) {
		provider := testProvider()
		runner, output := newTestRunner(t, provider, nil)

		if err := matchesCommand(runner).Run(ctx, []string{"matches", "--competition", "43", "--season", "106"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Saudi Arabia", "Mexico", "1-2"} {
			if !strings.Contains(output.String(), want) {
				t.Errorf("expected %q in output:\n%s", want, output.String())
			}
		}
		if provider.Calls[0] != "matches 43/106" {
			t.Errorf("unexpected provider call %q", provider.Calls[0])
		}
	})

	t.Run("matches defaults to configured season", func(t *testing.T) {
		provider := testProvider()
		runner, _ := newTestRunner(t, provider, nil)

		if err := matchesCommand(runner).Run(ctx, []string{"matches"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if provider.Calls[0] != "matches 43/106" {
			t.Errorf("unexpected provider call %q", provider.Calls[0])
		}
	})

	t.Run("summary", func(t *testing.T) {
		runner, output := newTestRunner(t, testProvider(), nil)

		if err := summaryCommand(runner).Run(ctx, []string{"summary"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Argentina 1-2 Saudi Arabia") {
			t.Errorf("expected match title in output:\n%s", output.String())
		}
	})

	t.Run("summary without tracking data fails", func(t *testing.T) {
		runner, output := newTestRunner(t, testProvider(), nil)

		err := summaryCommand(runner).Run(ctx, []string{"summary", "--match-id", "2"})
		if !errors.Is(err, shared.ErrTrackingUnavailable) {
			t.Fatalf("expected ErrTrackingUnavailable, got %v", err)
		}
		if output.Len() != 0 {
			t.Errorf("expected no output, got %q", output.String())
		}
	})

	t.Run("export events", func(t *testing.T) {
		runner, output := newTestRunner(t, testProvider(), nil)
		path := filepath.Join(t.TempDir(), "out", "events.csv")

		if err := exportCommand(runner).Run(ctx, []string{"export", "events", "--output", path}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tu.AssertFileExists(t, path)
		content := tu.MustReadFile(t, path)
		lines := strings.Split(strings.TrimSpace(content), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
		}
		if !strings.Contains(lines[1], "Lionel Messi") || !strings.Contains(lines[2], "0.25") {
			t.Errorf("unexpected rows:\n%s", content)
		}
		if !strings.Contains(output.String(), "Exported 2 events") {
			t.Errorf("unexpected output %q", output.String())
		}
	})
}

func TestArgumentValidation(t *testing.T) {
	ctx := context.Background()
	runner, _ := newTestRunner(t, testProvider(), nil)

	tests := []struct {
		name string
		run  func() error
	}{
		{"empty export path", func() error {
			return exportCommand(runner).Run(ctx, []string{"export", "events", "--output", ""})
		}},
		{"zero workers", func() error {
			return cacheCommand(runner).Run(ctx, []string{"cache", "warm", "--workers", "0"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestCacheCommands(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, repo *repositories.CacheRepository) {
		t.Helper()
		for _, e := range []struct{ kind, key string }{
			{"matches", "matches/43/106.json"},
			{"events", "events/1.json"},
			{"three-sixty", "three-sixty/1.json"},
		} {
			if err := repo.Create(models.NewCacheEntry(0, e.kind, e.key, []byte("[]"))); err != nil {
				t.Fatalf("failed to seed cache: %v", err)
			}
		}
	}

	t.Run("list", func(t *testing.T) {
		db := testDB(t)
		repo := repositories.NewCacheRepository(db)
		seed(t, repo)
		runner, output := newTestRunner(t, nil, db)

		if err := cacheCommand(runner).Run(ctx, []string{"cache", "list", "--kind", "events"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "events/1.json") {
			t.Errorf("expected events entry in output:\n%s", output.String())
		}
		if strings.Contains(output.String(), "three-sixty/1.json") {
			t.Errorf("expected kind filter to apply:\n%s", output.String())
		}
	})

	t.Run("clear one kind", func(t *testing.T) {
		db := testDB(t)
		repo := repositories.NewCacheRepository(db)
		seed(t, repo)
		runner, output := newTestRunner(t, nil, db)

		if err := cacheCommand(runner).Run(ctx, []string{"cache", "clear", "--kind", "matches"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Removed 1 cached payloads") {
			t.Errorf("unexpected output %q", output.String())
		}

		remaining, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(remaining) != 2 {
			t.Errorf("expected 2 remaining entries, got %d", len(remaining))
		}
	})

	t.Run("clear all", func(t *testing.T) {
		db := testDB(t)
		repo := repositories.NewCacheRepository(db)
		seed(t, repo)
		runner, _ := newTestRunner(t, nil, db)

		if err := cacheCommand(runner).Run(ctx, []string{"cache", "clear"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if remaining, _ := repo.List(nil); len(remaining) != 0 {
			t.Errorf("expected empty cache, got %d entries", len(remaining))
		}
	})

	t.Run("warm", func(t *testing.T) {
		runner, output := newTestRunner(t, testProvider(), nil)

		if err := cacheCommand(runner).Run(ctx, []string{"cache", "warm", "--workers", "2"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Warming cache for competition 43, season 106", "Mexico"} {
			if !strings.Contains(output.String(), want) {
				t.Errorf("expected %q in output:\n%s", want, output.String())
			}
		}
	})
}

func TestSetupDatabase(t *testing.T) {
	dir := t.TempDir()
	tu.MustChdir(t, dir)

	runner, _ := newTestRunner(t, nil, nil)
	if err := setupCommand(runner).Run(context.Background(), []string{"setup", "database", "--config", "config.toml"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tu.AssertFileExists(t, filepath.Join(dir, "config.toml"))
	tu.AssertFileExists(t, filepath.Join(dir, "stratos.db"))

	if err := setupCommand(runner).Run(context.Background(), []string{"setup", "database", "--rollback"}); err != nil {
		t.Fatalf("unexpected rollback error: %v", err)
	}
	err := setupCommand(runner).Run(context.Background(), []string{"setup", "database", "--rollback"})
	if err == nil || !strings.Contains(err.Error(), "no migrations") {
		t.Errorf("expected nothing left to roll back, got %v", err)
	}
}
