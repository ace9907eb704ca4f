package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/stratos/internal/formatter"
	"github.com/desertthunder/stratos/internal/shared"
	"github.com/desertthunder/stratos/internal/tasks"
	"github.com/urfave/cli/v3"
)

// CacheList prints the cached provider payloads, optionally filtered by kind.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.cacheRepository()
	if err != nil {
		return err
	}

	criteria := map[string]any{}
	if kind := cmd.String("kind"); kind != "" {
		criteria["kind"] = kind
	}

	entries, err := repo.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list cache entries: %w", err)
	}
	return formatter.WriteCacheTable(r.output, entries)
}

// CacheClear purges cached provider payloads of one kind, or all of them.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.cacheRepository()
	if err != nil {
		return err
	}

	kind := cmd.String("kind")
	n, err := repo.Purge(kind)
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}

	r.logger.Info("cache purged", "kind", kind, "entries", n)
	return r.writePlain("✓ Removed %d cached payloads\n", n)
}

// CacheWarm fetches every match of a competition season through the cache.
func (r *Runner) CacheWarm(ctx context.Context, cmd *cli.Command) error {
	if !r.config.Database.CacheEnabled {
		r.logger.Warn("cache is disabled in config; payloads will not be stored")
	}

	workers := int(cmd.Int("workers"))
	if workers < 1 {
		return fmt.Errorf("%w: --workers must be at least 1", shared.ErrInvalidArgument)
	}

	loader, err := r.loader()
	if err != nil {
		return err
	}

	competitionID, seasonID := r.season(cmd)
	r.writePlain("Warming cache for competition %d, season %d...\n\n", competitionID, seasonID)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchMatches:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.PrefetchMatch:
				r.writePlain("   [%d/%d] %s\n", update.Step, update.Total, update.Message)
			}
		}
	}()

	summary, err := loader.Prefetch(ctx, competitionID, seasonID, tasks.PrefetchOpts{
		NumWorkers: workers,
		RateLimit:  r.config.Provider.RequestsPerSecond,
	}, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	return formatter.WritePrefetchTable(r.output, summary)
}

// season returns the competition and season flags, falling back to the configured match.
func (r *Runner) season(cmd *cli.Command) (int, int) {
	competitionID := int(cmd.Int("competition"))
	if competitionID == 0 {
		competitionID = r.config.Match.CompetitionID
	}
	seasonID := int(cmd.Int("season"))
	if seasonID == 0 {
		seasonID = r.config.Match.SeasonID
	}
	return competitionID, seasonID
}
