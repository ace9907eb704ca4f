package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/desertthunder/stratos/internal/models"
	"github.com/desertthunder/stratos/internal/services"
	"github.com/desertthunder/stratos/internal/shared"
	"golang.org/x/time/rate"
)

// PrefetchOpts configures [Loader.Prefetch].
type PrefetchOpts struct {
	NumWorkers int     // Concurrent workers (default: 4, at most 8)
	RateLimit  float64 // Matches started per second (default: 2)
}

// PrefetchResult describes the outcome for one match.
type PrefetchResult struct {
	Match     models.Match
	Samples   int
	Events    int
	Available bool  // False when the match has no tracking data
	Error     error // Set on any other failure
}

// PrefetchSummary aggregates a prefetch run. Results are in completion order.
type PrefetchSummary struct {
	Total       int
	Available   int
	Unavailable int
	Failed      int
	Results     []PrefetchResult
}

// Prefetch fetches tracking frames and events for every match of a competition season so a
// caching source stores them.
//
// Individual match failures are collected in the summary; only listing the season fails the run.
func (l *Loader) Prefetch(ctx context.Context, competitionID, seasonID int, opts PrefetchOpts, progress chan<- ProgressUpdate) (*PrefetchSummary, error) {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2
	}

	l.sendProgress(progress, fetchMatchesUpdate(competitionID, seasonID))
	matches, err := l.provider.ListMatches(ctx, competitionID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	summary := &PrefetchSummary{Total: len(matches), Results: make([]PrefetchResult, 0, len(matches))}
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan models.Match, len(matches))
	results := make(chan PrefetchResult, len(matches))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go l.prefetchWorker(ctx, &wg, limiter, jobs, results)
	}

	for _, m := range matches {
		jobs <- m
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		summary.Results = append(summary.Results, res)
		step := len(summary.Results)

		switch {
		case res.Error != nil:
			summary.Failed++
			l.sendProgress(progress, prefetchFailedUpdate(step, summary.Total, res.Match, res.Error))
		case !res.Available:
			summary.Unavailable++
			l.sendProgress(progress, prefetchSkippedUpdate(step, summary.Total, res.Match))
		default:
			summary.Available++
			l.sendProgress(progress, prefetchCompletedUpdate(step, summary.Total, res.Match))
		}
	}

	l.logger.Info("prefetch finished",
		"matches", summary.Total,
		"available", summary.Available,
		"unavailable", summary.Unavailable,
		"failed", summary.Failed,
	)
	return summary, ctx.Err()
}

func (l *Loader) prefetchWorker(ctx context.Context, wg *sync.WaitGroup, limiter *rate.Limiter, jobs <-chan models.Match, results chan<- PrefetchResult) {
	defer wg.Done()

	for m := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			results <- PrefetchResult{Match: m, Error: err}
			continue
		}
		results <- l.prefetchMatch(ctx, m)
	}
}

func (l *Loader) prefetchMatch(ctx context.Context, m models.Match) PrefetchResult {
	result := PrefetchResult{Match: m}

	samples, err := l.provider.TrackingFrames(ctx, m.ID)
	if errors.Is(err, shared.ErrTrackingUnavailable) {
		return result
	}
	if err != nil {
		result.Error = fmt.Errorf("tracking frames: %w", err)
		return result
	}
	result.Available = true
	result.Samples = len(samples)

	raw, err := l.provider.Events(ctx, m.ID)
	if err != nil {
		result.Error = fmt.Errorf("events: %w", err)
		return result
	}

	events, err := services.NormalizeEvents(raw)
	if err != nil {
		result.Error = fmt.Errorf("events: %w", err)
		return result
	}
	result.Events = len(events)
	return result
}
