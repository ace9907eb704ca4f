package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/stratos/internal/formatter"
	"github.com/desertthunder/stratos/internal/shared"
	"github.com/urfave/cli/v3"
)

// Matches lists the matches of a competition season.
func (r *Runner) Matches(ctx context.Context, cmd *cli.Command) error {
	provider, err := r.Provider()
	if err != nil {
		return err
	}

	competitionID, seasonID := r.season(cmd)
	matches, err := provider.ListMatches(ctx, competitionID, seasonID)
	if err != nil {
		return fmt.Errorf("failed to list matches: %w", err)
	}

	r.logger.Debug("listed matches", "competition", competitionID, "season", seasonID, "count", len(matches))
	return formatter.WriteMatchTable(r.output, matches)
}

// Summary loads a match and prints its replay summary.
func (r *Runner) Summary(ctx context.Context, cmd *cli.Command) error {
	replay, err := r.load(ctx, r.query(int(cmd.Int("match-id"))))
	if err != nil {
		return err
	}
	return formatter.WriteSummary(r.output, replay.Match, replay.Summary)
}

// ExportEvents writes the normalized events of a match as CSV.
func (r *Runner) ExportEvents(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")
	if path == "" {
		return fmt.Errorf("%w: --output must not be empty", shared.ErrInvalidArgument)
	}

	replay, err := r.load(ctx, r.query(int(cmd.Int("match-id"))))
	if err != nil {
		return err
	}

	events := replay.Events.All()
	if err := formatter.WriteEventsCSV(events, path); err != nil {
		return err
	}

	r.logger.Info("events exported", "match", replay.Match.ID, "events", len(events), "path", path)
	return r.writePlain("✓ Exported %d events for %s to %s\n", len(events), replay.Match.Title(), path)
}
