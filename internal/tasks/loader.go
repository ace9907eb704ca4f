package tasks

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stratos/internal/models"
	"github.com/desertthunder/stratos/internal/services"
	"github.com/desertthunder/stratos/internal/shared"
	"github.com/desertthunder/stratos/internal/timeline"
)

// MatchQuery selects the match to load. A non-zero MatchID wins over HomeTeam.
type MatchQuery struct {
	CompetitionID int
	SeasonID      int
	HomeTeam      string
	MatchID       int
}

// QueryFromConfig builds the query described by the [match] config section.
func QueryFromConfig(cfg shared.MatchConfig) MatchQuery {
	return MatchQuery{
		CompetitionID: cfg.CompetitionID,
		SeasonID:      cfg.SeasonID,
		HomeTeam:      cfg.HomeTeam,
		MatchID:       cfg.MatchID,
	}
}

// Replay is everything playback needs for one match.
type Replay struct {
	Match   models.Match
	Frames  *timeline.FrameIndex
	Events  *timeline.EventLookup
	Summary timeline.Summary
}

// Loader resolves and loads matches from a [services.Provider].
type Loader struct {
	provider services.Provider
	logger   *log.Logger
}

func NewLoader(provider services.Provider, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{provider: provider, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (l *Loader) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Resolve lists the season's matches and returns the one selected by q.
func (l *Loader) Resolve(ctx context.Context, q MatchQuery, progress chan<- ProgressUpdate) (models.Match, error) {
	l.sendProgress(progress, fetchMatchesUpdate(q.CompetitionID, q.SeasonID))

	matches, err := l.provider.ListMatches(ctx, q.CompetitionID, q.SeasonID)
	if err != nil {
		return models.Match{}, fmt.Errorf("failed to list matches: %w", err)
	}

	match, ok := SelectMatch(matches, q)
	if !ok {
		if q.MatchID != 0 {
			return models.Match{}, fmt.Errorf("%w: id %d in competition %d season %d", shared.ErrMatchNotFound, q.MatchID, q.CompetitionID, q.SeasonID)
		}
		return models.Match{}, fmt.Errorf("%w: no home match for '%s'", shared.ErrMatchNotFound, q.HomeTeam)
	}
	return match, nil
}

// Load resolves the match selected by q and builds its replay.
func (l *Loader) Load(ctx context.Context, q MatchQuery, progress chan<- ProgressUpdate) (*Replay, error) {
	match, err := l.Resolve(ctx, q, progress)
	if err != nil {
		return nil, err
	}
	return l.LoadMatch(ctx, match, progress)
}

// LoadMatch builds the replay of a resolved match.
func (l *Loader) LoadMatch(ctx context.Context, match models.Match, progress chan<- ProgressUpdate) (*Replay, error) {
	logger := shared.WithLogger(l.logger, "match", match.ID)
	logger.Info("loading match", "title", match.Title())

	l.sendProgress(progress, fetchFramesUpdate(match))
	samples, err := l.provider.TrackingFrames(ctx, match.ID)
	if err != nil {
		return nil, err
	}

	l.sendProgress(progress, fetchEventsUpdate(len(samples)))
	raw, err := l.provider.Events(ctx, match.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	events, err := services.NormalizeEvents(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize events: %w", err)
	}

	l.sendProgress(progress, buildIndexUpdate(len(events)))
	replay := &Replay{
		Match:  match,
		Frames: timeline.BuildFrames(samples),
		Events: timeline.BuildEvents(events),
	}
	if replay.Frames.FrameCount() == 0 {
		return nil, fmt.Errorf("%w: match %d", shared.ErrNoFrames, match.ID)
	}
	replay.Summary = timeline.Summarize(replay.Frames, replay.Events)

	if d := replay.Events.Duplicates(); d > 0 {
		logger.Warn("duplicate event keys ignored", "count", d)
	}
	logger.Info("match loaded",
		"frames", replay.Frames.FrameCount(),
		"events", replay.Events.Len(),
		"matched", replay.Summary.MatchedFrames,
	)

	l.sendProgress(progress, readyUpdate(replay))
	return replay, nil
}

// SelectMatch returns the match with q.MatchID when set, otherwise the first match whose home
// team is q.HomeTeam.
func SelectMatch(matches []models.Match, q MatchQuery) (models.Match, bool) {
	for _, m := range matches {
		if q.MatchID != 0 && m.ID == q.MatchID {
			return m, true
		}
		if q.MatchID == 0 && m.HomeTeam == q.HomeTeam {
			return m, true
		}
	}
	return models.Match{}, false
}
