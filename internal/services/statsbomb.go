package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stratos/internal/models"
	"github.com/desertthunder/stratos/internal/shared"
	"github.com/tidwall/gjson"
)

// StatsBomb implements [Provider] over the StatsBomb open-data layout.
type StatsBomb struct {
	source Source
	logger *log.Logger
}

var _ Provider = (*StatsBomb)(nil)

func NewStatsBomb(source Source, logger *log.Logger) *StatsBomb {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &StatsBomb{source: source, logger: logger}
}

func (s *StatsBomb) ListMatches(ctx context.Context, competitionID, seasonID int) ([]models.Match, error) {
	path := MatchesPath(competitionID, seasonID)
	raw, err := s.source.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}

	matches, err := ParseMatches(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.logger.Debug("listed matches", "competition", competitionID, "season", seasonID, "count", len(matches))
	return matches, nil
}

func (s *StatsBomb) Events(ctx context.Context, matchID int) ([]byte, error) {
	path := EventsPath(matchID)
	raw, err := s.source.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: %s", shared.ErrMalformedPayload, path)
	}
	return raw, nil
}

// TrackingFrames flattens the match's 360 freeze frames into samples.
func (s *StatsBomb) TrackingFrames(ctx context.Context, matchID int) ([]models.Sample, error) {
	path := ThreeSixtyPath(matchID)
	raw, err := s.source.Fetch(ctx, path)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("%w: match %d has no 360 data", shared.ErrTrackingUnavailable, matchID)
	}
	if err != nil {
		return nil, err
	}

	samples, err := ParseFreezeFrames(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: match %d has empty 360 data", shared.ErrTrackingUnavailable, matchID)
	}
	s.logger.Debug("loaded freeze frames", "match", matchID, "samples", len(samples))
	return samples, nil
}

// ParseMatches reads a matches file.
func ParseMatches(raw []byte) ([]models.Match, error) {
	root, err := array(raw)
	if err != nil {
		return nil, err
	}

	var matches []models.Match
	root.ForEach(func(_, m gjson.Result) bool {
		matches = append(matches, models.Match{
			ID:          int(m.Get("match_id").Int()),
			Date:        m.Get("match_date").String(),
			Competition: m.Get("competition.competition_name").String(),
			Season:      m.Get("season.season_name").String(),
			HomeTeam:    m.Get("home_team.home_team_name").String(),
			AwayTeam:    m.Get("away_team.away_team_name").String(),
			HomeScore:   int(m.Get("home_score").Int()),
			AwayScore:   int(m.Get("away_score").Int()),
		})
		return true
	})
	return matches, nil
}

// ParseFreezeFrames reads a 360 file. Each frame is keyed by its event_uuid; teammates of the
// event's actor are classified as [models.Home]. Entries with malformed locations are dropped.
func ParseFreezeFrames(raw []byte) ([]models.Sample, error) {
	root, err := array(raw)
	if err != nil {
		return nil, err
	}

	var samples []models.Sample
	root.ForEach(func(_, frame gjson.Result) bool {
		key := frame.Get("event_uuid").String()
		if key == "" {
			return true
		}

		frame.Get("freeze_frame").ForEach(func(_, entry gjson.Result) bool {
			loc := point(entry.Get("location"))
			if loc == nil {
				return true
			}

			side := models.Away
			if entry.Get("teammate").Bool() {
				side = models.Home
			}

			samples = append(samples, models.Sample{
				FrameKey: key,
				Location: *loc,
				Side:     side,
				Actor:    entry.Get("actor").Bool(),
				Keeper:   entry.Get("keeper").Bool(),
			})
			return true
		})
		return true
	})
	return samples, nil
}

func array(raw []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("%w: invalid JSON", shared.ErrMalformedPayload)
	}
	root := gjson.ParseBytes(raw)
	if !root.IsArray() {
		return gjson.Result{}, fmt.Errorf("%w: expected an array", shared.ErrMalformedPayload)
	}
	return root, nil
}

// point reads an [x, y, ...] coordinate. It returns nil unless both values are finite numbers.
func point(r gjson.Result) *models.Point {
	if !r.IsArray() {
		return nil
	}
	xy := r.Array()
	if len(xy) < 2 || xy[0].Type != gjson.Number || xy[1].Type != gjson.Number {
		return nil
	}
	p := models.Point{X: xy[0].Float(), Y: xy[1].Float()}
	if !p.Valid() {
		return nil
	}
	return &p
}
