package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/stratos/internal/models"
)

// Source returns raw provider payloads by path.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Provider is the match data collaborator of the replay.
type Provider interface {
	// ListMatches returns the fixtures of a competition season in provider order.
	ListMatches(ctx context.Context, competitionID, seasonID int) ([]models.Match, error)

	// Events returns the raw event rows of a match. See [NormalizeEvents].
	Events(ctx context.Context, matchID int) ([]byte, error)

	// TrackingFrames returns every tracking sample of a match in frame order.
	// [shared.ErrTrackingUnavailable] means the match has no tracking data.
	TrackingFrames(ctx context.Context, matchID int) ([]models.Sample, error)
}

// Cache stores raw payloads by kind and key.
type Cache interface {
	Lookup(kind, key string) ([]byte, error) // [shared.ErrCacheMiss] when absent
	Store(kind, key string, body []byte) error
}

// Payload kinds, also the first path segment of each resource.
const (
	KindMatches    = "matches"
	KindEvents     = "events"
	KindThreeSixty = "three-sixty"
)

func MatchesPath(competitionID, seasonID int) string {
	return fmt.Sprintf("%s/%d/%d.json", KindMatches, competitionID, seasonID)
}

func EventsPath(matchID int) string { return fmt.Sprintf("%s/%d.json", KindEvents, matchID) }

func ThreeSixtyPath(matchID int) string { return fmt.Sprintf("%s/%d.json", KindThreeSixty, matchID) }

// kindOf returns the payload kind of a provider path.
func kindOf(path string) string {
	kind, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	return kind
}
