package testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/stratos/internal/models"
	"github.com/desertthunder/stratos/internal/shared"
)

// MockProvider is an in-memory match data provider.
//
// Matches without an entry in Samples report [shared.ErrTrackingUnavailable], matching the
// behavior of providers for matches without 360 data.
type MockProvider struct {
	Matches   []models.Match
	RawEvents map[int][]byte
	Samples   map[int][]models.Sample
	Err       error // Returned by every call when set
	Calls     []string

	mu sync.Mutex
}

func (m *MockProvider) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

func (m *MockProvider) ListMatches(ctx context.Context, competitionID, seasonID int) ([]models.Match, error) {
	m.record(fmt.Sprintf("matches %d/%d", competitionID, seasonID))
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Matches, nil
}

func (m *MockProvider) Events(ctx context.Context, matchID int) ([]byte, error) {
	m.record(fmt.Sprintf("events %d", matchID))
	if m.Err != nil {
		return nil, m.Err
	}
	raw, ok := m.RawEvents[matchID]
	if !ok {
		return nil, fmt.Errorf("%w: events for match %d", shared.ErrNotFound, matchID)
	}
	return raw, nil
}

func (m *MockProvider) TrackingFrames(ctx context.Context, matchID int) ([]models.Sample, error) {
	m.record(fmt.Sprintf("frames %d", matchID))
	if m.Err != nil {
		return nil, m.Err
	}
	samples, ok := m.Samples[matchID]
	if !ok {
		return nil, fmt.Errorf("%w: match %d", shared.ErrTrackingUnavailable, matchID)
	}
	return samples, nil
}

// Samples builds one frame's samples from flat x, y pairs.
func Samples(key string, side models.Side, xy ...float64) []models.Sample {
	out := make([]models.Sample, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, models.Sample{FrameKey: key, Location: models.Point{X: xy[i], Y: xy[i+1]}, Side: side})
	}
	return out
}

// Point returns a pointer to (x, y).
func Point(x, y float64) *models.Point { return &models.Point{X: x, Y: y} }
