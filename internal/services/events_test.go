package services

import (
	"errors"
	"testing"

	"github.com/desertthunder/stratos/internal/models"
	"github.com/desertthunder/stratos/internal/shared"
)

const eventsFixture = `[
  {"id": "s1", "index": 1, "period": 1, "minute": 0, "second": 0, "type": {"name": "Starting XI"},
   "team": {"name": "Argentina"}},
  {"id": "p1", "index": 2, "period": 1, "minute": 0, "second": 1, "type": {"name": "Pass"},
   "team": {"name": "Argentina"}, "player": {"name": "Lionel Messi"},
   "location": [60.0, 40.0], "pass": {"end_location": [70.5, 35.0]}},
  {"id": "p2", "index": 3, "type": {"name": "Pass"}, "location": [50.0, 20.0],
   "pass": {"end_location": [90.0, 10.0], "outcome": {"name": "Incomplete"}}},
  {"id": "p3", "index": 4, "type": {"name": "Pass"}, "location": [50.0],
   "pass": {"end_location": null}},
  {"id": "x1", "index": 5, "type": {"name": "Shot"}, "location": [108.0, 38.0],
   "shot": {"statsbomb_xg": 0.76, "outcome": {"name": "Goal"}}},
  {"id": "x2", "index": 6, "type": {"name": "Shot"}, "location": [100.0, 30.0], "shot": {}},
  {"index": 7, "type": {"name": "Pass"}}
]`

func TestNormalizeEvents(t *testing.T) {
	events, err := NormalizeEvents([]byte(eventsFixture))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(events) != 6 {
		t.Fatalf("expected 6 events, got %d", len(events))
	}

	t.Run("other", func(t *testing.T) {
		other, ok := events[0].(models.Other)
		if !ok {
			t.Fatalf("expected Other, got %T", events[0])
		}
		if other.Type != "Starting XI" || other.Start != nil || other.Team != "Argentina" {
			t.Errorf("unexpected other %+v", other)
		}
	})

	t.Run("completed pass", func(t *testing.T) {
		pass, ok := events[1].(models.Pass)
		if !ok {
			t.Fatalf("expected Pass, got %T", events[1])
		}
		if pass.Key() != "p1" || pass.Player != "Lionel Messi" || pass.Second != 1 {
			t.Errorf("unexpected meta %+v", pass.Meta)
		}
		if pass.Start == nil || *pass.Start != (models.Point{X: 60, Y: 40}) {
			t.Errorf("unexpected start %v", pass.Start)
		}
		if pass.End == nil || *pass.End != (models.Point{X: 70.5, Y: 35}) {
			t.Errorf("unexpected end %v", pass.End)
		}
		if pass.Failed() {
			t.Error("expected a pass without outcome to be complete")
		}
	})

	t.Run("failed pass", func(t *testing.T) {
		pass := events[2].(models.Pass)
		if pass.Outcome != "Incomplete" || !pass.Failed() {
			t.Errorf("expected incomplete pass, got %q", pass.Outcome)
		}
	})

	t.Run("malformed coordinates are nil", func(t *testing.T) {
		pass := events[3].(models.Pass)
		if pass.Start != nil || pass.End != nil {
			t.Errorf("expected nil points, got %v %v", pass.Start, pass.End)
		}
	})

	t.Run("shots", func(t *testing.T) {
		shot := events[4].(models.Shot)
		if shot.XG == nil || *shot.XG != 0.76 || shot.Outcome != "Goal" {
			t.Errorf("unexpected shot %+v", shot)
		}
		if missing := events[5].(models.Shot); missing.XG != nil || missing.ExpectedValue() != 0 {
			t.Errorf("expected missing xG, got %v", missing.XG)
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		for _, raw := range []string{`{}`, `[{`, ``} {
			if _, err := NormalizeEvents([]byte(raw)); !errors.Is(err, shared.ErrMalformedPayload) {
				t.Errorf("%q: expected ErrMalformedPayload, got %v", raw, err)
			}
		}
	})
}
