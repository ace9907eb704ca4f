package formatter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/stratos/internal/models"
	"github.com/desertthunder/stratos/internal/tasks"
	th "github.com/desertthunder/stratos/internal/testing"
	"github.com/desertthunder/stratos/internal/timeline"
)

func fixtureEvents() []models.Event {
	xg := 0.25
	return []models.Event{
		models.Pass{
			Meta:  models.Meta{ID: "p1", Index: 1, Period: 1, Minute: 3, Second: 7, Team: "Argentina", Player: "Lionel Messi"},
			Start: th.Point(60, 40), End: th.Point(70.5, 35), Outcome: "Incomplete",
		},
		models.Shot{Meta: models.Meta{ID: "s1", Index: 2, Team: "Argentina"}, Start: th.Point(108, 38), XG: &xg, Outcome: "Goal"},
		models.Other{Meta: models.Meta{ID: "o1", Index: 3, Team: "France"}, Type: "Pressure"},
	}
}

func TestEventsToCSV(t *testing.T) {
	data, err := EventsToCSV(fixtureEvents())
	if err != nil {
		t.Fatalf("EventsToCSV failed: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("failed to read CSV back: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header and 3 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != "ID,Index,Period,Minute,Second,Type,Team,Player,X,Y,EndX,EndY,Outcome,XG" {
		t.Errorf("unexpected headers %v", records[0])
	}

	pass := records[1]
	if pass[5] != "Pass" || pass[7] != "Lionel Messi" || pass[10] != "70.5" || pass[12] != "Incomplete" || pass[13] != "" {
		t.Errorf("unexpected pass row %v", pass)
	}

	shot := records[2]
	if shot[5] != "Shot" || shot[8] != "108" || shot[10] != "" || shot[13] != "0.25" {
		t.Errorf("unexpected shot row %v", shot)
	}

	other := records[3]
	if other[5] != "Pressure" || other[8] != "" || other[6] != "France" {
		t.Errorf("unexpected other row %v", other)
	}
}

func TestWriteEventsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "events.csv")
	if err := WriteEventsCSV(fixtureEvents(), path); err != nil {
		t.Fatalf("WriteEventsCSV failed: %v", err)
	}

	th.AssertFileExists(t, path)
	if content := th.MustReadFile(t, path); !strings.Contains(content, "p1,1,1,3,7,Pass") {
		t.Errorf("unexpected file content %q", content)
	}
}

func TestWriters(t *testing.T) {
	t.Run("WriteMatchTable", func(t *testing.T) {
		var buf bytes.Buffer
		matches := []models.Match{{ID: 3869685, Date: "2022-12-18", Competition: "FIFA World Cup", Season: "2022", HomeTeam: "Argentina", AwayTeam: "France", HomeScore: 3, AwayScore: 3}}

		if err := WriteMatchTable(&buf, matches); err != nil {
			t.Fatalf("WriteMatchTable failed: %v", err)
		}
		for _, want := range []string{"3869685", "Argentina", "3-3", "France", "FIFA World Cup 2022"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("expected %q in output:\n%s", want, buf.String())
			}
		}
	})

	t.Run("WriteSummary", func(t *testing.T) {
		frames := timeline.BuildFrames(th.Samples("p1", models.Home, 1, 1, 2, 2))
		events := timeline.BuildEvents(fixtureEvents())
		summary := timeline.Summarize(frames, events)
		match := models.Match{HomeTeam: "Argentina", AwayTeam: "France", HomeScore: 3, AwayScore: 3}

		var buf bytes.Buffer
		if err := WriteSummary(&buf, match, summary); err != nil {
			t.Fatalf("WriteSummary failed: %v", err)
		}

		out := buf.String()
		for _, want := range []string{"Argentina 3-3 France", "0.25", "0%"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output:\n%s", want, out)
			}
		}
	})

	t.Run("WriteSummary write error", func(t *testing.T) {
		if err := WriteSummary(&th.FWriter{}, models.Match{}, timeline.Summary{}); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("WritePrefetchTable", func(t *testing.T) {
		summary := &tasks.PrefetchSummary{Results: []tasks.PrefetchResult{
			{Match: models.Match{ID: 1, HomeTeam: "Argentina", AwayTeam: "Australia"}, Available: true, Samples: 120, Events: 3000},
			{Match: models.Match{ID: 2, HomeTeam: "Poland", AwayTeam: "Argentina"}, Error: errors.New("boom")},
		}}

		var buf bytes.Buffer
		if err := WritePrefetchTable(&buf, summary); err != nil {
			t.Fatalf("WritePrefetchTable failed: %v", err)
		}
		for _, want := range []string{"yes", "3000", "boom"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("expected %q in output:\n%s", want, buf.String())
			}
		}
	})

	t.Run("WriteCacheTable", func(t *testing.T) {
		ts := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
		entries := []*models.CacheEntry{models.RestoreCacheEntry("id", 7, "events", "events/1.json", []byte(`[]`), ts, ts)}

		var buf bytes.Buffer
		if err := WriteCacheTable(&buf, entries); err != nil {
			t.Fatalf("WriteCacheTable failed: %v", err)
		}
		for _, want := range []string{"events/1.json", "2024-05-01 12:30"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("expected %q in output:\n%s", want, buf.String())
			}
		}
	})
}
