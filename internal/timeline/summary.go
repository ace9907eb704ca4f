package timeline

import (
	"sort"

	"github.com/desertthunder/stratos/internal/models"
)

// TeamStats aggregates one team's visualized events.
type TeamStats struct {
	Team          string
	Passes        int
	PassesFailed  int
	Shots         int
	ExpectedGoals float64
}

// PassesComplete returns the number of passes without a failure outcome.
func (s TeamStats) PassesComplete() int { return s.Passes - s.PassesFailed }

// Summary describes a loaded replay.
type Summary struct {
	Frames        int
	Samples       int
	Events        int
	Duplicates    int
	MatchedFrames int // Frames whose key resolves to an event
	ByKind        map[models.Kind]int
	Teams         []TeamStats // Sorted by team name
}

// Summarize walks the frame index and event lookup once and aggregates counts for display.
func Summarize(frames *FrameIndex, events *EventLookup) Summary {
	sum := Summary{
		Frames:     frames.FrameCount(),
		Samples:    frames.SampleCount(),
		Events:     events.Len(),
		Duplicates: events.Duplicates(),
		ByKind:     make(map[models.Kind]int),
	}

	for _, f := range frames.frames {
		if _, ok := events.Lookup(f.key); ok {
			sum.MatchedFrames++
		}
	}

	teams := make(map[string]*TeamStats)
	team := func(name string) *TeamStats {
		if t, ok := teams[name]; ok {
			return t
		}
		t := &TeamStats{Team: name}
		teams[name] = t
		return t
	}

	for _, ev := range events.ordered {
		sum.ByKind[ev.Kind()]++
		switch e := ev.(type) {
		case models.Pass:
			t := team(e.Team)
			t.Passes++
			if e.Failed() {
				t.PassesFailed++
			}
		case models.Shot:
			t := team(e.Team)
			t.Shots++
			t.ExpectedGoals += e.ExpectedValue()
		}
	}

	for _, t := range teams {
		sum.Teams = append(sum.Teams, *t)
	}
	sort.Slice(sum.Teams, func(i, j int) bool { return sum.Teams[i].Team < sum.Teams[j].Team })
	return sum
}
