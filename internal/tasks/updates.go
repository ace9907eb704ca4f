package tasks

import (
	"fmt"

	"github.com/desertthunder/stratos/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchMatches Phase = iota
	FetchFrames
	FetchEvents
	BuildIndex
	Ready
	PrefetchMatch
)

func (p Phase) String() string {
	switch p {
	case FetchMatches:
		return "fetch_matches"
	case FetchFrames:
		return "fetch_frames"
	case FetchEvents:
		return "fetch_events"
	case BuildIndex:
		return "build_index"
	case Ready:
		return "ready"
	case PrefetchMatch:
		return "prefetch_match"
	default:
		return ""
	}
}

func fetchMatchesUpdate(competitionID, seasonID int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchMatches,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching matches for competition %d, season %d...", competitionID, seasonID),
	}
}

func fetchFramesUpdate(m models.Match) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchFrames,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loading tracking frames for %s...", m.Title()),
	}
}

func fetchEventsUpdate(samples int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchEvents,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loaded %d tracking samples, fetching events...", samples),
	}
}

func buildIndexUpdate(events int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BuildIndex,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Indexing %d events...", events),
	}
}

func readyUpdate(r *Replay) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Ready,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Ready: %d frames, %d events", r.Frames.FrameCount(), r.Events.Len()),
	}
}

func prefetchCompletedUpdate(step, total int, m models.Match) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PrefetchMatch,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, m.Title()),
	}
}

func prefetchSkippedUpdate(step, total int, m models.Match) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PrefetchMatch,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] - %s (no 360 data)", step, total, m.Title()),
	}
}

func prefetchFailedUpdate(step, total int, m models.Match, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PrefetchMatch,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, m.Title(), err),
	}
}
