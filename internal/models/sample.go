package models

import "math"

// Side classifies a tracked entity as belonging to the home or away team.
type Side int

const (
	Home Side = iota
	Away
)

func (s Side) String() string {
	switch s {
	case Home:
		return "Home"
	case Away:
		return "Away"
	default:
		return ""
	}
}

// Point is a pitch-relative coordinate pair.
type Point struct {
	X float64
	Y float64
}

// Valid reports whether both coordinates are finite.
func (p Point) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Sample is one tracking observation. FrameKey is shared with the parent frame and with the matching event.
type Sample struct {
	FrameKey string
	Location Point
	Side     Side
	EntityID string // Optional, empty when the provider does not identify the entity
	Actor    bool   // Entity performing the frame's event
	Keeper   bool
}
