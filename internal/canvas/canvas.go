package canvas

import (
	"github.com/desertthunder/stratos/internal/analysis"
	"github.com/desertthunder/stratos/internal/models"
)

// ArtifactID identifies one drawn primitive. IDs are never reused by a canvas.
type ArtifactID uint64

// Kind enumerates primitive types.
type Kind int

const (
	KindPoints Kind = iota
	KindPolygon
	KindLine
	KindArrow
	KindCurve
	KindContour
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindPoints:
		return "points"
	case KindPolygon:
		return "polygon"
	case KindLine:
		return "line"
	case KindArrow:
		return "arrow"
	case KindCurve:
		return "curve"
	case KindContour:
		return "contour"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Pane selects the region and coordinate space of an artifact.
type Pane int

const (
	Pitch Pane = iota
	Sidebar
	Main
)

func (p Pane) String() string {
	switch p {
	case Pitch:
		return "pitch"
	case Sidebar:
		return "sidebar"
	case Main:
		return "main"
	default:
		return "unknown"
	}
}

// Style describes how a primitive is painted. Colors are hex strings.
type Style struct {
	Color  string
	Fill   string  // Polygon interior, empty for outline only
	Alpha  float64 // Opacity of fills and contours, zero means opaque
	Dashed bool
	Glyph  rune // Point marker, zero for the default
	Bold   bool
	Faint  bool
}

// Contour is a density surface split into filled bands.
//
// A sample falling in [Levels[k], Levels[k+1]) belongs to band k and is painted with Colors[k].
// Band 0 is left unpainted.
type Contour struct {
	Grid   analysis.Grid
	Levels []float64
	Colors []string
}

// Band returns the band index of v, or -1 when v is below every level.
func (c Contour) Band(v float64) int {
	band := -1
	for k, level := range c.Levels {
		if v >= level {
			band = k
		}
	}
	if band >= len(c.Colors) {
		band = len(c.Colors) - 1
	}
	return band
}

// Canvas draws and removes primitives.
type Canvas interface {
	DrawPoints(pane Pane, points []models.Point, style Style) ArtifactID
	// SetPoints replaces the coordinates of a points artifact in one operation.
	SetPoints(id ArtifactID, points []models.Point) bool
	DrawPolygon(pane Pane, vertices []models.Point, style Style) ArtifactID
	DrawLine(pane Pane, from, to models.Point, style Style) ArtifactID
	DrawArrow(pane Pane, from, to models.Point, style Style) ArtifactID
	DrawCurve(pane Pane, from, control, to models.Point, style Style) ArtifactID
	DrawContour(pane Pane, contour Contour, style Style) ArtifactID
	DrawText(pane Pane, at models.Point, text string, style Style) ArtifactID
	// Remove deletes an artifact and reports whether it existed.
	Remove(id ArtifactID) bool
	RequestRedraw()
}
