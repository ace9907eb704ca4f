package scene

import (
	"io"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stratos/internal/analysis"
	"github.com/desertthunder/stratos/internal/canvas"
	"github.com/desertthunder/stratos/internal/models"
)

// PlayerLayer draws one side's positions, team-shape hull and per-player labels.
type PlayerLayer struct {
	canvas canvas.Canvas
	side   models.Side
	color  string
	logger *log.Logger

	positions *canvas.Handle
	hull      *canvas.Handle
	labels    *canvas.Group

	points       []models.Point
	hullVertices []models.Point
}

// NewPlayerLayer returns an empty layer for side.
func NewPlayerLayer(c canvas.Canvas, side models.Side, color string, logger *log.Logger) *PlayerLayer {
	return &PlayerLayer{
		canvas: c,
		side:   side,
		color:  color,
		logger: orDiscard(logger),
		labels: canvas.NewGroup(c),
	}
}

// Side returns the team side drawn by the layer.
func (l *PlayerLayer) Side() models.Side { return l.side }

// Update replaces the displayed positions with points and returns the positions artifact,
// which is nil when points is empty.
//
// Positions are a single batch artifact updated in place. The hull and labels are rebuilt on
// every call.
func (l *PlayerLayer) Update(points []models.Point) *canvas.Handle {
	l.points = append(l.points[:0], points...)
	if len(points) == 0 {
		l.Clear()
		return nil
	}

	if l.positions.Live() {
		l.canvas.SetPoints(l.positions.ID(), points)
	} else {
		l.positions = canvas.NewHandle(l.canvas, l.canvas.DrawPoints(canvas.Pitch, points, canvas.Style{Color: l.color}))
	}

	l.updateHull()
	l.updateLabels()
	return l.positions
}

func (l *PlayerLayer) updateHull() {
	l.hull.Release()
	l.hull = nil
	l.hullVertices = nil

	if len(l.points) < 3 {
		return
	}

	vertices, err := analysis.ConvexHull(l.points)
	if err != nil {
		l.logger.Debug("skipping hull", "side", l.side, "error", err)
		return
	}

	style := canvas.Style{Color: l.color, Fill: l.color, Alpha: 0.1, Dashed: true}
	l.hull = canvas.NewHandle(l.canvas, l.canvas.DrawPolygon(canvas.Pitch, vertices, style))
	l.hullVertices = vertices
}

func (l *PlayerLayer) updateLabels() {
	l.labels.Release()
	style := canvas.Style{Color: l.color, Bold: true}
	for i, p := range l.points {
		l.labels.Add(l.canvas.DrawText(canvas.Pitch, p, strconv.Itoa(i+1), style))
	}
}

// Clear removes every artifact of the layer.
func (l *PlayerLayer) Clear() {
	l.positions.Release()
	l.positions = nil
	l.hull.Release()
	l.hull = nil
	l.labels.Release()
	l.points = l.points[:0]
	l.hullVertices = nil
}

// Positions returns a copy of the displayed points.
func (l *PlayerLayer) Positions() []models.Point {
	out := make([]models.Point, len(l.points))
	copy(out, l.points)
	return out
}

// HullVertices returns the current hull vertices, nil when no hull is drawn.
func (l *PlayerLayer) HullVertices() []models.Point { return l.hullVertices }

// HasHull reports whether a hull artifact is drawn.
func (l *PlayerLayer) HasHull() bool { return l.hull.Live() }

// HasPositions reports whether a positions artifact is drawn.
func (l *PlayerLayer) HasPositions() bool { return l.positions.Live() }

// LabelCount returns the number of drawn labels.
func (l *PlayerLayer) LabelCount() int { return l.labels.Len() }

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
