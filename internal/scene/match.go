package scene

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/stratos/internal/analysis"
	"github.com/desertthunder/stratos/internal/canvas"
	"github.com/desertthunder/stratos/internal/models"
	"github.com/desertthunder/stratos/internal/timeline"
)

// Selection identifies a picked player.
type Selection struct {
	Side     models.Side
	Ordinal  int // 1-based position within the side, matching the drawn label
	Location models.Point
}

type rendered struct {
	frame timeline.Frame
	event models.Event
	found bool
}

// Match is the live match view: pitch, both player layers, the event overlay and analytics.
type Match struct {
	canvas    canvas.Canvas
	logger    *log.Logger
	pitch     *Pitch
	home      *PlayerLayer
	away      *PlayerLayer
	overlay   *EventOverlay
	analytics *AnalyticsLayer

	visible bool
	last    *rendered
}

// NewMatch builds a hidden match view.
func NewMatch(c canvas.Canvas, theme Theme, opts AnalyticsOptions, logger *log.Logger) *Match {
	logger = orDiscard(logger)
	return &Match{
		canvas:    c,
		logger:    logger,
		pitch:     NewPitch(c, theme),
		home:      NewPlayerLayer(c, models.Home, theme.team(true), logger),
		away:      NewPlayerLayer(c, models.Away, theme.team(false), logger),
		overlay:   NewEventOverlay(c, theme),
		analytics: NewAnalyticsLayer(c, theme, opts, logger),
	}
}

// Show draws the pitch and re-applies the last rendered frame.
func (m *Match) Show() {
	m.visible = true
	m.pitch.Show()
	if m.last != nil {
		m.apply(*m.last)
	}
}

// Hide removes every artifact of the view. The last frame is kept for the next [Match.Show].
func (m *Match) Hide() {
	m.visible = false
	m.home.Clear()
	m.away.Clear()
	m.overlay.Clear()
	m.analytics.Clear()
	m.pitch.Hide()
}

// Visible reports whether the view is shown.
func (m *Match) Visible() bool { return m.visible }

// Render applies frame and its matching event. found is false when the frame has no event, in
// which case the overlay is cleared. While hidden, the frame is only remembered.
func (m *Match) Render(frame timeline.Frame, event models.Event, found bool) {
	m.last = &rendered{frame: frame, event: event, found: found}
	if !m.visible {
		return
	}
	m.apply(*m.last)
}

func (m *Match) apply(r rendered) {
	home, away := r.frame.Partition()

	m.home.Update(home)
	m.away.Update(away)

	if r.found {
		m.overlay.DrawEvent(r.event)
	} else {
		m.overlay.Clear()
	}

	m.drawAnalytics(home, away)
	m.canvas.RequestRedraw()
}

func (m *Match) drawAnalytics(home, away []models.Point) {
	m.analytics.DrawDefensiveLine(home, away)
	m.analytics.DrawHeatmap(home, away)
	m.analytics.DrawPassNetwork(home, away)
}

// ToggleAnalytics flips the analytics layer and returns its new state. Enabling it while the
// view is shown draws analytics for the last rendered frame.
func (m *Match) ToggleAnalytics() bool {
	enabled := m.analytics.Toggle()
	m.logger.Debug("analytics toggled", "enabled", enabled)
	if enabled && m.visible && m.last != nil {
		m.drawAnalytics(m.last.frame.Partition())
	}
	m.canvas.RequestRedraw()
	return enabled
}

// Pick returns the displayed player nearest to at, strictly within radius.
func (m *Match) Pick(at models.Point, radius float64) (Selection, bool) {
	if !m.visible {
		return Selection{}, false
	}

	var best Selection
	bestDist, found := radius, false
	for _, layer := range []*PlayerLayer{m.home, m.away} {
		points := layer.Positions()
		i, ok := analysis.Nearest(points, at, bestDist)
		if !ok {
			continue
		}
		best = Selection{Side: layer.Side(), Ordinal: i + 1, Location: points[i]}
		bestDist, found = points[i].Dist(at), true
	}
	return best, found
}

func (m *Match) Home() *PlayerLayer         { return m.home }
func (m *Match) Away() *PlayerLayer         { return m.away }
func (m *Match) Overlay() *EventOverlay     { return m.overlay }
func (m *Match) Analytics() *AnalyticsLayer { return m.analytics }
func (m *Match) Pitch() *Pitch              { return m.pitch }
