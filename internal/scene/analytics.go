package scene

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/stratos/internal/analysis"
	"github.com/desertthunder/stratos/internal/canvas"
	"github.com/desertthunder/stratos/internal/models"
)

// AnalyticsOptions configures the analytic overlays.
type AnalyticsOptions struct {
	HeatmapCols      int
	HeatmapRows      int
	HeatmapLevels    int
	NetworkThreshold float64
}

// DefaultAnalyticsOptions returns a 30 x 20 heatmap grid with 5 levels and a 25 unit network band.
func DefaultAnalyticsOptions() AnalyticsOptions {
	return AnalyticsOptions{HeatmapCols: 30, HeatmapRows: 20, HeatmapLevels: 5, NetworkThreshold: 25}
}

// AnalyticsLayer draws defensive lines, positional heatmaps and proximity networks while enabled.
//
// Every draw is best effort: numerical failures drop that artifact and are logged at debug level.
type AnalyticsLayer struct {
	canvas    canvas.Canvas
	theme     Theme
	opts      AnalyticsOptions
	logger    *log.Logger
	enabled   bool
	artifacts *canvas.Group
}

// NewAnalyticsLayer returns a disabled layer.
func NewAnalyticsLayer(c canvas.Canvas, theme Theme, opts AnalyticsOptions, logger *log.Logger) *AnalyticsLayer {
	return &AnalyticsLayer{
		canvas:    c,
		theme:     theme,
		opts:      opts,
		logger:    orDiscard(logger),
		artifacts: canvas.NewGroup(c),
	}
}

// Toggle flips the layer on or off and returns the new state. Turning it off clears every artifact.
func (a *AnalyticsLayer) Toggle() bool {
	a.enabled = !a.enabled
	if !a.enabled {
		a.Clear()
	}
	return a.enabled
}

func (a *AnalyticsLayer) Enabled() bool { return a.enabled }

// Len returns the number of analytic artifacts.
func (a *AnalyticsLayer) Len() int { return a.artifacts.Len() }

// Clear removes every analytic artifact.
func (a *AnalyticsLayer) Clear() { a.artifacts.Release() }

// DrawDefensiveLine clears the previous analytics and draws a vertical line at the deepest home
// player (minimum x) and the deepest away player (maximum x). Home attacks rightward.
func (a *AnalyticsLayer) DrawDefensiveLine(home, away []models.Point) {
	if !a.enabled {
		return
	}
	a.Clear()

	homeX, okHome, awayX, okAway := analysis.DefensiveLines(home, away)
	if okHome {
		a.verticalLine(homeX, a.theme.Home)
	}
	if okAway {
		a.verticalLine(awayX, a.theme.Away)
	}
}

func (a *AnalyticsLayer) verticalLine(x float64, color string) {
	from, to := models.Point{X: x, Y: 0}, models.Point{X: x, Y: analysis.PitchExtent.MaxY}
	a.artifacts.Add(a.canvas.DrawLine(canvas.Pitch, from, to, canvas.Style{Color: color, Dashed: true}))
}

// DrawHeatmap draws a filled density contour for each side with more than 2 points.
func (a *AnalyticsLayer) DrawHeatmap(home, away []models.Point) {
	if !a.enabled {
		return
	}
	a.heatmap(models.Home, home, a.theme.HomeHeat)
	a.heatmap(models.Away, away, a.theme.AwayHeat)
}

func (a *AnalyticsLayer) heatmap(side models.Side, points []models.Point, palette []string) {
	if len(points) <= 2 {
		return
	}

	grid, err := analysis.KDE(points, analysis.PitchExtent, a.opts.HeatmapCols, a.opts.HeatmapRows)
	if err != nil {
		a.logger.Debug("skipping heatmap", "side", side, "error", err)
		return
	}

	peak := grid.Max()
	if peak <= 0 {
		return
	}

	levels := make([]float64, a.opts.HeatmapLevels)
	for k := range levels {
		levels[k] = peak * float64(k) / float64(len(levels))
	}

	contour := canvas.Contour{Grid: grid, Levels: levels, Colors: spread(palette, len(levels))}
	a.artifacts.Add(a.canvas.DrawContour(canvas.Pitch, contour, canvas.Style{Alpha: 0.4}))
}

// DrawPassNetwork connects every pair of teammates closer than the network threshold with a
// faint curve. Links model proximity only.
func (a *AnalyticsLayer) DrawPassNetwork(home, away []models.Point) {
	if !a.enabled {
		return
	}
	a.network(home, a.theme.Home)
	a.network(away, a.theme.Away)
}

func (a *AnalyticsLayer) network(points []models.Point, color string) {
	style := canvas.Style{Color: color, Faint: true}
	for _, pair := range analysis.ProximityPairs(points, a.opts.NetworkThreshold) {
		control := models.Point{X: (pair.A.X+pair.B.X)/2 + 2, Y: (pair.A.Y+pair.B.Y)/2 + 2}
		a.artifacts.Add(a.canvas.DrawCurve(canvas.Pitch, pair.A, control, pair.B, style))
	}
}
