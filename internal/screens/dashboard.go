package screens

import (
	"fmt"

	"github.com/desertthunder/stratos/internal/canvas"
	"github.com/desertthunder/stratos/internal/models"
	"github.com/desertthunder/stratos/internal/scene"
	"github.com/desertthunder/stratos/internal/timeline"
)

// DashboardData is what the dashboard shows about the loaded match.
type DashboardData struct {
	Title    string // e.g. "Argentina 3 - 3 France"
	Subtitle string // competition, season and date
	Summary  timeline.Summary
}

// DashboardView lays out match summary panels.
type DashboardView struct {
	canvas    canvas.Canvas
	theme     scene.Theme
	data      DashboardData
	artifacts *canvas.Group
}

func NewDashboard(c canvas.Canvas, theme scene.Theme, data DashboardData) *DashboardView {
	return &DashboardView{canvas: c, theme: theme, data: data, artifacts: canvas.NewGroup(c)}
}

// Len returns the number of drawn artifacts.
func (d *DashboardView) Len() int { return d.artifacts.Len() }

func (d *DashboardView) Hide() { d.artifacts.Release() }

func (d *DashboardView) Show() {
	if d.artifacts.Len() > 0 {
		return
	}
	sum := d.data.Summary

	d.text(0.04, 0.04, d.data.Title, canvas.Style{Color: d.theme.Text, Bold: true})
	d.text(0.04, 0.09, d.data.Subtitle, canvas.Style{Color: d.theme.Primary})

	events := d.panel(0.04, 0.16, 0.46, 0.5, "EVENT MIX")
	kinds := []models.Kind{models.KindPass, models.KindShot, models.KindOther}
	for i, k := range kinds {
		y := events.y + 0.12 + float64(i)*0.1
		d.bar(events.x+0.02, y, events.w-0.04, k.String(), sum.ByKind[k], sum.Events)
	}

	passing := d.panel(0.52, 0.16, 0.94, 0.5, "PASS COMPLETION")
	for i, team := range sum.Teams {
		if i == 3 {
			break
		}
		y := passing.y + 0.12 + float64(i)*0.1
		d.bar(passing.x+0.02, y, passing.w-0.04, team.Team, team.PassesComplete(), team.Passes)
	}

	xg := d.panel(0.04, 0.54, 0.46, 0.94, "EXPECTED GOALS")
	for i, team := range sum.Teams {
		if i == 4 {
			break
		}
		line := fmt.Sprintf("%-18s %d shots  xG %.2f", team.Team, team.Shots, team.ExpectedGoals)
		d.text(xg.x+0.02, xg.y+0.12+float64(i)*0.08, line, canvas.Style{Color: d.theme.Text})
	}

	tracking := d.panel(0.52, 0.54, 0.94, 0.94, "TRACKING")
	lines := []string{
		fmt.Sprintf("frames    %d", sum.Frames),
		fmt.Sprintf("samples   %d", sum.Samples),
		fmt.Sprintf("matched   %d", sum.MatchedFrames),
		fmt.Sprintf("duplicate %d", sum.Duplicates),
	}
	for i, line := range lines {
		d.text(tracking.x+0.02, tracking.y+0.12+float64(i)*0.08, line, canvas.Style{Color: d.theme.Text})
	}
}

type box struct{ x, y, w, h float64 }

func (d *DashboardView) panel(x0, y0, x1, y1 float64, title string) box {
	rect := []models.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
	d.artifacts.Add(d.canvas.DrawPolygon(canvas.Main, rect, canvas.Style{Color: d.theme.Border, Fill: d.theme.Panel}))
	d.text(x0+0.02, y0+0.04, title, canvas.Style{Color: d.theme.Muted, Bold: true})
	return box{x: x0, y: y0, w: x1 - x0, h: y1 - y0}
}

// bar draws a labelled progress bar of value out of total.
func (d *DashboardView) bar(x, y, width float64, label string, value, total int) {
	d.text(x, y, label, canvas.Style{Color: d.theme.Text})

	track0, track1 := x+width*0.35, x+width*0.85
	from, to := models.Point{X: track0, Y: y}, models.Point{X: track1, Y: y}
	d.artifacts.Add(d.canvas.DrawLine(canvas.Main, from, to, canvas.Style{Color: d.theme.Border}))

	if total > 0 && value > 0 {
		fill := track0 + (track1-track0)*float64(value)/float64(total)
		d.artifacts.Add(d.canvas.DrawLine(canvas.Main, from, models.Point{X: fill, Y: y}, canvas.Style{Color: d.theme.Primary, Bold: true}))
	}
	d.text(track1+0.01, y, fmt.Sprintf("%d", value), canvas.Style{Color: d.theme.Muted})
}

func (d *DashboardView) text(x, y float64, s string, style canvas.Style) {
	if s == "" {
		return
	}
	d.artifacts.Add(d.canvas.DrawText(canvas.Main, models.Point{X: x, Y: y}, s, style))
}
