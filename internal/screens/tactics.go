package screens

import (
	"github.com/desertthunder/stratos/internal/canvas"
	"github.com/desertthunder/stratos/internal/models"
	"github.com/desertthunder/stratos/internal/scene"
)

// Role is one slot of a formation.
type Role struct {
	Name     string
	Number   string
	Location models.Point
}

// FourThreeThree is the formation shown on the tactics board, home attacking rightward.
var FourThreeThree = []Role{
	{Name: "GK", Number: "1", Location: models.Point{X: 5, Y: 40}},
	{Name: "LB", Number: "3", Location: models.Point{X: 25, Y: 10}},
	{Name: "CB", Number: "4", Location: models.Point{X: 25, Y: 30}},
	{Name: "CB", Number: "5", Location: models.Point{X: 25, Y: 50}},
	{Name: "RB", Number: "2", Location: models.Point{X: 25, Y: 70}},
	{Name: "CDM", Number: "6", Location: models.Point{X: 50, Y: 40}},
	{Name: "CM", Number: "8", Location: models.Point{X: 70, Y: 20}},
	{Name: "CM", Number: "10", Location: models.Point{X: 70, Y: 60}},
	{Name: "LW", Number: "11", Location: models.Point{X: 90, Y: 15}},
	{Name: "ST", Number: "9", Location: models.Point{X: 100, Y: 40}},
	{Name: "RW", Number: "7", Location: models.Point{X: 90, Y: 65}},
}

// TacticsView is the formation board.
type TacticsView struct {
	canvas    canvas.Canvas
	theme     scene.Theme
	team      string
	pitch     *scene.Pitch
	artifacts *canvas.Group
}

func NewTactics(c canvas.Canvas, theme scene.Theme, team string) *TacticsView {
	return &TacticsView{
		canvas:    c,
		theme:     theme,
		team:      team,
		pitch:     scene.NewPitch(c, theme),
		artifacts: canvas.NewGroup(c),
	}
}

// Len returns the number of drawn artifacts, pitch included.
func (v *TacticsView) Len() int { return v.artifacts.Len() + v.pitch.Len() }

func (v *TacticsView) Show() {
	if v.artifacts.Len() > 0 {
		return
	}
	v.pitch.Show()

	header := "Tactical Formation: 4-3-3"
	if v.team != "" {
		header = v.team + "  " + header
	}
	v.artifacts.Add(v.canvas.DrawText(canvas.Main, models.Point{X: 0.02, Y: 0.02}, header, canvas.Style{Color: v.theme.Text, Bold: true}))

	points := make([]models.Point, len(FourThreeThree))
	for i, r := range FourThreeThree {
		points[i] = r.Location
	}
	v.artifacts.Add(v.canvas.DrawPoints(canvas.Pitch, points, canvas.Style{Color: v.theme.Primary}))

	for _, r := range FourThreeThree {
		v.artifacts.Add(v.canvas.DrawText(canvas.Pitch, r.Location, r.Number, canvas.Style{Color: v.theme.Primary, Bold: true}))
		role := models.Point{X: r.Location.X, Y: r.Location.Y - 5}
		v.artifacts.Add(v.canvas.DrawText(canvas.Pitch, role, r.Name, canvas.Style{Color: v.theme.Text}))
	}
}

func (v *TacticsView) Hide() {
	v.artifacts.Release()
	v.pitch.Hide()
}
