package scene

import (
	"math"

	"github.com/desertthunder/stratos/internal/canvas"
	"github.com/desertthunder/stratos/internal/models"
)

// Pitch draws the static markings of a 120 x 80 pitch.
type Pitch struct {
	canvas canvas.Canvas
	theme  Theme
	marks  *canvas.Group
}

// NewPitch returns a hidden pitch.
func NewPitch(c canvas.Canvas, theme Theme) *Pitch {
	return &Pitch{canvas: c, theme: theme, marks: canvas.NewGroup(c)}
}

func rectangle(x0, y0, x1, y1 float64) []models.Point {
	return []models.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func circle(center models.Point, radius float64, segments int) []models.Point {
	out := make([]models.Point, segments)
	for i := range segments {
		a := 2 * math.Pi * float64(i) / float64(segments)
		out[i] = models.Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	return out
}

// Show draws the markings unless they are already visible.
func (p *Pitch) Show() {
	if p.marks.Len() > 0 {
		return
	}
	c := p.canvas
	line := canvas.Style{Color: p.theme.Line}

	p.marks.Add(c.DrawPolygon(canvas.Pitch, rectangle(0, 0, 120, 80), canvas.Style{Fill: p.theme.Pitch}))
	p.marks.Add(c.DrawPolygon(canvas.Pitch, rectangle(0, 0, 120, 80), line))
	p.marks.Add(c.DrawLine(canvas.Pitch, models.Point{X: 60, Y: 0}, models.Point{X: 60, Y: 80}, line))
	p.marks.Add(c.DrawPolygon(canvas.Pitch, circle(models.Point{X: 60, Y: 40}, 10, 24), line))

	// Penalty areas, six-yard boxes and goals at both ends.
	p.marks.Add(c.DrawPolygon(canvas.Pitch, rectangle(0, 18, 18, 62), line))
	p.marks.Add(c.DrawPolygon(canvas.Pitch, rectangle(102, 18, 120, 62), line))
	p.marks.Add(c.DrawPolygon(canvas.Pitch, rectangle(0, 30, 6, 50), line))
	p.marks.Add(c.DrawPolygon(canvas.Pitch, rectangle(114, 30, 120, 50), line))
	p.marks.Add(c.DrawPolygon(canvas.Pitch, rectangle(0, 36, 1, 44), canvas.Style{Color: p.theme.Text, Fill: p.theme.Line}))
	p.marks.Add(c.DrawPolygon(canvas.Pitch, rectangle(119, 36, 120, 44), canvas.Style{Color: p.theme.Text, Fill: p.theme.Line}))

	spots := []models.Point{{X: 12, Y: 40}, {X: 60, Y: 40}, {X: 108, Y: 40}}
	p.marks.Add(c.DrawPoints(canvas.Pitch, spots, canvas.Style{Color: p.theme.Line, Glyph: '·'}))
}

// Hide removes the markings.
func (p *Pitch) Hide() { p.marks.Release() }

// Len returns the number of drawn markings.
func (p *Pitch) Len() int { return p.marks.Len() }
