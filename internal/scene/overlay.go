package scene

import (
	"fmt"

	"github.com/desertthunder/stratos/internal/canvas"
	"github.com/desertthunder/stratos/internal/models"
)

// EventOverlay draws the event matching the current frame. At most one event's artifacts exist
// at a time.
type EventOverlay struct {
	canvas    canvas.Canvas
	theme     Theme
	artifacts *canvas.Group
	color     string
}

func NewEventOverlay(c canvas.Canvas, theme Theme) *EventOverlay {
	return &EventOverlay{canvas: c, theme: theme, artifacts: canvas.NewGroup(c)}
}

// DrawEvent clears the previous overlay and draws ev.
//
// Passes become an arrow colored by outcome and shots a marker with an xG label. Other kinds,
// and passes or shots with missing coordinates, leave the overlay empty.
func (o *EventOverlay) DrawEvent(ev models.Event) {
	o.Clear()

	switch e := ev.(type) {
	case models.Pass:
		o.drawPass(e)
	case models.Shot:
		o.drawShot(e)
	}
}

func (o *EventOverlay) drawPass(p models.Pass) {
	if p.Start == nil || p.End == nil || !p.Start.Valid() || !p.End.Valid() {
		return
	}

	o.color = o.theme.Highlight
	if p.Failed() {
		o.color = o.theme.Alert
	}
	o.artifacts.Add(o.canvas.DrawArrow(canvas.Pitch, *p.Start, *p.End, canvas.Style{Color: o.color, Bold: true}))
}

func (o *EventOverlay) drawShot(s models.Shot) {
	if s.Start == nil || !s.Start.Valid() {
		return
	}

	o.color = o.theme.Highlight
	at := *s.Start
	o.artifacts.Add(o.canvas.DrawPoints(canvas.Pitch, []models.Point{at}, canvas.Style{Color: o.color, Glyph: '★', Bold: true}))

	label := fmt.Sprintf("Shot\nxG: %.2f", s.ExpectedValue())
	o.artifacts.Add(o.canvas.DrawText(canvas.Pitch, models.Point{X: at.X, Y: at.Y + 2}, label, canvas.Style{Color: o.theme.Text, Bold: true}))
}

// Clear removes the overlay. Calling it on an empty overlay does nothing.
func (o *EventOverlay) Clear() {
	o.artifacts.Release()
	o.color = ""
}

// Len returns the number of overlay artifacts.
func (o *EventOverlay) Len() int { return o.artifacts.Len() }

// Color returns the color of the drawn overlay, empty when nothing is drawn.
func (o *EventOverlay) Color() string { return o.color }
