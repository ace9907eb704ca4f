package testing

import (
	"fmt"

	"github.com/desertthunder/stratos/internal/canvas"
	"github.com/desertthunder/stratos/internal/models"
)

// Op is one recorded canvas call.
type Op struct {
	Name string // draw, set, remove or redraw
	Kind canvas.Kind
	ID   canvas.ArtifactID
}

func (o Op) String() string {
	switch o.Name {
	case "redraw":
		return "redraw"
	case "draw", "set":
		return fmt.Sprintf("%s %s #%d", o.Name, o.Kind, o.ID)
	default:
		return fmt.Sprintf("%s #%d", o.Name, o.ID)
	}
}

// Recorder is a [canvas.Canvas] that keeps artifact kinds and logs every call in order.
type Recorder struct {
	next  canvas.ArtifactID
	live  map[canvas.ArtifactID]canvas.Kind
	style map[canvas.ArtifactID]canvas.Style
	ops   []Op
}

var _ canvas.Canvas = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{live: make(map[canvas.ArtifactID]canvas.Kind), style: make(map[canvas.ArtifactID]canvas.Style)}
}

func (r *Recorder) draw(kind canvas.Kind, style canvas.Style) canvas.ArtifactID {
	r.next++
	r.live[r.next] = kind
	r.style[r.next] = style
	r.ops = append(r.ops, Op{Name: "draw", Kind: kind, ID: r.next})
	return r.next
}

func (r *Recorder) DrawPoints(pane canvas.Pane, points []models.Point, style canvas.Style) canvas.ArtifactID {
	return r.draw(canvas.KindPoints, style)
}

func (r *Recorder) SetPoints(id canvas.ArtifactID, points []models.Point) bool {
	kind, ok := r.live[id]
	if !ok || kind != canvas.KindPoints {
		return false
	}
	r.ops = append(r.ops, Op{Name: "set", Kind: kind, ID: id})
	return true
}

func (r *Recorder) DrawPolygon(pane canvas.Pane, vertices []models.Point, style canvas.Style) canvas.ArtifactID {
	return r.draw(canvas.KindPolygon, style)
}

func (r *Recorder) DrawLine(pane canvas.Pane, from, to models.Point, style canvas.Style) canvas.ArtifactID {
	return r.draw(canvas.KindLine, style)
}

func (r *Recorder) DrawArrow(pane canvas.Pane, from, to models.Point, style canvas.Style) canvas.ArtifactID {
	return r.draw(canvas.KindArrow, style)
}

func (r *Recorder) DrawCurve(pane canvas.Pane, from, control, to models.Point, style canvas.Style) canvas.ArtifactID {
	return r.draw(canvas.KindCurve, style)
}

func (r *Recorder) DrawContour(pane canvas.Pane, contour canvas.Contour, style canvas.Style) canvas.ArtifactID {
	return r.draw(canvas.KindContour, style)
}

func (r *Recorder) DrawText(pane canvas.Pane, at models.Point, text string, style canvas.Style) canvas.ArtifactID {
	return r.draw(canvas.KindText, style)
}

func (r *Recorder) Remove(id canvas.ArtifactID) bool {
	if _, ok := r.live[id]; !ok {
		return false
	}
	delete(r.live, id)
	r.ops = append(r.ops, Op{Name: "remove", ID: id})
	return true
}

func (r *Recorder) RequestRedraw() {
	r.ops = append(r.ops, Op{Name: "redraw"})
}

// Len returns the number of live artifacts.
func (r *Recorder) Len() int { return len(r.live) }

// Count returns the number of live artifacts of kind.
func (r *Recorder) Count(kind canvas.Kind) int {
	n := 0
	for _, k := range r.live {
		if k == kind {
			n++
		}
	}
	return n
}

// Live returns the live artifacts of kind.
func (r *Recorder) Live(kind canvas.Kind) []canvas.ArtifactID {
	var ids []canvas.ArtifactID
	for id, k := range r.live {
		if k == kind {
			ids = append(ids, id)
		}
	}
	return ids
}

// Style returns the style an artifact was drawn with.
func (r *Recorder) Style(id canvas.ArtifactID) canvas.Style { return r.style[id] }

// Ops returns the recorded calls.
func (r *Recorder) Ops() []Op { return r.ops }

// Reset forgets recorded calls, keeping live artifacts.
func (r *Recorder) Reset() { r.ops = nil }

// Index returns the position of the first recorded op matching name and id, or -1.
func (r *Recorder) Index(name string, id canvas.ArtifactID) int {
	for i, op := range r.ops {
		if op.Name == name && op.ID == id {
			return i
		}
	}
	return -1
}
