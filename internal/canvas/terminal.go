package canvas

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/stratos/internal/models"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

const (
	pitchLength = 120.0
	pitchWidth  = 80.0

	defaultGlyph = '●'
	curveGlyph   = '·'
)

type artifact struct {
	id      ArtifactID
	kind    Kind
	pane    Pane
	points  []models.Point
	text    string
	contour Contour
	style   Style
}

type cell struct {
	ch    rune // 0 marks the second column of a wide rune
	fg    string
	bg    string
	bold  bool
	faint bool
}

type rect struct {
	col, row      int
	width, height int
}

func (r rect) contains(col, row int) bool {
	return col >= r.col && col < r.col+r.width && row >= r.row && row < r.row+r.height
}

// Terminal is an in-memory [Canvas] rasterized into styled terminal cells.
//
// The left strip of the terminal is the [Sidebar] pane; the rest is shared by [Pitch] and [Main].
// Render output is cached until [Terminal.RequestRedraw] or [Terminal.Resize] is called.
type Terminal struct {
	width      int
	height     int
	background map[Pane]string

	next      ArtifactID
	artifacts map[ArtifactID]*artifact

	dirty   bool
	frame   string
	redraws int
	styles  map[cell]lipgloss.Style
}

var _ Canvas = (*Terminal)(nil)

// NewTerminal creates a terminal canvas of width x height cells.
func NewTerminal(width, height int) *Terminal {
	t := &Terminal{
		background: map[Pane]string{Main: "#151515", Sidebar: "#151515"},
		artifacts:  make(map[ArtifactID]*artifact),
		styles:     make(map[cell]lipgloss.Style),
		dirty:      true,
	}
	t.Resize(width, height)
	return t
}

// SetBackground sets the fill color of the [Sidebar] or [Main] pane. [Pitch] shares the [Main] area.
func (t *Terminal) SetBackground(pane Pane, color string) {
	t.background[pane] = color
	t.dirty = true
}

// Resize changes the canvas size and invalidates the cached frame.
func (t *Terminal) Resize(width, height int) {
	t.width, t.height = max(width, 0), max(height, 0)
	t.dirty = true
}

// Size returns the canvas size in cells.
func (t *Terminal) Size() (width, height int) { return t.width, t.height }

func (t *Terminal) sidebarWidth() int {
	if t.width < 24 {
		return min(t.width, 6)
	}
	return min(max(t.width/10, 8), 14)
}

func (t *Terminal) area(pane Pane) rect {
	sw := t.sidebarWidth()
	if pane == Sidebar {
		return rect{col: 0, row: 0, width: sw, height: t.height}
	}
	return rect{col: sw, row: 0, width: t.width - sw, height: t.height}
}

func scale(pane Pane) (float64, float64) {
	if pane == Pitch {
		return pitchLength, pitchWidth
	}
	return 1, 1
}

// toCell maps pane coordinates to a cell.
func (t *Terminal) toCell(pane Pane, p models.Point) (int, int) {
	r := t.area(pane)
	sx, sy := scale(pane)
	col := r.col + int(math.Round(p.X/sx*float64(r.width-1)))
	row := r.row + int(math.Round(p.Y/sy*float64(r.height-1)))
	return col, row
}

// fromCell maps a cell to the pane coordinates of its center.
func (t *Terminal) fromCell(pane Pane, col, row int) models.Point {
	r := t.area(pane)
	sx, sy := scale(pane)
	var x, y float64
	if r.width > 1 {
		x = float64(col-r.col) / float64(r.width-1) * sx
	}
	if r.height > 1 {
		y = float64(row-r.row) / float64(r.height-1) * sy
	}
	return models.Point{X: x, Y: y}
}

// Locate converts a terminal cell into the coordinate space of pane. It reports false when the
// cell lies outside that pane.
func (t *Terminal) Locate(col, row int, pane Pane) (models.Point, bool) {
	if !t.area(pane).contains(col, row) {
		return models.Point{}, false
	}
	return t.fromCell(pane, col, row), true
}

func (t *Terminal) add(kind Kind, pane Pane, style Style, points []models.Point) *artifact {
	t.next++
	a := &artifact{id: t.next, kind: kind, pane: pane, style: style, points: points}
	t.artifacts[a.id] = a
	return a
}

func (t *Terminal) DrawPoints(pane Pane, points []models.Point, style Style) ArtifactID {
	return t.add(KindPoints, pane, style, clonePoints(points)).id
}

func (t *Terminal) SetPoints(id ArtifactID, points []models.Point) bool {
	a, ok := t.artifacts[id]
	if !ok || a.kind != KindPoints {
		return false
	}
	a.points = clonePoints(points)
	return true
}

func (t *Terminal) DrawPolygon(pane Pane, vertices []models.Point, style Style) ArtifactID {
	return t.add(KindPolygon, pane, style, clonePoints(vertices)).id
}

func (t *Terminal) DrawLine(pane Pane, from, to models.Point, style Style) ArtifactID {
	return t.add(KindLine, pane, style, []models.Point{from, to}).id
}

func (t *Terminal) DrawArrow(pane Pane, from, to models.Point, style Style) ArtifactID {
	return t.add(KindArrow, pane, style, []models.Point{from, to}).id
}

func (t *Terminal) DrawCurve(pane Pane, from, control, to models.Point, style Style) ArtifactID {
	return t.add(KindCurve, pane, style, []models.Point{from, control, to}).id
}

func (t *Terminal) DrawContour(pane Pane, contour Contour, style Style) ArtifactID {
	a := t.add(KindContour, pane, style, nil)
	a.contour = contour
	return a.id
}

func (t *Terminal) DrawText(pane Pane, at models.Point, text string, style Style) ArtifactID {
	a := t.add(KindText, pane, style, []models.Point{at})
	a.text = text
	return a.id
}

func (t *Terminal) Remove(id ArtifactID) bool {
	if _, ok := t.artifacts[id]; !ok {
		return false
	}
	delete(t.artifacts, id)
	return true
}

func (t *Terminal) RequestRedraw() {
	t.dirty = true
	t.redraws++
}

// Redraws returns how many redraws have been requested.
func (t *Terminal) Redraws() int { return t.redraws }

// Len returns the number of live artifacts.
func (t *Terminal) Len() int { return len(t.artifacts) }

// Count returns the number of live artifacts of kind.
func (t *Terminal) Count(kind Kind) int {
	n := 0
	for _, a := range t.artifacts {
		if a.kind == kind {
			n++
		}
	}
	return n
}

// Has reports whether id is live.
func (t *Terminal) Has(id ArtifactID) bool {
	_, ok := t.artifacts[id]
	return ok
}

// Points returns a copy of the coordinates of a live artifact.
func (t *Terminal) Points(id ArtifactID) ([]models.Point, bool) {
	a, ok := t.artifacts[id]
	if !ok {
		return nil, false
	}
	return clonePoints(a.points), true
}

// Render rasterizes every live artifact. The result is reused until a redraw is requested.
func (t *Terminal) Render() string {
	if !t.dirty {
		return t.frame
	}
	t.frame = t.rasterize()
	t.dirty = false
	return t.frame
}

func priority(k Kind) int {
	switch k {
	case KindContour:
		return 0
	case KindPolygon:
		return 1
	case KindLine, KindArrow, KindCurve:
		return 2
	case KindPoints:
		return 3
	default:
		return 4
	}
}

func (t *Terminal) rasterize() string {
	if t.width == 0 || t.height == 0 {
		return ""
	}

	cells := make([][]cell, t.height)
	content := t.area(Main)
	for row := range cells {
		cells[row] = make([]cell, t.width)
		for col := range cells[row] {
			bg := t.background[Sidebar]
			if content.contains(col, row) {
				bg = t.background[Main]
			}
			cells[row][col] = cell{ch: ' ', bg: bg}
		}
	}

	ordered := make([]*artifact, 0, len(t.artifacts))
	for _, a := range t.artifacts {
		ordered = append(ordered, a)
	}
	sort.Slice(ordered, func(i, j int) bool {
		pi, pj := priority(ordered[i].kind), priority(ordered[j].kind)
		if pi != pj {
			return pi < pj
		}
		return ordered[i].id < ordered[j].id
	})

	p := &painter{t: t, cells: cells}
	for _, a := range ordered {
		p.paint(a)
	}
	return t.join(cells)
}

func (t *Terminal) join(cells [][]cell) string {
	var b strings.Builder
	for row, line := range cells {
		if row > 0 {
			b.WriteByte('\n')
		}

		var run strings.Builder
		var key cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(t.style(key).Render(run.String()))
			run.Reset()
		}

		for col, c := range line {
			if c.ch == 0 {
				continue
			}
			k := cell{fg: c.fg, bg: c.bg, bold: c.bold, faint: c.faint}
			if col > 0 && k != key {
				flush()
			}
			key = k
			run.WriteRune(c.ch)
		}
		flush()
	}
	return b.String()
}

func (t *Terminal) style(key cell) lipgloss.Style {
	if s, ok := t.styles[key]; ok {
		return s
	}
	s := lipgloss.NewStyle().Bold(key.bold).Faint(key.faint)
	if key.fg != "" {
		s = s.Foreground(lipgloss.Color(key.fg))
	}
	if key.bg != "" {
		s = s.Background(lipgloss.Color(key.bg))
	}
	t.styles[key] = s
	return s
}

// painter draws artifacts onto a cell buffer.
type painter struct {
	t     *Terminal
	cells [][]cell
}

func (p *painter) paint(a *artifact) {
	switch a.kind {
	case KindContour:
		p.contour(a)
	case KindPolygon:
		p.polygon(a)
	case KindLine:
		p.line(a.pane, a.points[0], a.points[1], a.style)
	case KindArrow:
		p.arrow(a)
	case KindCurve:
		p.curve(a)
	case KindPoints:
		glyph := a.style.Glyph
		if glyph == 0 {
			glyph = defaultGlyph
		}
		for _, pt := range a.points {
			if !pt.Valid() {
				continue
			}
			col, row := p.t.toCell(a.pane, pt)
			p.plot(a.pane, col, row, glyph, a.style)
		}
	case KindText:
		p.text(a)
	}
}

func (p *painter) plot(pane Pane, col, row int, ch rune, style Style) {
	if !p.t.area(pane).contains(col, row) {
		return
	}
	c := &p.cells[row][col]
	c.ch = ch
	c.fg = style.Color
	c.bold = style.Bold
	c.faint = style.Faint
}

func (p *painter) fill(pane Pane, col, row int, color string, alpha float64) {
	if !p.t.area(pane).contains(col, row) {
		return
	}
	c := &p.cells[row][col]
	c.bg = blend(c.bg, color, alpha)
}

func blend(base, over string, alpha float64) string {
	if alpha <= 0 || alpha >= 1 {
		return over
	}
	b, err := colorful.Hex(base)
	if err != nil {
		return over
	}
	o, err := colorful.Hex(over)
	if err != nil {
		return base
	}
	return b.BlendRgb(o, alpha).Clamped().Hex()
}

func lineGlyph(dc, dr int) rune {
	switch {
	case dr == 0:
		return '─'
	case dc == 0:
		return '│'
	case (dc > 0) == (dr > 0):
		return '╲'
	default:
		return '╱'
	}
}

func arrowHead(dc, dr int) rune {
	angle := math.Atan2(float64(dr), float64(dc))
	heads := []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	octant := int(math.Round(angle/(math.Pi/4))+8) % 8
	return heads[octant]
}

// cellsBetween walks the cells from (c0, r0) to (c1, r1) with Bresenham's algorithm.
func cellsBetween(c0, r0, c1, r1 int) [][2]int {
	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	err := dc + dr
	out := make([][2]int, 0, max(dc, -dr)+1)
	for {
		out = append(out, [2]int{c0, r0})
		if c0 == c1 && r0 == r1 {
			return out
		}
		e2 := 2 * err
		if e2 >= dr {
			err += dr
			c0 += sc
		}
		if e2 <= dc {
			err += dc
			r0 += sr
		}
	}
}

func (p *painter) line(pane Pane, from, to models.Point, style Style) [][2]int {
	if !from.Valid() || !to.Valid() {
		return nil
	}
	c0, r0 := p.t.toCell(pane, from)
	c1, r1 := p.t.toCell(pane, to)
	glyph := lineGlyph(c1-c0, r1-r0)
	path := cellsBetween(c0, r0, c1, r1)
	for i, c := range path {
		if style.Dashed && i%2 == 1 {
			continue
		}
		p.plot(pane, c[0], c[1], glyph, style)
	}
	return path
}

func (p *painter) arrow(a *artifact) {
	path := p.line(a.pane, a.points[0], a.points[1], a.style)
	if len(path) == 0 {
		return
	}
	first, last := path[0], path[len(path)-1]
	p.plot(a.pane, last[0], last[1], arrowHead(last[0]-first[0], last[1]-first[1]), a.style)
}

func (p *painter) curve(a *artifact) {
	from, control, to := a.points[0], a.points[1], a.points[2]
	if !from.Valid() || !control.Valid() || !to.Valid() {
		return
	}
	c0, r0 := p.t.toCell(a.pane, from)
	c1, r1 := p.t.toCell(a.pane, to)
	steps := max(8, 2*(abs(c1-c0)+abs(r1-r0)))

	for i := 0; i <= steps; i++ {
		s := float64(i) / float64(steps)
		u := 1 - s
		pt := models.Point{
			X: u*u*from.X + 2*u*s*control.X + s*s*to.X,
			Y: u*u*from.Y + 2*u*s*control.Y + s*s*to.Y,
		}
		col, row := p.t.toCell(a.pane, pt)
		p.plot(a.pane, col, row, curveGlyph, a.style)
	}
}

func (p *painter) polygon(a *artifact) {
	n := len(a.points)
	if n < 2 {
		return
	}
	if a.style.Fill != "" && n >= 3 {
		r := p.t.area(a.pane)
		for row := r.row; row < r.row+r.height; row++ {
			for col := r.col; col < r.col+r.width; col++ {
				if inside(a.points, p.t.fromCell(a.pane, col, row)) {
					p.fill(a.pane, col, row, a.style.Fill, a.style.Alpha)
				}
			}
		}
	}
	if a.style.Color == "" {
		return
	}
	for i := range n {
		p.line(a.pane, a.points[i], a.points[(i+1)%n], a.style)
	}
}

func (p *painter) contour(a *artifact) {
	grid := a.contour.Grid
	if grid.Cols < 2 || grid.Rows < 2 || len(grid.Values) != grid.Cols*grid.Rows {
		return
	}
	r := p.t.area(a.pane)
	for row := r.row; row < r.row+r.height; row++ {
		for col := r.col; col < r.col+r.width; col++ {
			band := a.contour.Band(grid.Sample(p.t.fromCell(a.pane, col, row)))
			if band < 1 {
				continue
			}
			p.fill(a.pane, col, row, a.contour.Colors[band], a.style.Alpha)
		}
	}
}

func (p *painter) text(a *artifact) {
	if !a.points[0].Valid() {
		return
	}
	col0, row := p.t.toCell(a.pane, a.points[0])
	r := p.t.area(a.pane)
	for _, line := range strings.Split(a.text, "\n") {
		col := col0
		for _, ch := range line {
			w := runewidth.RuneWidth(ch)
			if w == 0 {
				continue
			}
			if col+w > r.col+r.width {
				break
			}
			p.plot(a.pane, col, row, ch, a.style)
			if w == 2 && r.contains(col+1, row) {
				p.cells[row][col+1].ch = 0
			}
			col += w
		}
		row++
	}
}

// inside reports whether q lies inside the polygon using the even-odd rule.
func inside(vertices []models.Point, q models.Point) bool {
	in := false
	for i, j := 0, len(vertices)-1; i < len(vertices); j, i = i, i+1 {
		a, b := vertices[i], vertices[j]
		if (a.Y > q.Y) != (b.Y > q.Y) && q.X < (b.X-a.X)*(q.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

func clonePoints(points []models.Point) []models.Point {
	out := make([]models.Point, len(points))
	copy(out, points)
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
