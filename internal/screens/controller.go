package screens

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stratos/internal/canvas"
	"github.com/desertthunder/stratos/internal/models"
	"github.com/desertthunder/stratos/internal/scene"
)

// Screen is a top-level view.
type Screen int

const (
	Dashboard Screen = iota
	Match
	Tactics
)

// Screens lists every screen in navigation order.
var Screens = []Screen{Dashboard, Match, Tactics}

func (s Screen) String() string {
	switch s {
	case Dashboard:
		return "DASHBOARD"
	case Match:
		return "MATCH"
	case Tactics:
		return "TACTICS"
	default:
		return "UNKNOWN"
	}
}

// Label returns the sidebar navigation label.
func (s Screen) Label() string {
	switch s {
	case Dashboard:
		return "DASH"
	case Match:
		return "MATCH"
	case Tactics:
		return "SQUAD"
	default:
		return ""
	}
}

// View owns the artifacts of one screen.
type View interface {
	Show()
	Hide()
}

// navY is the vertical position of each navigation label in sidebar units.
var navY = map[Screen]float64{Dashboard: 0.2, Match: 0.3, Tactics: 0.4}

const navHitDistance = 0.05

// Controller selects which [View] is visible.
type Controller struct {
	canvas  canvas.Canvas
	theme   scene.Theme
	views   map[Screen]View
	logger  *log.Logger
	active  Screen
	started bool
	nav     *canvas.Group
}

// NewController returns a controller on the [Dashboard] screen. Screens without a view are shown
// as empty.
func NewController(c canvas.Canvas, theme scene.Theme, views map[Screen]View, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		canvas: c,
		theme:  theme,
		views:  views,
		logger: logger,
		active: Dashboard,
		nav:    canvas.NewGroup(c),
	}
}

// Start shows the initial screen and the navigation sidebar.
func (c *Controller) Start() {
	if c.started {
		return
	}
	c.started = true
	for _, s := range Screens {
		if s != c.active {
			c.hide(s)
		}
	}
	c.show(c.active)
	c.drawNav()
	c.canvas.RequestRedraw()
}

// Active returns the visible screen.
func (c *Controller) Active() Screen { return c.active }

// SwitchTo hides the active screen and shows s. Switching to the active screen only redraws the
// navigation indicator.
func (c *Controller) SwitchTo(s Screen) {
	if !c.started {
		c.active = s
		c.Start()
		return
	}

	if s != c.active {
		c.logger.Info("switching screen", "from", c.active, "to", s)
		c.hide(c.active)
		c.active = s
		c.show(s)
	}
	c.drawNav()
	c.canvas.RequestRedraw()
}

func (c *Controller) show(s Screen) {
	if v, ok := c.views[s]; ok && v != nil {
		v.Show()
	}
}

func (c *Controller) hide(s Screen) {
	if v, ok := c.views[s]; ok && v != nil {
		v.Hide()
	}
}

// NavAt returns the screen whose navigation label is within reach of p, in sidebar units.
func (c *Controller) NavAt(p models.Point) (Screen, bool) {
	for _, s := range Screens {
		if math.Abs(p.Y-navY[s]) < navHitDistance {
			return s, true
		}
	}
	return 0, false
}

// NavLen returns the number of navigation artifacts.
func (c *Controller) NavLen() int { return c.nav.Len() }

func (c *Controller) drawNav() {
	c.nav.Release()

	logo := canvas.Style{Color: c.theme.Primary, Bold: true}
	c.nav.Add(c.canvas.DrawText(canvas.Sidebar, models.Point{X: 0.4, Y: 0.05}, "P", logo))

	for _, s := range Screens {
		y := navY[s]
		style := canvas.Style{Color: c.theme.Muted}
		if s == c.active {
			style = canvas.Style{Color: c.theme.Text, Bold: true}
			c.nav.Add(c.canvas.DrawText(canvas.Sidebar, models.Point{X: 0, Y: y}, "▌", canvas.Style{Color: c.theme.Primary}))
		}
		c.nav.Add(c.canvas.DrawText(canvas.Sidebar, models.Point{X: 0.2, Y: y}, s.Label(), style))
	}
}
