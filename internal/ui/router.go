package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/stratos/internal/canvas"
	"github.com/desertthunder/stratos/internal/models"
	"github.com/desertthunder/stratos/internal/playback"
	"github.com/desertthunder/stratos/internal/scene"
	"github.com/desertthunder/stratos/internal/screens"
)

// ActionKind enumerates what an input did.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionPause
	ActionAnalytics
	ActionNavigate
	ActionSelect
)

// Action reports the effect of one input.
type Action struct {
	Kind      ActionKind
	Screen    screens.Screen  // ActionNavigate
	Selection scene.Selection // ActionSelect
	Enabled   bool            // New flag value for ActionPause and ActionAnalytics
}

// String describes the action for the status line. It is empty for [ActionNone] and [ActionQuit].
func (a Action) String() string {
	switch a.Kind {
	case ActionPause:
		if a.Enabled {
			return "paused"
		}
		return "playing"
	case ActionAnalytics:
		if a.Enabled {
			return "analytics on"
		}
		return "analytics off"
	case ActionNavigate:
		return a.Screen.String()
	case ActionSelect:
		s := a.Selection
		return fmt.Sprintf("%s #%d at (%.1f, %.1f)", s.Side, s.Ordinal, s.Location.X, s.Location.Y)
	default:
		return ""
	}
}

// Locator converts terminal cells into pane coordinates.
type Locator interface {
	Locate(col, row int, pane canvas.Pane) (models.Point, bool)
}

// Router maps key presses and pointer clicks onto the clock, the screen controller and the
// match view.
type Router struct {
	keys       keyMap
	locator    Locator
	controller *screens.Controller
	match      *scene.Match
	clock      *playback.Clock
	radius     float64
	logger     *log.Logger
}

func NewRouter(locator Locator, controller *screens.Controller, match *scene.Match, clock *playback.Clock, radius float64, logger *log.Logger) *Router {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Router{
		keys:       newKeyMap(),
		locator:    locator,
		controller: controller,
		match:      match,
		clock:      clock,
		radius:     radius,
		logger:     logger,
	}
}

// Key handles a key press named as bubbletea names it ("t", " ", "ctrl+c").
func (r *Router) Key(k string) Action {
	name := keyName(k)

	switch {
	case key.Matches(name, r.keys.quit):
		return Action{Kind: ActionQuit}
	case key.Matches(name, r.keys.pause):
		return Action{Kind: ActionPause, Enabled: r.clock.TogglePause()}
	case key.Matches(name, r.keys.analytics):
		return Action{Kind: ActionAnalytics, Enabled: r.match.ToggleAnalytics()}
	case key.Matches(name, r.keys.dashboard):
		return r.navigate(screens.Dashboard)
	case key.Matches(name, r.keys.match):
		return r.navigate(screens.Match)
	case key.Matches(name, r.keys.tactics):
		return r.navigate(screens.Tactics)
	}
	return Action{}
}

// Pointer handles a left click on a terminal cell. The sidebar is checked first; clicks on the
// pitch select a player only while the match screen is active.
func (r *Router) Pointer(col, row int) Action {
	if p, ok := r.locator.Locate(col, row, canvas.Sidebar); ok {
		if s, ok := r.controller.NavAt(p); ok {
			return r.navigate(s)
		}
		return Action{}
	}

	if r.controller.Active() != screens.Match {
		return Action{}
	}

	p, ok := r.locator.Locate(col, row, canvas.Pitch)
	if !ok {
		return Action{}
	}

	sel, ok := r.match.Pick(p, r.radius)
	if !ok {
		return Action{}
	}

	r.logger.Info("player selected", "side", sel.Side, "ordinal", sel.Ordinal, "x", sel.Location.X, "y", sel.Location.Y)
	return Action{Kind: ActionSelect, Selection: sel}
}

func (r *Router) navigate(s screens.Screen) Action {
	r.controller.SwitchTo(s)
	return Action{Kind: ActionNavigate, Screen: s}
}
