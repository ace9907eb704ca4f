package ui

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stratos/internal/canvas"
	"github.com/desertthunder/stratos/internal/playback"
	"github.com/desertthunder/stratos/internal/scene"
	"github.com/desertthunder/stratos/internal/screens"
	"github.com/desertthunder/stratos/internal/shared"
	"github.com/desertthunder/stratos/internal/tasks"
)

// Options configures a [Session].
type Options struct {
	Playback  shared.PlaybackConfig
	Analytics scene.AnalyticsOptions
	Theme     scene.Theme
}

// OptionsFromConfig builds session options from the loaded configuration.
func OptionsFromConfig(cfg *shared.Config) Options {
	return Options{
		Playback: cfg.Playback,
		Analytics: scene.AnalyticsOptions{
			HeatmapCols:      cfg.Analytics.HeatmapCols,
			HeatmapRows:      cfg.Analytics.HeatmapRows,
			HeatmapLevels:    cfg.Analytics.HeatmapLevels,
			NetworkThreshold: cfg.Analytics.NetworkThreshold,
		},
		Theme: scene.DefaultTheme,
	}
}

// Session wires a loaded replay to a terminal canvas: the three screens, the playback clock and
// the input router.
type Session struct {
	Replay     *tasks.Replay
	Canvas     *canvas.Terminal
	Controller *screens.Controller
	Match      *scene.Match
	Clock      *playback.Clock
	Router     *Router
}

// NewSession builds the screens on a width x height canvas and shows the dashboard.
func NewSession(replay *tasks.Replay, opts Options, width, height int, logger *log.Logger) *Session {
	theme := opts.Theme
	term := canvas.NewTerminal(width, height)
	term.SetBackground(canvas.Main, theme.Background)
	term.SetBackground(canvas.Sidebar, theme.Sidebar)

	m := replay.Match
	match := scene.NewMatch(term, theme, opts.Analytics, logger)
	dashboard := screens.NewDashboard(term, theme, screens.DashboardData{
		Title:    m.Title(),
		Subtitle: fmt.Sprintf("%s %s  ·  %s", m.Competition, m.Season, m.Date),
		Summary:  replay.Summary,
	})
	tactics := screens.NewTactics(term, theme, m.HomeTeam)

	controller := screens.NewController(term, theme, map[screens.Screen]screens.View{
		screens.Dashboard: dashboard,
		screens.Match:     match,
		screens.Tactics:   tactics,
	}, logger)
	controller.Start()

	clock := playback.NewClock(replay.Frames, replay.Events, match, controller, opts.Playback.FPS, logger)

	return &Session{
		Replay:     replay,
		Canvas:     term,
		Controller: controller,
		Match:      match,
		Clock:      clock,
		Router:     NewRouter(term, controller, match, clock, opts.Playback.HitRadius, logger),
	}
}
