package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/stratos/internal/screens"
	"github.com/desertthunder/stratos/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	ReplayView
)

const (
	defaultWidth  = 100
	defaultHeight = 32
	chromeLines   = 2 // status line and help
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	loader       *tasks.Loader
	query        tasks.MatchQuery
	opts         Options
	logger       *log.Logger
	width        int
	height       int
	progressChan chan tasks.ProgressUpdate
	done         chan replayLoaded
	progress     tasks.ProgressUpdate
	preloaded    *tasks.Replay
	session      *Session
	status       string
	styles       *Palette
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a model that loads the match selected by query.
func NewModel(ctx context.Context, loader *tasks.Loader, query tasks.MatchQuery, opts Options, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Model{
		ctx:    ctx,
		view:   LoadingView,
		loader: loader,
		query:  query,
		opts:   opts,
		logger: logger,
		width:  defaultWidth,
		height: defaultHeight,
		styles: NewPalette(opts.Theme),
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// NewReplayModel creates a model for a replay that has already been loaded.
func NewReplayModel(replay *tasks.Replay, opts Options, logger *log.Logger) *Model {
	m := NewModel(context.Background(), nil, tasks.MatchQuery{}, opts, logger)
	m.preloaded = replay
	return m
}

// Err returns the error that stopped the program, if any.
func (m *Model) Err() error { return m.err }

// Session returns the replay session, nil until loading completes.
func (m *Model) Session() *Session { return m.session }

// Init starts loading the replay.
func (m *Model) Init() tea.Cmd {
	if m.preloaded != nil {
		replay := m.preloaded
		return func() tea.Msg { return replayLoadedMsg(replay, nil) }
	}
	return m.startLoad()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.session != nil {
			m.session.Canvas.Resize(m.width, m.canvasHeight())
		}
		return m, nil

	case tea.KeyMsg:
		if m.session == nil {
			if msg.String() == "q" || msg.Type == tea.KeyCtrlC {
				return m, tea.Quit
			}
			return m, nil
		}
		return m.apply(m.session.Router.Key(msg.String()))

	case tea.MouseMsg:
		if m.session == nil || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.apply(m.session.Router.Pointer(msg.X, msg.Y))

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgReplayLoaded:
		loaded := msg.data.(replayLoaded)
		m.progressChan = nil
		m.done = nil
		if loaded.err != nil {
			m.err = loaded.err
			return m, tea.Quit
		}
		m.session = NewSession(loaded.replay, m.opts, m.width, m.canvasHeight(), m.logger)
		m.view = ReplayView
		return m, m.tick()

	case MsgTick:
		if m.session == nil {
			return m, nil
		}
		if _, err := m.session.Clock.Tick(); err != nil {
			m.logger.Error("playback failed", "cursor", m.session.Clock.Cursor(), "error", err)
			m.err = err
			return m, tea.Quit
		}
		if m.session.Clock.Done() {
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) apply(a Action) (tea.Model, tea.Cmd) {
	if a.Kind == ActionQuit {
		return m, tea.Quit
	}
	if s := a.String(); s != "" {
		m.status = s
	}
	return m, nil
}

func (m *Model) canvasHeight() int {
	return max(m.height-chromeLines, 1)
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.session.Clock.Interval(), func(time.Time) tea.Msg {
		return tickMsg()
	})
}

func (m *Model) startLoad() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 16)
	m.done = make(chan replayLoaded, 1)

	progress, done := m.progressChan, m.done
	go func() {
		replay, err := m.loader.Load(m.ctx, m.query, progress)
		done <- replayLoaded{replay: replay, err: err}
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressChan, m.done
	return func() tea.Msg {
		update, ok := <-progress
		if !ok {
			r := <-done
			return replayLoadedMsg(r.replay, r.err)
		}
		return progressUpdateMsg(update)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return m.styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	switch m.view {
	case LoadingView:
		return m.renderLoading()
	case ReplayView:
		return m.renderReplay()
	default:
		return ""
	}
}

func (m *Model) renderLoading() string {
	title := m.styles.title.Render("Loading replay")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchMatches:
		phase = "Fetching match list..."
	case tasks.FetchFrames:
		phase = "Fetching tracking frames..."
	case tasks.FetchEvents:
		phase = "Fetching events..."
	case tasks.BuildIndex:
		phase = "Building frame index..."
	case tasks.Ready:
		phase = "Ready"
	default:
		phase = "Starting..."
	}

	return fmt.Sprintf("%s\n%s\n%s\n", title, phase, m.styles.help.Render(m.progress.Message))
}

func (m *Model) renderReplay() string {
	var b strings.Builder
	b.WriteString(m.session.Canvas.Render())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

func (m *Model) statusLine() string {
	s := m.session
	parts := []string{m.styles.ok.Render(s.Controller.Active().String())}

	parts = append(parts, fmt.Sprintf("frame %d/%d", s.Clock.Cursor(), s.Replay.Frames.FrameCount()))

	switch {
	case s.Clock.Done():
		parts = append(parts, m.styles.warn.Render("finished"))
	case s.Clock.Paused():
		parts = append(parts, m.styles.warn.Render("paused"))
	case s.Controller.Active() != screens.Match:
		parts = append(parts, m.styles.help.Render("frozen"))
	default:
		parts = append(parts, "playing")
	}

	if s.Match.Analytics().Enabled() {
		parts = append(parts, "analytics on")
	}
	if m.status != "" {
		parts = append(parts, m.styles.help.Render(m.status))
	}
	return strings.Join(parts, "  ")
}
