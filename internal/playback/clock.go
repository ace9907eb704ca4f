// Package playback drives the replay forward one frame per tick.
package playback

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stratos/internal/models"
	"github.com/desertthunder/stratos/internal/screens"
	"github.com/desertthunder/stratos/internal/timeline"
)

// Renderer applies one frame and its matching event.
type Renderer interface {
	Render(frame timeline.Frame, event models.Event, found bool)
}

// ScreenState reports which screen is visible.
type ScreenState interface {
	Active() screens.Screen
}

// Clock owns the frame cursor and the pause flag.
//
// The cursor only moves on ticks that render: while paused or while another screen than
// [screens.Match] is visible it stays where it is, so returning to the match resumes from the
// frame that was left. Playback stops for good once every frame has been rendered.
type Clock struct {
	frames   *timeline.FrameIndex
	events   *timeline.EventLookup
	renderer Renderer
	screens  ScreenState
	interval time.Duration
	logger   *log.Logger

	cursor int
	paused bool
}

// NewClock returns a running clock at frame 0 ticking fps times per second.
func NewClock(frames *timeline.FrameIndex, events *timeline.EventLookup, renderer Renderer, state ScreenState, fps int, logger *log.Logger) *Clock {
	if fps <= 0 {
		fps = 1
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Clock{
		frames:   frames,
		events:   events,
		renderer: renderer,
		screens:  state,
		interval: time.Second / time.Duration(fps),
		logger:   logger,
	}
}

// Tick renders the frame under the cursor and advances it. It reports whether a frame was
// rendered.
//
// An error means the cursor left the frame index, which is a bug rather than a data problem.
func (c *Clock) Tick() (bool, error) {
	if c.Done() || c.paused || c.screens.Active() != screens.Match {
		return false, nil
	}

	frame, err := c.frames.FrameAt(c.cursor)
	if err != nil {
		return false, err
	}

	event, found := c.events.Lookup(frame.Key())
	c.renderer.Render(frame, event, found)
	c.cursor++

	if c.Done() {
		c.logger.Info("playback finished", "frames", c.frames.FrameCount())
	}
	return true, nil
}

// TogglePause flips the pause flag and returns the new value.
func (c *Clock) TogglePause() bool {
	c.paused = !c.paused
	c.logger.Debug("pause toggled", "paused", c.paused, "cursor", c.cursor)
	return c.paused
}

func (c *Clock) Paused() bool { return c.paused }

// Cursor returns the index of the next frame to render.
func (c *Clock) Cursor() int { return c.cursor }

// Done reports whether every frame has been rendered.
func (c *Clock) Done() bool { return c.cursor >= c.frames.FrameCount() }

// Interval returns the time between ticks.
func (c *Clock) Interval() time.Duration { return c.interval }
