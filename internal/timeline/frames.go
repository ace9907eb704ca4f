package timeline

import (
	"fmt"

	"github.com/desertthunder/stratos/internal/models"
	"github.com/desertthunder/stratos/internal/shared"
)

// Frame is the unit of playback: every sample sharing one frame key, in arrival order.
type Frame struct {
	key     string
	samples []models.Sample
}

// Key returns the frame key shared by every sample in the frame.
func (f Frame) Key() string { return f.key }

// Len returns the number of samples in the frame.
func (f Frame) Len() int { return len(f.samples) }

// Samples returns a copy of the frame's samples.
func (f Frame) Samples() []models.Sample {
	out := make([]models.Sample, len(f.samples))
	copy(out, f.samples)
	return out
}

// Partition splits the frame's sample locations by side, keeping arrival order within each side.
func (f Frame) Partition() (home, away []models.Point) {
	home = make([]models.Point, 0, len(f.samples))
	away = make([]models.Point, 0, len(f.samples))
	for _, s := range f.samples {
		if s.Side == models.Home {
			home = append(home, s.Location)
		} else {
			away = append(away, s.Location)
		}
	}
	return home, away
}

// FrameIndex is an ordered, immutable sequence of frames.
type FrameIndex struct {
	frames []Frame
}

// BuildFrames groups samples by frame key in a single pass.
//
// Frames are ordered by the first appearance of their key and samples keep their input order.
func BuildFrames(samples []models.Sample) *FrameIndex {
	positions := make(map[string]int)
	frames := make([]Frame, 0)

	for _, s := range samples {
		i, ok := positions[s.FrameKey]
		if !ok {
			i = len(frames)
			positions[s.FrameKey] = i
			frames = append(frames, Frame{key: s.FrameKey})
		}
		frames[i].samples = append(frames[i].samples, s)
	}

	return &FrameIndex{frames: frames}
}

// FrameCount returns the number of frames.
func (x *FrameIndex) FrameCount() int { return len(x.frames) }

// FrameAt returns frame i, or [shared.ErrIndexOutOfRange] when i is outside [0, FrameCount()).
func (x *FrameIndex) FrameAt(i int) (Frame, error) {
	if i < 0 || i >= len(x.frames) {
		return Frame{}, fmt.Errorf("%w: %d not in [0, %d)", shared.ErrIndexOutOfRange, i, len(x.frames))
	}
	return x.frames[i], nil
}

// SampleCount returns the total number of samples across all frames.
func (x *FrameIndex) SampleCount() int {
	n := 0
	for _, f := range x.frames {
		n += len(f.samples)
	}
	return n
}
