// Package timeline turns loaded tracking samples and events into the replay's
// indexed structures.
//
// [BuildFrames] groups samples into a [FrameIndex] ordered by first appearance of each frame key
// (arrival order is kept as received, never sorted). [BuildEvents] keys events by the same
// identifier space in an [EventLookup]; when a key repeats, the first event built wins and later
// ones are counted in [EventLookup.Duplicates].
//
// Both structures are immutable after construction.
package timeline
