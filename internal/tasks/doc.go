// Package tasks loads match replays from a provider with progress reporting.
//
// # Core Operations
//
//  1. [Loader.Load] : resolve and load one match
//     - Lists the competition season and picks the first home match of the configured team
//       (or the configured match id)
//     - Fetches tracking frames; a match without them fails with [shared.ErrTrackingUnavailable]
//     - Fetches and normalizes events
//     - Builds the [timeline.FrameIndex] and [timeline.EventLookup]
//
//  2. [Loader.Prefetch] : warm the payload cache for every match of a season
//     - Worker pool with a shared rate limiter
//     - Partial failures are collected per match; matches without 360 data are counted, not failed
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters and a message. Updates use select with
// default so reporting never blocks loading.
package tasks
