// Package screens switches between the top-level views of the replay.
//
// [Controller] is a small state machine over [Dashboard], [Match] and [Tactics]. Each state maps
// to a [View] whose Show and Hide own that screen's artifacts; only the active view is shown.
// The controller also owns the sidebar navigation and redraws its indicator on every switch.
package screens
