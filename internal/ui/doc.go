// Package ui implements the interactive replay using bubbletea's Elm architecture.
//
// The TUI has two view states:
//  1. [LoadingView] : progress while the match, tracking frames and events are fetched
//  2. [ReplayView] : the canvas with the sidebar, the active screen, a status line and help
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Loading runs in a goroutine and reports through a progress channel; once loaded, the model builds a [Session] and
// advances its playback clock on every tick. All scene and canvas mutation happens inside Update.
//
// Input goes through the [Router]: space pauses, t toggles analytics, 1/2/3 switch screens, q quits.
// A left click on the sidebar switches screens; on the match view it selects the nearest player within the hit radius.
package ui
