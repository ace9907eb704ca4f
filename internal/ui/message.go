package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/stratos/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgProgressUpdate MsgKind = iota
	MsgReplayLoaded
	MsgTick
)

type replayLoaded struct {
	replay *tasks.Replay
	err    error
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// replayLoadedMsg is the constructor for [MsgReplayLoaded]
func replayLoadedMsg(replay *tasks.Replay, err error) Msg {
	return Msg{kind: MsgReplayLoaded, data: replayLoaded{replay, err}}
}

// tickMsg is the constructor for [MsgTick]
func tickMsg() Msg {
	return Msg{kind: MsgTick}
}
