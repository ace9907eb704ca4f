package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	pause     key.Binding
	analytics key.Binding
	dashboard key.Binding
	match     key.Binding
	tactics   key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		pause:     key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "pause")),
		analytics: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "analytics")),
		dashboard: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
		match:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "match")),
		tactics:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "squad")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.pause, k.analytics, k.dashboard, k.match, k.tactics, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.pause, k.analytics},
		{k.dashboard, k.match, k.tactics},
		{k.quit},
	}
}

// keyName adapts a key string for [key.Matches].
type keyName string

func (k keyName) String() string { return string(k) }
