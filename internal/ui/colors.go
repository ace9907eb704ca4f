package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/stratos/internal/scene"
)

// Palette styles the text around the canvas (loading view, status line, errors) from the replay
// [scene.Theme] so it matches the pitch colors.
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(theme scene.Theme) *Palette {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return &Palette{
		title: fg(theme.Primary).Bold(true).MarginBottom(1),
		ok:    fg(theme.Home).Bold(true),
		err:   fg(theme.Alert).Bold(true),
		warn:  fg(theme.Highlight),
		help:  fg(theme.Muted).Italic(true),
	}
}
