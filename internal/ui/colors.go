package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/harmony/internal/models"
)

// accentHex maps the persisted accent colors onto terminal-friendly
// lipgloss colors.
var accentHex = map[models.AccentColor]string{
	models.AccentRose:   "#F43F5E",
	models.AccentBlue:   "#3B82F6",
	models.AccentPurple: "#8B5CF6",
	models.AccentGreen:  "#10B981",
	models.AccentOrange: "#F97316",
	models.AccentCyan:   "#06B6D4",
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title   lipgloss.Style
	playing lipgloss.Style
	err     lipgloss.Style
	dim     lipgloss.Style
	help    lipgloss.Style
}

// NewPalette builds the stylesheet around a theme's accent color.
func NewPalette(accent models.AccentColor) *Palette {
	hex, ok := accentHex[accent]
	if !ok {
		hex = accentHex[models.AccentRose]
	}

	return &Palette{
		title:   NewBold(hex).MarginBottom(1),
		playing: NewBold(hex),
		err:     NewBold("#FF0000"),
		dim:     NewStyle("#626262"),
		help:    NewEm("#626262"),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
