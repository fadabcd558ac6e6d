package models

import "fmt"

// ThemeMode selects light, dark, or follow-the-system rendering.
type ThemeMode string

const (
	ModeLight  ThemeMode = "light"
	ModeDark   ThemeMode = "dark"
	ModeSystem ThemeMode = "system"
)

// AccentColor is one of the fixed accent colors the UI understands.
type AccentColor string

const (
	AccentRose   AccentColor = "rose"
	AccentBlue   AccentColor = "blue"
	AccentPurple AccentColor = "purple"
	AccentGreen  AccentColor = "green"
	AccentOrange AccentColor = "orange"
	AccentCyan   AccentColor = "cyan"
)

// AccentColors lists every valid accent color.
var AccentColors = []AccentColor{
	AccentRose, AccentBlue, AccentPurple, AccentGreen, AccentOrange, AccentCyan,
}

// Theme is the persisted theme configuration, stored in the settings
// collection under the "theme" key.
type Theme struct {
	Mode   ThemeMode   `json:"mode"`
	Accent AccentColor `json:"accentColor"`
}

// DefaultTheme returns the out-of-the-box theme.
func DefaultTheme() Theme {
	return Theme{Mode: ModeSystem, Accent: AccentRose}
}

// Validate checks mode and accent against their value sets.
func (t Theme) Validate() error {
	switch t.Mode {
	case ModeLight, ModeDark, ModeSystem:
	default:
		return fmt.Errorf("invalid theme mode %q", t.Mode)
	}

	for _, c := range AccentColors {
		if t.Accent == c {
			return nil
		}
	}
	return fmt.Errorf("invalid accent color %q", t.Accent)
}
