// Package theme persists the display preferences (light/dark mode and
// accent color) through the settings store.
package theme

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/harmony/internal/models"
	"github.com/desertthunder/harmony/internal/repositories"
	"github.com/desertthunder/harmony/internal/shared"
)

// settingKey is the settings-store name the theme document lives under.
const settingKey = "theme"

// Manager loads and saves the theme, defaulting to system mode with a
// rose accent when nothing has been stored yet.
type Manager struct {
	settings *repositories.SettingsRepository
	logger   *log.Logger
	current  models.Theme
}

func NewManager(settings *repositories.SettingsRepository, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{
		settings: settings,
		logger:   logger,
		current:  models.DefaultTheme(),
	}
}

// Load reads the stored theme. A missing or invalid document falls
// back to the default rather than failing startup.
func (m *Manager) Load() error {
	var stored models.Theme
	found, err := m.settings.Get(settingKey, &stored)
	if err != nil {
		return fmt.Errorf("reading theme: %w", err)
	}
	if !found {
		m.current = models.DefaultTheme()
		return nil
	}

	if err := stored.Validate(); err != nil {
		m.logger.Warn("stored theme is invalid, using default", "error", err)
		m.current = models.DefaultTheme()
		return nil
	}

	m.current = stored
	return nil
}

// Current returns the active theme.
func (m *Manager) Current() models.Theme {
	return m.current
}

// SetMode switches between light, dark, and system.
func (m *Manager) SetMode(mode models.ThemeMode) error {
	next := m.current
	next.Mode = mode
	return m.save(next)
}

// SetAccent switches the accent color.
func (m *Manager) SetAccent(accent models.AccentColor) error {
	next := m.current
	next.Accent = accent
	return m.save(next)
}

// Toggle advances the mode through system, light, dark, and back.
func (m *Manager) Toggle() error {
	next := m.current
	switch next.Mode {
	case models.ModeSystem:
		next.Mode = models.ModeLight
	case models.ModeLight:
		next.Mode = models.ModeDark
	default:
		next.Mode = models.ModeSystem
	}
	return m.save(next)
}

func (m *Manager) save(next models.Theme) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if err := m.settings.Put(settingKey, next); err != nil {
		return fmt.Errorf("storing theme: %w", err)
	}
	m.current = next
	return nil
}
