package theme

import (
	"testing"

	"github.com/desertthunder/harmony/internal/models"
	"github.com/desertthunder/harmony/internal/repositories"
	"github.com/desertthunder/harmony/internal/shared"
)

func setupManager(t *testing.T) *Manager {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewManager(repositories.NewSettingsRepository(db), nil)
}

func TestLoadDefaults(t *testing.T) {
	m := setupManager(t)

	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := m.Current()
	if got.Mode != models.ModeSystem || got.Accent != models.AccentRose {
		t.Errorf("default theme = %+v", got)
	}
}

func TestThemePersists(t *testing.T) {
	m := setupManager(t)
	m.Load()

	if err := m.SetMode(models.ModeDark); err != nil {
		t.Fatalf("SetMode failed: %v", err)
	}
	if err := m.SetAccent(models.AccentCyan); err != nil {
		t.Fatalf("SetAccent failed: %v", err)
	}

	other := NewManager(m.settings, nil)
	if err := other.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	got := other.Current()
	if got.Mode != models.ModeDark || got.Accent != models.AccentCyan {
		t.Errorf("reloaded theme = %+v", got)
	}
}

func TestSetAccentRejectsUnknownColor(t *testing.T) {
	m := setupManager(t)
	m.Load()

	if err := m.SetAccent("chartreuse"); err == nil {
		t.Error("expected validation failure")
	}
	if m.Current().Accent != models.AccentRose {
		t.Error("failed set should not change the active theme")
	}
}

func TestToggleCyclesModes(t *testing.T) {
	m := setupManager(t)
	m.Load()

	want := []models.ThemeMode{models.ModeLight, models.ModeDark, models.ModeSystem}
	for _, mode := range want {
		if err := m.Toggle(); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		if got := m.Current().Mode; got != mode {
			t.Errorf("mode = %s, want %s", got, mode)
		}
	}
}
