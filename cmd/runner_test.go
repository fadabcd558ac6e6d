package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/harmony/internal/library"
	"github.com/desertthunder/harmony/internal/repositories"
	"github.com/desertthunder/harmony/internal/shared"
	tu "github.com/desertthunder/harmony/internal/testing"
	"github.com/desertthunder/harmony/internal/theme"
	"github.com/urfave/cli/v3"
)

func setupRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	manager := library.NewManager(library.ManagerOpts{
		Playlists: repositories.NewPlaylistRepository(db),
		Uploads:   repositories.NewUploadRepository(db),
		Downloads: repositories.NewDownloadRepository(db),
	})
	if err := manager.Refresh(); err != nil {
		t.Fatalf("failed to load library: %v", err)
	}

	themes := theme.NewManager(repositories.NewSettingsRepository(db), nil)
	if err := themes.Load(); err != nil {
		t.Fatalf("failed to load theme: %v", err)
	}

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Library: manager,
		Themes:  themes,
		Output:  output,
	})
	return runner, output
}

// run executes a command line against a fresh app built from the runner.
func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()

	app := &cli.Command{Name: "harmony", Commands: r.register()}
	return app.Run(context.Background(), append([]string{"harmony"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("builds catalog client from config", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.catalog == nil {
				t.Error("expected a catalog client")
			}
		})

		t.Run("without library has no sync engine", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.sync != nil {
				t.Error("expected no sync engine without a library")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("requireLibrary", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})

		if err := runner.requireLibrary(); err == nil {
			t.Error("expected error without library")
		}
	})
}

func TestPlaylistCommands(t *testing.T) {
	t.Run("create and list", func(t *testing.T) {
		runner, output := setupRunner(t)

		if err := run(t, runner, "playlist", "create", "Morning Run", "-d", "uptempo"); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if !strings.Contains(output.String(), "Created playlist \"Morning Run\"") {
			t.Errorf("unexpected output: %s", output.String())
		}

		output.Reset()
		if err := run(t, runner, "playlist", "list"); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if !strings.Contains(output.String(), "Morning Run (0 tracks) - uptempo") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("delete by name", func(t *testing.T) {
		runner, output := setupRunner(t)
		runner.library.CreatePlaylist("Old Mix", "")

		if err := run(t, runner, "playlist", "delete", "old mix"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if !strings.Contains(output.String(), "Deleted playlist") {
			t.Errorf("unexpected output: %s", output.String())
		}
		if len(runner.library.Playlists()) != 0 {
			t.Error("playlist still present")
		}
	})

	t.Run("unknown playlist errors", func(t *testing.T) {
		runner, _ := setupRunner(t)

		err := run(t, runner, "playlist", "show", "missing")
		if err == nil || !strings.Contains(err.Error(), "playlist not found") {
			t.Errorf("expected not-found error, got %v", err)
		}
	})

	t.Run("export json", func(t *testing.T) {
		runner, output := setupRunner(t)
		runner.library.CreatePlaylist("Mix", "")
		path := filepath.Join(t.TempDir(), "mix.json")

		if err := run(t, runner, "playlist", "export", "Mix", "-o", path); err != nil {
			t.Fatalf("export failed: %v", err)
		}
		tu.AssertFileExists(t, path)
		if !strings.Contains(output.String(), "Exported to") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})
}

func TestLibraryCommands(t *testing.T) {
	t.Run("upload and list", func(t *testing.T) {
		runner, output := setupRunner(t)
		path := filepath.Join(t.TempDir(), "Daft Punk - One More Time.mp3")
		if err := os.WriteFile(path, []byte("ID3audio"), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		if err := run(t, runner, "library", "upload", path); err != nil {
			t.Fatalf("upload failed: %v", err)
		}
		if !strings.Contains(output.String(), "Daft Punk - One More Time") {
			t.Errorf("unexpected output: %s", output.String())
		}
		if !strings.Contains(output.String(), "Added 1 of 1 files") {
			t.Errorf("missing summary: %s", output.String())
		}

		output.Reset()
		if err := run(t, runner, "library", "uploads"); err != nil {
			t.Fatalf("uploads failed: %v", err)
		}
		if !strings.Contains(output.String(), "Daft Punk - One More Time") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("upload skips unsupported files", func(t *testing.T) {
		runner, output := setupRunner(t)
		path := filepath.Join(t.TempDir(), "notes.txt")
		if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		if err := run(t, runner, "library", "upload", path); err != nil {
			t.Fatalf("upload failed: %v", err)
		}
		if !strings.Contains(output.String(), "unsupported format") {
			t.Errorf("unexpected output: %s", output.String())
		}
		if !strings.Contains(output.String(), "Added 0 of 1 files") {
			t.Errorf("missing summary: %s", output.String())
		}
	})

	t.Run("remove upload keeps playlist entry", func(t *testing.T) {
		runner, output := setupRunner(t)
		path := filepath.Join(t.TempDir(), "Justice - Genesis.mp3")
		if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
		track, err := runner.library.Upload(path)
		if err != nil || track == nil {
			t.Fatalf("upload failed: %v", err)
		}
		p, _ := runner.library.CreatePlaylist("Electro", "")
		runner.library.AddTrackToPlaylist(p.ID, track.Track)

		if err := run(t, runner, "library", "remove", track.ID); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if !strings.Contains(output.String(), "Removed upload") {
			t.Errorf("unexpected output: %s", output.String())
		}
		if !runner.library.Playlist(p.ID).Contains(track.ID) {
			t.Error("playlist entry should survive removal")
		}
	})
}

func TestThemeCommands(t *testing.T) {
	t.Run("show defaults", func(t *testing.T) {
		runner, output := setupRunner(t)

		if err := run(t, runner, "theme", "show"); err != nil {
			t.Fatalf("show failed: %v", err)
		}
		if !strings.Contains(output.String(), "mode: system") ||
			!strings.Contains(output.String(), "accent: rose") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("set and toggle", func(t *testing.T) {
		runner, output := setupRunner(t)

		if err := run(t, runner, "theme", "set", "--mode", "dark", "--accent", "cyan"); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if !strings.Contains(output.String(), "dark / cyan") {
			t.Errorf("unexpected output: %s", output.String())
		}

		output.Reset()
		// dark toggles back around to system
		if err := run(t, runner, "theme", "toggle"); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}
		if !strings.Contains(output.String(), "now system") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("rejects unknown accent", func(t *testing.T) {
		runner, _ := setupRunner(t)

		err := run(t, runner, "theme", "set", "--accent", "chartreuse")
		if err == nil {
			t.Error("expected validation failure")
		}
	})
}
