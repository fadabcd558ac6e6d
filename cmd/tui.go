package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/harmony/internal/models"
	"github.com/desertthunder/harmony/internal/player"
	"github.com/desertthunder/harmony/internal/server"
	"github.com/desertthunder/harmony/internal/shared"
	"github.com/desertthunder/harmony/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive player over the whole local library.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	var tracks []models.Track
	for _, t := range r.library.Uploads() {
		tracks = append(tracks, t.Track)
	}
	for _, t := range r.library.Downloads() {
		tracks = append(tracks, t.Track)
	}
	if len(tracks) == 0 {
		return r.writePlain("Library is empty; upload or download tracks first\n")
	}

	return r.launchPlayer(ctx, "Library", tracks)
}

// Play launches the interactive player queued with one playlist.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	playlist, err := r.findPlaylist(cmd.StringArg("playlist"))
	if err != nil {
		return err
	}
	if len(playlist.Tracks) == 0 {
		return r.writePlain("Playlist %q has no tracks\n", playlist.Name)
	}

	return r.launchPlayer(ctx, playlist.Name, playlist.Tracks)
}

// launchPlayer starts the blob server, builds a playback engine, and
// runs the TUI over the given tracks until the user quits.
func (r *Runner) launchPlayer(ctx context.Context, title string, tracks []models.Track) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/harmony-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	blobs := server.NewBlobServer(r.config.Server.Host, r.config.Server.Port, fileLogger)
	if err := blobs.Start(); err != nil {
		return fmt.Errorf("failed to start blob server: %w", err)
	}
	defer blobs.Shutdown(ctx)

	if err := r.library.AttachBlobServer(blobs); err != nil {
		return fmt.Errorf("failed to register library audio: %w", err)
	}

	// prefer local copies so playback works offline
	for i, t := range tracks {
		tracks[i] = r.library.Resolve(t)
	}

	engine := r.player
	if engine == nil {
		engine = player.NewEngine(player.NewClockSink(), fileLogger)
		engine.SetVolume(r.config.Player.Volume)
	}

	currentTheme := models.DefaultTheme()
	if r.themes != nil {
		currentTheme = r.themes.Current()
	}

	model := ui.NewModel(title, tracks, engine, currentTheme)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
