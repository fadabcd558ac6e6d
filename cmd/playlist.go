package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/harmony/internal/formatter"
	"github.com/desertthunder/harmony/internal/models"
	"github.com/desertthunder/harmony/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistCreate creates a new empty playlist.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name", shared.ErrMissingArgument)
	}

	playlist, err := r.library.CreatePlaylist(name, cmd.String("description"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Created playlist %q (id: %s)\n", playlist.Name, playlist.ID)
	return nil
}

// PlaylistList lists stored playlists, most recently updated first.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	playlists := r.library.Playlists()
	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}

	r.writePlainHeader("Playlists")
	if len(playlists) == 0 {
		r.writePlain("No playlists yet\n")
		return nil
	}
	for _, p := range playlists {
		line := fmt.Sprintf("%s (%d tracks)", p.Name, len(p.Tracks))
		if p.Description != "" {
			line += fmt.Sprintf(" - %s", p.Description)
		}
		r.writePlain("%s\n    id: %s\n", line, p.ID)
	}
	return nil
}

// PlaylistShow prints one playlist with its track listing.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	playlist, err := r.findPlaylist(cmd.StringArg("playlist"))
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(playlist, true)
	}

	r.writePlainHeader(playlist.Name)
	if playlist.Description != "" {
		r.writePlain("%s\n\n", playlist.Description)
	}
	return r.printTracks("Tracks", playlist.Tracks, false)
}

// PlaylistDelete removes a playlist. Its tracks stay in the library.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	playlist, err := r.findPlaylist(cmd.StringArg("playlist"))
	if err != nil {
		return err
	}
	if err := r.library.DeletePlaylist(playlist.ID); err != nil {
		return err
	}

	r.writePlain("✓ Deleted playlist %q\n", playlist.Name)
	return nil
}

// PlaylistAdd adds a track to a playlist, either a catalog track by id
// or a local upload/download by its library id.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	playlist, err := r.findPlaylist(cmd.StringArg("playlist"))
	if err != nil {
		return err
	}

	track, err := r.findTrack(ctx, cmd.String("track"), cmd.String("query"))
	if err != nil {
		return err
	}

	if err := r.library.AddTrackToPlaylist(playlist.ID, *track); err != nil {
		return err
	}

	r.writePlain("✓ Added %s - %s to %q\n", track.Artist, track.Name, playlist.Name)
	return nil
}

// PlaylistRemove drops a track from a playlist.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	playlist, err := r.findPlaylist(cmd.StringArg("playlist"))
	if err != nil {
		return err
	}

	trackID := cmd.String("track")
	if trackID == "" {
		return fmt.Errorf("%w: --track", shared.ErrMissingArgument)
	}

	if err := r.library.RemoveTrackFromPlaylist(playlist.ID, trackID); err != nil {
		return err
	}

	r.writePlain("✓ Removed track %s from %q\n", trackID, playlist.Name)
	return nil
}

// PlaylistExport writes a playlist to disk as JSON, CSV, Markdown, or text.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	playlist, err := r.findPlaylist(cmd.StringArg("playlist"))
	if err != nil {
		return err
	}

	output := cmd.String("output")
	switch cmd.String("format") {
	case "csv":
		result, err := formatter.WriteCSVExport(playlist, strings.TrimSuffix(output, ".csv"))
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported to %s and %s\n", result.TracksFile, result.MetadataFile)
	case "markdown", "md":
		path, err := formatter.WriteMarkdownExport(playlist, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported to %s\n", path)
	case "txt", "text":
		path, err := formatter.WriteTextExport(playlist, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported to %s\n", path)
	case "json", "":
		path, err := formatter.WriteJSONExport(playlist, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported to %s\n", path)
	default:
		return fmt.Errorf("%w: format %q", shared.ErrInvalidFlag, cmd.String("format"))
	}
	return nil
}

// findPlaylist resolves a playlist by id or (case-insensitive) name.
func (r *Runner) findPlaylist(idOrName string) (*models.Playlist, error) {
	if idOrName == "" {
		return nil, fmt.Errorf("%w: playlist id or name", shared.ErrMissingArgument)
	}

	if p := r.library.Playlist(idOrName); p != nil {
		return p, nil
	}
	for _, p := range r.library.Playlists() {
		if strings.EqualFold(p.Name, idOrName) {
			found := p
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, idOrName)
}

// findTrack resolves a track to add: a library id (upload or download),
// a catalog id, or the first hit for a free-text query.
func (r *Runner) findTrack(ctx context.Context, id, query string) (*models.Track, error) {
	switch {
	case id != "":
		for _, t := range r.library.Uploads() {
			if t.ID == id {
				return &t.Track, nil
			}
		}
		for _, t := range r.library.Downloads() {
			if t.ID == id {
				return &t.Track, nil
			}
		}
		return r.catalog.Track(ctx, id)

	case query != "":
		tracks, err := r.catalog.Search(ctx, query, 1)
		if err != nil {
			return nil, err
		}
		if len(tracks) == 0 {
			return nil, fmt.Errorf("%w: no match for %q", shared.ErrTrackNotFound, query)
		}
		return &tracks[0], nil

	default:
		return nil, fmt.Errorf("%w: --track or --query", shared.ErrMissingArgument)
	}
}
