package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/harmony/internal/shared"
	"github.com/desertthunder/harmony/internal/tasks"
	"github.com/urfave/cli/v3"
)

// LibraryUpload adds local audio files to the library. Unsupported
// files are reported and skipped; the rest of the batch proceeds.
func (r *Runner) LibraryUpload(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	paths := cmd.StringArgs("files")
	if len(paths) == 0 {
		return fmt.Errorf("%w: audio file path", shared.ErrMissingArgument)
	}

	added := 0
	for _, path := range paths {
		track, err := r.library.Upload(path)
		switch {
		case errors.Is(err, shared.ErrUnsupportedFormat):
			r.writePlain("✗ %s: unsupported format\n", path)
		case err != nil:
			return err
		case track == nil:
			r.writePlain("✗ %s: could not be added\n", path)
		default:
			added++
			r.writePlain("✓ %s - %s (id: %s)\n", track.Artist, track.Name, track.ID)
		}
	}

	r.writePlainln("Added %d of %d files", added, len(paths))
	return nil
}

// LibraryUploads lists the uploaded tracks.
func (r *Runner) LibraryUploads(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	uploads := r.library.Uploads()
	if cmd.Bool("json") {
		return r.writeJSON(uploads, true)
	}

	r.writePlainHeader("Uploads")
	if len(uploads) == 0 {
		r.writePlain("No uploads yet\n")
		return nil
	}
	for _, t := range uploads {
		r.writePlain("%s - %s\n    id: %s  added: %s\n",
			t.Artist, t.Name, t.ID, t.UploadedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// LibraryDownloads lists tracks saved for offline playback.
func (r *Runner) LibraryDownloads(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	downloads := r.library.Downloads()
	if cmd.Bool("json") {
		return r.writeJSON(downloads, true)
	}

	r.writePlainHeader("Offline Tracks")
	if len(downloads) == 0 {
		r.writePlain("No offline tracks yet\n")
		return nil
	}
	for _, t := range downloads {
		r.writePlain("%s - %s\n    id: %s  saved: %s\n",
			t.Artist, t.Name, t.ID, t.DownloadedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// LibraryDownload saves a single catalog track for offline playback.
func (r *Runner) LibraryDownload(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	track, err := r.findTrack(ctx, cmd.StringArg("id"), cmd.String("query"))
	if err != nil {
		return err
	}

	if r.library.IsDownloaded(track.ID) && !cmd.Bool("force") {
		r.writePlain("Already saved: %s - %s\n", track.Artist, track.Name)
		return nil
	}

	if !r.library.Download(ctx, *track) {
		return fmt.Errorf("%w: %s", shared.ErrDownloadFailed, track.Name)
	}

	r.writePlain("✓ Saved %s - %s for offline playback\n", track.Artist, track.Name)
	return nil
}

// LibraryRemove deletes an upload or an offline copy by library id.
// Playlist entries referencing the track are left alone.
func (r *Runner) LibraryRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: track id", shared.ErrMissingArgument)
	}

	for _, t := range r.library.Uploads() {
		if t.ID == id {
			if err := r.library.DeleteUpload(id); err != nil {
				return err
			}
			r.writePlain("✓ Removed upload %s - %s\n", t.Artist, t.Name)
			return nil
		}
	}
	for _, t := range r.library.Downloads() {
		if t.ID == id {
			if err := r.library.DeleteDownload(id); err != nil {
				return err
			}
			r.writePlain("✓ Removed offline copy of %s - %s\n", t.Artist, t.Name)
			return nil
		}
	}

	return fmt.Errorf("%w: %s", shared.ErrTrackNotFound, id)
}

// LibrarySync saves a whole playlist for offline playback with a
// bounded worker pool, streaming progress lines as tracks complete.
func (r *Runner) LibrarySync(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	playlist, err := r.findPlaylist(cmd.StringArg("playlist"))
	if err != nil {
		return err
	}

	prog := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.sync.SyncPlaylist(ctx, prog, playlist, tasks.SyncOpts{
		NumWorkers: cmd.Int("workers"),
		Force:      cmd.Bool("force"),
	})
	close(prog)
	<-done

	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	r.writePlainln("Saved %d, skipped %d, failed %d of %d tracks",
		result.Saved, result.Skipped, result.Failed, result.TotalTracks)
	return nil
}
