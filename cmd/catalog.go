package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/harmony/internal/models"
	"github.com/desertthunder/harmony/internal/shared"
	"github.com/urfave/cli/v3"
)

// CatalogSearch searches the streaming catalog by free text.
func (r *Runner) CatalogSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	tracks, err := r.catalog.Search(ctx, query, cmd.Int("limit"))
	if err != nil {
		return fmt.Errorf("catalog search failed: %w", err)
	}

	return r.printTracks(fmt.Sprintf("Results for %q", query), tracks, cmd.Bool("json"))
}

// CatalogGenre lists catalog tracks carrying a genre tag.
func (r *Runner) CatalogGenre(ctx context.Context, cmd *cli.Command) error {
	genre := cmd.StringArg("genre")
	if genre == "" {
		return fmt.Errorf("%w: genre", shared.ErrMissingArgument)
	}

	tracks, err := r.catalog.ByGenre(ctx, genre, cmd.Int("limit"))
	if err != nil {
		return fmt.Errorf("catalog genre listing failed: %w", err)
	}

	return r.printTracks(fmt.Sprintf("Genre: %s", genre), tracks, cmd.Bool("json"))
}

// CatalogTrending lists the catalog's most popular tracks.
func (r *Runner) CatalogTrending(ctx context.Context, cmd *cli.Command) error {
	tracks, err := r.catalog.Trending(ctx, cmd.Int("limit"))
	if err != nil {
		return fmt.Errorf("catalog trending listing failed: %w", err)
	}

	return r.printTracks("Trending", tracks, cmd.Bool("json"))
}

// CatalogNew lists the catalog's newest releases.
func (r *Runner) CatalogNew(ctx context.Context, cmd *cli.Command) error {
	tracks, err := r.catalog.NewReleases(ctx, cmd.Int("limit"))
	if err != nil {
		return fmt.Errorf("catalog new releases listing failed: %w", err)
	}

	return r.printTracks("New Releases", tracks, cmd.Bool("json"))
}

func (r *Runner) printTracks(title string, tracks []models.Track, asJSON bool) error {
	if asJSON {
		return r.writeJSON(tracks, true)
	}

	r.writePlainHeader(title)
	if len(tracks) == 0 {
		r.writePlain("No tracks found\n")
		return nil
	}

	for i, track := range tracks {
		line := fmt.Sprintf("%2d. %s - %s", i+1, track.Artist, track.Name)
		if track.Album != "" {
			line += fmt.Sprintf(" (%s)", track.Album)
		}
		if track.Duration > 0 {
			line += fmt.Sprintf(" [%s]", shared.FormatDuration(track.Duration))
		}
		if r.library != nil && r.library.IsDownloaded(track.ID) {
			line += " ↓"
		}
		r.writePlain("%s\n", line)
		r.writePlain("    id: %s\n", track.ID)
	}
	return nil
}
