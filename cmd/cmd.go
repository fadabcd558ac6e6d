// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes config, database, and schema.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// catalogCommand handles streaming catalog operations
func catalogCommand(r *Runner) *cli.Command {
	limitFlag := &cli.IntFlag{
		Name:  "limit",
		Usage: "Maximum number of tracks to return",
		Value: 20,
	}
	jsonFlag := &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}

	return &cli.Command{
		Name:    "catalog",
		Aliases: []string{"cat"},
		Usage:   "Browse the streaming catalog",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search the catalog by track name",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags:  []cli.Flag{limitFlag, jsonFlag},
				Action: r.CatalogSearch,
			},
			{
				Name:  "genre",
				Usage: "List catalog tracks by genre tag",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "genre"},
				},
				Flags:  []cli.Flag{limitFlag, jsonFlag},
				Action: r.CatalogGenre,
			},
			{
				Name:   "trending",
				Usage:  "List the most popular catalog tracks",
				Flags:  []cli.Flag{limitFlag, jsonFlag},
				Action: r.CatalogTrending,
			},
			{
				Name:   "new",
				Usage:  "List the newest catalog releases",
				Flags:  []cli.Flag{limitFlag, jsonFlag},
				Action: r.CatalogNew,
			},
		},
	}
}

// playlistCommand handles playlist management
func playlistCommand(r *Runner) *cli.Command {
	playlistArg := &cli.StringArg{Name: "playlist"}
	jsonFlag := &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}

	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Manage playlists",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a new empty playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "description",
						Aliases: []string{"d"},
						Usage:   "Playlist description",
					},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:   "list",
				Usage:  "List playlists",
				Flags:  []cli.Flag{jsonFlag},
				Action: r.PlaylistList,
			},
			{
				Name:      "show",
				Usage:     "Show a playlist and its tracks",
				Arguments: []cli.Argument{playlistArg},
				Flags:     []cli.Flag{jsonFlag},
				Action:    r.PlaylistShow,
			},
			{
				Name:      "delete",
				Usage:     "Delete a playlist (its tracks stay in the library)",
				Arguments: []cli.Argument{playlistArg},
				Action:    r.PlaylistDelete,
			},
			{
				Name:      "add",
				Usage:     "Add a track to a playlist",
				Arguments: []cli.Argument{playlistArg},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "track",
						Usage: "Catalog or library track id",
					},
					&cli.StringFlag{
						Name:  "query",
						Usage: "Catalog search, first hit is added",
					},
				},
				Action: r.PlaylistAdd,
			},
			{
				Name:      "remove",
				Usage:     "Remove a track from a playlist",
				Arguments: []cli.Argument{playlistArg},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "track",
						Usage:    "Track id to remove",
						Required: true,
					},
				},
				Action: r.PlaylistRemove,
			},
			{
				Name:      "export",
				Usage:     "Export a playlist to a file",
				Arguments: []cli.Argument{playlistArg},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown, txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.PlaylistExport,
			},
		},
	}
}

// libraryCommand handles uploads and offline downloads
func libraryCommand(r *Runner) *cli.Command {
	jsonFlag := &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}
	forceFlag := &cli.BoolFlag{
		Name:  "force",
		Usage: "Re-fetch tracks that are already saved",
	}

	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Manage local uploads and offline tracks",
		Commands: []*cli.Command{
			{
				Name:  "upload",
				Usage: "Add local audio files to the library",
				Arguments: []cli.Argument{
					&cli.StringArgs{Name: "files", Max: -1},
				},
				Action: r.LibraryUpload,
			},
			{
				Name:   "uploads",
				Usage:  "List uploaded tracks",
				Flags:  []cli.Flag{jsonFlag},
				Action: r.LibraryUploads,
			},
			{
				Name:   "downloads",
				Usage:  "List tracks saved for offline playback",
				Flags:  []cli.Flag{jsonFlag},
				Action: r.LibraryDownloads,
			},
			{
				Name:  "download",
				Usage: "Save a catalog track for offline playback",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "query",
						Usage: "Catalog search, first hit is saved",
					},
					forceFlag,
				},
				Action: r.LibraryDownload,
			},
			{
				Name:  "remove",
				Usage: "Delete an upload or offline copy by id",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.LibraryRemove,
			},
			{
				Name:  "sync",
				Usage: "Save a whole playlist for offline playback",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "playlist"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent downloads",
						Value: 3,
					},
					forceFlag,
				},
				Action: r.LibrarySync,
			},
		},
	}
}

// themeCommand handles display preferences
func themeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "theme",
		Usage: "Manage display preferences",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the active theme",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ThemeShow,
			},
			{
				Name:  "set",
				Usage: "Set theme mode and/or accent color",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "mode",
						Usage: "light, dark, or system",
					},
					&cli.StringFlag{
						Name:  "accent",
						Usage: "rose, blue, purple, green, orange, or cyan",
					},
				},
				Action: r.ThemeSet,
			},
			{
				Name:   "toggle",
				Usage:  "Cycle the theme mode",
				Action: r.ThemeToggle,
			},
		},
	}
}

// playCommand opens the player queued with one playlist.
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Play a playlist in the interactive player",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist"},
		},
		Action: r.Play,
	}
}

// tuiCommand returns the top-level TUI command for the library player.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive library player",
		Action:  r.TUI,
	}
}
