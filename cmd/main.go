package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/harmony/internal/library"
	"github.com/desertthunder/harmony/internal/repositories"
	"github.com/desertthunder/harmony/internal/shared"
	"github.com/desertthunder/harmony/internal/theme"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var libraryManager *library.Manager
	var themeManager *theme.Manager

	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

		libraryManager = library.NewManager(library.ManagerOpts{
			Playlists: repositories.NewPlaylistRepository(db),
			Uploads:   repositories.NewUploadRepository(db),
			Downloads: repositories.NewDownloadRepository(db),
			Logger:    logger,
		})
		if err := libraryManager.Refresh(); err != nil {
			// schema probably missing; setup creates it
			logger.Debug("library unavailable until setup runs", "error", err)
			libraryManager = nil
		}

		themeManager = theme.NewManager(repositories.NewSettingsRepository(db), logger)
		if err := themeManager.Load(); err != nil {
			logger.Debug("theme store unavailable until setup runs", "error", err)
			themeManager = nil
		}
	} else {
		logger.Debug("database unavailable", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Library: libraryManager,
		Themes:  themeManager,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "harmony",
		Usage:    "Stream, collect & play music from the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
