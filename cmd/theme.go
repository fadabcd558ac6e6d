package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/harmony/internal/models"
	"github.com/desertthunder/harmony/internal/shared"
	"github.com/urfave/cli/v3"
)

// ThemeShow prints the active theme.
func (r *Runner) ThemeShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireThemes(); err != nil {
		return err
	}

	current := r.themes.Current()
	if cmd.Bool("json") {
		return r.writeJSON(current, true)
	}

	r.writePlain("mode: %s\naccent: %s\n", current.Mode, current.Accent)
	return nil
}

// ThemeSet changes the mode and/or accent color.
func (r *Runner) ThemeSet(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireThemes(); err != nil {
		return err
	}

	mode := cmd.String("mode")
	accent := cmd.String("accent")
	if mode == "" && accent == "" {
		return fmt.Errorf("%w: --mode or --accent", shared.ErrMissingArgument)
	}

	if mode != "" {
		if err := r.themes.SetMode(models.ThemeMode(mode)); err != nil {
			return err
		}
	}
	if accent != "" {
		if err := r.themes.SetAccent(models.AccentColor(accent)); err != nil {
			return err
		}
	}

	current := r.themes.Current()
	r.writePlain("✓ Theme is now %s / %s\n", current.Mode, current.Accent)
	return nil
}

// ThemeToggle steps the mode through system, light, dark.
func (r *Runner) ThemeToggle(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireThemes(); err != nil {
		return err
	}

	if err := r.themes.Toggle(); err != nil {
		return err
	}

	r.writePlain("✓ Theme mode is now %s\n", r.themes.Current().Mode)
	return nil
}
