package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/harmony/internal/catalog"
	"github.com/desertthunder/harmony/internal/library"
	"github.com/desertthunder/harmony/internal/player"
	"github.com/desertthunder/harmony/internal/shared"
	"github.com/desertthunder/harmony/internal/tasks"
	"github.com/desertthunder/harmony/internal/theme"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	catalog *catalog.Client
	library *library.Manager
	themes  *theme.Manager
	sync    *tasks.SyncEngine
	player  *player.Engine
	logger  *log.Logger
	output  io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Catalog *catalog.Client
	Library *library.Manager
	Themes  *theme.Manager
	Player  *player.Engine
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.NewClient(catalog.ClientOpts{
			BaseURL:   opts.Config.Catalog.BaseURL,
			ClientID:  opts.Config.Catalog.ClientID,
			RateLimit: opts.Config.Catalog.RateLimit,
		})
	}

	var sync *tasks.SyncEngine
	if opts.Library != nil {
		sync = tasks.NewSyncEngine(opts.Library)
	}

	return &Runner{
		config:  opts.Config,
		catalog: opts.Catalog,
		library: opts.Library,
		themes:  opts.Themes,
		sync:    sync,
		player:  opts.Player,
		logger:  opts.Logger,
		output:  opts.Output,
	}
}

// SetLogger swaps the runner's logger, used when the TUI redirects
// logging to a file.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, catalogCommand, playlistCommand, libraryCommand, themeCommand, playCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireLibrary guards actions that need a wired-up library manager.
func (r *Runner) requireLibrary() error {
	if r.library == nil {
		return fmt.Errorf("%w: library not initialized, run 'harmony setup' first", shared.ErrServiceUnavailable)
	}
	return nil
}

func (r *Runner) requireThemes() error {
	if r.themes == nil {
		return fmt.Errorf("%w: settings store not initialized, run 'harmony setup' first", shared.ErrServiceUnavailable)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
