package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songsite/internal/catalog"
	"github.com/desertthunder/songsite/internal/services"
	"github.com/desertthunder/songsite/internal/shared"
	"github.com/desertthunder/songsite/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	store      *catalog.Store
	provider   services.SearchProvider
	logger     *log.Logger
	output     io.Writer
	getenv     func(string) string
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Store      *catalog.Store
	Provider   services.SearchProvider // Overrides the provider built from config
	Logger     *log.Logger
	Output     io.Writer
	Getenv     func(string) string
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
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		store:      opts.Store,
		provider:   opts.Provider,
		logger:     opts.Logger,
		output:     opts.Output,
		getenv:     opts.Getenv,
	}
}

// App builds the root command.
func (r *Runner) App() *cli.Command {
	return &cli.Command{
		Name:    "songsite",
		Usage:   "Stream, search and download a local music library",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error); overrides server.log_level",
			},
		},
		Before:   r.Configure,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, catalogCommand, searchCommand, setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Configure loads the config file named by --config, applies environment overrides and sets the log level.
//
// A missing file is only an error when --config was given explicitly.
func (r *Runner) Configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if r.configPath != "" && !cmd.IsSet("config") {
		path = r.configPath
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat(path); err == nil {
		if config, err = shared.LoadConfig(path); err != nil {
			return ctx, err
		}
	} else if errors.Is(err, fs.ErrNotExist) && cmd.IsSet("config") {
		return ctx, fmt.Errorf("%w: %s", shared.ErrMissingConfig, path)
	}

	if err := config.ApplyEnv(r.getenv); err != nil {
		return ctx, err
	}

	level := config.Server.LogLevel
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	ll, err := shared.ParseLogLevel(level)
	if err != nil {
		return ctx, err
	}
	shared.SetLogLevel(r.logger, ll)

	r.config = config
	r.configPath = path
	return ctx, nil
}

// SetLogger swaps the logger, e.g. to a file while the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// catalogStore returns the store for the configured songs directory, creating it on first use.
func (r *Runner) catalogStore() *catalog.Store {
	if r.store == nil {
		r.store = catalog.NewStore(r.config.Library.SongsDir, catalog.BuildOptions{
			ReadTags: r.config.Library.ReadTags,
			Logger:   shared.WithLogger(r.logger, "component", "catalog"),
		})
	}
	return r.store
}

// searchProvider builds the remote provider for youtube mode. A nil provider means fallback placeholders.
func (r *Runner) searchProvider(ctx context.Context) services.SearchProvider {
	if r.config.Search.Mode != shared.SearchModeYouTube {
		return nil
	}
	if r.provider != nil {
		return r.provider
	}
	if r.config.Credentials.YouTube.APIKey == "" {
		r.logger.Info("no YouTube API key configured, remote search uses placeholders")
		return nil
	}

	yt, err := services.NewYouTubeService(ctx, r.config.Credentials.YouTube.APIKey, r.config.Search.MaxResults)
	if err != nil {
		r.logger.Warn("YouTube search unavailable, using placeholders", "error", err)
		return nil
	}

	r.provider = services.NewRateLimited(yt, r.config.Search.RatePerSecond, 1)
	return r.provider
}

func (r *Runner) resolver(ctx context.Context) *tasks.Resolver {
	return tasks.NewResolver(tasks.ResolverOpts{
		Store:           r.catalogStore(),
		Remote:          r.config.Search.Mode == shared.SearchModeYouTube,
		Provider:        r.searchProvider(ctx),
		Timeout:         r.config.SearchTimeout(),
		TrackPopularity: r.config.Search.TrackPopularity,
		Logger:          shared.WithLogger(r.logger, "component", "resolver"),
	})
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
