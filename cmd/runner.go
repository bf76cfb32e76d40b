package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/evloca/internal/formatter"
	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/repositories"
	"github.com/desertthunder/evloca/internal/services"
	"github.com/desertthunder/evloca/internal/session"
	"github.com/desertthunder/evloca/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	client  *services.Client
	session *session.State
	cache   *repositories.CacheRepository
	db      *sql.DB
	logger  *log.Logger
	output  io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Dependencies left nil are built by [Runner.Bootstrap] from the loaded configuration.
type RunnerOpts struct {
	Config  *shared.Config
	Client  *services.Client
	Session *session.State
	Cache   *repositories.CacheRepository
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:  opts.Config,
		client:  opts.Client,
		session: opts.Session,
		cache:   opts.Cache,
		logger:  opts.Logger,
		output:  opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, profileCommand, userCommand, eventsCommand, placesCommand,
		ticketsCommand, merchCommand, mediaCommand, activityCommand, openCommand, apiCommand,
		cacheCommand, exportCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Bootstrap loads the configuration and wires the database, session and client.
func (r *Runner) Bootstrap(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	if r.config == nil {
		config, err := shared.LoadConfigOrDefault(cmd.String("config"))
		if err != nil {
			return ctx, err
		}
		if err := config.Validate(); err != nil {
			return ctx, err
		}
		r.config = config
	}

	if r.session == nil || r.cache == nil {
		db, err := shared.OpenDatabase(r.config.Database)
		if err != nil {
			return ctx, fmt.Errorf("failed to open database: %w", err)
		}
		r.db = db
		if r.cache == nil {
			r.cache = repositories.NewCacheRepository(db)
		}
		if r.session == nil {
			var store session.Storage = repositories.NewLocalStorage(db)
			if cmd.Bool("ephemeral") {
				store = session.NewMemoryStorage()
			}
			state, err := session.Bootstrap(store, r.logger)
			if err != nil {
				return ctx, fmt.Errorf("failed to restore session: %w", err)
			}
			r.session = state
		}
	}

	if r.client == nil {
		r.client = services.NewClient(services.ClientOpts{
			BaseURL:    r.config.API.BaseURL,
			AssetURL:   r.config.API.AssetURL,
			HTTPClient: &http.Client{Timeout: r.config.API.Timeout()},
			Tokens:     r.session,
			Logger:     r.logger,
			RateLimit:  r.config.API.RateLimit,
		})
	}

	r.logger.Debug("bootstrapped", "api", r.config.API.BaseURL, "logged_in", r.session.LoggedIn())
	return ctx, nil
}

// Close releases the database opened by [Runner.Bootstrap].
func (r *Runner) Close(ctx context.Context, cmd *cli.Command) error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SetLogger swaps the logger for the runner and its client.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
	if r.client != nil {
		r.client.SetLogger(l)
	}
}

// requireLogin fails early for commands that need a session.
func (r *Runner) requireLogin() error {
	if r.session == nil || !r.session.LoggedIn() {
		return fmt.Errorf("%w: run 'evloca auth login' first", shared.ErrNotAuthenticated)
	}
	return nil
}

// remember records a fetched resource in the local cache. Failures are logged, never returned.
func (r *Runner) remember(kind models.ResourceKind, id, title string, v any) {
	if r.cache == nil {
		return
	}
	entry, err := models.NewCachedResource(kind, id, title, v)
	if err == nil {
		err = r.cache.Put(entry)
	}
	if err != nil {
		r.logger.Warn("failed to cache resource", "kind", kind, "id", id, "error", err)
	}
}

// emit writes v in the selected --format, using text for the plain rendering.
func (r *Runner) emit(cmd *cli.Command, v any, text func() error) error {
	switch format := cmd.String("format"); format {
	case "", "text":
		return text()
	case "json":
		return r.writeJSON(v, true)
	case "yaml":
		return r.writeYAML(v)
	default:
		return fmt.Errorf("%w: --format must be text, json or yaml, got %q", shared.ErrInvalidFlag, format)
	}
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

func (r *Runner) writeYAML(data any) error {
	output, err := formatter.ToYAML(data)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeBytes(b []byte) error {
	if _, err := r.output.Write(b); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
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
