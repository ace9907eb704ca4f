package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stratos/internal/repositories"
	"github.com/desertthunder/stratos/internal/services"
	"github.com/desertthunder/stratos/internal/shared"
	"github.com/desertthunder/stratos/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The database and provider are opened on first use.
type Runner struct {
	config   *shared.Config
	provider services.Provider
	db       *sql.DB
	logger   *log.Logger
	output   io.Writer
	logFile  io.Closer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Provider services.Provider // Overrides the configured open-data provider
	DB       *sql.DB           // Overrides the configured cache database
	Logger   *log.Logger
	Output   io.Writer
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

	return &Runner{
		config:   opts.Config,
		provider: opts.Provider,
		db:       opts.DB,
		logger:   opts.Logger,
		output:   opts.Output,
	}
}

// SetLogger replaces the runner's logger, e.g. with a file logger while the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Close releases the database and log file, if open.
func (r *Runner) Close() error {
	var firstErr error
	if r.db != nil {
		if err := r.db.Close(); err != nil {
			firstErr = err
		}
		r.db = nil
	}
	if r.logFile != nil {
		if err := r.logFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		r.logFile = nil
	}
	return firstErr
}

// database opens the cache database and runs pending migrations.
func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	r.logger.Debug("database opened", "path", r.config.Database.Path)
	r.db = db
	return db, nil
}

func (r *Runner) cacheRepository() (*repositories.CacheRepository, error) {
	db, err := r.database()
	if err != nil {
		return nil, err
	}
	return repositories.NewCacheRepository(db), nil
}

// Provider returns the open-data provider, backed by the payload cache when it is enabled.
func (r *Runner) Provider() (services.Provider, error) {
	if r.provider != nil {
		return r.provider, nil
	}

	var cache services.Cache
	if r.config.Database.CacheEnabled {
		repo, err := r.cacheRepository()
		if err != nil {
			return nil, err
		}
		cache = repositories.NewCacheAdapter(repo)
	}

	source := services.NewSource(r.config.Provider, cache, r.logger)
	r.provider = services.NewStatsBomb(source, r.logger)
	return r.provider, nil
}

func (r *Runner) loader() (*tasks.Loader, error) {
	provider, err := r.Provider()
	if err != nil {
		return nil, err
	}
	return tasks.NewLoader(provider, r.logger), nil
}

// query returns the configured default match, with matchID overriding the home team search.
func (r *Runner) query(matchID int) tasks.MatchQuery {
	q := tasks.QueryFromConfig(r.config.Match)
	if matchID > 0 {
		q.MatchID = matchID
	}
	return q
}

// load resolves and loads a replay, printing progress as it goes.
func (r *Runner) load(ctx context.Context, q tasks.MatchQuery) (*tasks.Replay, error) {
	loader, err := r.loader()
	if err != nil {
		return nil, err
	}

	progressCh := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			r.logger.Info(update.Message, "phase", update.Phase)
		}
	}()

	replay, err := loader.Load(ctx, q, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return nil, err
	}
	return replay, nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
