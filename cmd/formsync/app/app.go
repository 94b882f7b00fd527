// Package app provides the application context and dependency management
// for the formsync CLI. It centralizes configuration, logging, and the
// lazily opened store and API client shared by all commands.
package app

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/formsync/internal/cmd/application"
	"github.com/agentstation/formsync/internal/sources/formbuilder"
	"github.com/agentstation/formsync/internal/store/sqlite"
	"github.com/agentstation/formsync/pkg/errors"
	"github.com/agentstation/formsync/pkg/records"
	"github.com/agentstation/formsync/pkg/wizard"
)

// build identifies the binary.
type build struct {
	version, commit, date, builtBy string
}

// App holds what every command shares. The store and the API client are
// created on first use.
type App struct {
	build  build
	config *Config
	logger *zerolog.Logger

	mu      sync.Mutex // guards store and fetcher
	store   records.Store
	fetcher wizard.Fetcher
}

var _ application.Application = (*App)(nil)

// New loads the configuration from the environment and default files,
// then applies opts.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	logger := NewLogger(config)

	app := &App{
		build:  build{version: version, commit: commit, date: date, builtBy: builtBy},
		config: config,
		logger: &logger,
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

func (a *App) Version() string { return a.build.version }
func (a *App) Commit() string  { return a.build.commit }
func (a *App) Date() string    { return a.build.date }
func (a *App) BuiltBy() string { return a.build.builtBy }

// Config returns the loaded configuration, flags applied.
func (a *App) Config() *Config { return a.config }

func (a *App) Logger() *zerolog.Logger { return a.logger }
func (a *App) OutputFormat() string    { return a.config.Format }
func (a *App) APIURL() string          { return a.config.APIURL }
func (a *App) APIKey() string          { return a.config.APIKey }
func (a *App) ServerAddr() string      { return a.config.ServerAddr }

// Store opens the SQLite database on first use and returns it afterwards.
func (a *App) Store(ctx context.Context) (records.Store, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.store != nil {
		return a.store, nil
	}

	store, err := sqlite.Open(ctx, a.config.DBPath)
	if err != nil {
		return nil, errors.WrapResource("open", "database", a.config.DBPath, err)
	}

	a.logger.Debug().Str("path", a.config.DBPath).Msg("Opened database")
	a.store = store
	return store, nil
}

// Fetcher returns the FormBuilder API client.
func (a *App) Fetcher() wizard.Fetcher {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.fetcher == nil {
		a.fetcher = formbuilder.NewClient(a.config.Timeout)
	}
	return a.fetcher
}

// Shutdown closes the store if one was opened.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Debug().Msg("Shutting down")

	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok := a.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return errors.WrapResource("close", "database", a.config.DBPath, err)
		}
	}
	a.store = nil
	return nil
}

// Option configures an App in New.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithStore sets the store, skipping the database.
func WithStore(store records.Store) Option {
	return func(a *App) error {
		a.store = store
		return nil
	}
}

// WithFetcher sets the API client.
func WithFetcher(fetcher wizard.Fetcher) Option {
	return func(a *App) error {
		a.fetcher = fetcher
		return nil
	}
}
