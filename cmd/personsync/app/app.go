// Package app provides the application context and dependency management
// for the personsync CLI. It centralizes configuration, logging and the
// construction of the provisioning step.
package app

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/personsync"
	"github.com/agentstation/personsync/pkg/config"
	"github.com/agentstation/personsync/pkg/constants"
	"github.com/agentstation/personsync/pkg/topdesk"
)

// App represents the personsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	out    io.Writer
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		out:     os.Stdout,
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// RemoteConfig loads the remote system configuration from the config file,
// PERSONSYNC_* environment variables and .env files. Without any configured
// timeout the CLI default applies.
func (a *App) RemoteConfig() (config.Config, error) {
	overrides := map[string]any{}
	if a.config.TimeoutSet {
		overrides[config.KeyTimeout] = a.config.Timeout
	}

	cfg, err := config.Load(a.config.ConfigFile, overrides)
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Timeout == 0 && !a.config.TimeoutSet {
		cfg.Timeout = constants.DefaultCLITimeout
	}

	a.logger.Debug().
		Str("base_url", cfg.BaseURL).
		Str("username", cfg.Username).
		Str("branch_id", cfg.BranchID).
		Dur("timeout", cfg.Timeout).
		Str("probe_method", cfg.ProbeMethod).
		Msg("remote configuration loaded")
	return cfg, nil
}

// Step builds the provisioning step from the remote configuration.
func (a *App) Step() (personsync.Step, error) {
	cfg, err := a.RemoteConfig()
	if err != nil {
		return nil, err
	}
	return personsync.NewWithConfig(cfg)
}

// Client builds a persons API client from the remote configuration.
func (a *App) Client() (*topdesk.Client, error) {
	cfg, err := a.RemoteConfig()
	if err != nil {
		return nil, err
	}
	return topdesk.NewClient(cfg), nil
}

// Option is a functional option for configuring the App.
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

// WithOutput sets the writer command results are printed to.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}
