// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/velvet-club/velvet/lib/api"
	"github.com/velvet-club/velvet/lib/config"
	"github.com/velvet-club/velvet/lib/session"
)

// App holds the lazily-initialized shared state behind every command:
// configuration, the API client, and the session manager. Commands
// receive the App at tree construction time and call into it from
// their Run functions, so a `velvet --help` never touches the config
// file or the network.
type App struct {
	// ConfigPath is the --config flag value; empty means the default
	// resolution order.
	ConfigPath string

	// ServerURL is the --server flag value; overrides the config.
	ServerURL string

	// Verbose is the --verbose flag value; lowers the log level to
	// debug.
	Verbose bool

	once     sync.Once
	initErr  error
	loaded   *config.Config
	client   *api.Client
	sessions *session.Manager
	logger   *slog.Logger
}

func (app *App) init() {
	app.once.Do(func() {
		loaded, err := config.Load(app.ConfigPath)
		if err != nil {
			app.initErr = err
			return
		}
		if app.ServerURL != "" {
			loaded.ServerURL = app.ServerURL
		}
		app.loaded = loaded

		level := loaded.Level()
		if app.Verbose {
			level = slog.LevelDebug
		}
		app.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		store := session.NewStore()
		// Failures come back as returned errors; no notifier needed,
		// printing them twice would only add noise.
		app.client = api.New(api.Config{
			ServerURL: loaded.ServerURL,
			Tokens:    store,
			Logger:    app.logger,
		})
		app.sessions = session.NewManager(app.client, store, session.TokenFilePath(), app.logger)
	})
}

// Config returns the loaded configuration.
func (app *App) Config() (*config.Config, error) {
	app.init()
	return app.loaded, app.initErr
}

// Client returns the API client with the persisted session restored.
func (app *App) Client(ctx context.Context) (*api.Client, error) {
	app.init()
	if app.initErr != nil {
		return nil, app.initErr
	}
	app.sessions.Restore(ctx)
	return app.client, nil
}

// Sessions returns the session manager.
func (app *App) Sessions() (*session.Manager, error) {
	app.init()
	return app.sessions, app.initErr
}

// RequireAuth returns the API client with a live session, restoring
// from disk first. Fails when no session exists.
func (app *App) RequireAuth(ctx context.Context) (*api.Client, error) {
	client, err := app.Client(ctx)
	if err != nil {
		return nil, err
	}
	if !app.sessions.Store().LoggedIn() {
		return nil, fmt.Errorf("не выполнен вход; выполните 'velvet auth login'")
	}
	return client, nil
}

// Logger returns the configured logger.
func (app *App) Logger() *slog.Logger {
	app.init()
	if app.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return app.logger
}
