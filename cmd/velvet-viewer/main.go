// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

// velvet-viewer is the interactive terminal client for the Velvet
// booking service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/velvet-club/velvet/lib/api"
	"github.com/velvet-club/velvet/lib/clubui"
	"github.com/velvet-club/velvet/lib/config"
	"github.com/velvet-club/velvet/lib/session"
	"github.com/velvet-club/velvet/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "velvet-viewer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  string
		serverURL   string
		startPage   string
		showVersion bool
	)
	flags := pflag.NewFlagSet("velvet-viewer", pflag.ContinueOnError)
	flags.StringVar(&configPath, "config", "", "путь к файлу конфигурации")
	flags.StringVar(&serverURL, "server", "", "адрес сервера (переопределяет конфигурацию)")
	flags.StringVar(&startPage, "page", "", "начальная страница (events, my-bookings, profile, admin)")
	flags.BoolVar(&showVersion, "version", false, "показать версию и выйти")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if showVersion {
		fmt.Println(version.Info())
		return nil
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if serverURL != "" {
		loaded.ServerURL = serverURL
	}
	if startPage == "" {
		startPage = loaded.DefaultPage
	}

	// Logs go into the TUI status line; writing them to stderr would
	// corrupt the alternate screen. When a log file is configured,
	// records are mirrored there in full.
	logHandler := clubui.NewTUILogHandler(loaded.Level())
	handler := slog.Handler(logHandler)
	if loaded.LogFile != "" {
		logFile, err := os.OpenFile(loaded.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer logFile.Close()
		handler = clubui.TeeHandler(logHandler,
			slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: loaded.Level()}))
	}
	logger := slog.New(handler)

	notifier := clubui.NewProgramNotifier()
	store := session.NewStore()
	client := api.New(api.Config{
		ServerURL:      loaded.ServerURL,
		Tokens:         store,
		Notify:         notifier,
		OnUnauthorized: notifier.Unauthorized,
		Logger:         logger,
	})
	sessions := session.NewManager(client, store, session.TokenFilePath(), logger)
	sessions.Restore(context.Background())

	deps := &clubui.Deps{Client: client, Sessions: sessions, Logger: logger}
	model := clubui.NewModel(deps, clubui.InitialPage(startPage))
	program := tea.NewProgram(model, tea.WithAltScreen())

	// Session changes can come from any goroutine (CLI-side logout
	// races aside, the restore probe and login commands run off the
	// event loop), so they are delivered as messages.
	store.Subscribe(func(active *session.Session) {
		program.Send(clubui.SessionChanged(active))
	})
	logHandler.SetProgram(program)
	notifier.SetProgram(program)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}
