// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

// velvet is the command-line client for the Velvet booking service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/velvet-club/velvet/cmd/velvet/cli"
	"github.com/velvet-club/velvet/cmd/velvet/commands"
)

func main() {
	app := &cli.App{}

	// Global flags are parsed first; everything after them goes to the
	// command tree. Interspersed parsing is off so command flags like
	// --json are not swallowed here.
	globals := pflag.NewFlagSet("velvet", pflag.ContinueOnError)
	globals.SetInterspersed(false)
	globals.StringVar(&app.ConfigPath, "config", "", "путь к файлу конфигурации")
	globals.StringVar(&app.ServerURL, "server", "", "адрес сервера (переопределяет конфигурацию)")
	globals.BoolVarP(&app.Verbose, "verbose", "v", false, "подробный вывод логов")
	globals.Usage = func() {
		commands.Root(app).PrintHelp(os.Stderr)
	}

	if err := globals.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "velvet: %v\n", err)
		os.Exit(2)
	}

	root := commands.Root(app)
	if err := root.Execute(globals.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "velvet: %v\n", err)
		os.Exit(cli.ExitCodeFor(err))
	}
}
