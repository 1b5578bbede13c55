// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the velvet command tree.
package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/velvet-club/velvet/cmd/velvet/admin"
	"github.com/velvet-club/velvet/cmd/velvet/auth"
	"github.com/velvet-club/velvet/cmd/velvet/bookings"
	"github.com/velvet-club/velvet/cmd/velvet/cli"
	"github.com/velvet-club/velvet/cmd/velvet/events"
	"github.com/velvet-club/velvet/cmd/velvet/profile"
	"github.com/velvet-club/velvet/lib/version"
)

// Root builds the full velvet command tree.
func Root(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "velvet",
		Summary: "Клиент сервиса бронирования Velvet",
		Description: "velvet — консольный клиент сервиса бронирования мест\n" +
			"на мероприятия клуба Velvet. Для интерактивного интерфейса\n" +
			"используйте velvet-viewer.",
		Subcommands: []*cli.Command{
			auth.Command(app),
			events.Command(app),
			bookings.Command(app),
			profile.Command(app),
			admin.Command(app),
			versionCommand(),
		},
	}
}

func versionCommand() *cli.Command {
	var full bool

	return &cli.Command{
		Name:    "version",
		Summary: "Показать версию",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("version", pflag.ContinueOnError)
			flags.BoolVar(&full, "full", false, "подробная информация о сборке")
			return flags
		},
		Run: func(args []string) error {
			if full {
				fmt.Println(version.Full())
				return nil
			}
			fmt.Println(version.Info())
			return nil
		},
	}
}
