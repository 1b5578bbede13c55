// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

// Package profile implements the velvet profile command group.
package profile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/velvet-club/velvet/cmd/velvet/cli"
	"github.com/velvet-club/velvet/lib/api"
	"github.com/velvet-club/velvet/lib/session"
)

// Command returns the "profile" command group.
func Command(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "profile",
		Summary: "Ваш профиль",
		Subcommands: []*cli.Command{
			showCommand(app),
			updateCommand(app),
			changePasswordCommand(app),
		},
	}
}

func showCommand(app *cli.App) *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "show",
		Summary: "Показать профиль",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "вывод в формате JSON")
			return flags
		},
		Run: func(args []string) error {
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			profile, err := client.Profile(ctx)
			if err != nil {
				return err
			}
			if outputJSON {
				return cli.WriteJSON(profile)
			}
			fmt.Printf("%s <%s> — %s\n", profile.Username, profile.Email, profile.Role)
			if profile.FirstName != "" || profile.LastName != "" {
				fmt.Printf("Имя: %s %s\n", profile.FirstName, profile.LastName)
			}
			if profile.Phone != "" {
				fmt.Printf("Телефон: %s\n", profile.Phone)
			}
			if profile.BirthDate != "" {
				fmt.Printf("Дата рождения: %s\n", profile.BirthDate)
			}
			return nil
		},
	}
}

func updateCommand(app *cli.App) *cli.Command {
	var request api.UpdateProfileRequest

	return &cli.Command{
		Name:    "update",
		Summary: "Изменить контактные данные",
		Usage:   "velvet profile update [flags]",
		Examples: []cli.Example{
			{Description: "Сменить email", Command: "velvet profile update --email alice@example.com"},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flags.StringVar(&request.FirstName, "first-name", "", "имя")
			flags.StringVar(&request.LastName, "last-name", "", "фамилия")
			flags.StringVar(&request.Email, "email", "", "email")
			flags.StringVar(&request.Phone, "phone", "", "телефон")
			flags.StringVar(&request.BirthDate, "birth-date", "", "дата рождения (YYYY-MM-DD)")
			return flags
		},
		Run: func(args []string) error {
			if request == (api.UpdateProfileRequest{}) {
				return api.ValidationError("нечего менять: укажите хотя бы один флаг")
			}
			if request.Email != "" {
				if err := session.ValidateEmail(request.Email); err != nil {
					return err
				}
			}
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			updated, err := client.UpdateProfile(ctx, request)
			if err != nil {
				return err
			}
			fmt.Printf("Профиль обновлен: %s <%s>\n", updated.Username, updated.Email)
			return nil
		},
	}
}

func changePasswordCommand(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "change-password",
		Summary: "Сменить пароль",
		Run: func(args []string) error {
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			current, err := promptPassword("Текущий пароль: ")
			if err != nil {
				return err
			}
			next, err := promptPassword("Новый пароль: ")
			if err != nil {
				return err
			}
			confirmation, err := promptPassword("Повторите новый пароль: ")
			if err != nil {
				return err
			}
			if err := session.ValidatePasswordPair(next, confirmation); err != nil {
				return err
			}
			if err := client.ChangePassword(ctx, current, next); err != nil {
				return err
			}
			fmt.Println("Пароль изменен")
			return nil
		},
	}
}

func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return strings.TrimSpace(line), nil
	}
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(password), nil
}
