// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

// Package auth implements the velvet auth command group: login,
// logout, register, whoami.
package auth

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
)

// Command returns the "auth" command group.
func Command(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "auth",
		Summary: "Вход, выход и регистрация",
		Subcommands: []*cli.Command{
			loginCommand(app),
			logoutCommand(app),
			registerCommand(app),
			whoamiCommand(app),
		},
	}
}

func loginCommand(app *cli.App) *cli.Command {
	var username string
	var password string

	return &cli.Command{
		Name:    "login",
		Summary: "Войти и сохранить сессию",
		Usage:   "velvet auth login --username <имя> [flags]",
		Examples: []cli.Example{
			{Description: "Интерактивный ввод пароля", Command: "velvet auth login --username alice"},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flags.StringVarP(&username, "username", "u", "", "имя пользователя")
			flags.StringVarP(&password, "password", "p", "", "пароль (небезопасно; лучше интерактивный ввод)")
			return flags
		},
		Run: func(args []string) error {
			ctx := context.Background()
			sessions, err := app.Sessions()
			if err != nil {
				return err
			}

			if username == "" {
				username, err = promptLine("Логин: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				password, err = promptPassword("Пароль: ")
				if err != nil {
					return err
				}
			}

			active, err := sessions.Login(ctx, username, password)
			if err != nil {
				return err
			}
			fmt.Printf("Вход выполнен: %s (%s)\n", active.DisplayName(), active.Role)
			return nil
		},
	}
}

func logoutCommand(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Выйти и удалить сохраненную сессию",
		Run: func(args []string) error {
			ctx := context.Background()
			sessions, err := app.Sessions()
			if err != nil {
				return err
			}
			if _, err := app.Client(ctx); err != nil {
				return err
			}
			if !sessions.Store().LoggedIn() {
				fmt.Println("Вы не были авторизованы")
				return nil
			}
			sessions.Logout(ctx)
			fmt.Println("Выход выполнен")
			return nil
		},
	}
}

func registerCommand(app *cli.App) *cli.Command {
	var request api.RegisterRequest

	return &cli.Command{
		Name:    "register",
		Summary: "Создать аккаунт",
		Usage:   "velvet auth register --username <имя> --email <email> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("register", pflag.ContinueOnError)
			flags.StringVar(&request.Username, "username", "", "имя пользователя")
			flags.StringVar(&request.Email, "email", "", "email")
			flags.StringVar(&request.FirstName, "first-name", "", "имя")
			flags.StringVar(&request.LastName, "last-name", "", "фамилия")
			return flags
		},
		Run: func(args []string) error {
			ctx := context.Background()
			sessions, err := app.Sessions()
			if err != nil {
				return err
			}

			password, err := promptPassword("Пароль: ")
			if err != nil {
				return err
			}
			confirmation, err := promptPassword("Повторите пароль: ")
			if err != nil {
				return err
			}
			if password != confirmation {
				return api.ValidationError("Пароли не совпадают")
			}
			request.Password = password

			active, err := sessions.Register(ctx, request)
			if err != nil {
				return err
			}
			if active == nil {
				fmt.Println("Аккаунт создан, выполните 'velvet auth login'")
				return nil
			}
			fmt.Printf("Аккаунт создан, вход выполнен: %s\n", active.DisplayName())
			return nil
		},
	}
}

func whoamiCommand(app *cli.App) *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "whoami",
		Summary: "Показать текущую сессию",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("whoami", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "вывод в формате JSON")
			return flags
		},
		Run: func(args []string) error {
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			user, err := client.Me(ctx)
			if err != nil {
				return err
			}
			if outputJSON {
				return cli.WriteJSON(user)
			}
			fmt.Printf("%s <%s> — %s\n", user.Username, user.Email, user.Role)
			return nil
		},
	}
}

// promptLine reads one line from stdin.
func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when stdin is a
// terminal, falling back to a plain line read when it is not (tests,
// pipes).
func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(prompt)
	}
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(password), nil
}
