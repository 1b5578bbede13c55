// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

// Package admin implements the velvet admin command group:
// user management, dashboard statistics, audit logs, system health.
package admin

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/velvet-club/velvet/cmd/velvet/cli"
	"github.com/velvet-club/velvet/lib/api"
)

// Command returns the "admin" command group.
func Command(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "admin",
		Summary: "Администрирование",
		Subcommands: []*cli.Command{
			usersCommand(app),
			setRoleCommand(app),
			activateCommand(app),
			statsCommand(app),
			logsCommand(app),
			healthCommand(app),
		},
	}
}

func usersCommand(app *cli.App) *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "users",
		Summary: "Список пользователей",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("users", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "вывод в формате JSON")
			return flags
		},
		Run: func(args []string) error {
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			users, err := client.AdminUsers(ctx)
			if err != nil {
				return err
			}
			if outputJSON {
				return cli.WriteJSON(users)
			}
			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tЛОГИН\tEMAIL\tРОЛЬ\tАКТИВЕН\tБРОНИРОВАНИЙ\tПОТРАЧЕНО")
			for _, user := range users {
				active := "да"
				if !user.IsActive {
					active = "нет"
				}
				fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\t%d\t%.2f\n",
					user.UserID, user.Username, user.Email, user.Role,
					active, user.Stats.TotalBookings, user.Stats.TotalSpent)
			}
			return writer.Flush()
		},
	}
}

func setRoleCommand(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "set-role",
		Summary: "Назначить роль пользователю",
		Usage:   "velvet admin set-role <user-id> <user|moderator|admin>",
		Run: func(args []string) error {
			if len(args) != 2 {
				return api.ValidationError("ожидаются аргументы: <user-id> <роль>")
			}
			userID, err := parseID(args[0], "user-id")
			if err != nil {
				return err
			}
			role := api.Role(args[1])
			switch role {
			case api.RoleUser, api.RoleModerator, api.RoleAdmin:
			default:
				return api.ValidationError("недопустимая роль %q", args[1])
			}
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			updated, err := client.UpdateUser(ctx, userID, api.UpdateUserRequest{Role: &role})
			if err != nil {
				return err
			}
			fmt.Printf("Роль пользователя %s: %s\n", updated.Username, updated.Role)
			return nil
		},
	}
}

func activateCommand(app *cli.App) *cli.Command {
	var deactivate bool

	return &cli.Command{
		Name:    "activate",
		Summary: "Включить или отключить учетную запись",
		Usage:   "velvet admin activate <user-id> [--off]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("activate", pflag.ContinueOnError)
			flags.BoolVar(&deactivate, "off", false, "отключить учетную запись")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return api.ValidationError("ожидается аргумент: <user-id>")
			}
			userID, err := parseID(args[0], "user-id")
			if err != nil {
				return err
			}
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			active := !deactivate
			updated, err := client.UpdateUser(ctx, userID, api.UpdateUserRequest{IsActive: &active})
			if err != nil {
				return err
			}
			state := "включена"
			if !updated.IsActive {
				state = "отключена"
			}
			fmt.Printf("Учетная запись %s %s\n", updated.Username, state)
			return nil
		},
	}
}

func statsCommand(app *cli.App) *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "stats",
		Summary: "Сводная статистика",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("stats", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "вывод в формате JSON")
			return flags
		},
		Run: func(args []string) error {
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			stats, err := client.AdminStats(ctx)
			if err != nil {
				return err
			}
			if outputJSON {
				return cli.WriteJSON(stats)
			}
			fmt.Printf("Пользователей: %d\n", stats.Overall.TotalUsers)
			fmt.Printf("Мероприятий: %d (активных %d, запланированных %d)\n",
				stats.Overall.TotalEvents, stats.Overall.ActiveEvents, stats.Overall.PlannedEvents)
			fmt.Printf("Бронирований: %d\n", stats.Overall.TotalBookings)
			fmt.Printf("Выручка: %.2f\n", stats.Overall.TotalRevenue)
			if len(stats.UpcomingEvents) > 0 {
				fmt.Println("\nБлижайшие мероприятия:")
				writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(writer, "  ID\tНАЗВАНИЕ\tДАТА\tЗАПОЛНЕННОСТЬ")
				for _, event := range stats.UpcomingEvents {
					fmt.Fprintf(writer, "  %d\t%s\t%s\t%.0f%%\n",
						event.EventID, event.Title, event.EventDate, event.BookingPercentage)
				}
				if err := writer.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func logsCommand(app *cli.App) *cli.Command {
	var filter api.AuditLogFilter
	var outputJSON bool

	return &cli.Command{
		Name:    "logs",
		Summary: "Журнал аудита",
		Usage:   "velvet admin logs [flags]",
		Examples: []cli.Example{
			{Description: "Последние платежи", Command: "velvet admin logs --action payment --limit 20"},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("logs", pflag.ContinueOnError)
			flags.IntVar(&filter.Limit, "limit", 50, "максимум записей")
			flags.IntVar(&filter.Offset, "offset", 0, "пропустить записей")
			flags.StringVar(&filter.Action, "action", "", "фильтр по действию")
			flags.StringVar(&filter.StartDate, "from", "", "с даты (YYYY-MM-DD)")
			flags.StringVar(&filter.EndDate, "to", "", "по дату (YYYY-MM-DD)")
			flags.BoolVar(&outputJSON, "json", false, "вывод в формате JSON")
			return flags
		},
		Run: func(args []string) error {
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			entries, err := client.AuditLogs(ctx, filter)
			if err != nil {
				return err
			}
			if outputJSON {
				return cli.WriteJSON(entries)
			}
			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ВРЕМЯ\tПОЛЬЗОВАТЕЛЬ\tДЕЙСТВИЕ\tДЕТАЛИ")
			for _, entry := range entries {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
					entry.Timestamp, entry.Username, entry.Action, detailsSummary(entry.Details))
			}
			return writer.Flush()
		},
	}
}

func healthCommand(app *cli.App) *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "health",
		Summary: "Состояние сервиса",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("health", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "вывод в формате JSON")
			return flags
		},
		Run: func(args []string) error {
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			health, err := client.SystemHealth(ctx)
			if err != nil {
				return err
			}
			if outputJSON {
				return cli.WriteJSON(health)
			}
			fmt.Printf("Статус: %s\n", health.Status)
			if health.Database != "" {
				fmt.Printf("База данных: %s\n", health.Database)
			}
			if health.Uptime != "" {
				fmt.Printf("Аптайм: %s\n", health.Uptime)
			}
			for _, name := range sortedKeys(health.Checks) {
				fmt.Printf("%s: %v\n", name, health.Checks[name])
			}
			return nil
		},
	}
}

// detailsSummary flattens the free-form details map into "k=v, ..."
// with stable key order.
func detailsSummary(details map[string]any) string {
	summary := ""
	for _, key := range sortedKeys(details) {
		if summary != "" {
			summary += ", "
		}
		summary += fmt.Sprintf("%s=%v", key, details[key])
	}
	return summary
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func parseID(arg, name string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, api.ValidationError("недопустимый %s: %q", name, arg)
	}
	return id, nil
}
