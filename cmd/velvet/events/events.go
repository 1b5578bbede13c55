// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

// Package events implements the velvet events command group.
package events

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/velvet-club/velvet/cmd/velvet/cli"
	"github.com/velvet-club/velvet/lib/api"
)

// Command returns the "events" command group.
func Command(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "events",
		Summary: "Мероприятия клуба",
		Subcommands: []*cli.Command{
			listCommand(app),
			showCommand(app),
			seatsCommand(app),
			createCommand(app),
			updateCommand(app),
			deleteCommand(app),
			statusCommand(app),
			statsCommand(app),
			categoriesCommand(app),
			zonesCommand(app),
		},
	}
}

func listCommand(app *cli.App) *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "list",
		Summary: "Список мероприятий",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "вывод в формате JSON")
			return flags
		},
		Run: func(args []string) error {
			ctx := context.Background()
			client, err := app.Client(ctx)
			if err != nil {
				return err
			}
			events, err := client.Events(ctx)
			if err != nil {
				return err
			}
			if outputJSON {
				return cli.WriteJSON(events)
			}
			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tНАЗВАНИЕ\tДАТА\tСТАТУС\tКАТЕГОРИЯ")
			for _, event := range events {
				fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n",
					event.EventID, event.Title, event.EventDate, event.Status, event.CategoryName)
			}
			return writer.Flush()
		},
	}
}

func showCommand(app *cli.App) *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "show",
		Summary: "Подробности мероприятия",
		Usage:   "velvet events show <event-id> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "вывод в формате JSON")
			return flags
		},
		Run: func(args []string) error {
			eventID, err := parseID(args, "event-id")
			if err != nil {
				return err
			}
			ctx := context.Background()
			client, err := app.Client(ctx)
			if err != nil {
				return err
			}
			event, err := client.Event(ctx, eventID)
			if err != nil {
				return err
			}
			if outputJSON {
				return cli.WriteJSON(event)
			}
			fmt.Printf("%s (#%d)\n", event.Title, event.EventID)
			fmt.Printf("Дата: %s\n", event.EventDate)
			fmt.Printf("Статус: %s\n", event.Status)
			if event.CategoryName != "" {
				fmt.Printf("Категория: %s\n", event.CategoryName)
			}
			if event.Description != "" {
				fmt.Printf("\n%s\n", event.Description)
			}
			if len(event.Zones) > 0 {
				fmt.Println("\nЗоны:")
				writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(writer, "  ЗОНА\tМЕСТ СВОБОДНО\tЦЕНА")
				for _, zone := range event.Zones {
					fmt.Fprintf(writer, "  %s\t%d\t%.2f\n", zone.Name, zone.AvailableSeats, zone.ZonePrice)
				}
				if err := writer.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func seatsCommand(app *cli.App) *cli.Command {
	var zoneID int64
	var outputJSON bool

	return &cli.Command{
		Name:    "seats",
		Summary: "Карта мест зоны",
		Usage:   "velvet events seats <event-id> --zone <zone-id> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("seats", pflag.ContinueOnError)
			flags.Int64Var(&zoneID, "zone", 0, "ID зоны")
			flags.BoolVar(&outputJSON, "json", false, "вывод в формате JSON")
			return flags
		},
		Run: func(args []string) error {
			eventID, err := parseID(args, "event-id")
			if err != nil {
				return err
			}
			if zoneID == 0 {
				return api.ValidationError("не указана зона: --zone")
			}
			ctx := context.Background()
			client, err := app.Client(ctx)
			if err != nil {
				return err
			}
			seats, err := client.EventSeats(ctx, eventID, zoneID)
			if err != nil {
				return err
			}
			if outputJSON {
				return cli.WriteJSON(seats)
			}
			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tМЕСТО\tСОСТОЯНИЕ")
			for _, seat := range seats {
				state := "свободно"
				if seat.IsBooked {
					state = "занято"
				}
				fmt.Fprintf(writer, "%d\t%s\t%s\n", seat.SeatID, seat.SeatNumber, state)
			}
			return writer.Flush()
		},
	}
}

// eventFlags collects the shared create/update flag set into an
// EventRequest. Zones are passed as repeated "zoneID:seats:price"
// triples.
type eventFlags struct {
	request api.EventRequest
	zones   []string
}

func (ef *eventFlags) flagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.StringVar(&ef.request.Title, "title", "", "название")
	flags.StringVar(&ef.request.Description, "description", "", "описание")
	flags.StringVar(&ef.request.EventDate, "date", "", "дата и время (ISO 8601)")
	flags.IntVar(&ef.request.Duration, "duration", 0, "длительность в минутах")
	flags.Int64Var(&ef.request.CategoryID, "category", 0, "ID категории")
	flags.StringArrayVar(&ef.zones, "zone", nil, "зона в формате id:места:цена (можно повторять)")
	return flags
}

func (ef *eventFlags) build() (api.EventRequest, error) {
	if ef.request.Title == "" {
		return api.EventRequest{}, api.ValidationError("не указано название: --title")
	}
	if ef.request.EventDate == "" {
		return api.EventRequest{}, api.ValidationError("не указана дата: --date")
	}
	for _, spec := range ef.zones {
		zone, err := parseZoneSpec(spec)
		if err != nil {
			return api.EventRequest{}, err
		}
		ef.request.Zones = append(ef.request.Zones, zone)
	}
	return ef.request, nil
}

func createCommand(app *cli.App) *cli.Command {
	var ef eventFlags

	return &cli.Command{
		Name:    "create",
		Summary: "Создать мероприятие (модератор)",
		Usage:   "velvet events create --title <название> --date <дата> [flags]",
		Examples: []cli.Example{
			{
				Description: "Концерт с двумя зонами",
				Command:     "velvet events create --title 'Джазовый вечер' --date 2026-09-12T20:00:00 --zone 1:40:2500 --zone 2:20:4000",
			},
		},
		Flags: func() *pflag.FlagSet { return ef.flagSet("create") },
		Run: func(args []string) error {
			request, err := ef.build()
			if err != nil {
				return err
			}
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			event, err := client.CreateEvent(ctx, request)
			if err != nil {
				return err
			}
			fmt.Printf("Мероприятие создано: #%d %s\n", event.EventID, event.Title)
			return nil
		},
	}
}

func updateCommand(app *cli.App) *cli.Command {
	var ef eventFlags

	return &cli.Command{
		Name:    "update",
		Summary: "Изменить мероприятие (модератор)",
		Usage:   "velvet events update <event-id> --title <название> --date <дата> [flags]",
		Flags:   func() *pflag.FlagSet { return ef.flagSet("update") },
		Run: func(args []string) error {
			eventID, err := parseID(args, "event-id")
			if err != nil {
				return err
			}
			request, err := ef.build()
			if err != nil {
				return err
			}
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			event, err := client.UpdateEvent(ctx, eventID, request)
			if err != nil {
				return err
			}
			fmt.Printf("Мероприятие обновлено: #%d %s\n", event.EventID, event.Title)
			return nil
		},
	}
}

func deleteCommand(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Summary: "Удалить мероприятие (модератор)",
		Usage:   "velvet events delete <event-id>",
		Run: func(args []string) error {
			eventID, err := parseID(args, "event-id")
			if err != nil {
				return err
			}
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			if err := client.DeleteEvent(ctx, eventID); err != nil {
				return err
			}
			fmt.Printf("Мероприятие #%d удалено\n", eventID)
			return nil
		},
	}
}

func statusCommand(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "status",
		Summary: "Сменить статус мероприятия (модератор)",
		Usage:   "velvet events status <event-id> <planned|active|cancelled>",
		Run: func(args []string) error {
			if len(args) != 2 {
				return api.ValidationError("ожидаются аргументы: <event-id> <статус>")
			}
			eventID, err := parseID(args[:1], "event-id")
			if err != nil {
				return err
			}
			status := args[1]
			switch status {
			case api.EventPlanned, api.EventActive, api.EventCancelled:
			default:
				return api.ValidationError("недопустимый статус %q", status)
			}
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			if err := client.SetEventStatus(ctx, eventID, status); err != nil {
				return err
			}
			fmt.Printf("Статус мероприятия #%d: %s\n", eventID, status)
			return nil
		},
	}
}

func statsCommand(app *cli.App) *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "stats",
		Summary: "Статистика продаж мероприятия (модератор)",
		Usage:   "velvet events stats <event-id> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("stats", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "вывод в формате JSON")
			return flags
		},
		Run: func(args []string) error {
			eventID, err := parseID(args, "event-id")
			if err != nil {
				return err
			}
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			statistics, err := client.EventStatistics(ctx, eventID)
			if err != nil {
				return err
			}
			if outputJSON {
				return cli.WriteJSON(statistics)
			}
			fmt.Printf("%s (#%d)\n", statistics.Title, statistics.EventID)
			fmt.Printf("Бронирований: %d (подтверждено %d, ожидает %d)\n",
				statistics.TotalBookings, statistics.ConfirmedCount, statistics.PendingCount)
			fmt.Printf("Выручка: %.2f\n", statistics.Revenue)
			return nil
		},
	}
}

func categoriesCommand(app *cli.App) *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "categories",
		Summary: "Список категорий",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("categories", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "вывод в формате JSON")
			return flags
		},
		Run: func(args []string) error {
			ctx := context.Background()
			client, err := app.Client(ctx)
			if err != nil {
				return err
			}
			categories, err := client.Categories(ctx)
			if err != nil {
				return err
			}
			if outputJSON {
				return cli.WriteJSON(categories)
			}
			for _, category := range categories {
				fmt.Printf("%d\t%s\n", category.CategoryID, category.Name)
			}
			return nil
		},
	}
}

func zonesCommand(app *cli.App) *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "zones",
		Summary: "Список зон клуба",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("zones", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "вывод в формате JSON")
			return flags
		},
		Run: func(args []string) error {
			ctx := context.Background()
			client, err := app.Client(ctx)
			if err != nil {
				return err
			}
			zones, err := client.Zones(ctx)
			if err != nil {
				return err
			}
			if outputJSON {
				return cli.WriteJSON(zones)
			}
			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tЗОНА\tВМЕСТИМОСТЬ")
			for _, zone := range zones {
				fmt.Fprintf(writer, "%d\t%s\t%d\n", zone.ZoneID, zone.Name, zone.Capacity)
			}
			return writer.Flush()
		},
	}
}

// parseID extracts a single positional numeric ID.
func parseID(args []string, name string) (int64, error) {
	if len(args) < 1 {
		return 0, api.ValidationError("не указан %s", name)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, api.ValidationError("недопустимый %s: %q", name, args[0])
	}
	return id, nil
}

// parseZoneSpec parses "zoneID:seats:price".
func parseZoneSpec(spec string) (api.EventZoneConfig, error) {
	var zone api.EventZoneConfig
	parsed, err := fmt.Sscanf(spec, "%d:%d:%g", &zone.ZoneID, &zone.AvailableSeats, &zone.ZonePrice)
	if err != nil || parsed != 3 {
		return api.EventZoneConfig{}, api.ValidationError("недопустимая зона %q: ожидается id:места:цена", spec)
	}
	return zone, nil
}
