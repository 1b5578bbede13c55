// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

// Package bookings implements the velvet bookings command group.
package bookings

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/velvet-club/velvet/cmd/velvet/cli"
	"github.com/velvet-club/velvet/lib/api"
)

// Command returns the "bookings" command group.
func Command(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "bookings",
		Summary: "Ваши бронирования",
		Subcommands: []*cli.Command{
			listCommand(app),
			showCommand(app),
			createCommand(app),
			confirmCommand(app),
			cancelCommand(app),
			payCommand(app),
		},
	}
}

func listCommand(app *cli.App) *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "list",
		Summary: "Список ваших бронирований",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "вывод в формате JSON")
			return flags
		},
		Run: func(args []string) error {
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			bookings, err := client.MyBookings(ctx)
			if err != nil {
				return err
			}
			if outputJSON {
				return cli.WriteJSON(bookings)
			}
			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tМЕРОПРИЯТИЕ\tМЕСТО\tЦЕНА\tСТАТУС\tОПЛАТА")
			for _, booking := range bookings {
				fmt.Fprintf(writer, "%d\t%s\t%s\t%.2f\t%s\t%s\n",
					booking.BookingID, booking.EventTitle, booking.SeatNumber,
					booking.Price, booking.Status, booking.PaymentStatus)
			}
			return writer.Flush()
		},
	}
}

func showCommand(app *cli.App) *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "show",
		Summary: "Подробности бронирования",
		Usage:   "velvet bookings show <booking-id> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "вывод в формате JSON")
			return flags
		},
		Run: func(args []string) error {
			bookingID, err := parseID(args, "booking-id")
			if err != nil {
				return err
			}
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			booking, err := client.Booking(ctx, bookingID)
			if err != nil {
				return err
			}
			if outputJSON {
				return cli.WriteJSON(booking)
			}
			fmt.Printf("Бронирование #%d\n", booking.BookingID)
			fmt.Printf("Мероприятие: %s (%s)\n", booking.EventTitle, booking.EventDate)
			fmt.Printf("Место: %s (%s)\n", booking.SeatNumber, booking.ZoneName)
			fmt.Printf("Цена: %.2f\n", booking.Price)
			fmt.Printf("Статус: %s\n", booking.Status)
			fmt.Printf("Оплата: %s\n", booking.PaymentStatus)
			if booking.PaymentMethod != "" {
				fmt.Printf("Способ оплаты: %s\n", booking.PaymentMethod)
			}
			return nil
		},
	}
}

func createCommand(app *cli.App) *cli.Command {
	var eventID int64
	var seatID int64

	return &cli.Command{
		Name:    "create",
		Summary: "Забронировать место",
		Usage:   "velvet bookings create --event <event-id> --seat <seat-id>",
		Examples: []cli.Example{
			{Description: "Забронировать место 42 на мероприятии 7", Command: "velvet bookings create --event 7 --seat 42"},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flags.Int64Var(&eventID, "event", 0, "ID мероприятия")
			flags.Int64Var(&seatID, "seat", 0, "ID места")
			return flags
		},
		Run: func(args []string) error {
			if eventID == 0 {
				return api.ValidationError("не указано мероприятие: --event")
			}
			if seatID == 0 {
				return api.ValidationError("не указано место: --seat")
			}
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			booking, err := client.CreateBooking(ctx, eventID, seatID)
			if err != nil {
				return err
			}
			fmt.Printf("Место забронировано: #%d, место %s\n", booking.BookingID, booking.SeatNumber)
			return nil
		},
	}
}

func confirmCommand(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "confirm",
		Summary: "Подтвердить бронирование",
		Usage:   "velvet bookings confirm <booking-id>",
		Run: func(args []string) error {
			bookingID, err := parseID(args, "booking-id")
			if err != nil {
				return err
			}
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			if err := client.ConfirmBooking(ctx, bookingID); err != nil {
				return err
			}
			fmt.Printf("Бронирование #%d подтверждено\n", bookingID)
			return nil
		},
	}
}

func cancelCommand(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "cancel",
		Summary: "Отменить бронирование",
		Usage:   "velvet bookings cancel <booking-id>",
		Run: func(args []string) error {
			bookingID, err := parseID(args, "booking-id")
			if err != nil {
				return err
			}
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			if err := client.CancelBooking(ctx, bookingID); err != nil {
				return err
			}
			fmt.Printf("Бронирование #%d отменено\n", bookingID)
			return nil
		},
	}
}

func payCommand(app *cli.App) *cli.Command {
	var method string

	return &cli.Command{
		Name:    "pay",
		Summary: "Оплатить бронирование",
		Usage:   "velvet bookings pay <booking-id> [--method <способ>]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("pay", pflag.ContinueOnError)
			flags.StringVar(&method, "method", "credit_card",
				"способ оплаты ("+strings.Join(api.PaymentMethods, ", ")+")")
			return flags
		},
		Run: func(args []string) error {
			bookingID, err := parseID(args, "booking-id")
			if err != nil {
				return err
			}
			if !slices.Contains(api.PaymentMethods, method) {
				return api.ValidationError("недопустимый способ оплаты %q", method)
			}
			ctx := context.Background()
			client, err := app.RequireAuth(ctx)
			if err != nil {
				return err
			}
			if err := client.Pay(ctx, bookingID, method); err != nil {
				return err
			}
			fmt.Println("Оплата прошла успешно")
			return nil
		},
	}
}

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
