// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/velvet-club/velvet/lib/api"
)

// bookingsPage lists the user's bookings and drives the booking
// lifecycle: pay (payment method dropdown), confirm, cancel.
type bookingsPage struct {
	deps *Deps

	bookings []api.Booking
	cursor   int
	scroll   int

	// dropdown is the payment method picker; non-nil while open.
	dropdown *DropdownOverlay
}

// loadBookingsPage is the router loader for the my-bookings page.
func loadBookingsPage(deps *Deps) PageLoader {
	return func(ctx context.Context) (pageModel, error) {
		bookings, err := deps.Client.MyBookings(ctx)
		if err != nil {
			return nil, err
		}
		return &bookingsPage{deps: deps, bookings: bookings}, nil
	}
}

func (page *bookingsPage) title() string { return pageTitle("my-bookings") }

func (page *bookingsPage) selected() *api.Booking {
	if page.cursor < 0 || page.cursor >= len(page.bookings) {
		return nil
	}
	return &page.bookings[page.cursor]
}

func (page *bookingsPage) update(message tea.Msg, keys KeyMap) (pageModel, tea.Cmd) {
	keyMessage, isKey := message.(tea.KeyMsg)
	if !isKey {
		return page, nil
	}
	if page.dropdown != nil {
		return page.updateDropdown(keyMessage, keys)
	}

	switch {
	case key.Matches(keyMessage, keys.Up):
		if page.cursor > 0 {
			page.cursor--
		}
	case key.Matches(keyMessage, keys.Down):
		if page.cursor < len(page.bookings)-1 {
			page.cursor++
		}
	case key.Matches(keyMessage, keys.Home):
		page.cursor = 0
	case key.Matches(keyMessage, keys.End):
		page.cursor = len(page.bookings) - 1
	case key.Matches(keyMessage, keys.Action):
		return page.openPaymentDropdown()
	case key.Matches(keyMessage, keys.Select):
		return page.confirmSelected()
	case key.Matches(keyMessage, keys.Cancel):
		return page.cancelSelected()
	}
	return page, nil
}

func (page *bookingsPage) updateDropdown(message tea.KeyMsg, keys KeyMap) (pageModel, tea.Cmd) {
	switch {
	case key.Matches(message, keys.Up):
		page.dropdown.MoveUp()
	case key.Matches(message, keys.Down):
		page.dropdown.MoveDown()
	case key.Matches(message, keys.FilterClear):
		page.dropdown = nil
	case key.Matches(message, keys.Select):
		option := page.dropdown.Selected()
		bookingID := page.dropdown.ItemID
		page.dropdown = nil
		return page, page.pay(bookingID, option.Value)
	}
	return page, nil
}

// openPaymentDropdown offers the payment methods for a booking that
// still awaits payment.
func (page *bookingsPage) openPaymentDropdown() (pageModel, tea.Cmd) {
	booking := page.selected()
	if booking == nil {
		return page, nil
	}
	if !booking.AwaitsPayment() {
		return page, notify("Бронирование уже оплачено или отменено", noticeError)
	}

	options := make([]DropdownOption, 0, len(api.PaymentMethods))
	for _, method := range api.PaymentMethods {
		options = append(options, DropdownOption{Label: paymentMethodLabel(method), Value: method})
	}
	page.dropdown = &DropdownOverlay{
		Options: options,
		AnchorX: 4,
		AnchorY: page.cursor - page.scroll + 2,
		Field:   "payment",
		ItemID:  booking.BookingID,
	}
	return page, nil
}

func (page *bookingsPage) pay(bookingID int64, method string) tea.Cmd {
	client := page.deps.Client
	return func() tea.Msg {
		if err := client.Pay(context.Background(), bookingID, method); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{notice: "Оплата прошла успешно", reload: true}
	}
}

func (page *bookingsPage) confirmSelected() (pageModel, tea.Cmd) {
	booking := page.selected()
	if booking == nil {
		return page, nil
	}
	if booking.Status != api.BookingPending {
		return page, nil
	}

	client := page.deps.Client
	bookingID := booking.BookingID
	return page, func() tea.Msg {
		if err := client.ConfirmBooking(context.Background(), bookingID); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{notice: "Бронирование подтверждено", reload: true}
	}
}

func (page *bookingsPage) cancelSelected() (pageModel, tea.Cmd) {
	booking := page.selected()
	if booking == nil {
		return page, nil
	}
	if booking.Status == api.BookingCancelled {
		return page, notify("Бронирование уже отменено", noticeError)
	}

	client := page.deps.Client
	bookingID := booking.BookingID
	return page, func() tea.Msg {
		if err := client.CancelBooking(context.Background(), bookingID); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{notice: "Бронирование отменено", reload: true}
	}
}

func (page *bookingsPage) view(theme Theme, width, height int) string {
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	selectedStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	if len(page.bookings) == 0 {
		return faintStyle.Render("У вас пока нет бронирований")
	}

	var lines []string
	lines = append(lines, faintStyle.Render(" Событие                        Место   Сумма        Статус"))

	listHeight := height - 3
	page.scroll = clampScroll(page.scroll, page.cursor, len(page.bookings), listHeight)

	for index := page.scroll; index < len(page.bookings) && index-page.scroll < listHeight; index++ {
		booking := page.bookings[index]
		statusStyle := lipgloss.NewStyle().Foreground(theme.BookingStatusColor(booking.Status))

		status := bookingStatusLabel(booking.Status)
		if booking.Status == api.BookingConfirmed && booking.PaymentStatus != "" {
			status += " · " + paymentStatusLabel(booking.PaymentStatus)
		}

		row := fmt.Sprintf(" %-30s %-7s %-12s %s",
			truncate(booking.EventTitle, 30),
			booking.SeatNumber,
			formatPrice(booking.Price),
			statusStyle.Render(status))
		if index == page.cursor {
			row = selectedStyle.Render("▸") + row
		} else {
			row = " " + row
		}
		lines = append(lines, row)
	}

	lines = append(lines, "", faintStyle.Render("a — оплатить, Enter — подтвердить, x — отменить"))
	view := strings.Join(lines, "\n")

	if page.dropdown != nil {
		view = spliceOverlay(view, page.dropdown.Render(theme), page.dropdown.AnchorX, page.dropdown.AnchorY)
	}
	return view
}
