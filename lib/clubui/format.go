// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/velvet-club/velvet/lib/api"
)

// formatDate renders a service ISO 8601 timestamp as a short
// date+time in the local timezone. Unparseable values pass through
// unchanged so a service format drift degrades display, not behavior.
func formatDate(value string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.Format("02.01.2006 15:04")
		}
	}
	return value
}

// formatPrice renders a ruble amount with a thousands separator:
// 12500 → "12 500 ₽". Kopeck fractions render only when present.
func formatPrice(amount float64) string {
	whole := int64(amount)
	fraction := amount - float64(whole)

	digits := strconv.FormatInt(whole, 10)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	formatted := strings.Join(groups, " ")
	if negative {
		formatted = "-" + formatted
	}
	if fraction > 0.004 {
		formatted += fmt.Sprintf(",%02d", int(fraction*100+0.5))
	}
	return formatted + " ₽"
}

// eventStatusLabel returns the Russian display label for an event
// status.
func eventStatusLabel(status string) string {
	switch status {
	case api.EventPlanned:
		return "Запланировано"
	case api.EventActive:
		return "Активно"
	case api.EventCancelled:
		return "Отменено"
	}
	return status
}

// bookingStatusLabel returns the Russian display label for a booking
// status.
func bookingStatusLabel(status string) string {
	switch status {
	case api.BookingPending:
		return "Ожидает оплаты"
	case api.BookingConfirmed:
		return "Подтверждено"
	case api.BookingCancelled:
		return "Отменено"
	}
	return status
}

// paymentStatusLabel returns the Russian display label for a payment
// status.
func paymentStatusLabel(status string) string {
	switch status {
	case api.PaymentPending:
		return "Не оплачено"
	case api.PaymentCompleted:
		return "Оплачено"
	}
	return status
}

// roleLabel returns the Russian display label for a role.
func roleLabel(role api.Role) string {
	switch role {
	case api.RoleAdmin:
		return "Администратор"
	case api.RoleModerator:
		return "Модератор"
	case api.RoleUser:
		return "Пользователь"
	}
	return string(role)
}

// paymentMethodLabel returns the Russian display label for a payment
// method wire value.
func paymentMethodLabel(method string) string {
	switch method {
	case "credit_card":
		return "Кредитная карта"
	case "debit_card":
		return "Дебетовая карта"
	case "paypal":
		return "PayPal"
	case "apple_pay":
		return "Apple Pay"
	case "google_pay":
		return "Google Pay"
	}
	return method
}

// pageTitle returns the navigation bar label for a page.
func pageTitle(page string) string {
	switch page {
	case "events":
		return "События"
	case "my-bookings":
		return "Мои бронирования"
	case "profile":
		return "Профиль"
	case "admin":
		return "Администрирование"
	}
	return page
}

// truncate shortens a string to at most width runes, appending an
// ellipsis when cut.
func truncate(value string, width int) string {
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
