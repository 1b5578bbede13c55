// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/velvet-club/velvet/lib/api"
)

// Theme defines the color palette for the terminal client. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Event status colors.
	EventPlanned   lipgloss.Color
	EventActive    lipgloss.Color
	EventCancelled lipgloss.Color

	// Booking status colors.
	BookingPending   lipgloss.Color
	BookingConfirmed lipgloss.Color
	BookingCancelled lipgloss.Color

	// Seat map.
	SeatFree   lipgloss.Color
	SeatBooked lipgloss.Color

	// Role badges.
	RoleUser      lipgloss.Color
	RoleModerator lipgloss.Color
	RoleAdmin     lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	AccentColor      lipgloss.Color

	// Status line notices.
	NoticeError   lipgloss.Color
	NoticeSuccess lipgloss.Color

	// Modal and dropdown surfaces.
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color
}

// EventStatusColor returns the color for an event status string.
// Unknown values render faint.
func (theme Theme) EventStatusColor(status string) lipgloss.Color {
	switch status {
	case api.EventPlanned:
		return theme.EventPlanned
	case api.EventActive:
		return theme.EventActive
	case api.EventCancelled:
		return theme.EventCancelled
	default:
		return theme.FaintText
	}
}

// BookingStatusColor returns the color for a booking status string.
func (theme Theme) BookingStatusColor(status string) lipgloss.Color {
	switch status {
	case api.BookingPending:
		return theme.BookingPending
	case api.BookingConfirmed:
		return theme.BookingConfirmed
	case api.BookingCancelled:
		return theme.BookingCancelled
	default:
		return theme.FaintText
	}
}

// RoleColor returns the badge color for a role.
func (theme Theme) RoleColor(role api.Role) lipgloss.Color {
	switch role {
	case api.RoleAdmin:
		return theme.RoleAdmin
	case api.RoleModerator:
		return theme.RoleModerator
	default:
		return theme.RoleUser
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	EventPlanned:   lipgloss.Color("75"),  // blue
	EventActive:    lipgloss.Color("114"), // green
	EventCancelled: lipgloss.Color("196"), // red

	BookingPending:   lipgloss.Color("220"), // amber
	BookingConfirmed: lipgloss.Color("114"), // green
	BookingCancelled: lipgloss.Color("245"), // gray

	SeatFree:   lipgloss.Color("114"),
	SeatBooked: lipgloss.Color("240"),

	RoleUser:      lipgloss.Color("245"),
	RoleModerator: lipgloss.Color("141"), // light purple
	RoleAdmin:     lipgloss.Color("208"), // orange

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	AccentColor:      lipgloss.Color("176"), // velvet pink

	NoticeError:   lipgloss.Color("196"),
	NoticeSuccess: lipgloss.Color("114"),

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),
}
