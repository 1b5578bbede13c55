// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the club viewer TUI.
type KeyMap struct {
	// Navigation within a page.
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Page switching.
	PageEvents   key.Binding
	PageBookings key.Binding
	PageProfile  key.Binding
	PageAdmin    key.Binding
	NextSection  key.Binding // Cycle subsections within a page.

	// Navigation history.
	NavigateBack key.Binding

	// Actions.
	Select  key.Binding // Open detail / confirm the highlighted control.
	Action  key.Binding // Context action (book seat, pay, save).
	Cancel  key.Binding // Context cancel (cancel booking, discard edit).
	Refresh key.Binding

	// Filter.
	FilterActivate key.Binding
	FilterClear    key.Binding

	// Session.
	Login  key.Binding
	Logout key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	PageEvents: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "события"),
	),
	PageBookings: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "бронирования"),
	),
	PageProfile: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "профиль"),
	),
	PageAdmin: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "админ"),
	),
	NextSection: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "раздел"),
	),
	NavigateBack: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("BS", "назад"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "открыть"),
	),
	Action: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "действие"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "отменить"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "обновить"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "поиск"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "сброс"),
	),
	Login: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "войти"),
	),
	Logout: key.NewBinding(
		key.WithKeys("Q"),
		key.WithHelp("Q", "выйти"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "выход"),
	),
}
