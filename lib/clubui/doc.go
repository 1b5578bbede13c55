// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

// Package clubui implements the interactive terminal client for the
// Velvet booking service.
//
// The root [Model] is a bubbletea model that owns the window, the
// navigation bar, the status line, and the login/register modals. The
// body is one of four pages (events, my-bookings, profile, admin),
// each a self-contained sub-model loaded through the [Router]. Page
// data loads asynchronously: every navigation issues a sequence
// number, and results carrying a stale sequence are dropped so a
// fast page switch never shows the previous page's data.
//
// Authorization is enforced twice: the navigation bar only offers
// pages the current session may open, and [Router.Navigate] rejects
// direct requests for denied pages without changing the view. When
// the backend rejects a token mid-session, the model clears the
// session and opens the login modal exactly once.
package clubui
